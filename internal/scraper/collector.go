package scraper

// URLCollector accumulates discovered URLs under a global cap. A limit of
// zero (or less) means unbounded. It is not safe for concurrent use; sitemap
// discovery is strictly sequential.
type URLCollector struct {
	limit int
	urls  []string
}

// NewURLCollector returns a collector that truncates once limit URLs have
// been gathered.
func NewURLCollector(limit int) *URLCollector {
	return &URLCollector{limit: limit}
}

// Add appends newURLs up to the remaining budget, preserving their relative
// order. It reports false once the cap is reached; callers must treat that
// as a signal to abandon further discovery. Truncation is silent.
func (c *URLCollector) Add(newURLs []string) bool {
	if c.limit <= 0 {
		c.urls = append(c.urls, newURLs...)
		return true
	}
	remaining := c.limit - len(c.urls)
	if remaining <= 0 {
		return false
	}
	if len(newURLs) > remaining {
		c.urls = append(c.urls, newURLs[:remaining]...)
		return false
	}
	c.urls = append(c.urls, newURLs...)
	return true
}

// Full reports whether the cap has been reached. Always false when unbounded.
func (c *URLCollector) Full() bool {
	return c.limit > 0 && len(c.urls) >= c.limit
}

// URLs returns the accumulated list in discovery order.
func (c *URLCollector) URLs() []string {
	return c.urls
}
