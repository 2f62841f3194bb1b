package scraper

import (
	"bytes"
	"context"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Resolver discovers crawlable page URLs from a sitemap tree or a single
// page URL. Discovery is sequential and depth-first; sub-sitemaps are
// visited in document order and the walk terminates early once the
// collector cap is reached.
type Resolver struct {
	fetcher Fetcher
	journal Journal
}

// NewResolver builds a Resolver that fetches sitemap documents through
// fetcher and logs every step to jrnl.
func NewResolver(fetcher Fetcher, jrnl Journal) *Resolver {
	return &Resolver{fetcher: fetcher, journal: jrnl}
}

// Resolve expands entryPoint into the final URL list. An entry point
// containing ".xml" (case-insensitive) is treated as a sitemap document;
// anything else is a single page URL. URLs containing any of the disallowed
// fragments are excluded. limit caps the result size; zero means unbounded.
func (r *Resolver) Resolve(ctx context.Context, entryPoint string, disallowed []string, limit int) []string {
	collector := NewURLCollector(limit)
	if strings.Contains(strings.ToLower(entryPoint), ".xml") {
		r.resolveSitemap(ctx, entryPoint, collector, disallowed, make(map[string]struct{}))
		return collector.URLs()
	}
	if urlAllowed(entryPoint, disallowed) {
		collector.Add([]string{entryPoint})
		r.journal.Infof("queued single URL: %s", entryPoint)
	} else {
		r.journal.Infof("entry URL excluded by disallowed fragment: %s", entryPoint)
	}
	return collector.URLs()
}

// resolveSitemap walks one sitemap document, feeding page URLs into the
// collector. Fetch and shape failures are logged and isolated: the branch
// contributes nothing and siblings are unaffected. visited guards against
// sitemap graphs that cycle back on themselves.
func (r *Resolver) resolveSitemap(ctx context.Context, sitemapURL string, collector *URLCollector, disallowed []string, visited map[string]struct{}) {
	if collector.Full() {
		return
	}
	if _, seen := visited[sitemapURL]; seen {
		r.journal.Warnf("sitemap cycle detected at %s, skipping", sitemapURL)
		return
	}
	visited[sitemapURL] = struct{}{}

	TotalSitemapFetches.Inc()
	body, err := r.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		TotalSitemapFetchErrors.Inc()
		r.journal.Errorf("failed to fetch sitemap %s: %v", sitemapURL, err)
		return
	}
	r.journal.Infof("fetched sitemap: %s", sitemapURL)

	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		r.journal.Errorf("failed to parse sitemap %s: %v", sitemapURL, err)
		return
	}

	root := firstElement(doc)
	switch {
	case root == nil:
		r.journal.Warnf("%s contains no recognizable XML root", sitemapURL)
	case localNameHasSuffix(root, "sitemapindex"):
		r.resolveIndex(ctx, sitemapURL, root, collector, disallowed, visited)
	case localNameHasSuffix(root, "urlset"):
		r.resolveURLSet(sitemapURL, root, collector, disallowed)
	default:
		r.journal.Warnf("%s is neither a sitemap index nor a url set", sitemapURL)
	}
}

func (r *Resolver) resolveIndex(ctx context.Context, sitemapURL string, root *xmlquery.Node, collector *URLCollector, disallowed []string, visited map[string]struct{}) {
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode || !localNameHasSuffix(child, "sitemap") {
			continue
		}
		if collector.Full() {
			break
		}
		loc := firstLocText(child)
		if loc == "" {
			continue
		}
		r.journal.Infof("descending into sub-sitemap: %s", loc)
		r.resolveSitemap(ctx, loc, collector, disallowed, visited)
	}
}

func (r *Resolver) resolveURLSet(sitemapURL string, root *xmlquery.Node, collector *URLCollector, disallowed []string) {
	var allowed []string
	for _, loc := range locTexts(root) {
		if urlAllowed(loc, disallowed) {
			allowed = append(allowed, loc)
		}
	}
	collector.Add(allowed)
	r.journal.Infof("added %d allowed URLs from %s", len(allowed), sitemapURL)
}

// urlAllowed reports whether rawURL avoids every disallowed fragment. The
// match is a case-sensitive substring check anywhere in the URL.
func urlAllowed(rawURL string, disallowed []string) bool {
	for _, fragment := range disallowed {
		if strings.Contains(rawURL, fragment) {
			return false
		}
	}
	return true
}

// localNameHasSuffix matches element names by suffix, case-insensitively,
// ignoring any namespace prefix. Sitemap XML commonly carries namespaces.
func localNameHasSuffix(n *xmlquery.Node, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(n.Data), suffix)
}

func firstElement(doc *xmlquery.Node) *xmlquery.Node {
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

// firstLocText returns the trimmed text of the first descendant "loc"
// element under n.
func firstLocText(n *xmlquery.Node) string {
	locs := locTexts(n)
	if len(locs) == 0 {
		return ""
	}
	return locs[0]
}

// locTexts gathers the trimmed text of every descendant element whose local
// name ends in "loc", in document order.
func locTexts(n *xmlquery.Node) []string {
	var out []string
	var walk func(node *xmlquery.Node)
	walk = func(node *xmlquery.Node) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != xmlquery.ElementNode {
				continue
			}
			if localNameHasSuffix(child, "loc") {
				if text := strings.TrimSpace(child.InnerText()); text != "" {
					out = append(out, text)
				}
				continue
			}
			walk(child)
		}
	}
	walk(n)
	return out
}
