package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every configuration knob that influences a scrape run.
// All values originate from Viper so the scraper can be configured via
// files, env vars, or CLI flags.
type Config struct {
	EntryPoint           string
	DisallowedFragments  []string
	CSVPath              string
	JSONPath             string
	LogPath              string
	MinDelay             time.Duration
	MaxDelay             time.Duration
	Workers              int
	URLLimit             int
	RenderJS             bool
	UserAgent            string
	HTTPTimeout          time.Duration
	RenderTimeout        time.Duration
	RenderMaxConcurrency int
	RenderDomainQPS      float64
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		EntryPoint:           strings.TrimSpace(v.GetString("scraper.entry_point")),
		DisallowedFragments:  SplitFragments(v.GetString("scraper.disallowed_fragments")),
		CSVPath:              v.GetString("scraper.csv_path"),
		JSONPath:             v.GetString("scraper.json_path"),
		LogPath:              v.GetString("scraper.log_path"),
		MinDelay:             secondsToDuration(v.GetFloat64("scraper.min_delay_seconds")),
		MaxDelay:             secondsToDuration(v.GetFloat64("scraper.max_delay_seconds")),
		Workers:              v.GetInt("scraper.workers"),
		URLLimit:             v.GetInt("scraper.url_limit"),
		RenderJS:             v.GetBool("scraper.render_js"),
		UserAgent:            v.GetString("scraper.user_agent"),
		HTTPTimeout:          v.GetDuration("scraper.http_timeout"),
		RenderTimeout:        v.GetDuration("scraper.render_timeout"),
		RenderMaxConcurrency: v.GetInt("scraper.render_max_concurrency"),
		RenderDomainQPS:      v.GetFloat64("scraper.render_domain_qps"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations. It is the
// only place configuration errors surface; nothing downstream retries or
// re-validates.
func (c Config) Validate() error {
	if c.EntryPoint == "" {
		return fmt.Errorf("scraper.entry_point must be a sitemap or page URL")
	}
	if c.MinDelay < 0 {
		return fmt.Errorf("scraper.min_delay_seconds must be >= 0")
	}
	if c.MaxDelay < c.MinDelay {
		return fmt.Errorf("scraper.max_delay_seconds must be >= min_delay_seconds")
	}
	if c.Workers < 1 {
		return fmt.Errorf("scraper.workers must be >= 1")
	}
	if c.URLLimit < 0 {
		return fmt.Errorf("scraper.url_limit must be >= 0")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("scraper.user_agent must be set")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("scraper.http_timeout must be > 0")
	}
	if c.RenderJS {
		if c.RenderTimeout <= 0 {
			return fmt.Errorf("scraper.render_timeout must be > 0")
		}
		if c.RenderMaxConcurrency <= 0 {
			return fmt.Errorf("scraper.render_max_concurrency must be > 0")
		}
		if c.RenderDomainQPS < 0 {
			return fmt.Errorf("scraper.render_domain_qps must be >= 0")
		}
	}
	return nil
}

// SplitFragments parses the comma-separated disallowed-fragment list,
// trimming whitespace and dropping empty elements.
func SplitFragments(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
