package scraper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalPagesScraped tracks the number of pages successfully extracted.
	TotalPagesScraped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitescraper_pages_scraped_total",
		Help: "The total number of pages successfully extracted.",
	})
	// TotalPageFetchErrors tracks page fetches that failed.
	TotalPageFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitescraper_page_fetch_errors_total",
		Help: "The total number of failed page fetches.",
	})
	// TotalSitemapFetches tracks sitemap documents requested during discovery.
	TotalSitemapFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitescraper_sitemap_fetches_total",
		Help: "The total number of sitemap documents fetched.",
	})
	// TotalSitemapFetchErrors tracks sitemap fetches that failed.
	TotalSitemapFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitescraper_sitemap_fetch_errors_total",
		Help: "The total number of failed sitemap fetches.",
	})
	// TotalTaskErrors tracks unexpected task failures during a crawl.
	TotalTaskErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitescraper_task_errors_total",
		Help: "The total number of unexpected extraction task failures.",
	})
)
