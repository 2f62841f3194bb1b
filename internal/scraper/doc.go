// Package scraper implements the crawl engine: sitemap discovery, the
// bounded worker pool, page extraction, and result accumulation.
package scraper
