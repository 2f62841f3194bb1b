package scraper

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Extractor fetches one page and pulls structured content out of its HTML.
// It honors the run's pause/stop control at defined checkpoints and applies
// a randomized politeness delay before handing its result back.
type Extractor struct {
	fetcher  Fetcher
	journal  Journal
	minDelay time.Duration
	maxDelay time.Duration
}

// NewExtractor builds an Extractor using fetcher as its page source. The
// fetch strategy (plain HTTP vs headless render) is whatever fetcher
// implements; extraction is identical either way.
func NewExtractor(fetcher Fetcher, jrnl Journal, minDelay, maxDelay time.Duration) *Extractor {
	return &Extractor{
		fetcher:  fetcher,
		journal:  jrnl,
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// Extract scrapes a single page into a Record. A stop request before any
// work, a fetch failure, or a stop while paused all yield an empty Record
// and a nil error; the error return is reserved for unexpected failures
// such as unparseable HTML.
func (e *Extractor) Extract(ctx context.Context, rawURL string, ctrl *Control) (Record, error) {
	if ctrl.Stopped() {
		return Record{}, nil
	}
	if !ctrl.WaitWhilePaused(ctx) {
		return Record{}, nil
	}

	body, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		TotalPageFetchErrors.Inc()
		e.journal.Errorf("failed to fetch %s: %v", rawURL, err)
		return Record{}, nil
	}
	e.journal.Infof("scraped: %s", rawURL)

	rec, err := parsePage(rawURL, body)
	if err != nil {
		return Record{}, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	// Re-check the control before the delay so a stop or pause issued
	// mid-task is still observed.
	if ctrl.Stopped() {
		return Record{}, nil
	}
	if !ctrl.WaitWhilePaused(ctx) {
		return Record{}, nil
	}

	delay := randomDelay(e.minDelay, e.maxDelay)
	e.journal.Infof("waiting %.2fs before the next request", delay.Seconds())
	sleepCtx(ctx, delay)

	return rec, nil
}

// parsePage extracts headings, paragraphs, images, and metadata from the
// HTML document, in document order.
func parsePage(rawURL string, body []byte) (Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Record{}, err
	}
	base, baseErr := url.Parse(rawURL)

	rec := Record{
		URL:        rawURL,
		Headings:   []string{},
		Paragraphs: []string{},
		Images:     []Image{},
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		rec.Headings = append(rec.Headings, strings.TrimSpace(s.Text()))
	})

	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			rec.Paragraphs = append(rec.Paragraphs, text)
		}
	})

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if baseErr == nil {
			if ref, err := url.Parse(src); err == nil {
				src = base.ResolveReference(ref).String()
			}
		}
		rec.Images = append(rec.Images, Image{
			Src: src,
			Alt: s.AttrOr("alt", ""),
		})
	})

	rec.MetaDescription = doc.Find(`meta[name="description"]`).First().AttrOr("content", "")
	rec.MetaKeywords = doc.Find(`meta[name="keywords"]`).First().AttrOr("content", "")
	rec.MetaOgTitle = doc.Find(`meta[property="og:title"]`).First().AttrOr("content", "")

	return rec, nil
}

// randomDelay picks a uniformly random duration in [minDelay, maxDelay].
func randomDelay(minDelay, maxDelay time.Duration) time.Duration {
	if maxDelay <= minDelay {
		return minDelay
	}
	return minDelay + rand.N(maxDelay-minDelay+1)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
