package scraper

import "context"

// Fetcher renders a URL to its raw document bytes. Implementations exist for
// plain HTTP and for headless-browser rendering; extraction is agnostic to
// which one produced the HTML.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Journal is the run log every component writes human-readable lines to.
// Implementations persist the lines and may forward them to live listeners.
type Journal interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ProgressFunc is invoked once per observed task completion, in completion
// order. done is 1-based.
type ProgressFunc func(done, total int, message string)

// RecordFunc receives each successful record as soon as it is observed, so
// an external accumulator can collect results incrementally.
type RecordFunc func(rec Record)

// Callbacks lets the presentation layer observe a crawl while it runs. Any
// field may be nil.
type Callbacks struct {
	OnProgress ProgressFunc
	OnRecord   RecordFunc
}
