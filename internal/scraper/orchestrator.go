package scraper

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/lmercier/sitescraper/internal/progress"
)

// Engine runs the extraction worker pool over a resolved URL list and
// consumes completions as they finish. Progress numbering and the returned
// record order reflect completion order, not submission order.
type Engine struct {
	extractor *Extractor
	sink      *Sink
	journal   Journal
	estimator *progress.Estimator
	workers   int
	logger    *zap.Logger
}

// NewEngine wires an Engine. workers is clamped to at least one.
func NewEngine(extractor *Extractor, sink *Sink, jrnl Journal, estimator *progress.Estimator, workers int, logger *zap.Logger) *Engine {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		extractor: extractor,
		sink:      sink,
		journal:   jrnl,
		estimator: estimator,
		workers:   workers,
		logger:    logger,
	}
}

type taskOutcome struct {
	url string
	rec Record
	err error
}

// Run dispatches one extraction task per URL into a fixed-size pool and
// streams each completed record into the sink and the callbacks. A stop on
// ctrl discards completions not yet observed; tasks already in flight exit
// through their own stop checks. The successful records are returned in
// completion order.
func (en *Engine) Run(ctx context.Context, urls []string, ctrl *Control, cb Callbacks) []Record {
	if len(urls) == 0 {
		return nil
	}
	en.sink.Clear()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	// A stop must interrupt pending network and render I/O, not just be
	// observed at checkpoints.
	go func() {
		select {
		case <-ctrl.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	total := len(urls)
	en.estimator.Start(total)
	en.journal.Infof("starting crawl of %d URLs with %d workers", total, en.workers)

	// Buffered to task count so workers never block publishing a result,
	// even after the consumer stops reading.
	results := make(chan taskOutcome, total)
	jobs := make(chan string)

	var wg sync.WaitGroup
	for i := 0; i < en.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				rec, err := en.extractor.Extract(runCtx, u, ctrl)
				results <- taskOutcome{url: u, rec: rec, err: err}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, u := range urls {
			select {
			case jobs <- u:
			case <-runCtx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var out []Record
	done := 0
	for res := range results {
		if ctrl.Stopped() {
			en.journal.Infof("stop requested; abandoning remaining tasks")
			break
		}
		done++
		msg := en.consumeOutcome(res, done, total, &out, cb)
		en.journal.Infof("%s", msg)
		snap := en.estimator.Observe(done)
		if snap.Known {
			en.logger.Debug("crawl progress",
				zap.Int("done", snap.Done),
				zap.Int("total", snap.Total),
				zap.Duration("elapsed", snap.Elapsed),
				zap.Time("estimated_finish", snap.Finish),
			)
		}
		if cb.OnProgress != nil {
			cb.OnProgress(done, total, msg)
		}
	}
	return out
}

func (en *Engine) consumeOutcome(res taskOutcome, done, total int, out *[]Record, cb Callbacks) string {
	switch {
	case res.err != nil:
		TotalTaskErrors.Inc()
		return fmt.Sprintf("[%d/%d] exception for %s: %v", done, total, res.url, res.err)
	case res.rec.Empty():
		return fmt.Sprintf("[%d/%d] skipped/cancelled: %s", done, total, res.url)
	default:
		*out = append(*out, res.rec)
		en.sink.Append(res.rec)
		TotalPagesScraped.Inc()
		if cb.OnRecord != nil {
			cb.OnRecord(res.rec)
		}
		return fmt.Sprintf("[%d/%d] OK: %s", done, total, res.url)
	}
}
