package scraper

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// HTTPFetcher implements the Fetcher interface with a plain HTTP GET
// through a Colly collector, sending a browser-like user-agent. Non-2xx
// responses surface as errors.
type HTTPFetcher struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewHTTPFetcher constructs a configured Colly-based Fetcher.
func NewHTTPFetcher(cfg Config, logger *zap.Logger) (*HTTPFetcher, error) {
	base := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
	)
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          128,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.HTTPTimeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.HTTPTimeout)

	return &HTTPFetcher{
		baseCollector: base,
		logger:        logger,
	}, nil
}

// Fetch retrieves the document at rawURL and returns its body. The context
// is threaded into the underlying HTTP request, so cancellation interrupts
// an in-flight fetch rather than waiting for it to finish.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collector := f.baseCollector.Clone()
	collector.Context = ctx
	resultCh := make(chan httpFetchResult, 1)
	var once sync.Once
	send := func(res httpFetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(httpFetchResult{body: append([]byte{}, r.Body...)})
	})
	collector.OnError(func(_ *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		send(httpFetchResult{err: err})
	})

	if err := collector.Visit(rawURL); err != nil {
		return nil, err
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res.err != nil {
			f.logger.Debug("http fetch failed", zap.String("url", rawURL), zap.Error(res.err))
			return nil, res.err
		}
		return res.body, nil
	default:
		return nil, errors.New("colly fetch produced no result")
	}
}

type httpFetchResult struct {
	body []byte
	err  error
}
