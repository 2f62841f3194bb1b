package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lmercier/sitescraper/internal/clock/system"
	"github.com/lmercier/sitescraper/internal/export"
	"github.com/lmercier/sitescraper/internal/journal"
	"github.com/lmercier/sitescraper/internal/logging"
	"github.com/lmercier/sitescraper/internal/progress"
	"github.com/lmercier/sitescraper/internal/scraper"
)

// newScrapeCmd creates and configures the 'scrape' subcommand. It resolves
// the URL list from the configured sitemap or single URL, runs the crawl,
// and serializes the results.
func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Discovers URLs and scrapes their content",
		Long: `Resolves the configured sitemap (or single URL) into a page list, scrapes
each page concurrently while honoring the politeness delay, and writes the
results to the configured CSV and JSON files. Interrupt with Ctrl-C to stop
cooperatively; results collected so far are still written.`,

		RunE: runScrapeCommand,
	}
	return cmd
}

func runScrapeCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := scraper.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load scraper config: %w", err)
	}

	logger, err := logging.New(viper.GetBool("log.development"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	jrnl, err := journal.New(cfg.LogPath, logger)
	if err != nil {
		return fmt.Errorf("init journal: %w", err)
	}
	defer func() {
		if cerr := jrnl.Close(); cerr != nil {
			logger.Warn("failed to close journal", zap.Error(cerr))
		}
	}()
	jrnl.AddListener(func(line string) {
		fmt.Println(line)
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	ctrl := scraper.NewControl()
	go func() {
		<-ctx.Done()
		ctrl.Stop()
	}()

	httpFetcher, err := scraper.NewHTTPFetcher(cfg, logger)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	pageSource, cleanup, err := buildPageSource(cfg, httpFetcher, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// Sitemaps are always fetched over plain HTTP; the render toggle only
	// affects page fetches.
	resolver := scraper.NewResolver(httpFetcher, jrnl)
	urls := resolver.Resolve(ctx, cfg.EntryPoint, cfg.DisallowedFragments, cfg.URLLimit)
	jrnl.Infof("discovered %d URLs", len(urls))
	if len(urls) == 0 {
		jrnl.Infof("nothing to scrape")
		return nil
	}

	extractor := scraper.NewExtractor(pageSource, jrnl, cfg.MinDelay, cfg.MaxDelay)
	sink := scraper.NewSink()
	estimator := progress.NewEstimator(system.New())
	engine := scraper.NewEngine(extractor, sink, jrnl, estimator, cfg.Workers, logger)

	engine.Run(ctx, urls, ctrl, scraper.Callbacks{})
	if ctrl.Stopped() {
		jrnl.Infof("scrape interrupted; exporting partial results")
	}

	return exportResults(sink.Snapshot(), cfg, jrnl)
}

// buildPageSource picks the page fetch strategy: headless render when
// enabled, plain HTTP otherwise.
func buildPageSource(cfg scraper.Config, httpFetcher *scraper.HTTPFetcher, logger *zap.Logger) (scraper.Fetcher, func(), error) {
	if !cfg.RenderJS {
		return httpFetcher, func() {}, nil
	}
	renderer, err := scraper.NewChromeRenderer(cfg, logger)
	if errors.Is(err, scraper.ErrRendererDisabled) {
		logger.Warn("renderer disabled despite render_js flag; falling back to plain HTTP")
		return httpFetcher, func() {}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("init renderer: %w", err)
	}
	cleanup := func() {
		if cerr := renderer.Close(context.Background()); cerr != nil {
			logger.Warn("failed to close renderer", zap.Error(cerr))
		}
	}
	return renderer, cleanup, nil
}

func exportResults(records []scraper.Record, cfg scraper.Config, jrnl *journal.Journal) error {
	if cfg.CSVPath != "" {
		if err := export.WriteCSV(records, cfg.CSVPath); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		jrnl.Infof("saved %d rows to %s", len(records), cfg.CSVPath)
	}
	if cfg.JSONPath != "" {
		if err := export.WriteJSON(records, cfg.JSONPath); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		jrnl.Infof("saved %d records to %s", len(records), cfg.JSONPath)
	}
	return nil
}
