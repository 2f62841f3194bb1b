// Package cmd defines and implements the CLI commands for the sitescraper executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lmercier/sitescraper/pkg/config"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitescraper",
		Short: "A concurrent sitemap-driven web scraper.",
		Long: `sitescraper discovers page URLs from a sitemap (or takes a single URL),
extracts headings, paragraphs, images, and metadata from each page with a
bounded worker pool, and writes the aggregate result to CSV and JSON.`,
	}

	// Initialize Viper configuration, honoring an explicit --config path.
	cobra.OnInitialize(func() {
		config.InitConfig(cfgFile)
	})

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sitescraper/config.yaml)")

	cmd.AddCommand(newScrapeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
