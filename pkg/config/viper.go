// Package config is responsible for initializing the application's configuration.
// It uses the Viper library to read settings from a config file, environment
// variables, and command-line flags, providing a unified configuration system.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// InitConfig initializes the application's configuration using Viper.
// It sets up default values, defines configuration search paths, and enables
// reading from environment variables. This function is designed to be called
// once at application startup. A non-empty cfgFile bypasses the search paths.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")                  // Current working directory
		viper.AddConfigPath("/etc/sitescraper/")  // System-wide configuration
		viper.AddConfigPath("$HOME/.sitescraper") // User-specific configuration
	}

	// Sensible defaults, used when neither a config file nor environment
	// variables provide a value.
	viper.SetDefault("scraper.entry_point", "")
	viper.SetDefault("scraper.disallowed_fragments", "")
	viper.SetDefault("scraper.csv_path", "results.csv")
	viper.SetDefault("scraper.json_path", "results.json")
	viper.SetDefault("scraper.log_path", "scraper.log")
	viper.SetDefault("scraper.min_delay_seconds", 1.0)
	viper.SetDefault("scraper.max_delay_seconds", 3.0)
	viper.SetDefault("scraper.workers", 1)
	viper.SetDefault("scraper.url_limit", 0)
	viper.SetDefault("scraper.render_js", false)
	viper.SetDefault("scraper.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	viper.SetDefault("scraper.http_timeout", "15s")
	viper.SetDefault("scraper.render_timeout", "15s")
	viper.SetDefault("scraper.render_max_concurrency", 2)
	viper.SetDefault("scraper.render_domain_qps", 0.5)

	viper.SetDefault("log.development", false)

	// e.g. SITESCRAPER_SCRAPER_WORKERS=4
	viper.SetEnvPrefix("SITESCRAPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "error reading config file: %v\n", err)
		}
		// A missing config file is fine; defaults and env vars apply.
	}
}
