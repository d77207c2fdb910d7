// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cygnet CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yongrenjie/cygnet/internal/httputil"
	"github.com/yongrenjie/cygnet/internal/library"
	"github.com/yongrenjie/cygnet/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cygnet CLI.
var rootCmd = &cobra.Command{
	Use:   "cygnet",
	Short: "Manage a library of academic references",
	Long: `cygnet keeps a plain-YAML database of journal articles, resolves their
metadata from DOIs via the Crossref registry, downloads full-text PDFs
from publishers, and produces citations in several formats.

The library lives in a single directory: db.yaml holds the records, and
the pdf/ and si/ folders hold the article PDFs and supporting
information, keyed by DOI.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cygnet.yaml or ~/.config/cygnet/config.yaml)")
	rootCmd.PersistentFlags().String("library", "", "library directory (default: ./library)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cygnet")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cygnet"))
		}
	}

	viper.SetEnvPrefix("CYGNET")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the configuration from viper, applying the
// --library override and the defaults.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if dir, _ := rootCmd.PersistentFlags().GetString("library"); dir != "" {
		cfg.Library.Dir = dir
	}
	return cfg.WithDefaults(), nil
}

// openLibrary loads the configured library store.
func openLibrary() (*library.Store, types.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	store, err := library.Open(cfg.Library)
	if err != nil {
		return nil, cfg, err
	}
	return store, cfg, nil
}

// newClient builds the shared HTTP client used by every network command.
func newClient(cfg types.Config) *httputil.Client {
	return httputil.New(cfg.HTTP)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
