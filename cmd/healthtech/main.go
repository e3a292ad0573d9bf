// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the healthtech CLI. It answers a
// biomedical research question end to end: entity extraction, literature
// fetch from Semantic Scholar and PubMed, and abstract summarization.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yash252525/HackathonHealthTech/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the healthtech CLI.
var rootCmd = &cobra.Command{
	Use:   "healthtech",
	Short: "Biomedical literature retrieval and summarization",
	Long: `healthtech answers a biomedical research question against the published
literature. It extracts the biomedical entities from the question, builds a
refined search query from them, fetches matching papers from Semantic Scholar
and PubMed, and condenses the collected abstracts into a single summary.

Each pipeline stage is also available as its own subcommand (entities, fetch,
summarize) for inspection and for resuming saved runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./healthtech.yaml or ~/.config/healthtech/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("healthtech")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "healthtech"))
		}
	}

	viper.SetEnvPrefix("HEALTHTECH")
	viper.AutomaticEnv()

	viper.SetDefault("llm.model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("llm.max_tokens", 1024)
	viper.SetDefault("fetch.max_per_source", 15)
	viper.SetDefault("fetch.enable_semantic_scholar", true)
	viper.SetDefault("fetch.enable_pubmed", true)
	viper.SetDefault("fetch.inter_backend_delay", "1s")
	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.user_agent", "healthtech/"+version)
	viper.SetDefault("history.history_dir", "history")
	viper.SetDefault("history.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
