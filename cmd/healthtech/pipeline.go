// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yash252525/HackathonHealthTech/internal/entities"
	"github.com/yash252525/HackathonHealthTech/internal/fetch"
	"github.com/yash252525/HackathonHealthTech/internal/llm"
	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// pipelineConfig assembles the stage configurations from viper and the
// loaded secrets. Flags on individual commands override afterwards.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		LLM: types.LLMConfig{
			Model:     viper.GetString("llm.model"),
			APIKey:    secretDefault("anthropic-api-key", viper.GetString("llm.api_key")),
			MaxTokens: viper.GetInt("llm.max_tokens"),
			BaseURL:   viper.GetString("llm.base_url"),
		},
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			MaxPerSource:           viper.GetInt("fetch.max_per_source"),
			EnableSemanticScholar:  viper.GetBool("fetch.enable_semantic_scholar"),
			EnablePubMed:           viper.GetBool("fetch.enable_pubmed"),
			SemanticScholarAPIKey:  secretDefault("semantic-scholar-api-key", viper.GetString("fetch.semantic_scholar_api_key")),
			PubMedAPIKey:           secretDefault("pubmed-api-key", viper.GetString("fetch.pubmed_api_key")),
			NCBIEmail:              secretDefault("ncbi-email", viper.GetString("fetch.ncbi_email")),
			SemanticScholarBaseURL: viper.GetString("fetch.semantic_scholar_base_url"),
			PubMedBaseURL:          viper.GetString("fetch.pubmed_base_url"),
			InterBackendDelay:      viper.GetDuration("fetch.inter_backend_delay"),
		},
		History: types.HistoryConfig{
			HistoryDir: viper.GetString("history.history_dir"),
			MaxResults: viper.GetInt("history.max_results"),
		},
	}
}

// readQuestion resolves the research question from the --query flag, the
// positional arguments, or piped stdin, in that order.
func readQuestion(cmd *cobra.Command, args []string) (string, error) {
	q, _ := cmd.Flags().GetString("query")
	if q == "" && len(args) > 0 {
		q = strings.Join(args, " ")
	}
	if q == "" {
		stat, err := os.Stdin.Stat()
		if err == nil && stat.Mode()&os.ModeCharDevice == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return "", fmt.Errorf("reading question from stdin: %w", err)
			}
			q = string(data)
		}
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return "", fmt.Errorf("research question required: pass --query, positional arguments, or pipe stdin")
	}
	return q, nil
}

// newLLMClient builds the language-model client, or nil when no API key is
// configured.
func newLLMClient(cfg types.PipelineConfig) (*llm.Client, error) {
	if cfg.LLM.APIKey == "" {
		return nil, nil
	}
	return llm.NewClient(cfg.LLM, &http.Client{Timeout: cfg.Fetch.Timeout})
}

// extractEntities runs entity extraction with the model as primary and the
// local lexicon as fallback. Without an API key the lexicon runs alone.
func extractEntities(ctx context.Context, client *llm.Client, question string, w io.Writer) ([]types.Entity, error) {
	lexicon := &entities.LexiconExtractor{}
	if client == nil {
		fmt.Fprintln(w, "no anthropic-api-key configured, using lexicon extraction only")
		return lexicon.Extract(ctx, question)
	}
	return entities.ExtractWithFallback(ctx, &entities.LLMExtractor{LLM: client}, lexicon, question, w)
}

// buildBackends returns the enabled literature backends in fetch order.
func buildBackends(cfg types.FetchConfig) []fetch.Backend {
	hc := &http.Client{Timeout: cfg.Timeout}
	var backends []fetch.Backend
	if cfg.EnableSemanticScholar {
		backends = append(backends, &fetch.SemanticScholarBackend{
			Client:  hc,
			APIKey:  cfg.SemanticScholarAPIKey,
			BaseURL: cfg.SemanticScholarBaseURL,
		})
	}
	if cfg.EnablePubMed {
		backends = append(backends, fetch.NewPubMedBackend(cfg, hc))
	}
	return backends
}
