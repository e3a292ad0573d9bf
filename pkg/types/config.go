// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "healthtech/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LLMConfig holds settings for stages that call the language-model API.
type LLMConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the language-model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens bounds the completion length (default 1024).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// BaseURL overrides the default API endpoint (proxies, test servers).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// FetchConfig holds settings for the literature fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxPerSource is the maximum number of papers requested from each
	// literature API (default 15).
	MaxPerSource int `json:"max_per_source" yaml:"max_per_source"`

	// EnableSemanticScholar controls whether the Semantic Scholar backend is used.
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`

	// EnablePubMed controls whether the PubMed backend is used.
	EnablePubMed bool `json:"enable_pubmed" yaml:"enable_pubmed"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// PubMedAPIKey raises the NCBI rate limit from 3 to 10 requests per second.
	PubMedAPIKey string `json:"pubmed_api_key,omitempty" yaml:"pubmed_api_key,omitempty"`

	// NCBIEmail is the contact email sent with E-utilities requests.
	NCBIEmail string `json:"ncbi_email,omitempty" yaml:"ncbi_email,omitempty"`

	// SemanticScholarBaseURL overrides the default Semantic Scholar search
	// endpoint when non-empty (proxies, test servers).
	SemanticScholarBaseURL string `json:"semantic_scholar_base_url,omitempty" yaml:"semantic_scholar_base_url,omitempty"`

	// PubMedBaseURL overrides the default E-utilities base URL when non-empty.
	PubMedBaseURL string `json:"pubmed_base_url,omitempty" yaml:"pubmed_base_url,omitempty"`

	// InterBackendDelay is the pause between consecutive backend queries (default 1s).
	InterBackendDelay time.Duration `json:"inter_backend_delay" yaml:"inter_backend_delay"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// HistoryDir is the base directory for run history (contains index/).
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	LLM     LLMConfig     `json:"llm" yaml:"llm"`
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	History HistoryConfig `json:"history" yaml:"history"`
}
