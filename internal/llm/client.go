// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm wraps the Claude Messages API behind a single Complete call.
// The entity extractor and the summarizer both talk to the model through
// this client.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yash252525/HackathonHealthTech/internal/httputil"
	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// apiURL is the Claude API endpoint. Package-level var for test substitution.
var apiURL = "https://api.anthropic.com/v1/messages"

const defaultMaxTokens = 1024

// Completer produces a text completion for a prompt. Implementations other
// than Client exist only in tests.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client calls the Claude Messages API.
type Client struct {
	cfg    types.LLMConfig
	client *http.Client
}

// NewClient builds a Client from config. The API key is required; a nil
// HTTP client falls back to http.DefaultClient.
func NewClient(cfg types.LLMConfig, hc *http.Client) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("language-model API key is not configured")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{cfg: cfg, client: hc}, nil
}

// request is the request body for the Claude Messages API.
type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

// message is a single message in the conversation.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// response is the response body from the Claude Messages API.
type response struct {
	Content []contentBlock `json:"content"`
}

// contentBlock is a content block in the API response.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends the prompt as a single user message and returns the first
// text block of the reply with surrounding markdown code fences removed.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := request{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := c.cfg.BaseURL
	if endpoint == "" {
		endpoint = apiURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("calling language-model API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("language-model API returned %d: %s", resp.StatusCode, string(body))
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("decoding language-model response: %w", err)
	}

	for _, block := range r.Content {
		if block.Type != "text" {
			continue
		}
		text := StripFences(block.Text)
		if text == "" {
			return "", fmt.Errorf("language-model API returned empty completion")
		}
		return text, nil
	}

	return "", fmt.Errorf("no text content in language-model response")
}

// StripFences removes a surrounding markdown code fence from a completion,
// if present. Models sometimes wrap JSON answers in ```json ... ``` blocks.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(lines[len(lines)-1], "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
