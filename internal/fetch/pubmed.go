// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/yash252525/HackathonHealthTech/internal/httputil"
	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// pubmedAPIBase is the NCBI E-utilities base URL. Declared as a var so
// tests can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	// Rate limits per NCBI policy: 3 req/s without an API key, 10 with.
	pubmedRateWithoutKey = 3
	pubmedRateWithKey    = 10

	// pubmedMaxResponseBytes caps an efetch response body (4 MB).
	pubmedMaxResponseBytes int64 = 4 * 1024 * 1024

	defaultTool = "healthtech"
)

// PubMedBackend queries PubMed through the E-utilities two-step protocol:
// esearch for PMIDs, then efetch for MEDLINE-formatted records.
type PubMedBackend struct {
	Client  *http.Client
	APIKey  string
	Email   string
	limiter *rate.Limiter

	// BaseURL overrides the default E-utilities base URL when non-empty.
	BaseURL string
}

// NewPubMedBackend builds a backend with the NCBI-mandated rate limit for
// the configured key.
func NewPubMedBackend(cfg types.FetchConfig, hc *http.Client) *PubMedBackend {
	limit := rate.Limit(pubmedRateWithoutKey)
	if cfg.PubMedAPIKey != "" {
		limit = rate.Limit(pubmedRateWithKey)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &PubMedBackend{
		Client:  hc,
		APIKey:  cfg.PubMedAPIKey,
		Email:   cfg.NCBIEmail,
		limiter: rate.NewLimiter(limit, 1),
		BaseURL: cfg.PubMedBaseURL,
	}
}

// Name returns the backend identifier.
func (b *PubMedBackend) Name() string { return "pubmed" }

// Fetch searches PubMed for the query and retrieves MEDLINE records for the
// matching PMIDs. An empty PMID set short-circuits: efetch is never called.
func (b *PubMedBackend) Fetch(ctx context.Context, query string, cfg types.FetchConfig) ([]types.PaperRecord, error) {
	if query == "" {
		return nil, fmt.Errorf("empty PubMed query")
	}

	limit := cfg.MaxPerSource
	if limit <= 0 {
		limit = defaultMaxPerSource
	}

	pmids, err := b.search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(pmids) == 0 {
		return nil, nil
	}

	return b.fetchRecords(ctx, pmids)
}

// esearchResponse is the JSON shape of an esearch.fcgi reply.
type esearchResponse struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// search runs esearch.fcgi and returns the matching PMIDs.
func (b *PubMedBackend) search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmode", "json")
	params.Set("retmax", fmt.Sprintf("%d", limit))

	body, err := b.doGet(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("PubMed search: %w", err)
	}

	var resp esearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing PubMed search response: %w", err)
	}
	return resp.Result.IDList, nil
}

// fetchRecords runs efetch.fcgi in MEDLINE text mode and converts the parsed
// records. Records without an abstract are skipped, matching the Semantic
// Scholar backend.
func (b *PubMedBackend) fetchRecords(ctx context.Context, pmids []string) ([]types.PaperRecord, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("rettype", "medline")
	params.Set("retmode", "text")

	body, err := b.doGet(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("PubMed fetch: %w", err)
	}

	var papers []types.PaperRecord
	for _, rec := range parseMEDLINE(string(body)) {
		if rec.Abstract == "" {
			continue
		}
		papers = append(papers, types.PaperRecord{
			Identifier: rec.PMID,
			Title:      rec.Title,
			Abstract:   rec.Abstract,
			Authors:    rec.Authors,
			Date:       rec.Date,
			Source:     types.SourcePubMed,
		})
	}
	return papers, nil
}

// doGet performs a rate-limited GET against an E-utilities endpoint with
// the common NCBI parameters injected.
func (b *PubMedBackend) doGet(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if b.APIKey != "" {
		params.Set("api_key", b.APIKey)
	}
	if b.Email != "" {
		params.Set("email", b.Email)
	}
	params.Set("tool", defaultTool)

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	base := b.BaseURL
	if base == "" {
		base = pubmedAPIBase
	}
	reqURL := base + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NCBI returned HTTP %d for %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, pubmedMaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > pubmedMaxResponseBytes {
		return nil, fmt.Errorf("response exceeds maximum size of %d bytes", pubmedMaxResponseBytes)
	}
	return body, nil
}
