// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yash252525/HackathonHealthTech/internal/httputil"
	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,externalIds,year,publicationDate"

const defaultMaxPerSource = 15

// SemanticScholarBackend queries the Semantic Scholar Graph API.
type SemanticScholarBackend struct {
	Client *http.Client
	APIKey string

	// BaseURL overrides the default search endpoint when non-empty.
	BaseURL string
}

// Name returns the backend identifier.
func (b *SemanticScholarBackend) Name() string { return "semantic_scholar" }

// Fetch queries the paper search endpoint and converts matching entries to
// PaperRecords. Entries without an abstract are skipped; they contribute
// nothing to summarization.
func (b *SemanticScholarBackend) Fetch(ctx context.Context, query string, cfg types.FetchConfig) ([]types.PaperRecord, error) {
	if query == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}

	limit := cfg.MaxPerSource
	if limit <= 0 {
		limit = defaultMaxPerSource
	}

	params := url.Values{
		"query":  {query},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {semanticFields},
	}

	base := b.BaseURL
	if base == "" {
		base = semanticAPIBase
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if b.APIKey != "" {
		req.Header.Set("x-api-key", b.APIKey)
	}

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var papers []types.PaperRecord
	for _, paper := range sr.Data {
		if paper.Abstract == "" {
			continue
		}

		p := types.PaperRecord{
			Title:    paper.Title,
			Abstract: paper.Abstract,
			Source:   types.SourceSemanticScholar,
		}

		for _, a := range paper.Authors {
			p.Authors = append(p.Authors, a.Name)
		}

		if paper.PublicationDate != "" {
			if t, parseErr := time.Parse("2006-01-02", paper.PublicationDate); parseErr == nil {
				p.Date = t
			}
		} else if paper.Year > 0 {
			p.Date = time.Date(paper.Year, 1, 1, 0, 0, 0, 0, time.UTC)
		}

		if paper.ExternalIDs.DOI != "" {
			p.Identifier = paper.ExternalIDs.DOI
		} else {
			p.Identifier = paper.PaperID
		}

		papers = append(papers, p)
	}
	return papers, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string              `json:"paperId"`
	Title           string              `json:"title"`
	Abstract        string              `json:"abstract"`
	Year            int                 `json:"year"`
	PublicationDate string              `json:"publicationDate"`
	Authors         []semanticAuthor    `json:"authors"`
	ExternalIDs     semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI      string `json:"DOI"`
	PubMed   string `json:"PubMed"`
	CorpusID int    `json:"CorpusId"`
}
