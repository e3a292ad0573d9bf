// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch queries literature APIs and returns unified, deduplicated
// paper records. Each backend (Semantic Scholar, PubMed) implements the
// Backend interface per the Strategy pattern.
package fetch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// Backend fetches papers from a single literature API.
type Backend interface {
	Name() string
	Fetch(ctx context.Context, query string, cfg types.FetchConfig) ([]types.PaperRecord, error)
}

// Output holds the collected papers and fetch statistics.
type Output struct {
	Papers            []types.PaperRecord
	DupsRemoved       int
	BackendErrors     []string
	UsedOriginalQuery bool
}

// Fetch queries all backends in order with the refined query. A failing
// backend degrades to an empty contribution with a warning; the pipeline
// continues with whatever the other sources return. Results are filtered
// by the required entity terms, and when the refined query yields nothing
// the original question is tried once as a fallback. Papers appearing in
// more than one source are deduplicated by normalized title.
func Fetch(ctx context.Context, refined, original string, requiredTerms []string, backends []Backend, cfg types.FetchConfig, w io.Writer) (Output, error) {
	if strings.TrimSpace(refined) == "" && strings.TrimSpace(original) == "" {
		return Output{}, fmt.Errorf("query is empty: provide a research question")
	}
	if len(backends) == 0 {
		return Output{}, fmt.Errorf("no literature backends configured")
	}

	out := Output{}

	all := fetchAll(ctx, refined, backends, cfg, w, &out.BackendErrors)
	papers := filterByTerms(all, requiredTerms)

	if len(papers) == 0 && original != "" && original != refined {
		fmt.Fprintln(w, "no results for the refined query, retrying with the original question")
		all = fetchAll(ctx, original, backends, cfg, w, &out.BackendErrors)
		papers = filterByTerms(all, requiredTerms)
		out.UsedOriginalQuery = true
	}

	out.Papers, out.DupsRemoved = deduplicate(papers)
	return out, nil
}

// fetchAll runs the backends strictly one after another. The pipeline is
// sequential end to end; InterBackendDelay spaces out consecutive API calls.
func fetchAll(ctx context.Context, query string, backends []Backend, cfg types.FetchConfig, w io.Writer, errs *[]string) []types.PaperRecord {
	var all []types.PaperRecord
	for i, b := range backends {
		if i > 0 && cfg.InterBackendDelay > 0 {
			time.Sleep(cfg.InterBackendDelay)
		}
		papers, err := b.Fetch(ctx, query, cfg)
		if err != nil {
			msg := fmt.Sprintf("%s: %v", b.Name(), err)
			*errs = append(*errs, msg)
			fmt.Fprintf(w, "warning: backend %s failed: %v\n", b.Name(), err)
			continue
		}
		all = append(all, papers...)
	}
	return all
}

// filterByTerms keeps papers mentioning at least one required term in the
// title or abstract. With no terms every paper passes.
func filterByTerms(papers []types.PaperRecord, terms []string) []types.PaperRecord {
	if len(terms) == 0 {
		return papers
	}
	var kept []types.PaperRecord
	for _, p := range papers {
		title := strings.ToLower(p.Title)
		abstract := strings.ToLower(p.Abstract)
		for _, term := range terms {
			t := strings.ToLower(term)
			if strings.Contains(title, t) || strings.Contains(abstract, t) {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept
}

// deduplicate drops papers that share a normalized title with an earlier
// record. The first occurrence wins; Semantic Scholar runs before PubMed,
// so its richer metadata is preferred.
func deduplicate(papers []types.PaperRecord) ([]types.PaperRecord, int) {
	seen := make(map[string]bool)
	var deduped []types.PaperRecord
	removed := 0

	for _, p := range papers {
		key := normalizeTitle(p.Title)
		if key != "" && seen[key] {
			removed++
			continue
		}
		deduped = append(deduped, p)
		if key != "" {
			seen[key] = true
		}
	}
	return deduped, removed
}

// normalizeTitle returns a lowercased, punctuation-stripped version of the
// title with whitespace collapsed. This is the dedup key across sources.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
