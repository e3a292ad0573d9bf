// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// fakeBackend returns canned papers per query and counts calls.
type fakeBackend struct {
	name    string
	byQuery map[string][]types.PaperRecord
	err     error
	calls   []string
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Fetch(_ context.Context, query string, _ types.FetchConfig) ([]types.PaperRecord, error) {
	f.calls = append(f.calls, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.byQuery[query], nil
}

func paper(title, abstract string, source types.PaperSource) types.PaperRecord {
	return types.PaperRecord{Title: title, Abstract: abstract, Source: source}
}

func TestFetchCombinesBackends(t *testing.T) {
	ss := &fakeBackend{name: "semantic_scholar", byQuery: map[string][]types.PaperRecord{
		"BRCA1": {paper("Paper one", "about BRCA1", types.SourceSemanticScholar)},
	}}
	pm := &fakeBackend{name: "pubmed", byQuery: map[string][]types.PaperRecord{
		"BRCA1": {paper("Paper two", "more BRCA1", types.SourcePubMed)},
	}}

	var buf bytes.Buffer
	out, err := Fetch(context.Background(), "BRCA1", "q", []string{"BRCA1"}, []Backend{ss, pm}, testCfg(), &buf)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(out.Papers) != 2 {
		t.Fatalf("len(Papers) = %d, want 2", len(out.Papers))
	}
	if out.Papers[0].Source != types.SourceSemanticScholar || out.Papers[1].Source != types.SourcePubMed {
		t.Errorf("sources = %q, %q", out.Papers[0].Source, out.Papers[1].Source)
	}
}

func TestFetchBackendFailureDegradesToEmpty(t *testing.T) {
	failing := &fakeBackend{name: "semantic_scholar", err: fmt.Errorf("HTTP 500")}
	working := &fakeBackend{name: "pubmed", byQuery: map[string][]types.PaperRecord{
		"q": {paper("Survivor", "q related", types.SourcePubMed)},
	}}

	var buf bytes.Buffer
	out, err := Fetch(context.Background(), "q", "q", nil, []Backend{failing, working}, testCfg(), &buf)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(out.Papers) != 1 {
		t.Fatalf("len(Papers) = %d, want 1", len(out.Papers))
	}
	if len(out.BackendErrors) != 1 || !strings.Contains(out.BackendErrors[0], "semantic_scholar") {
		t.Errorf("BackendErrors = %v", out.BackendErrors)
	}
	if !strings.Contains(buf.String(), "warning: backend semantic_scholar failed") {
		t.Errorf("warning output = %q", buf.String())
	}
}

func TestFetchAllBackendsFailing(t *testing.T) {
	a := &fakeBackend{name: "semantic_scholar", err: fmt.Errorf("down")}
	b := &fakeBackend{name: "pubmed", err: fmt.Errorf("down too")}

	var buf bytes.Buffer
	out, err := Fetch(context.Background(), "refined q", "original q", nil, []Backend{a, b}, testCfg(), &buf)
	if err != nil {
		t.Fatalf("Fetch should not fail when backends degrade: %v", err)
	}
	if len(out.Papers) != 0 {
		t.Errorf("len(Papers) = %d, want 0", len(out.Papers))
	}
	if len(out.BackendErrors) != 4 {
		// Two failures for the refined query, two for the original retry.
		t.Errorf("len(BackendErrors) = %d, want 4", len(out.BackendErrors))
	}
}

func TestFetchFiltersByRequiredTerms(t *testing.T) {
	b := &fakeBackend{name: "pubmed", byQuery: map[string][]types.PaperRecord{
		"BRCA1": {
			paper("BRCA1 in tumors", "irrelevant text", types.SourcePubMed),
			paper("Unrelated paper", "nothing matching", types.SourcePubMed),
			paper("Another study", "mentions brca1 in the abstract", types.SourcePubMed),
		},
	}}

	var buf bytes.Buffer
	out, err := Fetch(context.Background(), "BRCA1", "BRCA1", []string{"BRCA1"}, []Backend{b}, testCfg(), &buf)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(out.Papers) != 2 {
		t.Fatalf("len(Papers) = %d, want 2 (term match in title or abstract)", len(out.Papers))
	}
}

func TestFetchFallsBackToOriginalQuery(t *testing.T) {
	b := &fakeBackend{name: "pubmed", byQuery: map[string][]types.PaperRecord{
		"BRCA1 AND breast cancer": {},
		"role of BRCA1 in breast cancer": {
			paper("Found via original", "BRCA1 discussion", types.SourcePubMed),
		},
	}}

	var buf bytes.Buffer
	out, err := Fetch(context.Background(),
		"BRCA1 AND breast cancer", "role of BRCA1 in breast cancer",
		[]string{"BRCA1"}, []Backend{b}, testCfg(), &buf)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !out.UsedOriginalQuery {
		t.Error("UsedOriginalQuery = false, want true")
	}
	if len(out.Papers) != 1 {
		t.Fatalf("len(Papers) = %d, want 1", len(out.Papers))
	}
	if len(b.calls) != 2 || b.calls[1] != "role of BRCA1 in breast cancer" {
		t.Errorf("backend calls = %v", b.calls)
	}
}

func TestFetchNoFallbackWhenRefinedSucceeds(t *testing.T) {
	b := &fakeBackend{name: "pubmed", byQuery: map[string][]types.PaperRecord{
		"BRCA1": {paper("Hit", "BRCA1 text", types.SourcePubMed)},
	}}

	var buf bytes.Buffer
	out, err := Fetch(context.Background(), "BRCA1", "original question", []string{"BRCA1"}, []Backend{b}, testCfg(), &buf)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if out.UsedOriginalQuery {
		t.Error("UsedOriginalQuery = true, want false")
	}
	if len(b.calls) != 1 {
		t.Errorf("backend calls = %v, want one", b.calls)
	}
}

func TestFetchDeduplicatesAcrossSources(t *testing.T) {
	ss := &fakeBackend{name: "semantic_scholar", byQuery: map[string][]types.PaperRecord{
		"q": {paper("BRCA1 and Genomic Stability.", "q text", types.SourceSemanticScholar)},
	}}
	pm := &fakeBackend{name: "pubmed", byQuery: map[string][]types.PaperRecord{
		"q": {paper("BRCA1 and genomic stability", "q text", types.SourcePubMed)},
	}}

	var buf bytes.Buffer
	out, err := Fetch(context.Background(), "q", "q", nil, []Backend{ss, pm}, testCfg(), &buf)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(out.Papers) != 1 {
		t.Fatalf("len(Papers) = %d, want 1 after dedup", len(out.Papers))
	}
	if out.DupsRemoved != 1 {
		t.Errorf("DupsRemoved = %d, want 1", out.DupsRemoved)
	}
	// First occurrence wins: Semantic Scholar ran first.
	if out.Papers[0].Source != types.SourceSemanticScholar {
		t.Errorf("kept Source = %q, want semantic_scholar", out.Papers[0].Source)
	}
}

func TestFetchEmptyQuery(t *testing.T) {
	var buf bytes.Buffer
	_, err := Fetch(context.Background(), "", "", nil, []Backend{&fakeBackend{name: "pubmed"}}, testCfg(), &buf)
	if err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestFetchNoBackends(t *testing.T) {
	var buf bytes.Buffer
	_, err := Fetch(context.Background(), "q", "q", nil, nil, testCfg(), &buf)
	if err == nil {
		t.Fatal("expected error for no backends")
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BRCA1 and Genomic Stability.", "brca1 and genomic stability"},
		{"  Spaced   out\ttitle ", "spaced out title"},
		{"Dashes—and:punctuation!", "dashesandpunctuation"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
