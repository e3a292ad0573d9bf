// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entities

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// countingExtractor records calls and returns canned output.
type countingExtractor struct {
	name  string
	ents  []types.Entity
	err   error
	calls int
}

func (c *countingExtractor) Name() string { return c.name }

func (c *countingExtractor) Extract(_ context.Context, _ string) ([]types.Entity, error) {
	c.calls++
	return c.ents, c.err
}

func TestExtractWithFallbackPrimarySucceeds(t *testing.T) {
	primary := &countingExtractor{name: "llm", ents: []types.Entity{{Text: "BRCA1", Label: "GENE"}}}
	fallback := &countingExtractor{name: "lexicon"}

	var buf bytes.Buffer
	got, err := ExtractWithFallback(context.Background(), primary, fallback, "q", &buf)
	if err != nil {
		t.Fatalf("ExtractWithFallback: %v", err)
	}

	if len(got) != 1 || got[0].Text != "BRCA1" {
		t.Errorf("entities = %+v, want BRCA1", got)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback called %d times, want 0", fallback.calls)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected warning output: %q", buf.String())
	}
}

func TestExtractWithFallbackOnPrimaryError(t *testing.T) {
	primary := &countingExtractor{name: "llm", err: fmt.Errorf("connection refused")}
	fallback := &countingExtractor{name: "lexicon", ents: []types.Entity{{Text: "TP53", Label: "GENE"}}}

	var buf bytes.Buffer
	got, err := ExtractWithFallback(context.Background(), primary, fallback, "q", &buf)
	if err != nil {
		t.Fatalf("ExtractWithFallback: %v", err)
	}

	if len(got) != 1 || got[0].Text != "TP53" {
		t.Errorf("entities = %+v, want TP53", got)
	}
	if fallback.calls != 1 {
		t.Errorf("fallback called %d times, want exactly 1", fallback.calls)
	}
	if !strings.Contains(buf.String(), "falling back") {
		t.Errorf("warning output = %q, want fallback notice", buf.String())
	}
}

func TestExtractWithFallbackOnPrimaryEmpty(t *testing.T) {
	primary := &countingExtractor{name: "llm"}
	fallback := &countingExtractor{name: "lexicon", ents: []types.Entity{{Text: "EGFR", Label: "GENE"}}}

	var buf bytes.Buffer
	got, err := ExtractWithFallback(context.Background(), primary, fallback, "q", &buf)
	if err != nil {
		t.Fatalf("ExtractWithFallback: %v", err)
	}

	if len(got) != 1 || got[0].Text != "EGFR" {
		t.Errorf("entities = %+v, want EGFR", got)
	}
	if fallback.calls != 1 {
		t.Errorf("fallback called %d times, want exactly 1", fallback.calls)
	}
}

func TestExtractWithFallbackBothEmpty(t *testing.T) {
	primary := &countingExtractor{name: "llm"}
	fallback := &countingExtractor{name: "lexicon"}

	var buf bytes.Buffer
	got, err := ExtractWithFallback(context.Background(), primary, fallback, "q", &buf)
	if err != nil {
		t.Fatalf("ExtractWithFallback: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("entities = %+v, want empty", got)
	}
}

func TestExtractWithFallbackFallbackError(t *testing.T) {
	primary := &countingExtractor{name: "llm", err: fmt.Errorf("timeout")}
	fallback := &countingExtractor{name: "lexicon", err: fmt.Errorf("bad input")}

	var buf bytes.Buffer
	_, err := ExtractWithFallback(context.Background(), primary, fallback, "q", &buf)
	if err == nil {
		t.Fatal("expected error when both extractors fail")
	}
	if !strings.Contains(err.Error(), "lexicon") {
		t.Errorf("error = %q, want fallback name", err.Error())
	}
}

func TestRefine(t *testing.T) {
	tests := []struct {
		name     string
		entities []types.Entity
		original string
		want     string
	}{
		{
			"joins entity texts with AND",
			[]types.Entity{{Text: "BRCA1", Label: "GENE"}, {Text: "breast cancer", Label: "DISEASE"}},
			"role of BRCA1 in breast cancer",
			"BRCA1 AND breast cancer",
		},
		{
			"preserves entity order",
			[]types.Entity{{Text: "b"}, {Text: "a"}, {Text: "c"}},
			"q",
			"b AND a AND c",
		},
		{
			"single entity",
			[]types.Entity{{Text: "CRISPR"}},
			"q",
			"CRISPR",
		},
		{
			"no entities falls back to the original question",
			nil,
			"rare unclassified question",
			"rare unclassified question",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Refine(tt.entities, tt.original)
			if got != tt.want {
				t.Errorf("Refine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRefineIsDeterministic(t *testing.T) {
	ents := []types.Entity{{Text: "BRCA1"}, {Text: "breast cancer"}}
	first := Refine(ents, "q")
	for i := 0; i < 5; i++ {
		if got := Refine(ents, "q"); got != first {
			t.Fatalf("Refine not deterministic: %q vs %q", got, first)
		}
	}
	if !strings.Contains(first, "BRCA1") || !strings.Contains(first, "breast cancer") {
		t.Errorf("refined query %q missing required terms", first)
	}
}
