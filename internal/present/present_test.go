// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package present

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

func TestWriteEntities(t *testing.T) {
	entities := []types.Entity{
		{Text: "BRCA1", Label: "GENE"},
		{Text: "breast cancer", Label: "DISEASE"},
	}

	var buf bytes.Buffer
	WriteEntities(entities, &buf)
	s := buf.String()

	if !strings.Contains(s, "BRCA1 (GENE)") {
		t.Errorf("output missing entity with label: %q", s)
	}
	if !strings.Contains(s, "breast cancer (DISEASE)") {
		t.Errorf("output missing second entity: %q", s)
	}
}

func TestWriteEntitiesEmpty(t *testing.T) {
	var buf bytes.Buffer
	WriteEntities(nil, &buf)
	if !strings.Contains(buf.String(), "No named entities extracted from the query.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWritePapers(t *testing.T) {
	papers := []types.PaperRecord{
		{Title: "Paper A", Authors: []string{"Smith J"}, Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Source: types.SourceSemanticScholar},
		{Title: "Paper B", Authors: []string{"Jones A", "Doe B"}, Date: time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC), Source: types.SourcePubMed},
	}

	var buf bytes.Buffer
	WritePapers(papers, 1, &buf)
	s := buf.String()

	for _, want := range []string{"Paper A", "Paper B", "2023", "2021", "Jones A et al.", "pubmed", "2 papers", "1 duplicates removed"} {
		if !strings.Contains(s, want) {
			t.Errorf("table missing %q:\n%s", want, s)
		}
	}
}

func TestWritePapersEmpty(t *testing.T) {
	var buf bytes.Buffer
	WritePapers(nil, 0, &buf)
	if !strings.Contains(buf.String(), "No papers found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWritePapersTruncatesLongTitle(t *testing.T) {
	long := strings.Repeat("x", 80)
	var buf bytes.Buffer
	WritePapers([]types.PaperRecord{{Title: long, Source: types.SourcePubMed}}, 0, &buf)

	if strings.Contains(buf.String(), long) {
		t.Error("long title should be truncated")
	}
	if !strings.Contains(buf.String(), "...") {
		t.Error("truncated title should carry an ellipsis")
	}
}

func TestWritePapersTruncatesMultiByteTitleCleanly(t *testing.T) {
	// 70 copies of a two-byte rune; byte-indexed truncation would cut
	// mid-rune and emit invalid UTF-8.
	long := strings.Repeat("β", 70)
	var buf bytes.Buffer
	WritePapers([]types.PaperRecord{{Title: long, Source: types.SourcePubMed}}, 0, &buf)

	if !utf8.ValidString(buf.String()) {
		t.Error("table output contains invalid UTF-8")
	}
	if !strings.Contains(buf.String(), strings.Repeat("β", 57)+"...") {
		t.Error("title not truncated on rune boundaries")
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"ββββββββββ", 10, "ββββββββββ"},
		{"ββββββββββββ", 10, "βββββββ..."},
		{"plain ascii overflow", 10, "plain a..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestWriteAbstracts(t *testing.T) {
	papers := []types.PaperRecord{
		{Title: "First", Abstract: "First abstract."},
		{Title: "Second", Abstract: "Second abstract."},
	}

	var buf bytes.Buffer
	WriteAbstracts(papers, &buf)
	s := buf.String()

	if !strings.Contains(s, "[1] First") || !strings.Contains(s, "[2] Second") {
		t.Errorf("abstracts output = %q", s)
	}
	if strings.Count(s, abstractDivider) != 1 {
		t.Errorf("want exactly one divider between two papers, got:\n%s", s)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary("The condensed paragraph.", &buf)
	s := buf.String()

	if !strings.Contains(s, "Summary:") || !strings.Contains(s, "The condensed paragraph.") {
		t.Errorf("summary output = %q", s)
	}
}

func TestWriteRunJSON(t *testing.T) {
	run := types.RunRecord{
		Query:        "role of BRCA1",
		RefinedQuery: "BRCA1",
		Entities:     []types.Entity{{Text: "BRCA1", Label: "GENE"}},
		Papers:       []types.PaperRecord{{Identifier: "100", Title: "P", Abstract: "A", Source: types.SourcePubMed}},
		Summary:      "S",
	}

	var buf bytes.Buffer
	if err := WriteRunJSON(run, &buf); err != nil {
		t.Fatalf("WriteRunJSON: %v", err)
	}

	var parsed types.RunRecord
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if parsed.Query != run.Query || len(parsed.Papers) != 1 || parsed.Papers[0].Identifier != "100" {
		t.Errorf("round-tripped run = %+v", parsed)
	}
}
