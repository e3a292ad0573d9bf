// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package present formats pipeline results for the console. All writers are
// pure functions over an io.Writer so commands can target stdout or a buffer.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

const abstractDivider = "----------------------------------------"

// WriteEntities prints the extracted entities with their labels, or the
// absence line when nothing was extracted.
func WriteEntities(entities []types.Entity, w io.Writer) {
	if len(entities) == 0 {
		fmt.Fprintln(w, "No named entities extracted from the query.")
		return
	}

	fmt.Fprintln(w, "Extracted entities:")
	for _, e := range entities {
		fmt.Fprintf(w, "  - %s (%s)\n", e.Text, e.Label)
	}
}

// WritePapers prints a ranked table of the fetched papers.
func WritePapers(papers []types.PaperRecord, dupsRemoved int, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %s\n",
		"Rank", "Title", "Authors", "Year", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for i, p := range papers {
		title := truncate(p.Title, 60)
		year := ""
		if !p.Date.IsZero() {
			year = fmt.Sprintf("%d", p.Date.Year())
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %s\n",
			i+1, title, formatAuthors(p.Authors), year, p.Source)
	}

	fmt.Fprintf(w, "\n%d papers", len(papers))
	if dupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", dupsRemoved)
	}
	fmt.Fprintln(w)
}

// WriteAbstracts prints each paper's title and abstract separated by a
// divider line.
func WriteAbstracts(papers []types.PaperRecord, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	for i, p := range papers {
		if i > 0 {
			fmt.Fprintln(w, abstractDivider)
		}
		fmt.Fprintf(w, "[%d] %s\n", i+1, p.Title)
		if p.Abstract != "" {
			fmt.Fprintln(w, p.Abstract)
		}
	}
}

// WriteSummary prints the summary block.
func WriteSummary(summary string, w io.Writer) {
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintln(w, summary)
}

// WriteRunJSON writes the whole run as indented JSON.
func WriteRunJSON(run types.RunRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to max characters, counting runes so multi-byte
// text is never split mid-rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}
