// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the literature pipeline:
// extracted entities, paper records, run records, and per-stage configuration.
package types

import "time"

// PaperSource identifies which literature API produced a record.
type PaperSource string

const (
	SourceSemanticScholar PaperSource = "semantic_scholar"
	SourcePubMed          PaperSource = "pubmed"
)

// PaperRecord is one paper returned by a literature fetcher. Records are
// created by a backend and never mutated afterwards; they live for the
// duration of a single run unless saved to a run file or the history store.
type PaperRecord struct {
	// Identifier is the canonical ID from the source (Semantic Scholar
	// paper ID, DOI, or PMID).
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract. Fetchers skip entries without one.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Date is the publication date when the source provides one.
	Date time.Time `json:"date,omitempty" yaml:"date,omitempty"`

	// Source identifies the backend that found this record.
	Source PaperSource `json:"source" yaml:"source"`
}
