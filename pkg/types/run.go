// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunRecord captures one complete pipeline execution: the question asked,
// the entities extracted from it, the refined query sent to the literature
// APIs, the papers collected, and the synthesized summary.
type RunRecord struct {
	// Query is the original free-text question.
	Query string `json:"query" yaml:"query"`

	// Entities are the extracted named entities in source order.
	Entities []Entity `json:"entities,omitempty" yaml:"entities,omitempty"`

	// RefinedQuery is the search string built from the entities.
	RefinedQuery string `json:"refined_query" yaml:"refined_query"`

	// Papers are the deduplicated records collected from all sources.
	Papers []PaperRecord `json:"papers,omitempty" yaml:"papers,omitempty"`

	// Summary is the synthesized summary text. Empty when summarization
	// was skipped or failed.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Timestamp records when the run completed.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
