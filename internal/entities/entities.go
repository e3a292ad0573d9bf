// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entities extracts named entities from a research question and
// builds the refined literature-search query from them. The primary
// extractor asks the language model; a local lexicon-based recognizer
// serves as fallback when the model fails or finds nothing.
package entities

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// Extractor finds named entities in free text. Implementations follow the
// Strategy pattern: LLMExtractor is the primary path, LexiconExtractor the
// fallback.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, text string) ([]types.Entity, error)
}

// ExtractWithFallback tries the primary extractor first. On any error, or
// when the primary returns no entities, the fallback runs exactly once and
// its output is used as-is. An empty result from both paths is valid; later
// stages degrade rather than fail.
func ExtractWithFallback(ctx context.Context, primary, fallback Extractor, text string, w io.Writer) ([]types.Entity, error) {
	ents, err := primary.Extract(ctx, text)
	if err == nil && len(ents) > 0 {
		return ents, nil
	}

	if err != nil {
		fmt.Fprintf(w, "warning: %s extraction failed, falling back to %s: %v\n", primary.Name(), fallback.Name(), err)
	} else {
		fmt.Fprintf(w, "warning: %s returned no entities, falling back to %s\n", primary.Name(), fallback.Name())
	}

	ents, err = fallback.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%s extraction: %w", fallback.Name(), err)
	}
	return ents, nil
}

// Refine joins entity texts into the literature-search query, preserving
// order. With no entities it returns the original question so the fetchers
// still have something to search for.
func Refine(entities []types.Entity, original string) string {
	if len(entities) == 0 {
		return original
	}
	return strings.Join(types.EntityTexts(entities), " AND ")
}
