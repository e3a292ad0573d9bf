// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entities

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// genePattern matches gene-symbol-like tokens: a short letter run followed
// by digits (BRCA1, TP53, Cas9, IL6).
var genePattern = regexp.MustCompile(`\b[A-Za-z]{1,6}[0-9]{1,3}[A-Za-z0-9]*\b`)

// acronymPattern matches all-caps scientific acronyms (DNA, CRISPR, EGFR).
var acronymPattern = regexp.MustCompile(`\b[A-Z]{2,8}\b`)

// drugSuffixes are word endings common to antibiotic and drug names.
var drugSuffixes = []string{
	"mycin", "cillin", "azole", "statin", "mab", "tinib", "cycline", "floxacin",
}

// diseaseTerms is a small lexicon of disease and condition phrases, longest
// first so multi-word phrases win over their substrings.
var diseaseTerms = []string{
	"breast cancer", "lung cancer", "colorectal cancer", "prostate cancer",
	"alzheimer's disease", "parkinson's disease", "type 2 diabetes",
	"cardiovascular disease", "multiple sclerosis", "cystic fibrosis",
	"antibiotic resistance", "neural stem cells", "stem cells",
	"carcinoma", "leukemia", "lymphoma", "melanoma", "cancer", "tumor",
	"diabetes", "sepsis", "infection", "inflammation",
}

// wordPattern tokenizes text for suffix matching.
var wordPattern = regexp.MustCompile(`\b[A-Za-z][A-Za-z0-9'-]*\b`)

// LexiconExtractor is the local fallback recognizer. It needs no network:
// entities come from token patterns (gene symbols, acronyms, drug-name
// suffixes) and a built-in disease lexicon. Coarse by design; it exists so
// the pipeline still produces a search query when the model path fails.
type LexiconExtractor struct{}

// Name returns the extractor identifier.
func (e *LexiconExtractor) Name() string { return "lexicon" }

// span is a candidate entity with its position in the source text.
type span struct {
	start, end int
	text       string
	label      string
}

// Extract scans the text with all rules and returns non-overlapping matches
// in source order. When two rules match the same region the earlier, longer
// span wins.
func (e *LexiconExtractor) Extract(_ context.Context, text string) ([]types.Entity, error) {
	var spans []span

	// Lowercasing can change rune byte lengths, so disease-term offsets
	// found in the lowered text are mapped back through offs before
	// slicing the original.
	lower, offs := lowerOffsets(text)
	for _, term := range diseaseTerms {
		for from := 0; ; {
			i := strings.Index(lower[from:], term)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(term)
			spans = append(spans, span{offs[start], offs[end], text[offs[start]:offs[end]], "DISEASE"})
			from = end
		}
	}

	for _, m := range genePattern.FindAllStringIndex(text, -1) {
		spans = append(spans, span{m[0], m[1], text[m[0]:m[1]], "GENE"})
	}

	for _, m := range acronymPattern.FindAllStringIndex(text, -1) {
		spans = append(spans, span{m[0], m[1], text[m[0]:m[1]], "TERM"})
	}

	for _, m := range wordPattern.FindAllStringIndex(text, -1) {
		word := strings.ToLower(text[m[0]:m[1]])
		for _, suffix := range drugSuffixes {
			if len(word) > len(suffix) && strings.HasSuffix(word, suffix) {
				spans = append(spans, span{m[0], m[1], text[m[0]:m[1]], "CHEMICAL"})
				break
			}
		}
	}

	return resolveSpans(spans), nil
}

// lowerOffsets lowercases text rune by rune and returns, for every byte
// index in the lowered result (plus one past the end), the byte index of
// the originating rune in text. Lexicon terms are ASCII, so matches in the
// lowered text always fall on rune boundaries.
func lowerOffsets(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	offs := make([]int, 0, len(text)+1)
	for i, r := range text {
		lr := unicode.ToLower(r)
		for j := 0; j < utf8.RuneLen(lr); j++ {
			offs = append(offs, i)
		}
		b.WriteRune(lr)
	}
	offs = append(offs, len(text))
	return b.String(), offs
}

// resolveSpans orders candidates by position and drops overlaps, keeping
// the span that starts first (longest on ties).
func resolveSpans(spans []span) []types.Entity {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var ents []types.Entity
	lastEnd := -1
	for _, s := range spans {
		if s.start < lastEnd {
			continue
		}
		ents = append(ents, types.Entity{Text: s.text, Label: s.label})
		lastEnd = s.end
	}
	return ents
}
