// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize condenses the collected paper abstracts into a single
// paragraph with the language model.
package summarize

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/yash252525/HackathonHealthTech/internal/llm"
	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// NoDataSummary is returned when no paper carries an abstract. The model is
// not called in that case.
const NoDataSummary = "No abstracts were available to summarize."

var summaryPromptTmpl = template.Must(template.New("summary").Parse(
	`Summarize the following abstracts into a concise paragraph:

{{range .Abstracts}}{{.}}

{{end}}`))

// Summarizer produces a summary from paper abstracts.
type Summarizer struct {
	LLM llm.Completer
}

// Summarize concatenates the non-empty abstracts and asks the model for a
// single-paragraph summary. With nothing to summarize it returns
// NoDataSummary without touching the model.
func (s *Summarizer) Summarize(ctx context.Context, papers []types.PaperRecord) (string, error) {
	var abstracts []string
	for _, p := range papers {
		if strings.TrimSpace(p.Abstract) == "" {
			continue
		}
		abstracts = append(abstracts, p.Abstract)
	}
	if len(abstracts) == 0 {
		return NoDataSummary, nil
	}

	var prompt strings.Builder
	if err := summaryPromptTmpl.Execute(&prompt, struct{ Abstracts []string }{abstracts}); err != nil {
		return "", fmt.Errorf("rendering summary prompt: %w", err)
	}

	summary, err := s.LLM.Complete(ctx, prompt.String())
	if err != nil {
		return "", fmt.Errorf("summarizing abstracts: %w", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("model returned an empty summary")
	}
	return summary, nil
}
