// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entities

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/yash252525/HackathonHealthTech/internal/llm"
	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// extractionPromptTmpl asks the model for general plus biomedical entities
// as a JSON list of {text, label} objects.
var extractionPromptTmpl = template.Must(template.New("entities").Parse(`Extract all named entities from the following text. Include standard entities (persons, organizations, locations) as well as biomedical and scientific terms such as genes, diseases, bacteria names, antibiotics, and chemical compounds.

Respond with a JSON list where each entity is an object with keys "text" and "label". Preserve the order in which entities appear in the text. If no entities are found, return an empty list. Do not include any text outside the JSON list.

Example response:
[{"text": "BRCA1", "label": "GENE"}, {"text": "breast cancer", "label": "DISEASE"}]

Text: "{{.Text}}"
`))

// LLMExtractor asks the language model to perform entity recognition.
type LLMExtractor struct {
	LLM llm.Completer
}

// Name returns the extractor identifier.
func (e *LLMExtractor) Name() string { return "llm" }

// Extract renders the extraction prompt, calls the model, and parses the
// reply as a JSON entity list. A malformed reply is an error so the caller
// can invoke the fallback.
func (e *LLMExtractor) Extract(ctx context.Context, text string) ([]types.Entity, error) {
	prompt, err := renderPrompt(text)
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	answer, err := e.LLM.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var ents []types.Entity
	if err := json.Unmarshal([]byte(llm.StripFences(answer)), &ents); err != nil {
		return nil, fmt.Errorf("parsing entity list: %w", err)
	}
	return ents, nil
}

// renderPrompt executes the extraction prompt template for the given text.
func renderPrompt(text string) (string, error) {
	var buf bytes.Buffer
	if err := extractionPromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
