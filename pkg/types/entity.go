// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Entity is a named entity extracted from free text. Label carries the
// entity class (e.g. "GENE", "DISEASE", "CHEMICAL", "ORG"); extraction keeps
// entities in source order and does not deduplicate them.
type Entity struct {
	Text  string `json:"text" yaml:"text"`
	Label string `json:"label" yaml:"label"`
}

// EntityTexts returns the Text fields of entities in order.
func EntityTexts(entities []Entity) []string {
	texts := make([]string, 0, len(entities))
	for _, e := range entities {
		texts = append(texts, e.Text)
	}
	return texts
}
