// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runfile saves a pipeline run to a YAML file and loads it back. A
// fetch can be saved once and summarized later without re-querying APIs.
package runfile

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

// RunFile is the on-disk representation of a run.
type RunFile struct {
	Query        string              `yaml:"query"`
	RefinedQuery string              `yaml:"refined_query,omitempty"`
	Entities     []types.Entity      `yaml:"entities,omitempty"`
	Config       RunFileConfig       `yaml:"config"`
	Papers       []types.PaperRecord `yaml:"papers"`
	Summary      RunSummary          `yaml:"summary"`
}

// RunFileConfig stores the fetch configuration that produced the papers.
type RunFileConfig struct {
	MaxPerSource int `yaml:"max_per_source"`
}

// RunSummary stores fetch statistics, the summary text if one was produced,
// and a timestamp.
type RunSummary struct {
	Total             int       `yaml:"total"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	BackendErrors     []string  `yaml:"backend_errors,omitempty"`
	Text              string    `yaml:"text,omitempty"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// Write saves a run to a YAML file.
func Write(path string, rf RunFile) error {
	if rf.Summary.Timestamp.IsZero() {
		rf.Summary.Timestamp = time.Now()
	}
	rf.Summary.Total = len(rf.Papers)

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a previously saved run file from disk.
func Read(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}

// ToRecord converts a run file into the shared run record form.
func (rf *RunFile) ToRecord() types.RunRecord {
	return types.RunRecord{
		Query:        rf.Query,
		RefinedQuery: rf.RefinedQuery,
		Entities:     rf.Entities,
		Papers:       rf.Papers,
		Summary:      rf.Summary.Text,
		Timestamp:    rf.Summary.Timestamp,
	}
}
