// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yash252525/HackathonHealthTech/internal/entities"
	"github.com/yash252525/HackathonHealthTech/internal/fetch"
	"github.com/yash252525/HackathonHealthTech/internal/present"
	"github.com/yash252525/HackathonHealthTech/internal/runfile"
	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [question]",
	Short: "Fetch literature for a research question without summarizing",
	Long: `Fetch runs extraction and the literature backends only. Results can be
saved to a run file with --out and summarized later with the summarize
command, without re-querying the APIs.`,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	question, err := readQuestion(cmd, args)
	if err != nil {
		return err
	}

	cfg := pipelineConfig()
	applyFetchFlags(cmd, &cfg)
	ctx := context.Background()

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	ents, err := extractEntities(ctx, client, question, os.Stderr)
	if err != nil {
		return err
	}
	refined := entities.Refine(ents, question)

	out, err := fetch.Fetch(ctx, refined, question, types.EntityTexts(ents),
		buildBackends(cfg.Fetch), cfg.Fetch, os.Stderr)
	if err != nil {
		return err
	}

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		rf := runfile.RunFile{
			Query:        question,
			RefinedQuery: refined,
			Entities:     ents,
			Config:       runfile.RunFileConfig{MaxPerSource: cfg.Fetch.MaxPerSource},
			Papers:       out.Papers,
			Summary: runfile.RunSummary{
				DuplicatesRemoved: out.DupsRemoved,
				BackendErrors:     out.BackendErrors,
			},
		}
		if err := runfile.Write(outPath, rf); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run to %s\n", outPath)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		run := types.RunRecord{
			Query:        question,
			RefinedQuery: refined,
			Entities:     ents,
			Papers:       out.Papers,
		}
		return present.WriteRunJSON(run, os.Stdout)
	}

	present.WritePapers(out.Papers, out.DupsRemoved, os.Stdout)

	showAbstracts, _ := cmd.Flags().GetBool("abstracts")
	if showAbstracts && len(out.Papers) > 0 {
		fmt.Println()
		present.WriteAbstracts(out.Papers, os.Stdout)
	}
	return nil
}

func init() {
	fetchCmd.Flags().String("query", "", "research question")
	fetchCmd.Flags().Int("max-per-source", 15, "maximum papers requested from each literature API")
	fetchCmd.Flags().String("model", "", "language model identifier")
	fetchCmd.Flags().String("out", "", "save the run to a YAML file")
	fetchCmd.Flags().Bool("abstracts", false, "also print the fetched abstracts")
	fetchCmd.Flags().Bool("json", false, "output the run as JSON")

	rootCmd.AddCommand(fetchCmd)
}
