// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yash252525/HackathonHealthTech/internal/entities"
	"github.com/yash252525/HackathonHealthTech/internal/fetch"
	"github.com/yash252525/HackathonHealthTech/internal/history"
	"github.com/yash252525/HackathonHealthTech/internal/present"
	"github.com/yash252525/HackathonHealthTech/internal/summarize"
	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a research question from the published literature",
	Long: `Ask runs the whole pipeline: extracts biomedical entities from the
question, refines them into a search query, fetches matching papers from
Semantic Scholar and PubMed, and summarizes the collected abstracts.

The question comes from --query, the positional arguments, or piped stdin.
Completed runs are recorded in the history store unless --no-history is set.`,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	summaryText := summarize.NoDataSummary
	if client != nil {
		s := &summarize.Summarizer{LLM: client}
		summaryText, err = s.Summarize(ctx, out.Papers)
		if err != nil {
			return err
		}
	} else if len(out.Papers) > 0 {
		fmt.Fprintln(os.Stderr, "warning: no anthropic-api-key configured, skipping summarization")
		summaryText = ""
	}

	run := types.RunRecord{
		Query:        question,
		RefinedQuery: refined,
		Entities:     ents,
		Papers:       out.Papers,
		Summary:      summaryText,
		Timestamp:    time.Now(),
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory {
		if err := recordRun(ctx, cfg.History, run); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording run history failed: %v\n", err)
		}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return present.WriteRunJSON(run, os.Stdout)
	}

	present.WriteEntities(ents, os.Stdout)
	fmt.Printf("Refined query: %s\n\n", refined)
	present.WritePapers(out.Papers, out.DupsRemoved, os.Stdout)

	showAbstracts, _ := cmd.Flags().GetBool("abstracts")
	if showAbstracts && len(out.Papers) > 0 {
		fmt.Println()
		present.WriteAbstracts(out.Papers, os.Stdout)
	}

	if summaryText != "" {
		fmt.Println()
		present.WriteSummary(summaryText, os.Stdout)
	}
	return nil
}

func recordRun(ctx context.Context, cfg types.HistoryConfig, run types.RunRecord) error {
	store, err := history.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(ctx, run)
	return err
}

// applyFetchFlags overrides the fetch configuration with command flags.
func applyFetchFlags(cmd *cobra.Command, cfg *types.PipelineConfig) {
	if cmd.Flags().Changed("max-per-source") {
		cfg.Fetch.MaxPerSource, _ = cmd.Flags().GetInt("max-per-source")
	}
	if cmd.Flags().Changed("model") {
		cfg.LLM.Model, _ = cmd.Flags().GetString("model")
	}
	if cmd.Flags().Changed("history-dir") {
		cfg.History.HistoryDir, _ = cmd.Flags().GetString("history-dir")
	}
}

func init() {
	askCmd.Flags().String("query", "", "research question")
	askCmd.Flags().Int("max-per-source", 15, "maximum papers requested from each literature API")
	askCmd.Flags().String("model", "", "language model identifier")
	askCmd.Flags().String("history-dir", "history", "base directory for run history")
	askCmd.Flags().Bool("abstracts", false, "also print the fetched abstracts")
	askCmd.Flags().Bool("no-history", false, "do not record this run in the history store")
	askCmd.Flags().Bool("json", false, "output the whole run as JSON")

	rootCmd.AddCommand(askCmd)
}
