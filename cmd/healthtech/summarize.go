// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yash252525/HackathonHealthTech/internal/present"
	"github.com/yash252525/HackathonHealthTech/internal/runfile"
	"github.com/yash252525/HackathonHealthTech/internal/summarize"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize the abstracts of a saved run",
	Long: `Summarize reads a run file written by fetch --out and condenses its
abstracts into a single paragraph. With --save the summary is written back
into the run file.`,
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	inPath, _ := cmd.Flags().GetString("in")
	if inPath == "" {
		return fmt.Errorf("run file required: pass --in")
	}

	rf, err := runfile.Read(inPath)
	if err != nil {
		return err
	}

	cfg := pipelineConfig()
	if cmd.Flags().Changed("model") {
		cfg.LLM.Model, _ = cmd.Flags().GetString("model")
	}

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("anthropic-api-key required for summarization")
	}

	s := &summarize.Summarizer{LLM: client}
	summaryText, err := s.Summarize(context.Background(), rf.Papers)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		rf.Summary.Text = summaryText
		if err := runfile.Write(inPath, *rf); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved summary to %s\n", inPath)
	}

	present.WriteSummary(summaryText, os.Stdout)
	return nil
}

func init() {
	summarizeCmd.Flags().String("in", "", "run file written by fetch --out")
	summarizeCmd.Flags().String("model", "", "language model identifier")
	summarizeCmd.Flags().Bool("save", false, "write the summary back into the run file")

	rootCmd.AddCommand(summarizeCmd)
}
