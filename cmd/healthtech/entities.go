// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yash252525/HackathonHealthTech/internal/entities"
	"github.com/yash252525/HackathonHealthTech/internal/present"
)

var entitiesCmd = &cobra.Command{
	Use:   "entities [question]",
	Short: "Extract biomedical entities from a research question",
	Long: `Entities runs only the extraction stage: the language model finds the
biomedical entities in the question, with the local lexicon recognizer as
fallback. The refined search query built from the entities is printed too.`,
	RunE: runEntities,
}

func runEntities(cmd *cobra.Command, args []string) error {
	question, err := readQuestion(cmd, args)
	if err != nil {
		return err
	}

	cfg := pipelineConfig()
	if cmd.Flags().Changed("model") {
		cfg.LLM.Model, _ = cmd.Flags().GetString("model")
	}
	ctx := context.Background()

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	ents, err := extractEntities(ctx, client, question, os.Stderr)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ents)
	}

	present.WriteEntities(ents, os.Stdout)
	fmt.Printf("Refined query: %s\n", entities.Refine(ents, question))
	return nil
}

func init() {
	entitiesCmd.Flags().String("query", "", "research question")
	entitiesCmd.Flags().String("model", "", "language model identifier")
	entitiesCmd.Flags().Bool("json", false, "output entities as JSON")

	rootCmd.AddCommand(entitiesCmd)
}
