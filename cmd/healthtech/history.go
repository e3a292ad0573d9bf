// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/yash252525/HackathonHealthTech/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and search past runs",
	Long: `History manages the local store of completed ask runs. Use list to see
recent runs and search for full-text search over queries, summaries, and the
titles and abstracts of the fetched papers.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}
	writeRunRows(runs)
	return nil
}

var historySearchCmd = &cobra.Command{
	Use:   "search <terms>",
	Short: "Full-text search over past runs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistorySearch,
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Search(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	writeRunRows(runs)
	return nil
}

func openHistory(cmd *cobra.Command) (*history.Store, error) {
	cfg := pipelineConfig().History
	if cmd.Flags().Changed("history-dir") {
		cfg.HistoryDir, _ = cmd.Flags().GetString("history-dir")
	}
	return history.NewStore(cfg)
}

func writeRunRows(runs []history.RunRow) {
	if len(runs) == 0 {
		fmt.Println("No runs found.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-50s  %-6s  %s\n",
		"ID", "When", "Query", "Papers", "Summary")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range runs {
		query := truncateText(r.Query, 50)
		summary := truncateText(strings.ReplaceAll(r.Summary, "\n", " "), 40)
		when := ""
		if !r.Timestamp.IsZero() {
			when = r.Timestamp.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-50s  %-6d  %s\n",
			r.ID, when, query, r.PaperCount, summary)
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
}

// truncateText shortens s to max characters, counting runes so multi-byte
// text is never split mid-rune.
func truncateText(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}

func init() {
	historyCmd.PersistentFlags().String("history-dir", "history", "base directory for run history")
	historyListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)

	rootCmd.AddCommand(historyCmd)
}
