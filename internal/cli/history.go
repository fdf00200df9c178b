package cli

import (
	"fmt"
	"io"

	clierrors "github.com/ariel-frischer/astroname/internal/errors"
	"github.com/ariel-frischer/astroname/internal/history"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View previously produced names",
	Long: `View a log of the names produced by completed runs, newest first, with timestamp and definition file.
Names are recorded only while history.enabled is set in the config.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := historyOptions{}
		opts.clear, _ = cmd.Flags().GetBool("clear")
		opts.definition, _ = cmd.Flags().GetString("definition")
		opts.limit, _ = cmd.Flags().GetInt("limit")
		return runHistory(cmd.OutOrStdout(), appConfig.StateDir, opts)
	},
}

func init() {
	historyCmd.GroupID = GroupInspect
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("definition", "d", "", "Filter by definition file")
	historyCmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	historyCmd.Flags().BoolP("clear", "c", false, "Clear all history")
}

type historyOptions struct {
	clear      bool
	definition string
	limit      int
}

// runHistory lists or clears the history stored under stateDir.
func runHistory(out io.Writer, stateDir string, opts historyOptions) error {
	if opts.limit < 0 {
		return withExitCode(ExitFailure, clierrors.InvalidLimit(opts.limit))
	}

	if opts.clear {
		if err := history.ClearHistory(stateDir); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(out, "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(stateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := filterEntries(histFile, opts.definition, opts.limit)
	if len(entries) == 0 {
		if opts.definition != "" {
			fmt.Fprintf(out, "No matching entries for definition '%s'.\n", opts.definition)
		} else {
			fmt.Fprintln(out, "No history available.")
		}
		return nil
	}

	displayEntries(out, entries)
	return nil
}

// filterEntries filters by definition file and returns the newest limit entries, newest first.
func filterEntries(histFile *history.HistoryFile, definitionFilter string, limit int) []history.NameRecord {
	filtered := &history.HistoryFile{}
	for _, entry := range histFile.Entries {
		if definitionFilter == "" || entry.Definition == definitionFilter {
			filtered.Entries = append(filtered.Entries, entry)
		}
	}
	return filtered.Recent(limit)
}

// displayEntries formats and displays history entries.
func displayEntries(out io.Writer, entries []history.NameRecord) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, entry := range entries {
		timestamp := entry.Timestamp.Local().Format("2006-01-02 15:04:05")
		fmt.Fprintf(out, "%s  %s  %s\n", cyan(timestamp), green(entry.Name), dim(entry.Definition))
	}
}
