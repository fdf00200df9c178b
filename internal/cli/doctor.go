package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/ariel-frischer/astroname/internal/config"
	"github.com/ariel-frischer/astroname/internal/health"
	"github.com/ariel-frischer/astroname/internal/output"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the definition, answers and state files are usable",
	Long: `Check the files a run depends on without asking any question:
the definition must load, the answers file must be absent or parsable, and
the answers and state directories must be writable.`,
	Example: `  astroname doctor`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd.OutOrStdout(), appConfig, output.SelectSymbols(output.DetectTerminalCapabilities()))
	},
}

func init() {
	doctorCmd.GroupID = GroupInspect
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(out io.Writer, cfg *config.Configuration, symbols output.Symbols) error {
	report := health.RunHealthChecks(health.Options{
		DefinitionFile: cfg.DefinitionFile,
		AnswersFile:    cfg.AnswersFile,
		StateDir:       cfg.StateDir,
		HistoryEnabled: cfg.History.Enabled,
	})
	fmt.Fprint(out, health.FormatReport(report, symbols))
	if !report.Passed {
		return silentExit(ExitFailure, errors.New("health checks failed"))
	}
	return nil
}
