// Package cli implements the astroname command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/astroname/internal/config"
	clierrors "github.com/ariel-frischer/astroname/internal/errors"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// GroupInspect groups the commands that inspect inputs and state in help output
const GroupInspect = "inspect"

var (
	cfgFile string
	verbose bool

	// Set in PersistentPreRunE for every command.
	appConfig *config.Configuration
	logger    = zap.NewNop()
	runID     string
)

var rootCmd = &cobra.Command{
	Use:   "astroname",
	Short: "Build a name by answering a short questionnaire",
	Long: `astroname asks the questions listed in a definition file and joins the
answers into a single name, such as red-colored_cat.

Each answer is remembered in an answers file and offered as the pre-filled
value on the next run. Press Enter to keep the value shown in brackets, type
"-" to clear it, or press Ctrl-C to quit without saving anything.

Set history.enabled in the config (or ASTRONAME_HISTORY_ENABLED=true) to also
record every produced name; see 'astroname history'.`,
	Example: `  # Ask the questions in ./definition.json, remembering answers in ./answers.json
  astroname

  # Use a YAML definition for one run
  ASTRONAME_DEFINITION_FILE=names.yaml astroname

  # Check a definition before using it
  astroname validate`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return newSession(cmd).run(cmd.Context())
	},
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: GroupInspect, Title: "Inspection:"})
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .astroname/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug diagnostics to stderr")
}

// setup loads configuration and builds the run-scoped logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return withExitCode(ExitFailure, clierrors.InvalidConfig(err))
	}
	appConfig = cfg

	runID = uuid.NewString()
	l, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l.With(zap.String("run_id", runID))

	if cfg.NoColor {
		color.NoColor = true
	}
	logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("definition_file", cfg.DefinitionFile),
		zap.String("answers_file", cfg.AnswersFile))
	return nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the context, which
// ends an interactive session without saving.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !isSilent(err) {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// reportError prints err, with remediation when it carries any.
func reportError(w io.Writer, err error) {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
