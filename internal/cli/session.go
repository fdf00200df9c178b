package cli

import (
	"context"
	"errors"
	"io"

	"github.com/ariel-frischer/astroname/internal/config"
	"github.com/ariel-frischer/astroname/internal/definition"
	clierrors "github.com/ariel-frischer/astroname/internal/errors"
	"github.com/ariel-frischer/astroname/internal/history"
	"github.com/ariel-frischer/astroname/internal/memory"
	"github.com/ariel-frischer/astroname/internal/output"
	"github.com/ariel-frischer/astroname/internal/prompt"
	"github.com/ariel-frischer/astroname/internal/workflow"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// answerStore is the answer memory of a session.
type answerStore interface {
	memory.Source
	memory.Sink
}

// session is one interactive questionnaire run with its collaborators.
type session struct {
	cfg         *config.Configuration
	definitions definition.Source
	answers     answerStore
	history     *history.Writer

	in       io.Reader
	out      io.Writer
	printer  *output.Printer
	useColor bool

	logger *zap.Logger
	runID  string
}

func newSession(cmd *cobra.Command) *session {
	caps := output.DetectTerminalCapabilities()
	useColor := caps.SupportsColor && !appConfig.NoColor

	s := &session{
		cfg:         appConfig,
		definitions: definition.NewFileSource(appConfig.DefinitionFile, logger),
		answers:     memory.NewFileStore(appConfig.AnswersFile, logger),
		in:          cmd.InOrStdin(),
		out:         cmd.OutOrStdout(),
		printer:     output.NewPrinter(cmd.OutOrStdout(), caps, useColor),
		useColor:    useColor,
		logger:      logger,
		runID:       runID,
	}
	if !output.IsInteractive() {
		logger.Debug("stdin is not a terminal, reading answers line by line")
	}
	if appConfig.History.Enabled {
		s.history = history.NewWriter(appConfig.StateDir, appConfig.History.MaxEntries, logger)
	}
	return s
}

// run loads the inputs, asks the questions, prints the name and persists
// the answers. A canceled session prints a farewell and saves nothing.
func (s *session) run(ctx context.Context) error {
	def, snapshot, err := s.load()
	if err != nil {
		return err
	}
	if snapshot.Message != "" {
		s.printer.Advisory(snapshot.Message)
	}

	engine := workflow.New(workflow.Config{
		Definition:       def,
		Memory:           snapshot.Answers,
		UseDefaults:      snapshot.UseDefaults,
		Separator:        s.cfg.Separator,
		SpaceReplacement: s.cfg.SpaceReplacement,
		Transport:        prompt.NewLineTransport(s.in, s.out, prompt.WithColor(s.useColor)),
		Logger:           s.logger,
	})

	result, err := engine.Run(ctx)
	if errors.Is(err, workflow.ErrCanceled) {
		s.logger.Debug("session canceled", zap.Stringer("state", engine.State()))
		s.printer.Farewell()
		return silentExit(ExitFailure, err)
	}
	if err != nil {
		return withExitCode(ExitFailure, clierrors.QuestionnaireFailed(err))
	}

	s.printer.Name(result.Name)

	if err := s.answers.Save(result.Memory); err != nil {
		return withExitCode(ExitFailure, clierrors.AnswersNotSaved(s.cfg.AnswersFile, err))
	}
	if s.history != nil {
		s.history.LogName(result.Name, s.cfg.DefinitionFile, s.runID)
	}

	s.logger.Info("name produced", zap.String("name", result.Name), zap.Int("included", len(result.Included)))
	return nil
}

// load reads the definition and the answer memory concurrently. Definition
// failures take precedence over answer-source failures.
func (s *session) load() (definition.Definition, *memory.Snapshot, error) {
	var (
		g        errgroup.Group
		def      definition.Definition
		snapshot *memory.Snapshot
		defErr   error
		memErr   error
	)
	g.Go(func() error {
		def, defErr = s.definitions.Load()
		return defErr
	})
	g.Go(func() error {
		snapshot, memErr = s.answers.Load()
		return memErr
	})
	if err := g.Wait(); err == nil {
		return def, snapshot, nil
	}

	switch {
	case errors.Is(defErr, definition.ErrUnavailable):
		return nil, nil, withExitCode(ExitFailure, clierrors.DefinitionUnavailable(defErr))
	case defErr != nil:
		return nil, nil, withExitCode(ExitFailure, clierrors.DefinitionMalformed(defErr))
	default:
		return nil, nil, withExitCode(ExitAnswersUnavailable, clierrors.AnswersUnavailable(s.cfg.AnswersFile, memErr))
	}
}
