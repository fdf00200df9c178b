// Package cli tests root command, global flags and error reporting for astroname.
// Related: internal/cli/root.go, internal/cli/exit_codes.go, internal/cli/logging.go
// Tags: cli, root, commands, global-flags, exit-codes

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	clierrors "github.com/ariel-frischer/astroname/internal/errors"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "astroname", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
	assert.NotNil(t, rootCmd.RunE, "root command runs the questionnaire")
}

func TestRootCmd_RejectsArguments(t *testing.T) {
	t.Parallel()

	require.NotNil(t, rootCmd.Args)
	assert.Error(t, rootCmd.Args(rootCmd, []string{"extra"}))
	assert.NoError(t, rootCmd.Args(rootCmd, nil))
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName  string
		shorthand string
	}{
		"config flag exists": {
			flagName: "config",
		},
		"verbose flag exists": {
			flagName:  "verbose",
			shorthand: "v",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name string
	}{
		"validate": {name: "validate"},
		"schema":   {name: "schema"},
		"history":  {name: "history"},
		"version":  {name: "version"},
		"config":   {name: "config"},
		"doctor":   {name: "doctor"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd, _, err := rootCmd.Find([]string{tt.name})
			require.NoError(t, err)
			assert.Equal(t, tt.name, cmd.Name())
			assert.Equal(t, GroupInspect, cmd.GroupID)
		})
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	t.Parallel()

	groups := rootCmd.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, GroupInspect, groups[0].ID)
	assert.NotEmpty(t, groups[0].Title)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil is success": {
			err:  nil,
			want: ExitSuccess,
		},
		"plain error is failure": {
			err:  errors.New("boom"),
			want: ExitFailure,
		},
		"explicit failure": {
			err:  withExitCode(ExitFailure, errors.New("bad definition")),
			want: ExitFailure,
		},
		"answers unavailable": {
			err:  withExitCode(ExitAnswersUnavailable, errors.New("store down")),
			want: ExitAnswersUnavailable,
		},
		"silent exit keeps its code": {
			err:  silentExit(ExitFailure, errors.New("canceled")),
			want: ExitFailure,
		},
		"wrapped exit error": {
			err:  fmt.Errorf("outer: %w", withExitCode(ExitAnswersUnavailable, errors.New("inner"))),
			want: ExitAnswersUnavailable,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_UnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := withExitCode(ExitFailure, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "cause", err.Error())
	assert.False(t, isSilent(err))
	assert.True(t, isSilent(silentExit(ExitFailure, cause)))
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		level     string
		verbose   bool
		wantLevel zapcore.Level
		wantErr   bool
	}{
		"warn level": {
			level:     "warn",
			wantLevel: zapcore.WarnLevel,
		},
		"debug level": {
			level:     "debug",
			wantLevel: zapcore.DebugLevel,
		},
		"verbose forces debug": {
			level:     "error",
			verbose:   true,
			wantLevel: zapcore.DebugLevel,
		},
		"invalid level": {
			level:   "loud",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger, err := newLogger(&buf, tt.level, tt.verbose)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid log level")
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestNewLogger_WritesWithoutTimestamp(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := newLogger(&buf, "info", false)
	require.NoError(t, err)

	logger.Info("name produced")
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "name produced")
	assert.NotRegexp(t, `^\d{4}-\d{2}-\d{2}`, buf.String())
}

// NOTE: Do NOT add t.Parallel() - tests modify global color.NoColor
func TestReportError(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := map[string]struct {
		err          error
		wantContains []string
	}{
		"cli error with remediation": {
			err: withExitCode(ExitFailure, clierrors.InvalidLimit(-1)),
			wantContains: []string{
				"Argument Error",
				"-1",
			},
		},
		"plain error": {
			err:          errors.New("something broke"),
			wantContains: []string{"Error: something broke"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)
			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
