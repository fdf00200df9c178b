package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate points user-level config and home at a temp dir and clears env
// overrides. Tests calling it must not run in parallel.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("NO_COLOR", "")
	for _, key := range []string{"DEFINITION_FILE", "ANSWERS_FILE", "SEPARATOR", "LOG_LEVEL", "HISTORY_MAX_ENTRIES"} {
		t.Setenv(EnvPrefix+key, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+key))
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	// NOTE: Do NOT add t.Parallel() - t.Setenv() is incompatible with parallel tests
	dir := isolate(t)

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: filepath.Join(dir, "project", "config.yml")})
	require.NoError(t, err)

	assert.Equal(t, "definition.json", cfg.DefinitionFile)
	assert.Equal(t, "answers.json", cfg.AnswersFile)
	assert.Equal(t, "_", cfg.Separator)
	assert.Equal(t, "-", cfg.SpaceReplacement)
	assert.Equal(t, filepath.Join(dir, ".astroname", "state"), cfg.StateDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, HistoryConfig{Enabled: false, MaxEntries: 100}, cfg.History, "history is opt-in")
	assert.Equal(t, filepath.Join(cfg.StateDir, "history.yaml"), cfg.HistoryPath())
}

func TestLoad_Layering(t *testing.T) {
	// NOTE: Do NOT add t.Parallel() - t.Setenv() is incompatible with parallel tests
	dir := isolate(t)

	userPath, err := UserConfigPath()
	require.NoError(t, err)
	writeFile(t, userPath, "separator: \".\"\nlog_level: info\nhistory:\n  max_entries: 5\n")

	projectPath := filepath.Join(dir, "project", "config.yml")
	writeFile(t, projectPath, "separator: \"+\"\ndefinition_file: names.yaml\n")

	t.Setenv("ASTRONAME_HISTORY_MAX_ENTRIES", "7")
	t.Setenv("ASTRONAME_ANSWERS_FILE", "last.json")

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: projectPath})
	require.NoError(t, err)

	assert.Equal(t, "+", cfg.Separator, "project overrides user")
	assert.Equal(t, "info", cfg.LogLevel, "user overrides defaults")
	assert.Equal(t, "names.yaml", cfg.DefinitionFile)
	assert.Equal(t, "last.json", cfg.AnswersFile, "env overrides everything")
	assert.Equal(t, 7, cfg.History.MaxEntries)
	assert.False(t, cfg.History.Enabled)
}

func TestLoad_ProjectJSON(t *testing.T) {
	// NOTE: Do NOT add t.Parallel() - t.Setenv() is incompatible with parallel tests
	dir := isolate(t)
	projectDir := filepath.Join(dir, "project")
	writeFile(t, filepath.Join(projectDir, "config.json"), `{"separator": "~", "history": {"enabled": true}}`)

	t.Run("json used when yaml is absent", func(t *testing.T) {
		var warnings bytes.Buffer
		cfg, err := LoadWithOptions(LoadOptions{
			ProjectConfigPath: filepath.Join(projectDir, "config.yml"),
			WarningWriter:     &warnings,
		})
		require.NoError(t, err)
		assert.Equal(t, "~", cfg.Separator)
		assert.True(t, cfg.History.Enabled)
		assert.Empty(t, warnings.String())
	})

	t.Run("yaml wins and json is reported", func(t *testing.T) {
		writeFile(t, filepath.Join(projectDir, "config.yml"), "separator: \"=\"\n")

		var warnings bytes.Buffer
		cfg, err := LoadWithOptions(LoadOptions{
			ProjectConfigPath: filepath.Join(projectDir, "config.yml"),
			WarningWriter:     &warnings,
		})
		require.NoError(t, err)
		assert.Equal(t, "=", cfg.Separator)
		assert.False(t, cfg.History.Enabled)
		assert.Contains(t, warnings.String(), "JSON config found")
	})
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	// NOTE: Do NOT add t.Parallel() - t.Setenv() is incompatible with parallel tests
	dir := isolate(t)

	projectPath := filepath.Join(dir, "project", "config.yml")
	writeFile(t, projectPath, "separator: \"+\"\nspace_replacement: \".\"\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, "separator: \"|\"\n")

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: projectPath, ConfigFile: explicit})
	require.NoError(t, err)
	assert.Equal(t, "|", cfg.Separator)
	assert.Equal(t, ".", cfg.SpaceReplacement)

	_, err = LoadWithOptions(LoadOptions{ConfigFile: filepath.Join(dir, "missing.yml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_Errors(t *testing.T) {
	// NOTE: Do NOT add t.Parallel() - t.Setenv() is incompatible with parallel tests
	tests := map[string]struct {
		content string
		wantErr string
	}{
		"invalid yaml syntax": {
			content: "separator: [\n",
			wantErr: "validating YAML syntax",
		},
		"unknown log level": {
			content: "log_level: loud\n",
			wantErr: "field 'log_level': must be one of: debug, info, warn, error",
		},
		"negative history size": {
			content: "history:\n  max_entries: -1\n",
			wantErr: "field 'max_entries': must be at least 0",
		},
		"empty definition file": {
			content: "definition_file: \"\"\n",
			wantErr: "field 'definition_file': is required",
		},
		"space in replacement": {
			content: "space_replacement: \" \"\n",
			wantErr: "field 'space_replacement': must not contain spaces",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "config.yml")
			writeFile(t, path, tt.content)

			_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_NoColorEnv(t *testing.T) {
	// NOTE: Do NOT add t.Parallel() - t.Setenv() is incompatible with parallel tests
	dir := isolate(t)
	t.Setenv("NO_COLOR", "1")

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: filepath.Join(dir, "config.yml")})
	require.NoError(t, err)
	assert.True(t, cfg.NoColor)
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want string
	}{
		"top-level key":   {in: "ASTRONAME_DEFINITION_FILE", want: "definition_file"},
		"nested key":      {in: "ASTRONAME_HISTORY_MAX_ENTRIES", want: "history.max_entries"},
		"nested boolean":  {in: "ASTRONAME_HISTORY_ENABLED", want: "history.enabled"},
		"prefix-like key": {in: "ASTRONAME_HISTORYLESS", want: "historyless"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, envTransform(tt.in))
		})
	}
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	t.Parallel()

	var parsed map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(GetDefaultConfigTemplate()), &parsed))
	assert.Equal(t, GetDefaults(), parsed)
}

func TestValidateYAMLSyntax(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yml")
	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(good, []byte("a: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("a: 1\n b: [\n"), 0o644))

	assert.NoError(t, ValidateYAMLSyntax(good))
	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(dir, "missing.yml")))
	assert.NoError(t, ValidateYAMLSyntaxFromBytes([]byte("  \n"), "empty.yml"))

	err := ValidateYAMLSyntax(bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, bad, verr.FilePath)
	assert.Positive(t, verr.Line)
}
