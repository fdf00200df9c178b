// astroname - Interactive Name Builder
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/astroname

// Package config provides hierarchical configuration management for astroname using koanf.
// Configuration is loaded with priority: environment variables > explicit config file (--config)
// > project config (.astroname/config.yml) > user config (~/.config/astroname/config.yml) > defaults.
// A bare invocation with no config files reads definition.json and answers.json from the
// working directory.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "ASTRONAME_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUser     ConfigSource = "user"
	SourceProject  ConfigSource = "project"
	SourceExplicit ConfigSource = "explicit"
	SourceEnv      ConfigSource = "env"
)

// Configuration represents the astroname CLI configuration
type Configuration struct {
	// DefinitionFile is the questionnaire definition (.json, .yaml/.yml or .toml).
	DefinitionFile string `koanf:"definition_file" yaml:"definition_file" validate:"required"`
	// AnswersFile holds the answers of the previous run.
	AnswersFile string `koanf:"answers_file" yaml:"answers_file" validate:"required"`

	// Separator joins name fragments. Empty means the default "_".
	Separator string `koanf:"separator" yaml:"separator"`
	// SpaceReplacement replaces spaces inside fragments. Empty means the default "-".
	SpaceReplacement string `koanf:"space_replacement" yaml:"space_replacement"`

	StateDir string `koanf:"state_dir" yaml:"state_dir"`
	LogLevel string `koanf:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	// NoColor disables colored output. Also set by the NO_COLOR env var.
	NoColor bool `koanf:"no_color" yaml:"no_color"`

	// History configures the log of produced names.
	// Environment variable support via ASTRONAME_HISTORY_* prefix.
	History HistoryConfig `koanf:"history" yaml:"history"`
}

// HistoryConfig configures the result history.
type HistoryConfig struct {
	Enabled bool `koanf:"enabled" yaml:"enabled"`
	// MaxEntries sets the maximum number of names to retain; 0 keeps everything.
	MaxEntries int `koanf:"max_entries" yaml:"max_entries" validate:"min=0"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigFile is an explicit config file (--config). It must exist.
	ConfigFile string
	// ProjectConfigPath overrides the project config path (default: .astroname/config.yml)
	ProjectConfigPath string
	// WarningWriter receives warnings about ignored files (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration from defaults, user, project and environment sources.
func Load(configFile string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ConfigFile: configFile})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return nil, fmt.Errorf("config file %s not found", opts.ConfigFile)
		}
		if err := loadConfigFile(k, opts.ConfigFile, SourceExplicit); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/astroname/config.yml when present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := loadConfigFile(k, path, SourceUser); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project config. YAML is preferred; config.json in the
// same directory is used when no YAML file exists. Warns if both exist.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	jsonPath := filepath.Join(filepath.Dir(yamlPath), "config.json")

	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if err := loadConfigFile(k, yamlPath, SourceProject); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		if jsonExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: JSON config found at %s (ignored, using %s)\n\n", jsonPath, yamlPath)
		}
	case jsonExists:
		if err := loadConfigFile(k, jsonPath, SourceProject); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
	}
	return nil
}

// loadConfigFile loads a YAML or JSON config file, chosen by extension.
// YAML syntax is validated first for line/column errors.
func loadConfigFile(k *koanf.Koanf, path string, source ConfigSource) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", source, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)
	cfg.DefinitionFile = expandHomePath(cfg.DefinitionFile)
	cfg.AnswersFile = expandHomePath(cfg.AnswersFile)

	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: ASTRONAME_HISTORY_MAX_ENTRIES -> history.max_entries
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// sections lists the nested config blocks addressable from the environment.
var sections = []string{"history"}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// HistoryPath returns the location of the result history file.
func (c *Configuration) HistoryPath() string {
	return filepath.Join(c.StateDir, "history.yaml")
}
