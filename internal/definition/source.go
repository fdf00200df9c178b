package definition

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

var (
	// ErrUnavailable is returned when the definition file cannot be read.
	ErrUnavailable = errors.New("unable to read definition file")
	// ErrMalformed is returned when the definition file cannot be parsed or fails validation.
	ErrMalformed = errors.New("unable to parse definition file")
)

// Source loads the definition for a run.
type Source interface {
	Load() (Definition, error)
}

// FileSource reads a definition from a JSON, YAML or TOML file.
type FileSource struct {
	Path   string
	logger *zap.Logger
}

// NewFileSource creates a FileSource. Validation warnings are logged to logger.
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{Path: path, logger: logger}
}

// Load reads, decodes and validates the definition file.
func (s *FileSource) Load() (Definition, error) {
	def, warnings, err := ReadFile(s.Path)
	for _, w := range warnings {
		s.logger.Warn(w.Message, zap.String("item", w.ItemID))
	}
	if err != nil {
		return nil, err
	}
	s.logger.Debug("definition loaded", zap.String("path", s.Path), zap.Int("items", len(def)))
	return def, nil
}

// ReadFile reads, decodes and validates the definition at path, returning
// any non-fatal warnings alongside the result.
func ReadFile(path string) (Definition, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	def, err := Decode(FormatFromPath(path), data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w %s: %w", ErrMalformed, path, err)
	}
	if def == nil {
		def = Definition{}
	}

	warnings, err := Validate(def)
	if err != nil {
		return nil, warnings, fmt.Errorf("%w %s: %w", ErrMalformed, path, err)
	}
	return def, warnings, nil
}
