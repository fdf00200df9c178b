// Package memory persists the last answer given to each item so the next run
// can offer it as the pre-filled value.
package memory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ariel-frischer/astroname/internal/fileutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// AdvisoryMalformed is shown when the answers file exists but cannot be parsed.
const AdvisoryMalformed = "Unable to access last answers. Reverting to defaults."

// ErrUnavailable marks a hard failure of an answer source. FileStore never
// returns it for missing, unreadable or malformed files; those degrade to
// defaults mode.
var ErrUnavailable = errors.New("answer memory unavailable")

// Answers maps item ids to the last answer given.
type Answers map[string]string

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Snapshot is the answer memory loaded at the start of a run.
type Snapshot struct {
	Answers Answers
	// UseDefaults is set when no usable memory exists; items are then
	// pre-filled with their configured defaults.
	UseDefaults bool
	// Message is an optional advisory to show the operator.
	Message string
}

// Source loads the answer memory.
type Source interface {
	Load() (*Snapshot, error)
}

// Sink persists the answer memory, replacing previous content.
type Sink interface {
	Save(Answers) error
}

// FileStore is a Source and Sink backed by a JSON, YAML or TOML file,
// chosen by extension (JSON when unknown).
type FileStore struct {
	Path   string
	logger *zap.Logger
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{Path: path, logger: logger}
}

// Load reads the answers file. A missing or unreadable file silently selects
// defaults mode; a malformed file selects defaults mode with an advisory.
func (s *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("answers file unreadable, using defaults", zap.String("path", s.Path), zap.Error(err))
		}
		return &Snapshot{Answers: Answers{}, UseDefaults: true}, nil
	}

	answers, err := decode(s.Path, data)
	if err != nil {
		s.logger.Debug("answers file malformed, using defaults", zap.String("path", s.Path), zap.Error(err))
		return &Snapshot{Answers: Answers{}, UseDefaults: true, Message: AdvisoryMalformed}, nil
	}
	if answers == nil {
		answers = Answers{}
	}
	return &Snapshot{Answers: answers}, nil
}

// Save writes answers atomically (temp file + rename).
func (s *FileStore) Save(answers Answers) error {
	data, err := encode(s.Path, answers)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}
	if err := fileutil.AtomicWriteFile(s.Path, data); err != nil {
		return fmt.Errorf("writing answers file %s: %w", s.Path, err)
	}
	s.logger.Debug("answers saved", zap.String("path", s.Path), zap.Int("entries", len(answers)))
	return nil
}

func decode(path string, data []byte) (Answers, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty answers file")
	}

	var answers Answers
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &answers); err != nil {
			return nil, err
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &answers); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &answers); err != nil {
			return nil, err
		}
	}
	return answers, nil
}

func encode(path string, answers Answers) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(answers)
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(answers); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(answers, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}
