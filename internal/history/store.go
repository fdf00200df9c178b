// Package history keeps a log of the names produced by completed runs.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/astroname/internal/fileutil"
	"gopkg.in/yaml.v3"
)

// FileName is the history file inside the state directory.
const FileName = "history.yaml"

// NameRecord is one produced name.
type NameRecord struct {
	Timestamp time.Time `yaml:"timestamp"`
	Name      string    `yaml:"name"`
	// Definition is the definition file the name was built from.
	Definition string `yaml:"definition"`
	RunID      string `yaml:"run_id,omitempty"`
}

// HistoryFile is the on-disk layout of the history.
type HistoryFile struct {
	Entries []NameRecord `yaml:"entries"`
}

// Path returns the history file path for stateDir.
func Path(stateDir string) string {
	return filepath.Join(stateDir, FileName)
}

// LoadHistory reads the history. A missing file yields an empty history.
func LoadHistory(stateDir string) (*HistoryFile, error) {
	data, err := os.ReadFile(Path(stateDir))
	if errors.Is(err, fs.ErrNotExist) {
		return &HistoryFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return &history, nil
}

// SaveHistory writes the history atomically, creating stateDir if needed.
func SaveHistory(stateDir string, history *HistoryFile) error {
	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return fileutil.AtomicWriteFile(Path(stateDir), data)
}

// ClearHistory removes the history file. A missing file is not an error.
func ClearHistory(stateDir string) error {
	if err := os.Remove(Path(stateDir)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing history file: %w", err)
	}
	return nil
}

// Recent returns up to limit of the newest entries, newest first.
// A limit of 0 or less returns every entry.
func (h *HistoryFile) Recent(limit int) []NameRecord {
	n := len(h.Entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]NameRecord, 0, n)
	for i := len(h.Entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h.Entries[i])
	}
	return out
}
