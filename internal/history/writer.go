package history

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Writer provides thread-safe history logging with automatic pruning.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain (0 = unlimited).
	MaxEntries int

	logger *zap.Logger
	mu     sync.Mutex
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
		logger:     logger,
	}
}

// LogEntry adds a new entry to the history file.
// It loads the existing history, appends the new entry, prunes if needed, and saves.
// Errors are non-fatal: they are logged as warnings and don't cause command failures.
func (w *Writer) LogEntry(entry NameRecord) {
	if err := w.logEntryInternal(entry); err != nil {
		w.logger.Warn("failed to log history", zap.String("state_dir", w.StateDir), zap.Error(err))
	}
}

// logEntryInternal handles the actual logging logic.
func (w *Writer) logEntryInternal(entry NameRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	history, err := LoadHistory(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	// Prune oldest entries if over limit
	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := SaveHistory(w.StateDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}

// LogName is a convenience method to log a produced name.
func (w *Writer) LogName(name, definitionFile, runID string) {
	w.LogEntry(NameRecord{
		Timestamp:  time.Now().UTC(),
		Name:       name,
		Definition: definitionFile,
		RunID:      runID,
	})
}
