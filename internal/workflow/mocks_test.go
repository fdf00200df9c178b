package workflow

import (
	"context"
	"io"

	"github.com/ariel-frischer/astroname/internal/prompt"
)

// MockTransport is a scripted implementation of prompt.Transport for testing.
// It replays configured lines and records every prompt shown.
type MockTransport struct {
	// Configuration
	Lines     []string
	LineError error // Returned once Lines are exhausted (io.EOF when nil)
	ShowError error
	// CancelAfter makes NextLine report cancellation on the given call (1-based).
	CancelAfter int

	// Call tracking
	ShowCalls     []prompt.Prompt
	NextLineCalls int
}

// NewMockTransport creates a mock that answers with lines, then reports EOF.
func NewMockTransport(lines ...string) *MockTransport {
	return &MockTransport{
		Lines:     lines,
		ShowCalls: make([]prompt.Prompt, 0),
	}
}

// WithLineError configures the error returned after the scripted lines
func (m *MockTransport) WithLineError(err error) *MockTransport {
	m.LineError = err
	return m
}

// WithShowError configures the mock to fail on Show
func (m *MockTransport) WithShowError(err error) *MockTransport {
	m.ShowError = err
	return m
}

// WithCancelAfter configures the mock to report cancellation on call n
func (m *MockTransport) WithCancelAfter(n int) *MockTransport {
	m.CancelAfter = n
	return m
}

// Show records the prompt and returns the configured error
func (m *MockTransport) Show(p prompt.Prompt) error {
	m.ShowCalls = append(m.ShowCalls, p)
	return m.ShowError
}

// NextLine replays the next scripted line
func (m *MockTransport) NextLine(ctx context.Context) (string, error) {
	m.NextLineCalls++
	if m.CancelAfter > 0 && m.NextLineCalls >= m.CancelAfter {
		return "", prompt.ErrCanceled
	}
	if err := ctx.Err(); err != nil {
		return "", prompt.ErrCanceled
	}
	if len(m.Lines) == 0 {
		if m.LineError != nil {
			return "", m.LineError
		}
		return "", io.EOF
	}
	line := m.Lines[0]
	m.Lines = m.Lines[1:]
	return line, nil
}

// Questions returns the question text of every prompt shown, in order
func (m *MockTransport) Questions() []string {
	out := make([]string, len(m.ShowCalls))
	for i, p := range m.ShowCalls {
		out[i] = p.Question
	}
	return out
}
