package workflow

import (
	"errors"
	"fmt"
)

// ErrCanceled is returned when the operator interrupts the session. Nothing
// is finalized or persisted in that case.
var ErrCanceled = errors.New("session canceled by operator")

// RenderError represents a format expression that could not be applied to an answer
type RenderError struct {
	ItemID     string // The item whose fragment failed
	Expression string // The format expression in use
	Err        error  // Underlying template error
}

// Error returns a human-readable error message with the offending item
func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering item %q with format %q: %v (hint: run 'astroname validate')", e.ItemID, e.Expression, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As compatibility
func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError with the given details
func NewRenderError(itemID, expression string, err error) *RenderError {
	return &RenderError{
		ItemID:     itemID,
		Expression: expression,
		Err:        err,
	}
}
