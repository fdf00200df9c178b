package cli

import "errors"

// Exit codes for the astroname CLI
// These codes support scripting around interactive runs
const (
	// ExitSuccess indicates a completed run
	ExitSuccess = 0

	// ExitFailure indicates an unreadable or malformed definition, a canceled
	// session, or answers that could not be saved
	ExitFailure = 1

	// ExitAnswersUnavailable indicates the answer source failed hard
	// (a missing or malformed answers file is not an error)
	ExitAnswersUnavailable = 2
)

// exitError carries the process exit code for err. Silent errors have
// already been reported to the operator.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

func silentExit(code int, err error) error {
	return &exitError{code: code, err: err, silent: true}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitFailure
}

// isSilent reports whether err was already shown to the operator.
func isSilent(err error) bool {
	var exitErr *exitError
	return errors.As(err, &exitErr) && exitErr.silent
}
