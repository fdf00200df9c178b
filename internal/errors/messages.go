package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the astroname CLI.
// These templates ensure consistent, actionable error messages.

// DefinitionUnavailable creates an error for a definition file that cannot be read.
func DefinitionUnavailable(err error) *CLIError {
	return Wrap(err, Input,
		"Check that the file exists in the working directory",
		"Or point definition_file at it in .astroname/config.yml (or ASTRONAME_DEFINITION_FILE)",
	)
}

// DefinitionMalformed creates an error for a definition file that cannot be parsed or validated.
func DefinitionMalformed(err error) *CLIError {
	return Wrap(err, Input,
		"Run 'astroname validate' to see the problem in context",
		"Run 'astroname schema' for the expected structure",
	)
}

// AnswersUnavailable creates an error for an answer source that failed hard.
func AnswersUnavailable(path string, err error) *CLIError {
	return WrapWithMessage(err, Input,
		fmt.Sprintf("unable to load previous answers from %s", path),
		"Remove or repair the answers file to start from defaults",
	)
}

// AnswersNotSaved creates an error for an answers file that could not be written.
func AnswersNotSaved(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("unable to save answers to %s", path),
		"Check write permissions for the answers file and its directory",
		"The name above is still valid; only the remembered answers were lost",
	)
}

// InvalidConfig creates an error for a configuration that failed to load.
func InvalidConfig(err error) *CLIError {
	cliErr := NewConfigError(
		fmt.Sprintf("invalid configuration: %v", err),
		"Check .astroname/config.yml and ~/.config/astroname/config.yml",
		"Check ASTRONAME_* environment variables",
	)
	cliErr.Err = err
	return cliErr
}

// QuestionnaireFailed creates an error for a run that stopped before producing a name.
func QuestionnaireFailed(err error) *CLIError {
	cliErr := NewRuntimeError(
		fmt.Sprintf("questionnaire failed: %v", err),
		"Run 'astroname validate' to check the definition",
		"Run 'astroname doctor' to check the answers and state files",
	)
	cliErr.Err = err
	return cliErr
}

// InvalidFormat creates an error for an unsupported --format value.
func InvalidFormat(provided string, valid []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unsupported format: %s", provided),
		fmt.Sprintf("astroname validate --format %s", strings.Join(valid, "|")),
		fmt.Sprintf("Valid formats: %s", strings.Join(valid, ", ")),
	)
}

// InvalidLimit creates an error for a negative --limit value.
func InvalidLimit(limit int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid limit: %d", limit),
		"astroname history --limit <N>",
		"Use 0 to show every entry, or a positive number",
	)
}
