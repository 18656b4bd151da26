package model

import "fmt"

// ExitCode defines the CLI's exit codes. These let scripts and CI systems
// branch on the outcome — in particular "tool absent" (install
// squashfs-tools) vs "extraction failed" (inspect the image).
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitToolNotFound indicates the unsquashfs binary could not be
	// located or launched.
	ExitToolNotFound ExitCode = 2

	// ExitInvalidRequest indicates malformed input: an empty path or a
	// non-positive processor limit.
	ExitInvalidRequest ExitCode = 3

	// ExitExtractionFailed indicates unsquashfs ran and exited non-zero.
	ExitExtractionFailed ExitCode = 4

	// ExitCancelled indicates the extraction was interrupted before the
	// tool finished.
	ExitCancelled ExitCode = 5
)

// CLIError is an error that carries an exit code, letting the CLI layer
// translate wrapper errors into process exit statuses.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface, optionally including the
// underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
