package unsquash

import (
	"errors"
	"fmt"
	"strings"
)

// ErrToolNotFound indicates the unsquashfs executable could not be located.
// Callers can branch on this to suggest installing squashfs-tools rather
// than inspecting the image.
var ErrToolNotFound = errors.New("unsquashfs binary not found")

// ErrInvalidRequest indicates a malformed Request: an empty path or a
// non-positive thread limit. It is always detected before any process
// interaction.
var ErrInvalidRequest = errors.New("invalid extraction request")

// ToolError is returned when unsquashfs ran and exited non-zero. The exit
// code and stderr text are passed through verbatim — the wrapper does not
// reinterpret the tool's error messages.
type ToolError struct {
	// ExitCode is the tool's exit status.
	ExitCode int

	// Stderr is the captured standard error text, unmodified.
	Stderr string
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("unsquashfs exited with status %d", e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg = fmt.Sprintf("%s: %s", msg, s)
	}
	return msg
}

// StartError is returned when the process could not be spawned at all —
// permission denied, or the binary vanished between lookup and exec. It is
// kept distinct from ToolError so "could not launch" is never mistaken for
// "extraction failed".
type StartError struct {
	// Tool is the resolved executable path that failed to start.
	Tool string

	// Err is the underlying spawn error.
	Err error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Tool, e.Err)
}

// Unwrap returns the underlying spawn error for errors.Is/errors.As.
func (e *StartError) Unwrap() error {
	return e.Err
}
