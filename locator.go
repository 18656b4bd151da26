package unsquash

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// toolName is the canonical binary name searched for on PATH.
const toolName = "unsquashfs"

// Tool is the resolved, validated location of the unsquashfs executable.
// It is produced once per extraction by a Locator and consumed by the
// Runner; nothing caches it process-wide.
type Tool struct {
	// Path is the absolute path to the executable.
	Path string
}

// Locator resolves the unsquashfs executable. The zero value performs a
// standard PATH lookup; set Override to pin an explicit binary path that
// bypasses the search entirely.
//
// Resolution is a read-only query with no side effects. It runs before any
// argument construction or process spawn, so a missing tool is reported as
// ErrToolNotFound rather than surfacing later as a spawn failure.
type Locator struct {
	// Override, when non-empty, is used instead of a PATH search. It must
	// name an existing executable file.
	Override string

	// lookPath is swapped out in tests to simulate a search path without
	// the binary. nil means exec.LookPath.
	lookPath func(file string) (string, error)
}

// Resolve returns the absolute path of the unsquashfs executable, or an
// error wrapping ErrToolNotFound if it cannot be located.
func (l *Locator) Resolve() (Tool, error) {
	if l.Override != "" {
		return l.resolveOverride()
	}

	look := l.lookPath
	if look == nil {
		look = exec.LookPath
	}
	path, err := look(toolName)
	if err != nil {
		return Tool{}, fmt.Errorf("%w: %v", ErrToolNotFound, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Tool{}, fmt.Errorf("%w: %v", ErrToolNotFound, err)
	}
	return Tool{Path: abs}, nil
}

// resolveOverride validates that the explicit override path names an
// existing regular file with an execute bit set.
func (l *Locator) resolveOverride() (Tool, error) {
	info, err := os.Stat(l.Override)
	if err != nil {
		return Tool{}, fmt.Errorf("%w: %v", ErrToolNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return Tool{}, fmt.Errorf("%w: %s is not a regular file", ErrToolNotFound, l.Override)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return Tool{}, fmt.Errorf("%w: %s is not executable", ErrToolNotFound, l.Override)
	}
	abs, err := filepath.Abs(l.Override)
	if err != nil {
		return Tool{}, fmt.Errorf("%w: %v", ErrToolNotFound, err)
	}
	return Tool{Path: abs}, nil
}
