package unsquash

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuccess(t *testing.T) {
	path := writeFakeTool(t, t.TempDir(), "unsquashfs", `echo "created 42 files"`)

	r := &execRunner{}
	outcome, err := r.Run(context.Background(), Tool{Path: path}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.ExitCode)
	assert.Equal(t, "created 42 files", strings.TrimSpace(outcome.Stdout))
	assert.Empty(t, outcome.Stderr)
}

func TestRunToolFailure(t *testing.T) {
	path := writeFakeTool(t, t.TempDir(), "unsquashfs", `echo "corrupt image" >&2; exit 1`)

	r := &execRunner{}
	_, err := r.Run(context.Background(), Tool{Path: path}, nil)
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, 1, toolErr.ExitCode)
	assert.Equal(t, "corrupt image", strings.TrimSpace(toolErr.Stderr))
}

// TestRunSeparateStreams verifies stdout and stderr are captured
// independently, not interleaved into one buffer.
func TestRunSeparateStreams(t *testing.T) {
	path := writeFakeTool(t, t.TempDir(), "unsquashfs", `echo "to stdout"; echo "to stderr" >&2`)

	r := &execRunner{}
	outcome, err := r.Run(context.Background(), Tool{Path: path}, nil)
	require.NoError(t, err)

	assert.Equal(t, "to stdout", strings.TrimSpace(outcome.Stdout))
	assert.Equal(t, "to stderr", strings.TrimSpace(outcome.Stderr))
}

func TestRunArgsForwarded(t *testing.T) {
	path := writeFakeTool(t, t.TempDir(), "unsquashfs", `echo "$@"`)

	r := &execRunner{}
	outcome, err := r.Run(context.Background(), Tool{Path: path}, []string{"-p", "4", "-d", "/out", "img.squashfs"})
	require.NoError(t, err)

	assert.Equal(t, "-p 4 -d /out img.squashfs", strings.TrimSpace(outcome.Stdout))
}

// TestRunSpawnFailure verifies that a binary that vanished between lookup
// and spawn surfaces as a StartError, never as an extraction failure.
func TestRunSpawnFailure(t *testing.T) {
	r := &execRunner{}
	_, err := r.Run(context.Background(), Tool{Path: filepath.Join(t.TempDir(), "gone")}, nil)
	require.Error(t, err)

	var startErr *StartError
	assert.ErrorAs(t, err, &startErr)
	assert.NotErrorAs(t, err, new(*ToolError))
}

func TestRunCancelled(t *testing.T) {
	path := writeFakeTool(t, t.TempDir(), "unsquashfs", "sleep 30")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	r := &execRunner{}
	start := time.Now()
	_, err := r.Run(ctx, Tool{Path: path}, nil)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second, "cancellation should kill the subprocess promptly")
}

// TestRunPTYProgress runs a fake tool that draws an unsquashfs-style
// progress bar and checks the percentages reach the callback in order.
func TestRunPTYProgress(t *testing.T) {
	script := `printf '[=====     ]  50/100  50%%\r'
printf '[==========] 100/100 100%%\r\n'
echo "created 100 files"`
	path := writeFakeTool(t, t.TempDir(), "unsquashfs", script)

	var seen []int
	r := &execRunner{onProgress: func(p int) { seen = append(seen, p) }}
	outcome, err := r.Run(context.Background(), Tool{Path: path}, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{50, 100}, seen)
	assert.Contains(t, outcome.Stdout, "created 100 files")
}

// TestRunPTYTerminalSize verifies the child gets a sized terminal.
// unsquashfs suppresses its progress bar on a zero-column terminal, so a
// PTY left at 0x0 would silently defeat progress reporting against the
// real tool.
func TestRunPTYTerminalSize(t *testing.T) {
	path := writeFakeTool(t, t.TempDir(), "unsquashfs", "stty size")

	r := &execRunner{onProgress: func(int) {}}
	outcome, err := r.Run(context.Background(), Tool{Path: path}, nil)
	require.NoError(t, err)

	assert.Equal(t, "30 80", strings.TrimSpace(outcome.Stdout))
}

func TestRunPTYToolFailure(t *testing.T) {
	path := writeFakeTool(t, t.TempDir(), "unsquashfs", `echo "FATAL ERROR: read failure" >&2; exit 1`)

	r := &execRunner{onProgress: func(int) {}}
	_, err := r.Run(context.Background(), Tool{Path: path}, nil)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, 1, toolErr.ExitCode)
	assert.Contains(t, toolErr.Stderr, "FATAL ERROR", "stderr should bypass the pty and stay clean")
}
