package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squashtools/unsquash"
	"github.com/squashtools/unsquash/internal/config"
	"github.com/squashtools/unsquash/internal/model"
)

// newExtractFlagSet mirrors the extract command's flag definitions onto a
// fresh flag set bound to the returned struct, then parses args. This lets
// merge behavior be tested without running a cobra command.
func newExtractFlagSet(t *testing.T, args ...string) (*pflag.FlagSet, *extractFlags) {
	t.Helper()

	flags := &extractFlags{}
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	fs.StringVarP(&flags.dest, "dest", "d", "squashfs-root", "")
	fs.IntVarP(&flags.processors, "processors", "p", 0, "")
	fs.BoolVarP(&flags.force, "force", "f", false, "")
	fs.StringVar(&flags.tool, "tool", "", "")
	require.NoError(t, fs.Parse(args))

	return fs, flags
}

// TestMergeExtractFlags verifies config values fill in unset flags only.
func TestMergeExtractFlags(t *testing.T) {
	fs, flags := newExtractFlagSet(t)
	cfg := &config.Config{ToolPath: "/opt/bin/unsquashfs", Processors: 4, Force: true}

	mergeExtractFlags(fs, flags, cfg)

	assert.Equal(t, 4, flags.processors)
	assert.True(t, flags.force)
	assert.Equal(t, "/opt/bin/unsquashfs", flags.tool)
}

// TestMergeExtractFlagsFlagsWin verifies explicitly set flags are never
// overridden by config values.
func TestMergeExtractFlagsFlagsWin(t *testing.T) {
	fs, flags := newExtractFlagSet(t, "-p", "2", "--tool", "/usr/bin/unsquashfs")
	cfg := &config.Config{ToolPath: "/opt/bin/unsquashfs", Processors: 16}

	mergeExtractFlags(fs, flags, cfg)

	assert.Equal(t, 2, flags.processors)
	assert.Equal(t, "/usr/bin/unsquashfs", flags.tool)
}

func TestMergeExtractFlagsEmptyConfig(t *testing.T) {
	fs, flags := newExtractFlagSet(t)

	mergeExtractFlags(fs, flags, &config.Config{})

	assert.Zero(t, flags.processors)
	assert.False(t, flags.force)
	assert.Empty(t, flags.tool)
}

// TestToCLIError verifies every wrapper error variant lands on its own
// exit code, so scripts can branch on "tool absent" vs "extraction failed".
func TestToCLIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code model.ExitCode
	}{
		{
			name: "invalid request",
			err:  unsquash.ErrInvalidRequest,
			code: model.ExitInvalidRequest,
		},
		{
			name: "tool not found",
			err:  unsquash.ErrToolNotFound,
			code: model.ExitToolNotFound,
		},
		{
			name: "spawn failure",
			err:  &unsquash.StartError{Tool: "/usr/bin/unsquashfs", Err: errors.New("permission denied")},
			code: model.ExitToolNotFound,
		},
		{
			name: "tool failure",
			err:  &unsquash.ToolError{ExitCode: 1, Stderr: "corrupt image"},
			code: model.ExitExtractionFailed,
		},
		{
			name: "cancelled",
			err:  context.Canceled,
			code: model.ExitCancelled,
		},
		{
			name: "other",
			err:  errors.New("boom"),
			code: model.ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := toCLIError(tt.err)

			var cliErr *model.CLIError
			require.ErrorAs(t, err, &cliErr)
			assert.Equal(t, tt.code, cliErr.Code)
			assert.ErrorIs(t, err, tt.err, "the original error must stay inspectable")
		})
	}
}
