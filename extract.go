package unsquash

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Extractor ties the locator, the argument builder and the runner together
// into the one-call extraction pipeline. The zero configuration (New with
// no options) searches PATH for unsquashfs and runs it with plain pipe
// capture.
type Extractor struct {
	locator    Locator
	runner     Runner
	onProgress func(percent int)
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithToolPath pins an explicit unsquashfs binary instead of searching
// PATH. The path must name an existing executable file.
func WithToolPath(path string) ExtractorOption {
	return func(e *Extractor) {
		e.locator.Override = path
	}
}

// WithRunner substitutes the execution backend. Used by tests; a custom
// runner also takes over progress handling, so WithProgress has no effect
// alongside it.
func WithRunner(r Runner) ExtractorOption {
	return func(e *Extractor) {
		e.runner = r
	}
}

// WithProgress registers a callback invoked with the extraction percentage
// (0-100) as unsquashfs reports it. This attaches the tool to a
// pseudo-terminal, since it only draws its progress bar on one.
func WithProgress(fn func(percent int)) ExtractorOption {
	return func(e *Extractor) {
		e.onProgress = fn
	}
}

// New creates an Extractor.
func New(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.runner == nil {
		e.runner = &execRunner{onProgress: e.onProgress}
	}
	return e
}

// Extract runs unsquashfs for the given request and blocks until the
// subprocess terminates. The source image must exist; the destination
// directory is created if absent.
//
// Errors are typed for branching: ErrInvalidRequest for malformed input,
// ErrToolNotFound when the binary cannot be located, StartError when it
// was located but could not be launched, ToolError when it ran and exited
// non-zero, and ctx.Err() when the context cancelled the run (the
// subprocess is killed in that case).
func (e *Extractor) Extract(ctx context.Context, req Request) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Lookup is a precondition, not a spawn failure discovered late:
	// "tool missing" must stay distinguishable from "tool failed to
	// launch", and no arguments are built for a tool that is not there.
	tool, err := e.locator.Resolve()
	if err != nil {
		return nil, err
	}

	// The source must exist before the tool is spawned, so a missing image
	// is an early typed error rather than an unsquashfs failure to decode.
	if _, err := os.Stat(req.SourceImage); err != nil {
		return nil, fmt.Errorf("%w: source image: %v", ErrInvalidRequest, err)
	}

	if err := os.MkdirAll(req.DestDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating destination directory: %w", err)
	}

	args := buildArgs(req)
	log.Debugf("running %s %v", tool.Path, args)

	return e.runner.Run(ctx, tool, args)
}

// ResolveTool exposes the extractor's tool resolution on its own, without
// running anything. The CLI's info command uses this to report where the
// binary lives.
func (e *Extractor) ResolveTool() (Tool, error) {
	return e.locator.Resolve()
}

// Version runs `unsquashfs -version` and returns the first line of its
// output, e.g. "unsquashfs version 4.6.1 (2023/03/25)".
func (e *Extractor) Version(ctx context.Context) (string, error) {
	tool, err := e.locator.Resolve()
	if err != nil {
		return "", err
	}
	outcome, err := e.runner.Run(ctx, tool, []string{"-version"})
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(outcome.Stdout, "\n")
	return strings.TrimSpace(line), nil
}
