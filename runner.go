package unsquash

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Outcome holds the observable result of a completed unsquashfs run.
// Stdout and Stderr are captured as two independent text streams so
// diagnostics from the tool are available regardless of exit status —
// on success, stdout carries the extraction statistics the tool prints.
type Outcome struct {
	// ExitCode is the tool's exit status, zero on success.
	ExitCode int

	// Stdout is the captured standard output text.
	Stdout string

	// Stderr is the captured standard error text.
	Stderr string
}

// Runner spawns the resolved tool with a built argument vector and waits
// for it to terminate. The production implementation is backed by os/exec;
// tests substitute a spy to prove that no subprocess is spawned when the
// tool lookup fails.
type Runner interface {
	Run(ctx context.Context, tool Tool, args []string) (*Outcome, error)
}

// execRunner runs the tool as a child process. When onProgress is set the
// child is attached to a pseudo-terminal so unsquashfs renders its
// progress bar, which the runner parses into percentage callbacks (see
// progress.go). Otherwise stdout and stderr are captured through plain
// pipes.
type execRunner struct {
	onProgress func(percent int)
}

func (r *execRunner) Run(ctx context.Context, tool Tool, args []string) (*Outcome, error) {
	cmd := exec.CommandContext(ctx, tool.Path, args...)

	if r.onProgress != nil {
		return r.runPTY(ctx, cmd)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, &StartError{Tool: tool.Path, Err: err}
	}
	err := cmd.Wait()

	outcome := &Outcome{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	return classify(ctx, outcome, err)
}

// classify turns the raw wait result into the typed outcome contract:
// nil error on exit 0, ctx.Err() when the run was cancelled, ToolError on
// a non-zero exit, and the raw error for anything else.
func classify(ctx context.Context, outcome *Outcome, err error) (*Outcome, error) {
	if err == nil {
		return outcome, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &ToolError{ExitCode: exitErr.ExitCode(), Stderr: outcome.Stderr}
	}
	return nil, err
}
