// Package main is the entry point for the unsquash CLI.
//
// The binary extracts SquashFS images by driving the external unsquashfs
// tool. It delegates all functionality to the internal/cli package, which
// defines the cobra commands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/squashtools/unsquash/internal/cli"
)

// version, commit, and date are set at build time via ldflags. During
// development they default to "dev", "none", and "unknown".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// SIGINT/SIGTERM cancel the command context, which kills a running
	// unsquashfs subprocess and surfaces a distinct "cancelled" exit code.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCommand()
	cli.Execute(ctx, rootCmd)
}
