// extract.go implements the "unsquash extract" command, the primary
// user-facing operation: resolve the tool, build the request from flags
// and config defaults, run the extraction, report the outcome.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/squashtools/unsquash"
	"github.com/squashtools/unsquash/internal/config"
	"github.com/squashtools/unsquash/internal/model"
)

// extractFlags holds the flag values for the extract command.
type extractFlags struct {
	dest       string // --dest: destination directory
	processors int    // --processors: thread limit passed as -p
	force      bool   // --force: allow writing into an existing destination
	progress   bool   // --progress: render extraction percentage on stderr
	tool       string // --tool: explicit unsquashfs binary path
}

// extractResult is the JSON shape printed on success with --json.
type extractResult struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	ExitCode    int    `json:"exitCode"`
	Stdout      string `json:"stdout,omitempty"`
}

// NewExtractCommand creates the "extract" cobra command.
func NewExtractCommand() *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a SquashFS image",
		Long: `Extract a SquashFS image into a destination directory using unsquashfs.

The destination directory is created if it does not exist. Without --force,
unsquashfs's own collision behavior applies when the destination already
has contents. Without --processors the tool picks its own thread count,
typically the host's core count.

Examples:
  unsquash extract rootfs.squashfs
  unsquash extract --dest /mnt/rootfs --processors 4 rootfs.squashfs
  unsquash extract --force --progress firmware.squashfs`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.dest, "dest", "d", "squashfs-root", "Destination directory")
	cmd.Flags().IntVarP(&flags.processors, "processors", "p", 0, "Limit the number of processors (default: tool's own choice)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite files in an existing destination")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show extraction progress")
	cmd.Flags().StringVar(&flags.tool, "tool", "", "Path to the unsquashfs binary (default: search PATH)")

	return cmd
}

// runExtract merges config defaults with flags, builds the request and
// runs the extraction.
func runExtract(ctx context.Context, cmd *cobra.Command, image string, flags *extractFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "loading config", err)
	}
	mergeExtractFlags(cmd.Flags(), flags, cfg)

	var reqOpts []unsquash.Option
	if flags.processors != 0 {
		reqOpts = append(reqOpts, unsquash.WithThreads(flags.processors))
	}
	if flags.force {
		reqOpts = append(reqOpts, unsquash.WithOverwrite())
	}

	req, err := unsquash.NewRequest(image, flags.dest, reqOpts...)
	if err != nil {
		return toCLIError(err)
	}

	var extOpts []unsquash.ExtractorOption
	if flags.tool != "" {
		extOpts = append(extOpts, unsquash.WithToolPath(flags.tool))
	}
	if flags.progress && !jsonOutput {
		extOpts = append(extOpts, unsquash.WithProgress(func(percent int) {
			fmt.Fprintf(os.Stderr, "\rextracting... %3d%%", percent)
		}))
	}

	extractor := unsquash.New(extOpts...)
	outcome, err := extractor.Extract(ctx, req)
	if flags.progress && !jsonOutput {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return toCLIError(err)
	}

	return printExtractResult(image, flags.dest, outcome)
}

// mergeExtractFlags applies config defaults for every flag the user did
// not set explicitly. Flags always win over config values.
func mergeExtractFlags(fs *pflag.FlagSet, flags *extractFlags, cfg *config.Config) {
	if !fs.Changed("processors") && cfg.Processors > 0 {
		flags.processors = cfg.Processors
	}
	if !fs.Changed("force") && cfg.Force {
		flags.force = true
	}
	if !fs.Changed("tool") && cfg.ToolPath != "" {
		flags.tool = cfg.ToolPath
	}
}

func printExtractResult(image, dest string, outcome *unsquash.Outcome) error {
	if jsonOutput {
		data, err := json.MarshalIndent(extractResult{
			Source:      image,
			Destination: dest,
			ExitCode:    outcome.ExitCode,
			Stdout:      outcome.Stdout,
		}, "", "  ")
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "encoding result", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Extracted %s to %s\n", image, dest)
	if verbose && outcome.Stdout != "" {
		fmt.Print(outcome.Stdout)
	}
	return nil
}

// toCLIError maps wrapper errors onto the CLI's exit code taxonomy. Each
// variant keeps its own code so callers can branch on "tool absent" vs
// "bad input" vs "extraction failed".
func toCLIError(err error) error {
	var toolErr *unsquash.ToolError
	var startErr *unsquash.StartError

	switch {
	case errors.Is(err, unsquash.ErrInvalidRequest):
		return model.WrapCLIError(model.ExitInvalidRequest, "invalid request", err)
	case errors.Is(err, unsquash.ErrToolNotFound):
		return model.WrapCLIError(model.ExitToolNotFound, "unsquashfs not found, install squashfs-tools", err)
	case errors.As(err, &startErr):
		return model.WrapCLIError(model.ExitToolNotFound, "unsquashfs could not be launched", err)
	case errors.As(err, &toolErr):
		return model.WrapCLIError(model.ExitExtractionFailed, "extraction failed", err)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return model.WrapCLIError(model.ExitCancelled, "extraction cancelled", err)
	default:
		return model.WrapCLIError(model.ExitGeneralError, "extraction error", err)
	}
}
