// info.go implements the "unsquash info" command: where the tool lives,
// what version it is, and how many processors it will use by default.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/cobra"

	"github.com/squashtools/unsquash"
	"github.com/squashtools/unsquash/internal/config"
	"github.com/squashtools/unsquash/internal/model"
)

// toolInfo is the JSON shape printed by the info command.
type toolInfo struct {
	// Path is the resolved absolute path of the unsquashfs binary.
	Path string `json:"path"`

	// Version is the first line of `unsquashfs -version` output.
	Version string `json:"version"`

	// CPUs is the host's logical processor count — the thread count the
	// tool defaults to when no -p limit is given.
	CPUs int `json:"cpus"`
}

// NewInfoCommand creates the "info" cobra command.
func NewInfoCommand() *cobra.Command {
	var toolFlag string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the resolved unsquashfs binary, its version and the host CPU count",

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInfo(cmd.Context(), cmd, toolFlag)
		},
	}

	cmd.Flags().StringVar(&toolFlag, "tool", "", "Path to the unsquashfs binary (default: search PATH)")

	return cmd
}

func runInfo(ctx context.Context, cmd *cobra.Command, toolFlag string) error {
	cfg, err := config.Load()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "loading config", err)
	}
	if !cmd.Flags().Changed("tool") && cfg.ToolPath != "" {
		toolFlag = cfg.ToolPath
	}

	var extOpts []unsquash.ExtractorOption
	if toolFlag != "" {
		extOpts = append(extOpts, unsquash.WithToolPath(toolFlag))
	}
	extractor := unsquash.New(extOpts...)

	tool, err := extractor.ResolveTool()
	if err != nil {
		return toCLIError(err)
	}
	version, err := extractor.Version(ctx)
	if err != nil {
		return toCLIError(err)
	}

	cpus, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		// CPU detection failing should not hide the tool info.
		cpus = 0
	}

	info := toolInfo{Path: tool.Path, Version: version, CPUs: cpus}

	if jsonOutput {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "encoding result", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Binary:  %s\n", info.Path)
	fmt.Printf("Version: %s\n", info.Version)
	if info.CPUs > 0 {
		fmt.Printf("CPUs:    %d (tool default when -p is not given)\n", info.CPUs)
	}
	return nil
}
