package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/claudeye/internal/output"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	BuiltBy   string `json:"built_by"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   Version,
				Commit:    Commit,
				Date:      Date,
				BuiltBy:   BuiltBy,
				GoVersion: runtime.Version(),
				Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
			}

			f := output.New(
				output.WithJSON(output.DetectFormat(jsonOutput) == output.FormatJSON),
				output.WithWriter(cmd.OutOrStdout()),
			)
			if f.IsJSON() {
				return f.JSON(info)
			}

			f.Textln("claudeye %s", info.Version)
			f.Textln("  commit:  %s", info.Commit)
			f.Textln("  built:   %s by %s", info.Date, info.BuiltBy)
			f.Textln("  runtime: %s %s", info.GoVersion, info.Platform)
			return nil
		},
	}
}
