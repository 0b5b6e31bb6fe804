// Package cli implements the claudeye command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/claudeye/internal/config"
	"github.com/Dicklesworthstone/claudeye/internal/output"
	"github.com/Dicklesworthstone/claudeye/internal/tmux"
)

var (
	cfgFile string
	cfg     *config.Config
	sshHost string

	// Global JSON output flag - inherited by all subcommands
	jsonOutput bool

	// Build information - set by goreleaser via ldflags
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	BuiltBy = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "claudeye",
	Short: "Watch Claude Code sessions across tmux panes",
	Long: `claudeye finds every tmux pane running the Claude Code CLI and shows
what each session is doing: working, waiting for your approval, or idle.

Quick Start:
  claudeye status          # One-shot state of every session
  claudeye watch           # Stream state transitions as they happen
  claudeye picker          # Interactive picker: jump to a session`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			if cfgFile != "" {
				return fmt.Errorf("loading config %s: %w", cfgFile, err)
			}
			cfg = config.Default()
		}

		remote := cfg.Remote
		if sshHost != "" {
			remote = sshHost
		}
		if remote != "" {
			tmux.DefaultClient = tmux.NewClient(remote)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if !jsonOutput {
			output.PrintError(err)
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/claudeye/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (machine-readable)")
	rootCmd.PersistentFlags().StringVar(&sshHost, "ssh", "", "Remote host with the tmux server (e.g. user@host)")

	rootCmd.AddCommand(
		newStatusCmd(),
		newWatchCmd(),
		newPickerCmd(),
		newVersionCmd(),
	)
}
