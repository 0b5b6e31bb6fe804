package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/claudeye/internal/monitor"
	"github.com/Dicklesworthstone/claudeye/internal/output"
	"github.com/Dicklesworthstone/claudeye/internal/picker"
	"github.com/Dicklesworthstone/claudeye/internal/tmux"
)

func newPickerCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "picker",
		Aliases: []string{"p", "pick"},
		Short:   "Interactively pick a session and switch to its pane",
		Long: `Picker lists every Claude Code session with a live state indicator.
Enter or 1-9 switches the attached tmux client to the chosen pane.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !IsInteractive(cmd.OutOrStdout()) {
				return output.NewCLIError("picker needs a terminal").
					WithHint("use 'claudeye status' for scripted output")
			}
			if !tmux.DefaultClient.IsInstalled() {
				return output.NewCLIError("tmux not found").
					WithHint("install tmux or pass --ssh for a remote server")
			}

			tracker := monitor.NewTracker(tmux.DefaultClient, cfg.CommandName,
				monitor.WithInterval(cfg.PollInterval()),
				monitor.WithCaptureLines(cfg.CaptureLines))
			tracker.Poll(cmd.Context())

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			tracker.Start(ctx)
			defer tracker.Stop()

			m := picker.New(tracker, cfg.PollInterval())
			p := tea.NewProgram(m, tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}

			chosen := final.(picker.Model).Result()
			if chosen == "" {
				return nil
			}
			// switch-client needs an attached client; outside tmux just
			// report the target so the user can attach.
			if !tmux.InTmux() && cfg.Remote == "" && sshHost == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Selected %s (run inside tmux to switch)\n", chosen)
				return nil
			}
			return tmux.DefaultClient.SwitchToPane(cmd.Context(), chosen)
		},
	}
}
