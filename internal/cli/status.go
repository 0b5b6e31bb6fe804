package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/claudeye/internal/monitor"
	"github.com/Dicklesworthstone/claudeye/internal/output"
	"github.com/Dicklesworthstone/claudeye/internal/tmux"
	"github.com/Dicklesworthstone/claudeye/internal/util"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"st", "ls"},
		Short:   "Show the state of every Claude Code session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tmux.DefaultClient.IsInstalled() {
				return output.NewCLIError("tmux not found").
					WithHint("install tmux or pass --ssh for a remote server")
			}

			tracker := monitor.NewTracker(tmux.DefaultClient, cfg.CommandName,
				monitor.WithCaptureLines(cfg.CaptureLines))
			tracker.Poll(cmd.Context())

			f := output.New(
				output.WithJSON(output.DetectFormat(jsonOutput) == output.FormatJSON),
				output.WithWriter(cmd.OutOrStdout()),
			)
			return renderStatus(f, tracker.Snapshot(), time.Now())
		},
	}
}

type sessionStatus struct {
	PaneID         string `json:"pane_id"`
	Project        string `json:"project"`
	Dir            string `json:"dir"`
	PID            int    `json:"pid"`
	State          string `json:"state"`
	StateChangedAt string `json:"state_changed_at"`
}

func renderStatus(f *output.Formatter, sessions []monitor.Session, now time.Time) error {
	if f.IsJSON() {
		rows := make([]sessionStatus, 0, len(sessions))
		for _, s := range sessions {
			rows = append(rows, sessionStatus{
				PaneID:         s.Pane.ID,
				Project:        s.Pane.Project,
				Dir:            s.Pane.Dir,
				PID:            s.Pane.PID,
				State:          s.State.String(),
				StateChangedAt: output.FormatTime(s.StateChangedAt),
			})
		}
		return f.JSON(rows)
	}

	if len(sessions) == 0 {
		f.Textln("No Claude sessions found")
		return nil
	}

	table := output.NewTable(f.Writer(), "", "PANE", "PROJECT", "STATE", "SINCE")
	for _, s := range sessions {
		table.AddRow(
			s.State.Icon(),
			s.Pane.ID,
			output.Truncate(s.Pane.Project, 30),
			s.State.Label(),
			util.FormatDurationCompact(now.Sub(s.StateChangedAt)),
		)
	}
	table.Render()
	return nil
}
