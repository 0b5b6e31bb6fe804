package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/claudeye/internal/config"
	"github.com/Dicklesworthstone/claudeye/internal/events"
	"github.com/Dicklesworthstone/claudeye/internal/monitor"
	"github.com/Dicklesworthstone/claudeye/internal/output"
	"github.com/Dicklesworthstone/claudeye/internal/state"
	"github.com/Dicklesworthstone/claudeye/internal/tmux"
	"github.com/Dicklesworthstone/claudeye/internal/util"
)

func newWatchCmd() *cobra.Command {
	var intervalFlag string

	cmd := &cobra.Command{
		Use:     "watch",
		Aliases: []string{"w"},
		Short:   "Stream session state transitions until interrupted",
		Long: `Watch polls every Claude Code pane and prints a line whenever a
session changes state. Ctrl+C stops it.

Examples:
  claudeye watch                 # Poll at the configured interval
  claudeye watch --interval 5s   # Slower polling
  claudeye watch --json          # One JSON object per transition`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tmux.DefaultClient.IsInstalled() {
				return output.NewCLIError("tmux not found").
					WithHint("install tmux or pass --ssh for a remote server")
			}

			interval := cfg.PollInterval()
			if intervalFlag != "" {
				d, err := util.ParseDuration(intervalFlag)
				if err != nil {
					return output.NewCLIError("invalid --interval").WithCause(err.Error())
				}
				interval = d
			}

			return runWatch(cmd, interval)
		},
	}

	cmd.Flags().StringVar(&intervalFlag, "interval", "", "poll interval (e.g. 2s, 500ms)")
	return cmd
}

func runWatch(cmd *cobra.Command, interval time.Duration) error {
	f := output.New(
		output.WithJSON(output.DetectFormat(jsonOutput) == output.FormatJSON),
		output.WithWriter(cmd.OutOrStdout()),
		output.WithPretty(false),
	)

	logger, err := newEventLogger(cfg)
	if err != nil {
		log.Printf("event log disabled: %v", err)
		logger, _ = events.NewLogger(events.LoggerOptions{})
	}
	defer logger.Close()

	printTransition := func(pane tmux.AgentPane, from, to state.SessionState) {
		if f.IsJSON() {
			f.JSON(events.NewEvent(pane.ID, pane.Project, from.String(), to.String()))
			return
		}
		f.Textln("%s  %s  %s  %s → %s",
			time.Now().Format("15:04:05"), pane.ID, pane.Project, from.Label(), to.Label())
	}

	tracker := monitor.NewTracker(tmux.DefaultClient, cfg.CommandName,
		monitor.WithInterval(interval),
		monitor.WithCaptureLines(cfg.CaptureLines),
		monitor.WithEventLogger(logger),
		monitor.WithOnTransition(printTransition),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	tracker.Start(ctx)
	defer tracker.Stop()

	// Hot-reload the poll interval on config edits.
	stopWatch, err := config.Watch(cfgFile, func(newCfg *config.Config) {
		tracker.SetInterval(newCfg.PollInterval())
		log.Printf("config reloaded, poll interval %s", newCfg.PollInterval())
	})
	if err != nil {
		log.Printf("config watch disabled: %v", err)
	} else {
		defer stopWatch()
	}

	if !f.IsJSON() {
		f.Textln("Watching Claude sessions (every %s, Ctrl+C to stop)", interval)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	return nil
}

func newEventLogger(cfg *config.Config) (*events.Logger, error) {
	return events.NewLogger(events.LoggerOptions{
		Path:    config.ExpandPath(cfg.Events.Path),
		Enabled: cfg.Events.Enabled,
	})
}
