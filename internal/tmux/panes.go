// Package tmux provides a wrapper around tmux commands.
package tmux

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// paneFormat is the list-panes format string. The first three fields are
// space-free by construction; the command name is last because it may be
// anything.
const paneFormat = "#{session_name}:#{window_index}.#{pane_index} #{pane_pid} #{pane_current_path} #{pane_current_command}"

// AgentPane describes a tmux pane whose foreground process is the Claude
// Code CLI.
type AgentPane struct {
	ID      string // tmux target, e.g. "main:0.1"
	PID     int
	Dir     string // pane working directory
	Project string // basename of Dir
	Command string // foreground command as tmux reports it
}

// ListAgentPanes scans every pane on the server and returns the ones running
// the given command. Panes whose command matches a known CLI version alias
// are included too (see versions.go).
func (c *Client) ListAgentPanes(ctx context.Context, command string) ([]AgentPane, error) {
	out, err := c.RunContext(ctx, "list-panes", "-a", "-F", paneFormat)
	if err != nil {
		return nil, err
	}

	aliases := versionAliases()
	var panes []AgentPane
	for _, line := range strings.Split(out, "\n") {
		pane, ok := parsePaneLine(line, command, aliases)
		if !ok {
			continue
		}
		panes = append(panes, pane)
	}
	return panes, nil
}

// parsePaneLine parses one line of list-panes output, keeping only panes
// running the given command or one of its current version aliases.
func parsePaneLine(line, command string, aliases map[string]struct{}) (AgentPane, bool) {
	parts := strings.SplitN(line, " ", 4)
	if len(parts) < 4 {
		return AgentPane{}, false
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return AgentPane{}, false
	}

	cmd := strings.TrimSpace(parts[3])
	if cmd != command {
		if _, ok := aliases[cmd]; !ok {
			return AgentPane{}, false
		}
	}

	dir := parts[2]
	project := filepath.Base(dir)
	if project == "." || project == string(filepath.Separator) {
		project = "unknown"
	}

	return AgentPane{
		ID:      parts[0],
		PID:     pid,
		Dir:     dir,
		Project: project,
		Command: cmd,
	}, true
}

// CapturePane returns the contents of a pane. historyLines extends the
// capture that many lines back into the scrollback; 0 captures only the
// visible area.
func (c *Client) CapturePane(ctx context.Context, paneID string, historyLines int) (string, error) {
	args := []string{"capture-pane", "-p", "-t", paneID}
	if historyLines > 0 {
		args = append(args, "-S", fmt.Sprintf("-%d", historyLines))
	}
	return c.RunContext(ctx, args...)
}

// SwitchToPane focuses the given pane in the attached tmux client.
func (c *Client) SwitchToPane(ctx context.Context, paneID string) error {
	return c.RunSilentContext(ctx, "switch-client", "-t", paneID)
}
