// Package picker provides the interactive session picker TUI.
package picker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Dicklesworthstone/claudeye/internal/monitor"
	"github.com/Dicklesworthstone/claudeye/internal/state"
	"github.com/Dicklesworthstone/claudeye/internal/util"
)

// refreshTickMsg triggers a re-read of the tracker snapshot.
type refreshTickMsg time.Time

// KeyMap defines the keybindings
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
	Num1   key.Binding
	Num2   key.Binding
	Num3   key.Binding
	Num4   key.Binding
	Num5   key.Binding
	Num6   key.Binding
	Num7   key.Binding
	Num8   key.Binding
	Num9   key.Binding
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "switch"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Num1: key.NewBinding(key.WithKeys("1")),
	Num2: key.NewBinding(key.WithKeys("2")),
	Num3: key.NewBinding(key.WithKeys("3")),
	Num4: key.NewBinding(key.WithKeys("4")),
	Num5: key.NewBinding(key.WithKeys("5")),
	Num6: key.NewBinding(key.WithKeys("6")),
	Num7: key.NewBinding(key.WithKeys("7")),
	Num8: key.NewBinding(key.WithKeys("8")),
	Num9: key.NewBinding(key.WithKeys("9")),
}

// Model is the Bubble Tea model for the session picker.
type Model struct {
	tracker  *monitor.Tracker
	interval time.Duration

	sessions []monitor.Session
	cursor   int
	chosen   string
	quitting bool
	width    int
	height   int
}

// New creates a picker model reading sessions from the tracker.
func New(tracker *monitor.Tracker, interval time.Duration) Model {
	m := Model{
		tracker:  tracker,
		interval: interval,
		width:    80,
		height:   24,
	}
	if tracker != nil {
		m.sessions = tracker.Snapshot()
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshTickMsg:
		if m.tracker != nil {
			m.sessions = m.tracker.Snapshot()
			m.clampCursor()
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			m.moveUp()

		case key.Matches(msg, keys.Down):
			m.moveDown()

		case key.Matches(msg, keys.Select):
			if m.cursor < len(m.sessions) {
				m.chosen = m.sessions[m.cursor].Pane.ID
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.Num1):
			return m.jump(1)
		case key.Matches(msg, keys.Num2):
			return m.jump(2)
		case key.Matches(msg, keys.Num3):
			return m.jump(3)
		case key.Matches(msg, keys.Num4):
			return m.jump(4)
		case key.Matches(msg, keys.Num5):
			return m.jump(5)
		case key.Matches(msg, keys.Num6):
			return m.jump(6)
		case key.Matches(msg, keys.Num7):
			return m.jump(7)
		case key.Matches(msg, keys.Num8):
			return m.jump(8)
		case key.Matches(msg, keys.Num9):
			return m.jump(9)
		}
	}

	return m, nil
}

func (m *Model) moveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *Model) moveDown() {
	if m.cursor+1 < len(m.sessions) {
		m.cursor++
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.sessions) {
		m.cursor = len(m.sessions) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// jump selects the nth session (1-based) and quits.
func (m Model) jump(n int) (tea.Model, tea.Cmd) {
	idx := n - 1
	if idx < len(m.sessions) {
		m.cursor = idx
		m.chosen = m.sessions[idx].Pane.ID
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// Result returns the pane chosen by the user, or "" when the picker was
// dismissed without a selection.
func (m Model) Result() string {
	return m.chosen
}

func stateStyle(s state.SessionState) lipgloss.Style {
	switch s {
	case state.StateWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	case state.StateWaitingForApproval, state.StateWaitingForAnswer:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}
}

// showPreview reports whether the terminal is wide enough for the
// side-by-side pane preview.
func (m Model) showPreview() bool {
	return m.width >= 100
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.sessions) == 0 {
		return "\n  No Claude sessions found\n\n  q to quit\n"
	}

	listWidth := m.width - 4
	previewWidth := 0
	if m.showPreview() {
		listWidth = m.width / 2
		previewWidth = m.width - listWidth - 6
	}

	var list strings.Builder
	for i, s := range m.sessions {
		prefix := "   "
		if i < 9 {
			prefix = fmt.Sprintf("%d. ", i+1)
		}

		pointer := "  "
		if i == m.cursor {
			pointer = "▶ "
		}

		elapsed := util.FormatDurationCompact(time.Since(s.StateChangedAt))
		plain := fmt.Sprintf("%s%s%s %s  %s  [%s %s]",
			pointer, prefix, s.State.Icon(),
			s.Pane.ID, s.Pane.Project, s.State.Label(), elapsed)
		// Truncate before styling so escape codes don't skew the width.
		plain = Truncate(plain, listWidth)

		style := stateStyle(s.State)
		if i == m.cursor {
			style = style.Bold(true)
		}
		list.WriteString("  " + style.Render(plain) + "\n")
	}

	var b strings.Builder
	b.WriteString("\n")
	title := lipgloss.NewStyle().Bold(true).Render("Claude sessions")
	b.WriteString("  " + title + "\n\n")

	if previewWidth > 0 && m.cursor < len(m.sessions) {
		preview := m.renderPreview(previewWidth)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", preview))
	} else {
		b.WriteString(list.String())
	}

	help := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
		Render("1-9: jump  j/k: move  Enter: switch  q: quit")
	b.WriteString("\n  " + help + "\n")
	return b.String()
}

// renderPreview shows the tail of the selected pane, wrapped to fit.
func (m Model) renderPreview(width int) string {
	s := m.sessions[m.cursor]
	content := strings.TrimRight(s.Preview, "\n")
	if content == "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("(no capture)")
	}

	wrapped := wordwrap.String(content, width)
	lines := strings.Split(wrapped, "\n")

	maxLines := m.height - 8
	if maxLines < 3 {
		maxLines = 3
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Width(width).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

// Truncate shortens a rendered line to the given display width.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
