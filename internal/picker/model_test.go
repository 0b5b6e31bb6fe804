package picker

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/claudeye/internal/monitor"
	"github.com/Dicklesworthstone/claudeye/internal/state"
	"github.com/Dicklesworthstone/claudeye/internal/tmux"
)

func session(id string) monitor.Session {
	return monitor.Session{
		Pane:           tmux.AgentPane{ID: id, Dir: "/tmp", Project: "test", Command: "claude"},
		State:          state.StateIdle,
		StateChangedAt: time.Now(),
	}
}

func modelWith(ids ...string) Model {
	m := New(nil, time.Second)
	for _, id := range ids {
		m.sessions = append(m.sessions, session(id))
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestCursorMovement(t *testing.T) {
	m := modelWith("a", "b", "c")

	m.moveDown()
	if m.cursor != 1 {
		t.Errorf("cursor = %d after one down, want 1", m.cursor)
	}
	m.moveDown()
	m.moveDown() // stops at last
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped at end)", m.cursor)
	}

	m.moveUp()
	if m.cursor != 1 {
		t.Errorf("cursor = %d after up, want 1", m.cursor)
	}
	m.moveUp()
	m.moveUp() // stops at first
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (clamped at start)", m.cursor)
	}
}

func TestEnterChoosesCurrentSession(t *testing.T) {
	m := modelWith("pane1", "pane2")

	next, _ := m.Update(keyMsg("j"))
	next, cmd := next.(Model).Update(keyMsg("enter"))

	got := next.(Model)
	if got.Result() != "pane2" {
		t.Errorf("Result() = %q, want %q", got.Result(), "pane2")
	}
	if cmd == nil {
		t.Error("expected a quit command after selection")
	}
}

func TestNumberJump(t *testing.T) {
	m := modelWith("alpha", "beta", "gamma")

	next, cmd := m.Update(keyMsg("3"))
	got := next.(Model)
	if got.Result() != "gamma" {
		t.Errorf("Result() = %q, want %q", got.Result(), "gamma")
	}
	if cmd == nil {
		t.Error("expected a quit command after number jump")
	}
}

func TestNumberJumpOutOfRange(t *testing.T) {
	m := modelWith("only")

	next, cmd := m.Update(keyMsg("9"))
	got := next.(Model)
	if got.Result() != "" {
		t.Errorf("Result() = %q, want empty for out-of-range jump", got.Result())
	}
	if cmd != nil {
		t.Error("out-of-range jump should not quit")
	}
}

func TestQuitLeavesNoSelection(t *testing.T) {
	m := modelWith("a", "b")

	next, cmd := m.Update(keyMsg("q"))
	got := next.(Model)
	if got.Result() != "" {
		t.Errorf("Result() = %q, want empty after quit", got.Result())
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}
}

func TestViewListsSessions(t *testing.T) {
	m := modelWith("main:0.1", "dev:1.0")
	m.width = 80
	m.height = 24

	view := m.View()
	for _, want := range []string{"main:0.1", "dev:1.0", "1. ", "2. ", "Enter: switch"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m := New(nil, time.Second)
	if !strings.Contains(m.View(), "No Claude sessions found") {
		t.Errorf("empty view = %q", m.View())
	}
}

func TestClampCursorAfterRefresh(t *testing.T) {
	m := modelWith("a", "b", "c")
	m.cursor = 2

	m.sessions = m.sessions[:1]
	m.clampCursor()
	if m.cursor != 0 {
		t.Errorf("cursor = %d after shrink, want 0", m.cursor)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abc…" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("ok", 10); got != "ok" {
		t.Errorf("Truncate() = %q", got)
	}
}
