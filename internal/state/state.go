// Package state classifies the activity state of a Claude Code pane
// from a plain-text capture of its terminal output. Detection is a pure
// function of the capture: a fixed, priority-ordered set of patterns is
// evaluated against the trailing window of meaningful lines, and the
// first match wins.
package state

// SessionState represents the current activity state of a Claude pane.
type SessionState string

const (
	// StateWorking indicates the agent is actively processing a request.
	StateWorking SessionState = "working"
	// StateWaitingForApproval indicates the agent is blocked on a
	// permission or confirmation dialog.
	StateWaitingForApproval SessionState = "waiting_for_approval"
	// StateWaitingForAnswer is reserved for UI layers that distinguish
	// free-form questions from approval dialogs. Detect never returns it.
	StateWaitingForAnswer SessionState = "waiting_for_answer"
	// StateIdle indicates the agent is sitting at its input prompt.
	StateIdle SessionState = "idle"
	// StateNotRunning is reserved for UI layers that track panes whose
	// agent process has exited. Detect never returns it.
	StateNotRunning SessionState = "not_running"
)

// String returns the string representation of the state.
func (s SessionState) String() string {
	return string(s)
}

// Icon returns the visual indicator for a state.
func (s SessionState) Icon() string {
	switch s {
	case StateWorking:
		return "●"
	case StateWaitingForApproval, StateWaitingForAnswer:
		return "●"
	case StateNotRunning:
		return "✕"
	default:
		return "○"
	}
}

// Label returns a short uppercase label for status lines.
func (s SessionState) Label() string {
	switch s {
	case StateWorking:
		return "WORKING"
	case StateWaitingForApproval:
		return "APPROVAL"
	case StateWaitingForAnswer:
		return "QUESTION"
	case StateNotRunning:
		return "GONE"
	default:
		return "IDLE"
	}
}
