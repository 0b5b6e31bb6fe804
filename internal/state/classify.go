package state

import "strings"

// Detect classifies a pane capture. It is total: every input, including
// the empty string, maps to exactly one of StateWorking,
// StateWaitingForApproval, or StateIdle. Absence of any recognizable
// signal is treated as idle; there is no unknown state.
//
// The capture is not retained, and repeated calls with the same input
// return the same result. Detect is safe for concurrent use.
func Detect(content string) SessionState {
	lines := strings.Split(content, "\n")
	window := strings.Join(lastMeaningfulLines(lines, meaningfulWindow), "\n")

	p := patterns()
	for _, r := range p.rules {
		if r.match(p, window, lines) {
			return r.state
		}
	}
	return StateIdle
}
