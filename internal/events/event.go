// Package events records session state transitions to a JSONL log.
package events

import "time"

// Event is one state transition of a tracked pane.
type Event struct {
	Timestamp time.Time `json:"ts"`
	PaneID    string    `json:"pane_id"`
	Project   string    `json:"project"`
	From      string    `json:"from"`
	To        string    `json:"to"`
}

// NewEvent creates a transition event stamped with the current time.
func NewEvent(paneID, project, from, to string) *Event {
	return &Event{
		Timestamp: time.Now().UTC(),
		PaneID:    paneID,
		Project:   project,
		From:      from,
		To:        to,
	}
}
