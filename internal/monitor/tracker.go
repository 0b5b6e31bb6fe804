// Package monitor polls tmux panes and tracks the state of each Claude
// Code session over time.
package monitor

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Dicklesworthstone/claudeye/internal/events"
	"github.com/Dicklesworthstone/claudeye/internal/state"
	"github.com/Dicklesworthstone/claudeye/internal/tmux"
)

// Session is the tracked state of one pane.
type Session struct {
	Pane           tmux.AgentPane
	State          state.SessionState
	StateChangedAt time.Time // last transition, not last poll
	UpdatedAt      time.Time
	Preview        string // last captured pane content
}

// PaneSource lists panes and captures their contents. *tmux.Client
// satisfies it; tests substitute a fake.
type PaneSource interface {
	ListAgentPanes(ctx context.Context, command string) ([]tmux.AgentPane, error)
	CapturePane(ctx context.Context, paneID string, historyLines int) (string, error)
}

// Tracker polls a PaneSource on an interval and keeps a session per pane.
type Tracker struct {
	source       PaneSource
	command      string
	interval     time.Duration
	captureLines int
	logger       *events.Logger
	onTransition func(pane tmux.AgentPane, from, to state.SessionState)

	mu       sync.RWMutex
	sessions map[string]*Session // keyed by pane ID

	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithEventLogger records state transitions to the given logger.
func WithEventLogger(l *events.Logger) Option {
	return func(t *Tracker) {
		t.logger = l
	}
}

// WithOnTransition calls fn for each state transition, from the poll
// goroutine.
func WithOnTransition(fn func(pane tmux.AgentPane, from, to state.SessionState)) Option {
	return func(t *Tracker) {
		t.onTransition = fn
	}
}

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithCaptureLines extends each pane capture that many lines into the
// scrollback.
func WithCaptureLines(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.captureLines = n
		}
	}
}

// NewTracker creates a tracker polling source for panes running command.
func NewTracker(source PaneSource, command string, opts ...Option) *Tracker {
	t := &Tracker{
		source:   source,
		command:  command,
		interval: 2 * time.Second,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins polling in the background.
func (t *Tracker) Start(ctx context.Context) {
	ctx, t.cancel = context.WithCancel(ctx)
	go t.loop(ctx)
}

// Stop stops the tracker and waits for the poll loop to exit.
func (t *Tracker) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
	<-t.done
}

// SetInterval adjusts the poll interval of a running tracker. The new
// interval takes effect after the next tick.
func (t *Tracker) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	t.mu.Lock()
	t.interval = d
	t.mu.Unlock()
}

// Snapshot returns the tracked sessions sorted by pane ID.
func (t *Tracker) Snapshot() []Session {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Session, 0, len(t.sessions))
	for _, s := range t.sessions {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pane.ID < out[j].Pane.ID
	})
	return out
}

// Poll runs one poll cycle immediately. Useful for one-shot commands and
// to populate the tracker before the first tick.
func (t *Tracker) Poll(ctx context.Context) {
	t.pollOnce(ctx)
}

func (t *Tracker) loop(ctx context.Context) {
	defer close(t.done)

	t.pollOnce(ctx)

	for {
		t.mu.RLock()
		interval := t.interval
		t.mu.RUnlock()

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
			t.pollOnce(ctx)
		}
	}
}

// pollOnce scans panes and updates session states. A panic in a poll cycle
// is recovered so one bad capture cannot kill the loop.
func (t *Tracker) pollOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("monitor: recovered from poll panic: %v", r)
		}
	}()

	panes, err := t.source.ListAgentPanes(ctx, t.command)
	if err != nil {
		log.Printf("monitor: listing panes: %v", err)
		return
	}

	now := time.Now()
	seen := make(map[string]bool, len(panes))

	for _, pane := range panes {
		seen[pane.ID] = true

		content, err := t.source.CapturePane(ctx, pane.ID, t.captureLines)
		if err != nil {
			log.Printf("monitor: capturing %s: %v", pane.ID, err)
			content = ""
		}
		st := state.Detect(content)

		t.mu.Lock()
		s, ok := t.sessions[pane.ID]
		if !ok {
			s = &Session{Pane: pane, State: st, StateChangedAt: now}
			t.sessions[pane.ID] = s
		} else if s.State != st {
			t.logTransition(pane, s.State, st)
			s.State = st
			s.StateChangedAt = now
		}
		s.Pane = pane
		s.UpdatedAt = now
		s.Preview = content
		t.mu.Unlock()
	}

	// Drop sessions whose pane is gone.
	t.mu.Lock()
	for id := range t.sessions {
		if !seen[id] {
			delete(t.sessions, id)
		}
	}
	t.mu.Unlock()
}

func (t *Tracker) logTransition(pane tmux.AgentPane, from, to state.SessionState) {
	if t.onTransition != nil {
		t.onTransition(pane, from, to)
	}
	if t.logger == nil {
		return
	}
	if err := t.logger.Log(events.NewEvent(pane.ID, pane.Project, from.String(), to.String())); err != nil {
		log.Printf("monitor: logging transition: %v", err)
	}
}
