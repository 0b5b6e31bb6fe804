package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultRetentionDays is the number of days to retain log entries.
const DefaultRetentionDays = 30

// rotationCheckInterval is how often to consider rotation (in events).
const rotationCheckInterval = 100

// Logger appends events to a JSONL file, pruning old entries daily.
type Logger struct {
	path          string
	retentionDays int
	enabled       bool

	mu           sync.Mutex
	file         *os.File
	eventCount   int
	lastRotation time.Time
}

// LoggerOptions configures the event logger.
type LoggerOptions struct {
	Path          string
	RetentionDays int
	Enabled       bool
}

// NewLogger creates a new event logger. A disabled logger accepts Log calls
// and does nothing.
func NewLogger(opts LoggerOptions) (*Logger, error) {
	if opts.RetentionDays == 0 {
		opts.RetentionDays = DefaultRetentionDays
	}

	l := &Logger{
		path:          opts.Path,
		retentionDays: opts.RetentionDays,
		enabled:       opts.Enabled && opts.Path != "",
		lastRotation:  time.Now(),
	}
	if !l.enabled {
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l.file = f
	return l, nil
}

// Log writes one event.
func (l *Logger) Log(event *Event) error {
	if !l.enabled {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}

	l.eventCount++
	if l.eventCount%rotationCheckInterval == 0 {
		go l.maybeRotate()
	}
	return nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) maybeRotate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	// At most once per day.
	if time.Since(l.lastRotation) < 24*time.Hour {
		return
	}
	l.lastRotation = time.Now()

	if err := l.pruneOldEntries(); err != nil {
		fmt.Fprintf(os.Stderr, "event log rotation error: %v\n", err)
	}
}

// pruneOldEntries rewrites the log keeping only entries newer than the
// retention cutoff. Must be called with l.mu held.
func (l *Logger) pruneOldEntries() error {
	tmpFile, err := os.CreateTemp(filepath.Dir(l.path), "events-rotate-*.jsonl")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	src, err := os.Open(l.path)
	if err != nil {
		tmpFile.Close()
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	cutoff := time.Now().AddDate(0, 0, -l.retentionDays)
	scanner := bufio.NewScanner(src)
	writer := bufio.NewWriter(tmpFile)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			// Keep malformed entries.
			writer.Write(line)
			writer.WriteByte('\n')
			continue
		}
		if ev.Timestamp.After(cutoff) {
			writer.Write(line)
			writer.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("scanning log file: %w", err)
	}
	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("flushing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		if f, openErr := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); openErr == nil {
			l.file = f
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("reopening log file: %w", err)
	}
	l.file = f
	return nil
}
