// Package audit records launch events.
// Events are stored as JSON Lines (JSONL) in a single launches.jsonl file.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType classifies a launch event.
type EventType string

const (
	EventLaunch  EventType = "launch"
	EventStart   EventType = "start"
	EventReady   EventType = "ready"
	EventFailure EventType = "failure"
)

// FileName is the event log inside the history directory.
const FileName = "launches.jsonl"

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	DomainID  string    `json:"domainId"`
	World     string    `json:"world,omitempty"`
	Process   string    `json:"process,omitempty"`
	PID       int       `json:"pid,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Logger appends and reads launch events under dir.
type Logger struct {
	dir string
	mu  sync.Mutex
}

// NewLogger creates a new audit logger rooted at dir.
func NewLogger(dir string) *Logger {
	return &Logger{dir: dir}
}

// Path returns the path of the event log.
func (l *Logger) Path() string {
	return filepath.Join(l.dir, FileName)
}

// Log appends events to the log in the given order.
func (l *Logger) Log(events ...Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(l.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	now := time.Now()
	w := bufio.NewWriter(f)
	for _, event := range events {
		if event.Timestamp.IsZero() {
			event.Timestamp = now
		}
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, domainID, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		DomainID:  domainID,
		Details:   details,
	})
}

// Events reads the events for domainID in chronological order. An empty
// domainID returns every event.
func (l *Logger) Events(domainID string) ([]Event, error) {
	f, err := os.Open(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		if domainID != "" && event.DomainID != domainID {
			continue
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}

// Clear deletes the event log.
func (l *Logger) Clear() error {
	if err := os.Remove(l.Path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
