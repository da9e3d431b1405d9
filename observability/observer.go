// Package observability carries the structured events emitted by State.
// Level values align with OpenTelemetry SeverityNumbers so events can be
// forwarded to an OTel collector without translation.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level is an OTel SeverityNumber. State uses the first number of each
// band; any value inside a band behaves the same.
type Level int

const (
	LevelVerbose Level = 5  // DEBUG band
	LevelInfo    Level = 9  // INFO band
	LevelWarning Level = 13 // WARN band
	LevelError   Level = 17 // ERROR band
)

// severityBands lists the OTel bands by upper bound. Levels above the last
// bound are FATAL and log at slog.LevelError.
var severityBands = []struct {
	upper Level
	text  string
	level slog.Level
}{
	{upper: 4, text: "TRACE", level: slog.LevelDebug},
	{upper: 8, text: "DEBUG", level: slog.LevelDebug},
	{upper: 12, text: "INFO", level: slog.LevelInfo},
	{upper: 16, text: "WARN", level: slog.LevelWarn},
	{upper: 20, text: "ERROR", level: slog.LevelError},
}

func (l Level) band() (string, slog.Level) {
	for _, b := range severityBands {
		if l <= b.upper {
			return b.text, b.level
		}
	}
	return "FATAL", slog.LevelError
}

// String returns the OTel severity text.
func (l Level) String() string {
	text, _ := l.band()
	return text
}

// SlogLevel returns the slog level events of this severity are logged at.
func (l Level) SlogLevel() slog.Level {
	_, level := l.band()
	return level
}

// EventType names an event, e.g. "state.update".
type EventType string

// Event is a single observation. Fields map to OTel LogRecord fields:
// Type→EventName, Level→SeverityNumber, Timestamp→Timestamp,
// Source→InstrumentationScope, Data→Attributes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// NewEvent stamps an event with the current time.
func NewEvent(typ EventType, level Level, source string, data map[string]any) Event {
	if data == nil {
		data = map[string]any{}
	}
	return Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	}
}

// Observer receives events. Implementations must not retain or mutate
// event.Data after OnEvent returns.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// NoOpObserver discards all events.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}

// MultiObserver fans out events to multiple observers.
type MultiObserver struct {
	observers []Observer
}

// NewMultiObserver creates a MultiObserver over the non-nil observers given.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered}
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, obs := range m.observers {
		obs.OnEvent(ctx, event)
	}
}

// OrNoOp returns obs, or NoOpObserver when obs is nil.
func OrNoOp(obs Observer) Observer {
	if obs == nil {
		return NoOpObserver{}
	}
	return obs
}
