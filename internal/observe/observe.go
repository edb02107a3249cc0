// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

// Package observe provides the processing-event sink used by the submission
// pipeline.
//
// # Architecture
//
// The pipeline reports human-readable step events ("texts cleaned", "12 pairs
// matched") so the submission frontend can render live progress. The sink is
// injected into the service — the pipeline never touches process-wide state.
package observe

import (
	"sync"
	"time"
)

// Event is a single processing-log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
}

// Event levels.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Sink receives pipeline step events.
//
// Implementations must be safe for concurrent use: submissions are processed
// concurrently by the HTTP runtime.
type Sink interface {
	Record(message, level string)
}

// # Ring Buffer Sink

// Ring is a fixed-capacity, in-memory [Sink] that keeps the most recent
// events. It backs the GET /api/v1/logs endpoint.
type Ring struct {
	mu     sync.Mutex
	events []Event
	cap    int
	now    func() time.Time
}

// DefaultRingCapacity bounds the live-log buffer.
const DefaultRingCapacity = 50

// NewRing creates a ring sink holding at most capacity events.
// A capacity <= 0 falls back to [DefaultRingCapacity].
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &Ring{
		events: make([]Event, 0, capacity),
		cap:    capacity,
		now:    time.Now,
	}
}

// Record appends an event, evicting the oldest when the buffer is full.
func (r *Ring) Record(message, level string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) == r.cap {
		copy(r.events, r.events[1:])
		r.events = r.events[:r.cap-1]
	}

	r.events = append(r.events, Event{
		Timestamp: r.now(),
		Message:   message,
		Level:     level,
	})
}

// Snapshot returns a copy of the buffered events, oldest first.
func (r *Ring) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// # No-op Sink

// Discard is a [Sink] that drops every event. Used in tests and batch tools.
type Discard struct{}

// Record implements [Sink].
func (Discard) Record(string, string) {}
