// Package stream implements the per-run progress channel between a workflow
// execution and its observer, plus the SSE wire encoding for it. Delivery is
// best-effort: a slow or disconnected consumer never blocks the engine.
package stream

import (
	"encoding/json"
	"sync"

	"github.com/canvasflow/canvasflow/pkg/models"
)

// DoneSentinel is the literal data frame sent when a run finishes.
const DoneSentinel = "[DONE]"

// errorEventName tags the SSE frame carrying a run-aborting failure.
const errorEventName = "error"

// Event is one frame on the channel. An empty Name is the default
// (unnamed) SSE event.
type Event struct {
	Name string
	Data string
}

// Sink is a one-way, multi-producer-single-consumer event channel attached
// to a single run. A nil *Sink is valid and drops everything, which is how
// synchronous (non-streaming) runs are expressed.
type Sink struct {
	mu     sync.Mutex
	closed bool
	events chan Event
}

// sinkBuffer bounds the number of undelivered frames kept for a consumer
// that has stopped reading. Overflow is dropped, not blocked on.
const sinkBuffer = 256

// NewSink creates an open sink.
func NewSink() *Sink {
	return &Sink{events: make(chan Event, sinkBuffer)}
}

// Events returns the consumer side of the channel. It is closed by Close
// when the producing run finishes.
func (s *Sink) Events() <-chan Event {
	if s == nil {
		return nil
	}

	return s.events
}

// Close marks the end of the stream. Only the producing run may call it;
// subsequent sends are dropped.
func (s *Sink) Close() {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true
	close(s.events)
}

// send enqueues a frame if there is room, and drops it otherwise.
func (s *Sink) send(event Event) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case s.events <- event:
	default:
		// Consumer stopped draining; delivery is best-effort.
	}
}

// SendJSON emits a LogData payload as a default-named data frame.
func (s *Sink) SendJSON(data models.LogData) {
	payload, err := json.Marshal(data)
	if err != nil {
		// LogData is a plain struct; this cannot happen in practice.
		return
	}

	s.send(Event{Data: string(payload)})
}

// SendString emits a plain data frame, used for the completion sentinel.
func (s *Sink) SendString(data string) {
	s.send(Event{Data: data})
}

// SendError emits an error-named frame carrying free text.
func (s *Sink) SendError(text string) {
	s.send(Event{Name: errorEventName, Data: text})
}
