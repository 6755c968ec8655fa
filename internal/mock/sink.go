package mock

import (
	"sync"
	"time"
)

// FailureEvent is one recorded sink event.
type FailureEvent struct {
	Label   string
	Message string
}

// Sink records failure events for assertions.
type Sink struct {
	mu     sync.Mutex
	events []FailureEvent
}

func (s *Sink) RecordFailure(label, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, FailureEvent{Label: label, Message: message})
}

// Events returns a copy of every recorded event so far.
func (s *Sink) Events() []FailureEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FailureEvent(nil), s.events...)
}

// WaitForEvents polls until at least n events were recorded or the timeout
// elapses, and reports whether the count was reached.
func (s *Sink) WaitForEvents(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if len(s.Events()) >= n {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}
