package testutil

import (
	"errors"
	"sync"
)

// RecordingSink is a ports.DiagnosticSink that keeps every reported error.
type RecordingSink struct {
	mu   sync.Mutex
	errs []error
}

// Report implements ports.DiagnosticSink.
func (s *RecordingSink) Report(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

// Errors returns a copy of the reported errors, oldest first.
func (s *RecordingSink) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]error, len(s.errs))
	copy(out, s.errs)
	return out
}

// Len returns how many errors were reported.
func (s *RecordingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errs)
}

// Count returns how many reported errors match target via errors.Is.
func (s *RecordingSink) Count(target error) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, err := range s.errs {
		if errors.Is(err, target) {
			n++
		}
	}
	return n
}

// Reset forgets every reported error.
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = nil
}
