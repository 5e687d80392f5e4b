package guard

import (
	"io"
	"sync"
	"time"
)

// Sink serializes writes from concurrent workers to a shared destination.
//
// A Sink is an explicitly constructed resource handed by reference to every
// worker that needs the destination; the mutex lives with the destination
// rather than in package-level state.
type Sink struct {
	mu        sync.Mutex
	w         io.Writer
	emitDelay time.Duration
}

// NewSink wraps w. emitDelay is the pause inserted between the units of a
// WriteAtomic call; it exists to widen the race window that the mutex closes,
// and may be zero.
func NewSink(w io.Writer, emitDelay time.Duration) *Sink {
	return &Sink{w: w, emitDelay: emitDelay}
}

// WriteAtomic emits text one rune at a time, pausing emitDelay between runes,
// with the lock held for the whole emission. Two concurrent WriteAtomic calls
// never interleave: each call's bytes appear contiguously in the output, in
// some order across callers.
//
// The first write error aborts the emission; the lock is still released.
func (s *Sink) WriteAtomic(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range text {
		if _, err := io.WriteString(s.w, string(r)); err != nil {
			return err
		}
		if s.emitDelay > 0 {
			time.Sleep(s.emitDelay)
		}
	}
	return nil
}

// Write makes Sink an io.Writer: a single locked pass-through write, so
// whole buffers handed to it stay contiguous relative to WriteAtomic calls.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
