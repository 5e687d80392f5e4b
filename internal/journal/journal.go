// Package journal collects the operations workers perform against a guarded
// resource so that tests and callers can verify synchronization properties
// after a run. The journal is observational only: recording must never
// affect demo behavior.
package journal

import "sync"

// Kind is the stable discriminator for a recorded operation.
type Kind string

const (
	OpAppend   Kind = "Append"
	OpSnapshot Kind = "Snapshot"
	OpWrite    Kind = "Write"
)

// Event is a single operation performed by one worker.
type Event struct {
	// Worker identifies the worker that performed the operation.
	Worker int

	// Seq is the worker-local iteration number.
	Seq int

	Kind Kind

	// Value is the appended integer for OpAppend events.
	Value int

	// Observed is the container snapshot seen by an OpSnapshot event.
	Observed []int

	// Text is the emitted string for OpWrite events.
	Text string
}

// Sink is the minimal interface the demo driver depends on.
//
// Record must be inert:
//   - must not panic (implementations should guard themselves)
//   - must not return errors
//
// The caller must assume Record may be a no-op.
type Sink interface {
	Record(e Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(Event) {}

// SafeRecord records an event and guarantees inertness even if the sink is
// buggy. It intentionally swallows panics.
func SafeRecord(s Sink, e Event) {
	if s == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	s.Record(e)
}

// Recorder is a concurrency-safe in-memory collector.
//
// Concurrency note:
// Recording uses a single mutex. This may add contention, but verification
// only depends on per-worker relative order, which the mutex preserves.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder { return &Recorder{} }

// Record never panics (it recovers internally) and never returns an error.
// The Observed slice is copied so later caller mutations cannot leak in.
func (r *Recorder) Record(e Event) {
	if r == nil {
		return
	}
	defer func() {
		_ = recover()
	}()

	if len(e.Observed) > 0 {
		obs := make([]int, len(e.Observed))
		copy(obs, e.Observed)
		e.Observed = obs
	}

	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all recorded events.
func (r *Recorder) Snapshot() []Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// PerWorker groups the recorded events by worker, keeping each worker's
// relative order.
func (r *Recorder) PerWorker() map[int][]Event {
	out := make(map[int][]Event)
	for _, e := range r.Snapshot() {
		out[e.Worker] = append(out[e.Worker], e)
	}
	return out
}
