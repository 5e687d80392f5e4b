package demo

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"lockstep/internal/guard"
	"lockstep/internal/journal"
)

// Config describes one demo run. The zero value is a valid (empty) run;
// DefaultConfig returns the stock scenarios.
type Config struct {
	// Workers is the number of container-demo goroutines.
	Workers int

	// PerWorker is how many values (0..PerWorker-1) each container worker
	// appends, with a snapshot render after each append.
	PerWorker int

	// StepDelay is the pause each container worker takes between appending
	// and rendering. It widens the window in which other workers can
	// interleave whole operations.
	StepDelay time.Duration

	// EmitDelay is the per-rune pause of the sink demo's guarded sink.
	// The caller applies it when constructing the guard.Sink.
	EmitDelay time.Duration

	// Messages are the strings the sink demo emits, one worker per message.
	Messages []string

	// MaxParallel bounds how many workers run at once. Zero or negative
	// means no bound.
	MaxParallel int
}

// DefaultConfig returns the stock scenario: 3 workers appending 0..4 with
// a 50ms pause, and the messages "ABC", "123", "xyz" emitted at one rune
// per millisecond.
func DefaultConfig() Config {
	return Config{
		Workers:   3,
		PerWorker: 5,
		StepDelay: 50 * time.Millisecond,
		EmitDelay: time.Millisecond,
		Messages:  []string{"ABC", "123", "xyz"},
	}
}

// RunContainer runs the internally-synchronized-container scenario:
// cfg.Workers goroutines each append 0..cfg.PerWorker-1 to list, rendering
// a snapshot to out after every append. It returns after every worker has
// finished; there is no way to abort a run early.
//
// With zero workers it returns immediately, leaving list and out untouched.
func RunContainer(cfg Config, list *guard.List, out io.Writer, j journal.Sink) error {
	if list == nil {
		return fmt.Errorf("nil list")
	}
	if out == nil {
		return fmt.Errorf("nil output writer")
	}

	var g errgroup.Group
	if cfg.MaxParallel > 0 {
		g.SetLimit(cfg.MaxParallel)
	}

	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			for v := 0; v < cfg.PerWorker; v++ {
				list.Append(v)
				journal.SafeRecord(j, journal.Event{Worker: w, Seq: v, Kind: journal.OpAppend, Value: v})

				if cfg.StepDelay > 0 {
					time.Sleep(cfg.StepDelay)
				}

				if err := list.Render(out); err != nil {
					return fmt.Errorf("worker %d: rendering after value %d: %w", w, v, err)
				}
				journal.SafeRecord(j, journal.Event{Worker: w, Seq: v, Kind: journal.OpSnapshot, Observed: list.Snapshot()})
			}
			return nil
		})
	}

	return g.Wait()
}

// RunSink runs the guarded-sink scenario: one goroutine per message, each
// emitting its message atomically through sink. It returns after every
// worker has finished. With no messages it returns immediately.
func RunSink(cfg Config, sink *guard.Sink, j journal.Sink) error {
	if sink == nil {
		return fmt.Errorf("nil sink")
	}

	var g errgroup.Group
	if cfg.MaxParallel > 0 {
		g.SetLimit(cfg.MaxParallel)
	}

	for i, msg := range cfg.Messages {
		g.Go(func() error {
			if err := sink.WriteAtomic(msg); err != nil {
				return fmt.Errorf("worker %d: emitting %q: %w", i, msg, err)
			}
			journal.SafeRecord(j, journal.Event{Worker: i, Kind: journal.OpWrite, Text: msg})
			return nil
		})
	}

	return g.Wait()
}
