package cli

import (
	"context"
	"fmt"
	"io"

	"lockstep/internal/demo"
	"lockstep/internal/guard"
	"lockstep/internal/journal"
)

type Result struct {
	ExitCode int
}

// Execute maps a canonical Invocation to demo execution.
//
// Responsibilities:
//   - Construct the guarded resources and hand them to the workers by
//     reference; nothing here lives in package-level state.
//   - Run the selected demo(s) to completion; the demos always wait for
//     every worker, and a failure in one demo skips the next.
//   - Translate outcomes to semantic exit codes.
//
// ctx is accepted for call-site symmetry with the entry point; a started
// run cannot be aborted, so it is not consulted.
func Execute(ctx context.Context, inv Invocation, out io.Writer) (Result, error) {
	if out == nil {
		return Result{ExitCode: ExitInternalError}, fmt.Errorf("nil output writer")
	}

	cfg := demo.Config{
		Workers:   inv.Workers,
		PerWorker: inv.PerWorker,
		StepDelay: inv.StepDelay,
		EmitDelay: inv.EmitDelay,
		Messages:  inv.Messages,
	}

	if inv.Demo == DemoContainer || inv.Demo == DemoAll {
		list := guard.NewList()
		if err := demo.RunContainer(cfg, list, out, journal.NopSink{}); err != nil {
			return Result{ExitCode: ExitDemoFailure}, err
		}
	}

	if inv.Demo == DemoSink || inv.Demo == DemoAll {
		sink := guard.NewSink(out, cfg.EmitDelay)
		if err := demo.RunSink(cfg, sink, journal.NopSink{}); err != nil {
			return Result{ExitCode: ExitDemoFailure}, err
		}
	}

	return Result{ExitCode: ExitSuccess}, nil
}
