package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"lockstep/internal/demo"
)

const (
	ExitSuccess           = 0
	ExitDemoFailure       = 1
	ExitInvalidInvocation = 2
	ExitInternalError     = 3
)

type DemoKind string

const (
	DemoContainer DemoKind = "container"
	DemoSink      DemoKind = "sink"
	DemoAll       DemoKind = "all"
)

// Invocation is the fully canonicalized, deterministic description of a run.
//
// The scenario constants (worker count, values per worker, pauses,
// messages) are configuration rather than literals; the defaults reproduce
// the stock 3-worker runs.
type Invocation struct {
	Demo      DemoKind
	Workers   int
	PerWorker int
	StepDelay time.Duration
	EmitDelay time.Duration
	Messages  []string
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation parses CLI flags into a canonical Invocation.
//
// Determinism goals:
//   - Does not read env vars.
//   - Behavior depends only on the argument slice.
func ParseInvocation(args []string) (Invocation, error) {
	fs := flag.NewFlagSet("lockstep", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	def := demo.DefaultConfig()

	var demoName string
	var workers int
	var perWorker int
	var stepDelay time.Duration
	var emitDelay time.Duration
	var messages string

	fs.StringVar(&demoName, "demo", string(DemoAll), "Which demo to run: container|sink|all")
	fs.IntVar(&workers, "workers", def.Workers, "Number of container-demo workers.")
	fs.IntVar(&perWorker, "count", def.PerWorker, "Values each container worker appends (0..count-1).")
	fs.DurationVar(&stepDelay, "step-delay", def.StepDelay, "Pause between a worker's append and its snapshot render.")
	fs.DurationVar(&emitDelay, "emit-delay", def.EmitDelay, "Pause between runes of an atomic sink write.")
	fs.StringVar(&messages, "messages", strings.Join(def.Messages, ","), "Comma-separated strings for the sink demo, one worker each.")

	if err := fs.Parse(args); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 0 {
		return Invocation{}, invalidInvocationf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}

	kind, err := parseDemoKind(demoName)
	if err != nil {
		return Invocation{}, err
	}
	if workers < 0 {
		return Invocation{}, invalidInvocationf("--workers must be >= 0 (got %d)", workers)
	}
	if perWorker < 0 {
		return Invocation{}, invalidInvocationf("--count must be >= 0 (got %d)", perWorker)
	}
	if stepDelay < 0 {
		return Invocation{}, invalidInvocationf("--step-delay must be >= 0 (got %v)", stepDelay)
	}
	if emitDelay < 0 {
		return Invocation{}, invalidInvocationf("--emit-delay must be >= 0 (got %v)", emitDelay)
	}

	return Invocation{
		Demo:      kind,
		Workers:   workers,
		PerWorker: perWorker,
		StepDelay: stepDelay,
		EmitDelay: emitDelay,
		Messages:  splitMessages(messages),
	}, nil
}

func parseDemoKind(raw string) (DemoKind, error) {
	n := strings.ToLower(strings.TrimSpace(raw))
	switch DemoKind(n) {
	case DemoContainer, DemoSink, DemoAll:
		return DemoKind(n), nil
	case "":
		return "", invalidInvocationf("--demo is required")
	default:
		return "", invalidInvocationf("invalid --demo %q (expected container|sink|all)", raw)
	}
}

// splitMessages splits a comma-separated list, dropping empty entries so
// that an empty flag value means "no sink workers" (the boundary case).
func splitMessages(raw string) []string {
	var out []string
	for _, m := range strings.Split(raw, ",") {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

// ExitCode extracts a semantic exit code from a ParseInvocation error.
// If the error is not a known invocation error, it returns ExitInternalError.
func ExitCode(err error) int {
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	if err == nil {
		return ExitSuccess
	}
	return ExitInternalError
}
