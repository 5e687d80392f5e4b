package journal

import "fmt"

// Verify checks a recorded container run against the synchronization
// contract: workers goroutines each appended the values 0..perWorker-1 in
// that relative order, no append was lost, and every observed snapshot is
// prefix-consistent.
//
// Prefix consistency follows from each worker appending 0, then 1, and so
// on: a snapshot can only contain value k from some worker if it also
// contains that worker's k-1, so across the whole snapshot the number of
// occurrences of k never exceeds the number of occurrences of k-1, and no
// value occurs more than workers times.
func Verify(events []Event, workers, perWorker int) error {
	appends := make(map[int][]int)

	for i, e := range events {
		if e.Worker < 0 || e.Worker >= workers {
			return fmt.Errorf("events[%d]: unknown worker %d (have %d workers)", i, e.Worker, workers)
		}
		switch e.Kind {
		case OpAppend:
			appends[e.Worker] = append(appends[e.Worker], e.Value)
		case OpSnapshot:
			if err := verifySnapshot(e.Observed, workers, perWorker); err != nil {
				return fmt.Errorf("events[%d] (worker %d, seq %d): %w", i, e.Worker, e.Seq, err)
			}
		case OpWrite:
			// Sink events carry no container state to check.
		default:
			return fmt.Errorf("events[%d]: unknown kind %q", i, e.Kind)
		}
	}

	for w := 0; w < workers; w++ {
		got := appends[w]
		if len(got) != perWorker {
			return fmt.Errorf("worker %d recorded %d appends, want %d", w, len(got), perWorker)
		}
		for i, v := range got {
			if v != i {
				return fmt.Errorf("worker %d appended %d at position %d, want %d", w, v, i, i)
			}
		}
	}

	return nil
}

func verifySnapshot(observed []int, workers, perWorker int) error {
	counts := make(map[int]int)
	for _, v := range observed {
		if v < 0 || v >= perWorker {
			return fmt.Errorf("snapshot contains out-of-range value %d", v)
		}
		counts[v]++
	}
	if counts[0] > workers {
		return fmt.Errorf("snapshot contains value 0 %d times, more than %d workers", counts[0], workers)
	}
	for v := 1; v < perWorker; v++ {
		if counts[v] > counts[v-1] {
			return fmt.Errorf("snapshot is not prefix-consistent: value %d occurs %d times, value %d occurs %d times",
				v, counts[v], v-1, counts[v-1])
		}
	}
	return nil
}
