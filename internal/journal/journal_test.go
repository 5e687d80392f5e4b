package journal

import (
	"sync"
	"testing"
)

func TestRecorder_ConcurrentRecords_AllKept(t *testing.T) {
	const workers = 8
	const perWorker = 100

	r := NewRecorder()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := 0; v < perWorker; v++ {
				r.Record(Event{Worker: w, Seq: v, Kind: OpAppend, Value: v})
			}
		}()
	}
	wg.Wait()

	events := r.Snapshot()
	if len(events) != workers*perWorker {
		t.Fatalf("recorded %d events, want %d", len(events), workers*perWorker)
	}

	for w, evs := range r.PerWorker() {
		if len(evs) != perWorker {
			t.Fatalf("worker %d has %d events, want %d", w, len(evs), perWorker)
		}
		for i, e := range evs {
			if e.Seq != i {
				t.Fatalf("worker %d event %d has seq %d; per-worker order lost", w, i, e.Seq)
			}
		}
	}
}

func TestRecorder_NilReceiver_Inert(t *testing.T) {
	var r *Recorder
	r.Record(Event{Kind: OpAppend}) // must not panic
	if got := r.Snapshot(); got != nil {
		t.Fatalf("expected nil snapshot, got %v", got)
	}
}

func TestRecorder_CopiesObservedSlice(t *testing.T) {
	r := NewRecorder()
	obs := []int{0, 1}
	r.Record(Event{Kind: OpSnapshot, Observed: obs})
	obs[0] = 99

	got := r.Snapshot()[0].Observed
	if got[0] != 0 {
		t.Fatalf("recorded snapshot aliases the caller's slice: %v", got)
	}
}

type panickySink struct{}

func (panickySink) Record(Event) { panic("buggy sink") }

func TestSafeRecord_SwallowsPanicsAndNil(t *testing.T) {
	SafeRecord(nil, Event{})
	SafeRecord(panickySink{}, Event{}) // must not propagate
}

func TestVerify_AcceptsWellFormedRun(t *testing.T) {
	events := []Event{
		{Worker: 0, Seq: 0, Kind: OpAppend, Value: 0},
		{Worker: 1, Seq: 0, Kind: OpAppend, Value: 0},
		{Worker: 0, Seq: 0, Kind: OpSnapshot, Observed: []int{0, 0}},
		{Worker: 0, Seq: 1, Kind: OpAppend, Value: 1},
		{Worker: 1, Seq: 1, Kind: OpAppend, Value: 1},
		{Worker: 1, Seq: 1, Kind: OpSnapshot, Observed: []int{0, 0, 1, 1}},
	}
	if err := Verify(events, 2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerify_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		events    []Event
		workers   int
		perWorker int
	}{
		{
			name: "lost update",
			events: []Event{
				{Worker: 0, Seq: 0, Kind: OpAppend, Value: 0},
			},
			workers:   1,
			perWorker: 2,
		},
		{
			name: "out of order appends",
			events: []Event{
				{Worker: 0, Seq: 0, Kind: OpAppend, Value: 1},
				{Worker: 0, Seq: 1, Kind: OpAppend, Value: 0},
			},
			workers:   1,
			perWorker: 2,
		},
		{
			name: "torn snapshot",
			events: []Event{
				{Worker: 0, Seq: 0, Kind: OpAppend, Value: 0},
				{Worker: 0, Seq: 1, Kind: OpAppend, Value: 1},
				{Worker: 0, Seq: 1, Kind: OpSnapshot, Observed: []int{1}},
			},
			workers:   1,
			perWorker: 2,
		},
		{
			name: "snapshot value from too many workers",
			events: []Event{
				{Worker: 0, Seq: 0, Kind: OpSnapshot, Observed: []int{0, 0}},
			},
			workers:   1,
			perWorker: 1,
		},
		{
			name: "unknown worker",
			events: []Event{
				{Worker: 3, Seq: 0, Kind: OpAppend, Value: 0},
			},
			workers:   1,
			perWorker: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify(tt.events, tt.workers, tt.perWorker); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
