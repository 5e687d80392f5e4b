package guard

import (
	"io"
	"strconv"
	"strings"
	"sync"
)

// List is an internally synchronized, insertion-ordered sequence of integers.
//
// Every method acquires the list's mutex before touching the sequence, so any
// number of goroutines may call any combination of methods concurrently; the
// mutex totally orders all operations on one List.
type List struct {
	mu   sync.Mutex
	vals []int
}

func NewList() *List { return &List{} }

// Append adds v to the end of the sequence.
func (l *List) Append(v int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vals = append(l.vals, v)
}

// Len reports the current number of elements.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.vals)
}

// Snapshot returns a point-in-time copy of the sequence. The copy shares no
// storage with the list, so callers can never observe a later mutation.
func (l *List) Snapshot() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]int, len(l.vals))
	copy(out, l.vals)
	return out
}

// Render writes the sequence to w as a single ", "-joined line.
//
// The write happens while the lock is held: concurrent Appends are excluded
// for the whole read-and-emit step, not just the read. Rendering therefore
// blocks other mutators for the duration of the write; that is the point of
// the demo, not an accident.
func (l *List) Render(w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	for i, v := range l.vals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}
