// Package guard provides the two internally synchronized resources the
// demos run against:
//   - List: a growable integer sequence whose every read and write happens
//     under the sequence's own mutex
//   - Sink: a shared output destination whose multi-step writes are made
//     atomic by a mutex held for the duration of the write
//
// Each resource owns exactly one lock and never acquires another lock while
// holding its own, so no lock ordering concerns arise between them.
package guard
