// Package demo drives bounded worker scenarios against the guarded
// resources. A run spawns a fixed set of goroutines, each performing a
// bounded loop of operations on one shared resource, and joins them all
// before returning. Workers share nothing except the guarded resource and
// the operation journal.
package demo
