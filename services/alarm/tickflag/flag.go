// services/alarm/tickflag/flag.go

// Package tickflag is the one-slot signal between interrupt handlers and the
// main loop. Handlers only Set; the loop only Take()s before waiting again.
package tickflag

import "sync/atomic"

type Flag struct {
	set  atomic.Bool
	wake chan struct{} // capacity 1, coalesced
}

func New() *Flag {
	return &Flag{wake: make(chan struct{}, 1)}
}

// Set marks a tick as occurred. Safe from interrupt context: it never blocks
// and never allocates. Repeated Sets before a Take coalesce.
func (f *Flag) Set() {
	f.set.Store(true)
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Take consumes a pending tick and reports whether there was one.
func (f *Flag) Take() bool {
	return f.set.CompareAndSwap(true, false)
}

// Pending reports a tick without consuming it.
func (f *Flag) Pending() bool { return f.set.Load() }

// Wake is signalled after every Set. Host CPU models block on it; a receive
// does not consume the tick itself.
func (f *Flag) Wake() <-chan struct{} { return f.wake }
