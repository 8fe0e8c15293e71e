package manager

import (
	"sync"
	"sync/atomic"
)

// Gate is the single accelerator slot. At most one holder at a time; waiters
// are not ordered. There is no timeout and no cancellation.
type Gate struct {
	ch      chan struct{} // size 1: single in-flight generation
	waiters atomic.Int64
}

// NewGate returns an unheld gate.
func NewGate() *Gate { return &Gate{ch: make(chan struct{}, 1)} }

// Acquire blocks until the gate is free and returns a release func to be
// deferred. Calling release more than once is a no-op.
func (g *Gate) Acquire() (release func()) {
	g.waiters.Add(1)
	g.ch <- struct{}{}
	g.waiters.Add(-1)
	var once sync.Once
	return func() {
		once.Do(func() { <-g.ch })
	}
}

// Busy reports whether a generation currently holds the gate.
func (g *Gate) Busy() bool { return len(g.ch) == 1 }

// Waiters returns the number of callers blocked in Acquire.
func (g *Gate) Waiters() int { return int(g.waiters.Load()) }
