package manager

import "time"

// Result is what an HTTP-path generation returns: one entry per image
// produced, in batch order.
type Result struct {
	Model   string
	Images  [][]byte
	Created time.Time
}

// stats are the counters behind /status. Guarded by Manager.mu.
type stats struct {
	total       uint64
	failed      uint64
	images      uint64
	lastError   string
	lastErrorAt time.Time
	lastModel   string
}

// outcome carries a detached pipeline result back to the waiting caller.
type outcome struct {
	images [][]byte
	err    error
}
