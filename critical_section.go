package uthread

import "sync"

// criticalSection stands in for the reference's sigprocmask(SIGVTALRM)
// discipline: acquire blocks delivery of scheduling decisions (here, the
// preemption-timer goroutine acquires the same lock before touching any
// TCB, ready queue entry, or global counter), release re-admits them. It
// is a plain mutex rather than anything signal-specific because Go gives
// no per-goroutine signal mask to manipulate — the single process-wide
// SIGVTALRM handler goroutine and every public API entry point contend for
// the same lock instead, which yields the identical "no two pieces of
// scheduler code execute concurrently" guarantee the design's concurrency
// model calls for.
type criticalSection struct {
	mu sync.Mutex
}

func (c *criticalSection) acquire() { c.mu.Lock() }
func (c *criticalSection) release() { c.mu.Unlock() }
