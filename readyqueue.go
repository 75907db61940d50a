package uthread

// noTID is the dequeue-on-empty sentinel. It is not a valid ThreadID (IDs
// are non-negative), so callers can compare directly against it.
const noTID ThreadID = -1

// readyQueue is a bounded FIFO of ThreadID, backed by a power-of-two ring
// buffer addressed with read/write cursors and a mask — the same shape as
// this module's sliding-window ring buffer for rate accounting, simplified
// here because capacity is fixed at MaxThreads and never needs to grow:
// the number of live threads can never exceed MaxThreads, and the running
// thread is never enqueued while it runs, so enqueue can never overflow.
//
// Every method assumes the caller already holds the scheduler's critical
// section guard; there is no internal locking (spec's ready-queue design
// intent, carried over verbatim).
type readyQueue struct {
	s    [readyQueueCap]ThreadID
	r, w uint
}

// mask wraps an index into [0, readyQueueCap) using the power-of-two
// capacity. MaxThreads is rounded up to the next power of two for the
// backing array so this stays a bitwise AND rather than a modulo.
func (q *readyQueue) mask(val uint) uint {
	return val & (readyQueueCap - 1)
}

// reset clears the queue to empty, as at Init.
func (q *readyQueue) reset() {
	q.r, q.w = 0, 0
}

// len reports the number of queued identifiers.
func (q *readyQueue) len() int {
	return int(q.w - q.r)
}

// enqueue appends tid at the tail. The caller guarantees the queue cannot
// be full, per the type's capacity invariant above.
func (q *readyQueue) enqueue(tid ThreadID) {
	q.s[q.mask(q.w)] = tid
	q.w++
}

// dequeue removes and returns the head, or noTID if the queue is empty.
func (q *readyQueue) dequeue() ThreadID {
	if q.r == q.w {
		return noTID
	}
	tid := q.s[q.mask(q.r)]
	q.r++
	return tid
}

// remove deletes the first (by invariant I1, the only) occurrence of tid,
// preserving the relative order of every other element. A no-op if tid is
// not present. Implemented by draining and re-enqueuing, same strategy as
// the reference's remove_from_ready_queue, which rebuilds the queue into a
// scratch buffer while skipping the removed id.
func (q *readyQueue) remove(tid ThreadID) {
	n := q.len()
	var kept [MaxThreads]ThreadID
	k := 0
	for i := 0; i < n; i++ {
		v := q.s[q.mask(q.r+uint(i))]
		if v != tid {
			kept[k] = v
			k++
		}
	}
	q.reset()
	for i := 0; i < k; i++ {
		q.enqueue(kept[i])
	}
}
