package uthread

import "testing"

func TestReadyQueue_FIFO(t *testing.T) {
	var q readyQueue
	q.reset()

	for _, tid := range []ThreadID{1, 2, 3} {
		q.enqueue(tid)
	}
	if got := q.len(); got != 3 {
		t.Fatalf("len() = %d, want 3", got)
	}
	for _, want := range []ThreadID{1, 2, 3} {
		if got := q.dequeue(); got != want {
			t.Fatalf("dequeue() = %d, want %d", got, want)
		}
	}
	if got := q.dequeue(); got != noTID {
		t.Fatalf("dequeue() on empty = %d, want noTID", got)
	}
}

func TestReadyQueue_RemoveMiddlePreservesOrder(t *testing.T) {
	var q readyQueue
	q.reset()
	for _, tid := range []ThreadID{1, 2, 3, 4} {
		q.enqueue(tid)
	}

	q.remove(2)

	want := []ThreadID{1, 3, 4}
	for _, w := range want {
		if got := q.dequeue(); got != w {
			t.Fatalf("dequeue() = %d, want %d", got, w)
		}
	}
	if got := q.dequeue(); got != noTID {
		t.Fatalf("dequeue() after drain = %d, want noTID", got)
	}
}

func TestReadyQueue_RemoveAbsentIsNoop(t *testing.T) {
	var q readyQueue
	q.reset()
	q.enqueue(1)
	q.enqueue(2)

	q.remove(99)

	if got := q.len(); got != 2 {
		t.Fatalf("len() after removing absent tid = %d, want 2", got)
	}
}

func TestReadyQueue_WrapAround(t *testing.T) {
	var q readyQueue
	q.reset()

	// Push the cursors well past the backing array length to exercise the
	// mask-based wraparound, the same way a long-running scheduler would.
	for i := 0; i < readyQueueCap*3; i++ {
		q.enqueue(ThreadID(i % MaxThreads))
		if got := q.dequeue(); got != ThreadID(i%MaxThreads) {
			t.Fatalf("iteration %d: dequeue() = %d, want %d", i, got, i%MaxThreads)
		}
	}
}
