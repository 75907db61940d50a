package uthread

// tcb is one thread's control block. Field names mirror the reference
// implementation's TCB layout (§3 of the design this package implements);
// context and stack are reinterpreted for Go as documented on baton below.
type tcb struct {
	tid      ThreadID
	info     stateInfo
	quantums uint64
	entry    func()

	// missedCheckpoints counts consecutive quantum ticks this thread has
	// run across since it last called Checkpoint itself. Reset to 0 by
	// checkpoint() and consulted by onTick against the scheduler's
	// checkpointBudget (see WithCheckpointBudget).
	missedCheckpoints int

	// stackSize records the reference's per-slot stack allocation for API
	// fidelity. Go grows/shrinks the goroutine's real stack on its own;
	// nothing in this package ever reads this field to size anything.
	stackSize int

	// baton is this slot's "saved machine context": a single-capacity
	// channel. Sending on it is the Go-safe equivalent of restoring the
	// slot's context (siglongjmp in the reference); the owning goroutine
	// blocked on a receive from this channel resumes with exactly the Go
	// call stack and local state it had when it parked, which is what the
	// reference's sigsetjmp/siglongjmp pair achieves with a raw jmp_buf.
	// Capacity 1 means the handoff never blocks the sender even if the
	// receiver has not yet reached its receive.
	baton chan struct{}

	// done is closed by the slot's goroutine immediately before it exits,
	// purely as an observability/test hook — nothing in the scheduler
	// waits on it during normal operation, since a terminating thread's
	// slot is reclaimed synchronously by the caller that decided to
	// terminate it.
	done chan struct{}
}

// newTCB allocates a fresh, Unused slot for the given tid. The slot has no
// baton yet: arm creates a new baton channel on every spawn, and release
// drops it when the slot returns to UNUSED.
func newTCB(tid ThreadID) *tcb {
	return &tcb{
		tid:  tid,
		info: unusedState(),
	}
}

// arm resets a slot to READY and binds it to entry, ready for its
// goroutine to be launched. Called only by Spawn.
func (t *tcb) arm(entry func()) {
	t.info = readyState()
	t.quantums = 0
	t.entry = entry
	t.stackSize = StackSize
	t.missedCheckpoints = 0
	t.baton = make(chan struct{}, 1)
	t.done = make(chan struct{})
}

// release returns a slot to UNUSED, dropping its reference to entry and
// batons so the goroutine (which has already exited by the time release
// is called — see scheduler.go's termination paths) and its closure can be
// garbage collected. The slot itself is retained in the Table for reuse.
func (t *tcb) release() {
	t.info = unusedState()
	t.entry = nil
	t.stackSize = 0
	t.baton = nil
	t.done = nil
}
