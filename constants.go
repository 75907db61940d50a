package uthread

// ThreadID identifies a thread slot; it doubles as that slot's index into
// the Table. Identifier 0 is reserved for the thread that calls Init.
type ThreadID int

const (
	// MaxThreads is the fixed number of thread slots, reference value
	// carried over from the original C implementation.
	MaxThreads = 100

	// readyQueueCap is the ring buffer capacity backing the ready queue:
	// the next power of two at or above MaxThreads, so index wrapping is
	// a mask rather than a modulo.
	readyQueueCap = 128

	// StackSize is the reference per-thread stack size in bytes. Go
	// manages goroutine stacks itself (see tcb.go), so this constant only
	// fills each slot's stackSize field at spawn; nothing sizes a stack
	// from it.
	StackSize = 4096

	// mainTID is the reserved identifier of the thread that called Init.
	mainTID ThreadID = 0
)
