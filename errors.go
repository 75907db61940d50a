package uthread

import (
	"errors"
	"fmt"
)

// Standard usage errors. Every one of these is returned, never panics, and
// leaves the scheduler in a state identical to just before the call — the
// reference implementation's invariant that "validation precedes mutation
// in every path" holds here too.
var (
	// ErrInvalidQuantumUsecs is returned by Init when quantumUsecs is not
	// positive.
	ErrInvalidQuantumUsecs = errors.New("uthread: quantum_usecs must be positive")

	// ErrAlreadyInitialized is returned by Init if the scheduler singleton
	// has already been initialized. Re-initialization is not supported.
	ErrAlreadyInitialized = errors.New("uthread: already initialized")

	// ErrNotInitialized is returned by any public API called before Init.
	ErrNotInitialized = errors.New("uthread: not initialized")

	// ErrNilEntry is returned by Spawn when entry is nil.
	ErrNilEntry = errors.New("uthread: thread entry point is nil")

	// ErrTableFull is returned by Spawn when no UNUSED slot is available.
	ErrTableFull = errors.New("uthread: no available tid")

	// ErrInvalidTID is returned whenever tid is out of [0, MaxThreads) or
	// names a slot in the UNUSED state.
	ErrInvalidTID = errors.New("uthread: invalid tid")

	// ErrMainThreadForbidden is returned by Block and Sleep when called
	// with/from tid 0, which may not be blocked, sleep, or be explicitly
	// terminated as an ordinary thread.
	ErrMainThreadForbidden = errors.New("uthread: operation not permitted on main thread")

	// ErrInvalidSleepDuration is returned by Sleep when numQuantums is not
	// positive.
	ErrInvalidSleepDuration = errors.New("uthread: invalid sleep duration")

	// ErrUnsupportedPlatform is returned by Init on platforms without an
	// ITIMER_VIRTUAL/SIGVTALRM equivalent (currently: Windows).
	ErrUnsupportedPlatform = errors.New("uthread: platform has no virtual-timer preemption support")
)

// SystemError wraps a failure from a required kernel facility (installing
// the signal handler, arming the interval timer, or manipulating the
// signal mask). These are returned from Init rather than panicking or
// exiting the process directly: the scheduling invariants cannot be
// maintained once one of these fails, so Init never installs the
// scheduler singleton in this case, leaving nothing a caller could
// mistakenly keep using half-initialized. Callers should treat a
// *SystemError the same way they would any other fatal startup failure
// (log it and exit), the same way a failed net.Listen or os.Open at
// startup is handled — but that is the caller's call to make in its own
// main, not this package's to make for it.
type SystemError struct {
	Op    string
	Cause error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("uthread: system error: %s: %v", e.Op, e.Cause)
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}
