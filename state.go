package uthread

// ThreadState identifies which of the four cases a thread slot occupies.
//
//	UNUSED → READY [Spawn]
//	READY ↔ RUNNING [schedule_next / preemption]
//	READY/RUNNING → BLOCKED [Block / Sleep]
//	BLOCKED → READY [Resume / sleep expiry]
//	(any non-UNUSED) → UNUSED [Terminate]
//
// NOTE: Unused is deliberately the first iota value (zero), so that the
// zero value of a ThreadState, and of a zero stateInfo, is Unused.
type ThreadState int32

const (
	// Unused marks a slot with no live thread. Its stack and baton are not
	// owned by anything and are free for the next Spawn to claim.
	Unused ThreadState = iota
	// Ready marks a slot runnable and present exactly once in the ready
	// queue (invariant I1).
	Ready
	// Running marks the single slot currently executing. There is exactly
	// one such slot at any instant (invariant I2).
	Running
	// Blocked marks a slot suspended, either because it called Block on
	// itself/was blocked by another thread, or because it is sleeping
	// until sleepUntil (invariant I3). The two cases are distinguished
	// only by whether sleepUntil is nonzero; sleepUntil is otherwise
	// ignored while the slot is not Blocked (see resume's documented
	// interaction with a stale deadline, in scheduler.go).
	Blocked
)

// String renders the state the way the rest of this package's diagnostics
// and the default logger expect.
func (s ThreadState) String() string {
	switch s {
	case Unused:
		return "UNUSED"
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Blocked:
		return "BLOCKED"
	default:
		return "UNKNOWN"
	}
}

// stateInfo is the tagged-variant representation the design notes call
// for: sleepUntil is meaningful only in the Blocked case, so it travels
// alongside state as a single value rather than living as an always-present
// field on the TCB. A zero stateInfo is {Unused, 0}.
type stateInfo struct {
	state      ThreadState
	sleepUntil uint64
}

func unusedState() stateInfo { return stateInfo{state: Unused} }
func readyState() stateInfo  { return stateInfo{state: Ready} }
func runningState() stateInfo { return stateInfo{state: Running} }

// blockedState constructs the Blocked case. sleepUntil is zero for an
// explicit block (via Block) and the absolute total-quantums deadline for
// a timed sleep (via Sleep).
func blockedState(sleepUntil uint64) stateInfo {
	return stateInfo{state: Blocked, sleepUntil: sleepUntil}
}

// sleeping reports whether this Blocked slot is waiting on a deadline
// rather than an explicit Block. Meaningless (and never consulted) outside
// the Blocked case.
func (s stateInfo) sleeping() bool {
	return s.state == Blocked && s.sleepUntil > 0
}
