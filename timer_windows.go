//go:build windows

package uthread

// Windows has no ITIMER_VIRTUAL/SIGVTALRM equivalent (no virtual-time
// interval timer delivered as a signal), so preemption cannot be
// implemented faithfully on this platform. Init fails with
// ErrUnsupportedPlatform rather than silently falling back to wall-clock
// preemption, which would violate the reference's virtual-time semantics.
func newPreemptionTimer(quantumUsecs int, onTick func()) (preemptionTimer, error) {
	return nil, ErrUnsupportedPlatform
}
