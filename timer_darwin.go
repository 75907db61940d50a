//go:build darwin

package uthread

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// unixPreemptionTimer is the same ITIMER_VIRTUAL/SIGVTALRM mechanism used
// on Linux (see timer_linux.go); Darwin implements both, so the logic does
// not need to differ, only the build tag routing here does.
type unixPreemptionTimer struct {
	sigCh chan os.Signal
	done  chan struct{}
}

func newPreemptionTimer(quantumUsecs int, onTick func()) (preemptionTimer, error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGVTALRM)

	it := unix.Itimerval{
		Interval: unix.Timeval{Sec: int64(quantumUsecs) / 1e6, Usec: int32(int64(quantumUsecs) % 1e6)},
		Value:    unix.Timeval{Sec: int64(quantumUsecs) / 1e6, Usec: int32(int64(quantumUsecs) % 1e6)},
	}
	if err := unix.Setitimer(unix.ITIMER_VIRTUAL, &it, nil); err != nil {
		signal.Stop(sigCh)
		return nil, err
	}

	t := &unixPreemptionTimer{sigCh: sigCh, done: make(chan struct{})}
	go t.run(onTick)
	return t, nil
}

func (t *unixPreemptionTimer) run(onTick func()) {
	for {
		select {
		case <-t.sigCh:
			onTick()
		case <-t.done:
			return
		}
	}
}

func (t *unixPreemptionTimer) Stop() {
	var zero unix.Itimerval
	_ = unix.Setitimer(unix.ITIMER_VIRTUAL, &zero, nil)
	signal.Stop(t.sigCh)
	close(t.done)
}
