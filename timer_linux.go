//go:build linux

package uthread

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// unixPreemptionTimer arms the real ITIMER_VIRTUAL interval timer and
// relays every SIGVTALRM it generates to onTick, from a dedicated
// goroutine. ITIMER_VIRTUAL counts only the time the process actually
// spends executing (not asleep or blocked on I/O), which is exactly the
// reference's notion of virtual time: a quantum is consumed only while
// some uthread thread is actually running.
type unixPreemptionTimer struct {
	sigCh chan os.Signal
	done  chan struct{}
}

func newPreemptionTimer(quantumUsecs int, onTick func()) (preemptionTimer, error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGVTALRM)

	it := unix.Itimerval{
		Interval: unix.Timeval{Sec: int64(quantumUsecs) / 1e6, Usec: int64(quantumUsecs) % 1e6},
		Value:    unix.Timeval{Sec: int64(quantumUsecs) / 1e6, Usec: int64(quantumUsecs) % 1e6},
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
