// Package uthread implements a cooperative-preemptive user-level threads
// library: a single-process scheduler that multiplexes many independent
// execution contexts onto one logical kernel thread, driven by a periodic
// virtual-time signal.
//
// # Architecture
//
// The scheduler is built around four components: a fixed-capacity table of
// thread control blocks, a FIFO ready queue of runnable identifiers, a
// context-switch primitive that hands off control between thread goroutines
// via a per-thread "baton" channel, and a [Scheduler] core that ties the
// public API, the preemption timer, and the critical-section discipline
// together.
//
// # Preemption
//
// [Init] arms a genuine ITIMER_VIRTUAL timer and installs a handler for
// SIGVTALRM, exactly as the reference C implementation this package is
// modeled on. Go provides no safe way to forcibly suspend a goroutine from
// outside, so the boundary between "the timer fires" and "the running
// thread actually yields" is the cooperative [Checkpoint] function, which
// long-running thread bodies call directly. The blocking APIs ([Block] on
// the caller itself, [Sleep], self-[Terminate]) switch to the next ready
// thread on their own. A thread that calls none of these is not preempted:
// ticks still advance the quantum counters and wake sleepers, but the
// thread keeps running until it reaches one of them.
//
// # Single-threadedness
//
// [Init] pins the process to GOMAXPROCS(1) for as long as the scheduler is
// live. This is not an optimization; it is the mechanism by which "exactly
// one user thread runs at any instant" is enforced in a language whose
// goroutines are otherwise scheduled across multiple OS threads.
//
// # Usage
//
//	if err := uthread.Init(100000); err != nil {
//	    log.Fatal(err)
//	}
//
//	tid, err := uthread.Spawn(func() {
//	    fmt.Println("hello from thread", uthread.GetTid())
//	    uthread.Sleep(2) // threads other than tid 0 may sleep
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	uthread.Terminate(tid) // tid 0 may terminate any other thread
package uthread
