package uthread

// switchTo performs the hand-off described by the reference context_switch:
// restore next's context, and — unless the caller is a thread tearing down
// its own slot — park the caller until something later restores it.
//
// The reference does this in one function because sigsetjmp/siglongjmp
// have to run back-to-back on the same C stack. In Go the two halves are
// naturally separable: "restore next" is simply unblocking the goroutine
// already parked on next.baton, and "save prev, park" is prev's own
// goroutine blocking on a receive from its own baton. suspend controls
// whether the second half runs at all, mirroring the reference's
// distinction between schedule_next (prev keeps running later: suspend)
// and self-terminate (prev's stack is being reclaimed: no save, ever).
//
// Must be called with the critical section held. It always releases the
// section as part of handing control to next — mirroring the reference's
// unconditional SIG_UNBLOCK placed after the save and before the jump —
// and, only when suspend is true, re-acquires it once the caller is later
// resumed, so that control returns to the original caller exactly as it
// found it: holding the lock.
func (s *Scheduler) switchTo(prev, next *tcb, suspend bool) {
	// Restore next: wake the goroutine already parked on its baton. For a
	// freshly spawned thread this is its first-ever wake, equivalent to
	// the reference's synthetic sigsetjmp-constructed context landing at
	// the entry point with a fresh stack.
	next.baton <- struct{}{}
	s.crit.release()

	if !suspend {
		// prev's slot is being reclaimed (self-terminate): there is
		// nothing to save, and prev's goroutine is about to return, not
		// park. Whoever runs next proceeds without the lock held by us.
		return
	}

	// Save prev: park. When some later switchTo sends on prev.baton, this
	// receive returns and execution continues exactly here — the same
	// "later restore returns normally to the caller" contract the
	// reference gives sigsetjmp's nonzero return.
	<-prev.baton
	s.crit.acquire()
}
