// scheduler.go - the scheduler singleton and its public API.
//
// The scheduler is process-wide and single-instance, same as spec.md's
// design notes describe the reference: there is one kernel thread and one
// timer, so there is exactly one Scheduler, created by Init and reached by
// every exported function through getScheduler.
package uthread

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Scheduler owns every thread slot, the ready queue, the preemption timer,
// and the critical section guarding all of it. The zero value is not
// usable; every instance is built by Init.
type Scheduler struct {
	crit criticalSection

	threads [MaxThreads]*tcb
	rq      readyQueue

	currentTID    atomic.Int64
	totalQuantums atomic.Uint64

	quantumUsecs int
	timer        preemptionTimer

	logger           Logger
	metricsEnabled   bool
	metrics          schedulerMetrics
	checkpointBudget int

	// preemptPending is set by onTick when a timer tick has fired and
	// cleared when the checkpoint it represents has been honored by the
	// currently running thread. There is at most one pending preemption
	// at a time: additional ticks before the next checkpoint just update
	// bookkeeping, same as the reference's single quantum-expired flag.
	preemptPending atomic.Bool
}

var (
	schedMu sync.Mutex
	sched   *Scheduler
)

func getScheduler() *Scheduler {
	schedMu.Lock()
	defer schedMu.Unlock()
	return sched
}

// Init creates the scheduler singleton and starts its preemption timer.
// quantumUsecs is the virtual-time quantum length in microseconds, mirroring
// the reference's init_scheduler(quantum_usecs) argument. The calling
// goroutine becomes thread 0 (the main thread, mainTID).
//
// Init may be called exactly once per process; a second call returns
// ErrAlreadyInitialized. Failure to arm the underlying OS timer facility is
// returned as a *SystemError (see its doc comment): the scheduler
// singleton is left uninstalled, and the caller is expected to treat the
// failure as fatal to its own process.
func Init(quantumUsecs int, opts ...Option) error {
	schedMu.Lock()
	defer schedMu.Unlock()

	if sched != nil {
		return ErrAlreadyInitialized
	}
	if quantumUsecs <= 0 {
		return ErrInvalidQuantumUsecs
	}

	cfg := resolveOptions(opts)

	s := &Scheduler{
		quantumUsecs:     quantumUsecs,
		logger:           cfg.logger,
		metricsEnabled:   cfg.metricsEnabled,
		checkpointBudget: cfg.checkpointBudget,
	}
	for i := range s.threads {
		s.threads[i] = newTCB(ThreadID(i))
	}
	s.rq.reset()

	main := s.threads[mainTID]
	main.info = runningState()
	main.quantums = 1
	main.baton = make(chan struct{}, 1)
	main.done = make(chan struct{})

	s.currentTID.Store(int64(mainTID))
	s.totalQuantums.Store(1)

	// GOMAXPROCS(1) realizes "strictly single-kernel-threaded": the
	// critical section already serializes scheduler-internal state, but
	// pinning to one OS thread also guarantees thread bodies themselves
	// never run truly concurrently with each other or with onTick, which
	// is the behavior spec.md's concurrency model assumes throughout.
	runtime.GOMAXPROCS(1)

	timer, err := newPreemptionTimer(quantumUsecs, s.onTick)
	if err != nil {
		if err == ErrUnsupportedPlatform {
			return err
		}
		return &SystemError{Op: "arm preemption timer", Cause: err}
	}
	s.timer = timer

	sched = s
	s.logEvent(LevelInfo, "init", mainTID, "scheduler initialized", nil)
	return nil
}

// Spawn creates a new thread running entry and returns its ThreadID. The
// new thread is placed on the ready queue; it does not run until the
// scheduler switches to it.
func Spawn(entry func()) (ThreadID, error) {
	s := getScheduler()
	if s == nil {
		return 0, ErrNotInitialized
	}
	return s.spawn(entry)
}

func (s *Scheduler) spawn(entry func()) (ThreadID, error) {
	if entry == nil {
		return 0, ErrNilEntry
	}

	s.crit.acquire()
	defer s.crit.release()

	var slot *tcb
	for i := 1; i < MaxThreads; i++ {
		if s.threads[i].info.state == Unused {
			slot = s.threads[i]
			break
		}
	}
	if slot == nil {
		return 0, ErrTableFull
	}

	slot.arm(entry)
	s.rq.enqueue(slot.tid)
	if s.metricsEnabled {
		s.metrics.spawns.Add(1)
	}
	s.logEvent(LevelDebug, "spawn", slot.tid, "thread spawned", nil)

	go s.runThread(slot)

	return slot.tid, nil
}

// runThread is the body of every non-main thread's dedicated goroutine. It
// parks on its own baton until first scheduled in, runs entry to
// completion (recovering a panic as a logged, non-fatal error so one
// runaway thread cannot take the process down), and then terminates
// itself — the Go-native convenience of "falling off the end of entry"
// that the reference achieves by having thread_start call terminate after
// the entry function returns.
func (s *Scheduler) runThread(t *tcb) {
	<-t.baton

	func() {
		defer func() {
			if r := recover(); r != nil {
				s.logEvent(LevelError, "terminate", t.tid, "thread panicked", panicError{r})
			}
		}()
		t.entry()
	}()

	close(t.done)
	_ = s.terminate(t.tid)
}

// panicError adapts an arbitrary recovered panic value to error for
// LogEntry.Err.
type panicError struct{ v any }

func (p panicError) Error() string { return formatPanic(p.v) }

func formatPanic(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "panic: " + toString(v)
}

func toString(v any) string {
	type stringer interface{ String() string }
	if s, ok := v.(stringer); ok {
		return s.String()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "(unprintable panic value)"
}

// Terminate ends the thread identified by tid. Terminating the main thread
// (mainTID) ends the process. A thread that terminates itself hands control
// to the next Ready thread and never returns; if no thread is Ready, the
// process ends. Terminating any other thread removes it from the ready
// queue if needed and returns. Terminate always releases the critical section
// before any of its three cases returns or exits, so it never leaves the
// scheduler unreachable even though two of its paths do not return to the
// caller at all.
func Terminate(tid ThreadID) error {
	s := getScheduler()
	if s == nil {
		return ErrNotInitialized
	}
	return s.terminate(tid)
}

func (s *Scheduler) terminate(tid ThreadID) error {
	s.crit.acquire()

	if _, err := s.requireTID(tid); err != nil {
		s.crit.release()
		return err
	}

	if s.metricsEnabled {
		s.metrics.terminations.Add(1)
	}

	current := ThreadID(s.currentTID.Load())

	switch {
	case tid == mainTID:
		// Terminating the main thread ends the whole process, same as the
		// reference: there is no other thread for control to return to.
		s.logEvent(LevelInfo, "terminate", tid, "main thread terminated, exiting", nil)
		s.crit.release()
		exitProcess()
		return nil

	case tid == current:
		prev := s.threads[tid]
		prev.release()

		next := s.rq.dequeue()
		if next == noTID {
			s.logEvent(LevelInfo, "terminate", tid, "last thread terminated, exiting", nil)
			s.crit.release()
			exitProcess()
			return nil
		}

		nextTCB := s.threads[next]
		nextTCB.info = runningState()
		nextTCB.quantums++
		s.currentTID.Store(int64(next))

		s.logEvent(LevelDebug, "terminate", tid, "self-terminated, switching to next ready thread", nil)
		s.switchTo(prev, nextTCB, false)
		// The dying thread's goroutine ends here rather than returning into
		// its body, which would otherwise keep running alongside next.
		runtime.Goexit()
		return nil

	default:
		other := s.threads[tid]
		if other.info.state == Ready {
			s.rq.remove(tid)
		}
		other.release()
		s.logEvent(LevelDebug, "terminate", tid, "thread terminated by another thread", nil)
		s.crit.release()
		return nil
	}
}

// Block suspends the thread identified by tid until a later Resume. The
// main thread may not be blocked. Blocking the currently running thread
// switches to the next Ready thread; the caller's Block call returns only
// once another thread has Resumed it and the scheduler switches back to it
// (or at once, if no other thread is Ready).
func Block(tid ThreadID) error {
	s := getScheduler()
	if s == nil {
		return ErrNotInitialized
	}
	return s.block(tid)
}

func (s *Scheduler) block(tid ThreadID) error {
	s.crit.acquire()
	defer s.crit.release()

	t, err := s.requireTID(tid)
	if err != nil {
		return err
	}
	if tid == mainTID {
		return ErrMainThreadForbidden
	}
	if t.info.state == Blocked {
		return nil
	}

	self := tid == ThreadID(s.currentTID.Load())

	if t.info.state == Ready {
		s.rq.remove(tid)
	}
	t.info = blockedState(0)
	if s.metricsEnabled {
		s.metrics.blocks.Add(1)
	}
	s.logEvent(LevelDebug, "block", tid, "thread blocked", nil)

	if self {
		s.scheduleNextLocked()
	}
	return nil
}

// Resume marks a Blocked thread Ready again. It is a no-op if tid is
// already Ready or Running, per spec's idempotence requirement.
func Resume(tid ThreadID) error {
	s := getScheduler()
	if s == nil {
		return ErrNotInitialized
	}
	return s.resume(tid)
}

func (s *Scheduler) resume(tid ThreadID) error {
	s.crit.acquire()
	defer s.crit.release()

	t, err := s.requireTID(tid)
	if err != nil {
		return err
	}
	if t.info.state == Ready || t.info.state == Running {
		return nil
	}

	// t.info.state == Blocked here. Transitioning straight to readyState()
	// — which carries no sleepUntil field at all — is what resolves the
	// reference's open question about a resumed thread's stale sleep
	// deadline: there is no field left for staleness to live in.
	t.info = readyState()
	s.rq.enqueue(tid)
	if s.metricsEnabled {
		s.metrics.resumes.Add(1)
	}
	s.logEvent(LevelDebug, "resume", tid, "thread resumed", nil)
	return nil
}

// Sleep suspends the calling thread for numQuantums virtual-time quantums.
// It must be called from the currently running thread (there is no
// "sleep this other tid" variant, matching the reference); the main thread
// may not sleep.
func Sleep(numQuantums int) error {
	s := getScheduler()
	if s == nil {
		return ErrNotInitialized
	}
	return s.sleep(numQuantums)
}

func (s *Scheduler) sleep(numQuantums int) error {
	s.crit.acquire()
	defer s.crit.release()

	current := ThreadID(s.currentTID.Load())
	if current == mainTID {
		return ErrMainThreadForbidden
	}
	if numQuantums <= 0 {
		return ErrInvalidSleepDuration
	}

	deadline := s.totalQuantums.Load() + uint64(numQuantums)
	s.threads[current].info = blockedState(deadline)
	if s.metricsEnabled {
		s.metrics.sleeps.Add(1)
	}
	s.logEvent(LevelDebug, "sleep", current, "thread sleeping", nil)

	s.scheduleNextLocked()
	return nil
}

// GetTid returns the identifier of the currently running thread. Per
// spec.md, this never fails.
func GetTid() ThreadID {
	s := getScheduler()
	if s == nil {
		return mainTID
	}
	return s.getTid()
}

func (s *Scheduler) getTid() ThreadID {
	return ThreadID(s.currentTID.Load())
}

// GetTotalQuantums returns the number of quantums that have started across
// every thread since Init.
func GetTotalQuantums() uint64 {
	s := getScheduler()
	if s == nil {
		return 0
	}
	return s.getTotalQuantums()
}

func (s *Scheduler) getTotalQuantums() uint64 {
	return s.totalQuantums.Load()
}

// GetQuantums returns the number of quantums tid has been scheduled to run,
// including a quantum still in progress.
func GetQuantums(tid ThreadID) (uint64, error) {
	s := getScheduler()
	if s == nil {
		return 0, ErrNotInitialized
	}
	return s.getQuantums(tid)
}

func (s *Scheduler) getQuantums(tid ThreadID) (uint64, error) {
	s.crit.acquire()
	defer s.crit.release()

	t, err := s.requireTID(tid)
	if err != nil {
		return 0, err
	}
	return t.quantums, nil
}

func (s *Scheduler) requireTID(tid ThreadID) (*tcb, error) {
	if tid < 0 || int(tid) >= MaxThreads {
		return nil, ErrInvalidTID
	}
	t := s.threads[tid]
	if t.info.state == Unused {
		return nil, ErrInvalidTID
	}
	return t, nil
}

// scheduleNextLocked picks the next Ready thread and switches to it,
// demoting the currently Running thread back to Ready (and re-enqueuing
// it) first, if it is still Running rather than already Blocked by the
// caller. Must be called with the critical section held; returns with it
// held again (switchTo's suspend=true contract).
//
// If the ready queue is empty, this is a no-op: the caller (whichever
// thread is Running) simply continues, the same "nothing else is ready"
// outcome the reference's schedule_next produces by finding no candidate.
func (s *Scheduler) scheduleNextLocked() {
	prevTID := ThreadID(s.currentTID.Load())
	prev := s.threads[prevTID]

	nextID := s.rq.dequeue()
	if nextID == noTID {
		return
	}

	if prev.info.state == Running {
		prev.info = readyState()
		s.rq.enqueue(prevTID)
	}

	next := s.threads[nextID]
	next.info = runningState()
	next.quantums++
	s.currentTID.Store(int64(nextID))

	s.switchTo(prev, next, true)
}

// onTick runs on the dedicated preemption-timer goroutine (see
// timer_*.go), once per virtual-time quantum. It performs every piece of
// the reference's timer-handler bookkeeping — advancing total_quantums,
// crediting the running thread's own quantum count (deliberately,
// including the reference's double-count against the thread that was
// already running when the tick landed: see SPEC_FULL.md's discussion of
// this), and waking any thread whose sleep deadline has arrived — but it
// does not itself force a context switch. Only the currently running
// thread's own goroutine can safely park itself; onTick instead raises
// preemptPending, and the actual switch happens the next time that
// thread's goroutine calls Checkpoint. Block on the caller itself, Sleep,
// and self-Terminate switch threads on their own without going through
// Checkpoint. A thread that calls none of these is never switched out.
func (s *Scheduler) onTick() {
	s.crit.acquire()
	defer s.crit.release()

	s.totalQuantums.Add(1)
	current := ThreadID(s.currentTID.Load())
	currentTCB := s.threads[current]
	currentTCB.quantums++

	if s.checkpointBudget > 0 {
		currentTCB.missedCheckpoints++
		if currentTCB.missedCheckpoints == s.checkpointBudget {
			s.logEvent(LevelWarn, "checkpoint", current, "thread has not called Checkpoint across its checkpoint budget, running non-cooperatively", nil)
			currentTCB.missedCheckpoints = 0
		}
	}

	now := s.totalQuantums.Load()
	for i := range s.threads {
		t := s.threads[i]
		if t.info.state == Blocked && t.info.sleeping() && t.info.sleepUntil <= now {
			t.info = readyState()
			s.rq.enqueue(t.tid)
		}
	}

	if s.metricsEnabled {
		s.metrics.preemptions.Add(1)
	}
	s.preemptPending.Store(true)
	s.logEvent(LevelDebug, "preempt", current, "quantum expired", nil)
}

// Checkpoint yields the CPU to another ready thread if a preemption tick
// has arrived since the caller last checked, and is a no-op otherwise. It
// is the cooperative half of preemption (see onTick's doc comment). Block on
// the caller itself, Sleep, and thread self-termination switch threads on
// their own without calling Checkpoint; a thread body running a long
// computation without calling any of those
// should call Checkpoint periodically to remain responsive to preemption,
// same as spec.md's non-goal on sub-quantum preemption accuracy assumes
// threads eventually reach a safepoint.
func Checkpoint() error {
	s := getScheduler()
	if s == nil {
		return ErrNotInitialized
	}
	s.checkpoint()
	return nil
}

func (s *Scheduler) checkpoint() {
	s.crit.acquire()
	defer s.crit.release()

	current := ThreadID(s.currentTID.Load())
	s.threads[current].missedCheckpoints = 0

	if !s.preemptPending.Swap(false) {
		return
	}
	s.scheduleNextLocked()
}

func (s *Scheduler) logEvent(level LogLevel, category string, tid ThreadID, msg string, err error) {
	if s.logger == nil || !s.logger.IsEnabled(level) {
		return
	}
	s.logger.Log(LogEntry{
		Level:    level,
		Category: category,
		TID:      tid,
		Quantum:  s.totalQuantums.Load(),
		Message:  msg,
		Err:      err,
	})
}
