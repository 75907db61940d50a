package uthread

import "sync/atomic"

// Metrics is a point-in-time snapshot of scheduling activity. It is only
// populated when the scheduler was created with WithMetrics(true); the
// zero value is returned otherwise.
//
// This is a deliberately small supplement to the reference implementation,
// which tracks only quantums/total_quantums: a scheduler in this corpus is
// never shipped without some observability surface (see the sibling
// event-loop package's own Metrics type), but a 100-thread cooperative
// scheduler has no latency distribution worth a percentile estimator over,
// so this stops at counters.
type Metrics struct {
	Spawns       uint64
	Terminations uint64
	Preemptions  uint64
	Blocks       uint64
	Sleeps       uint64
	Resumes      uint64
}

// schedulerMetrics holds the live atomic counters backing Metrics. Reading
// them does not require the critical section: they are informational,
// not something scheduling decisions are made from.
type schedulerMetrics struct {
	spawns       atomic.Uint64
	terminations atomic.Uint64
	preemptions  atomic.Uint64
	blocks       atomic.Uint64
	sleeps       atomic.Uint64
	resumes      atomic.Uint64
}

func (m *schedulerMetrics) snapshot() Metrics {
	return Metrics{
		Spawns:       m.spawns.Load(),
		Terminations: m.terminations.Load(),
		Preemptions:  m.preemptions.Load(),
		Blocks:       m.blocks.Load(),
		Sleeps:       m.sleeps.Load(),
		Resumes:      m.resumes.Load(),
	}
}

// CollectMetrics returns a snapshot of scheduling activity, or the zero
// Metrics if the scheduler was not created with WithMetrics(true) or Init
// has not been called yet.
func CollectMetrics() Metrics {
	s := getScheduler()
	if s == nil {
		return Metrics{}
	}
	return s.metricsSnapshot()
}

func (s *Scheduler) metricsSnapshot() Metrics {
	if !s.metricsEnabled {
		return Metrics{}
	}
	return s.metrics.snapshot()
}
