package uthread

// schedulerOptions holds configuration applied by Init, in the same
// applyX-closure shape this module's sibling event-loop package uses for
// its own LoopOption.
type schedulerOptions struct {
	logger           Logger
	metricsEnabled   bool
	checkpointBudget int
}

// Option configures a Scheduler created by Init.
type Option interface {
	applyScheduler(*schedulerOptions)
}

type optionFunc func(*schedulerOptions)

func (f optionFunc) applyScheduler(o *schedulerOptions) { f(o) }

// WithLogger installs a structured logger for this scheduler instance, used
// instead of whatever has been set package-wide via SetStructuredLogger.
func WithLogger(logger Logger) Option {
	return optionFunc(func(o *schedulerOptions) {
		o.logger = logger
	})
}

// WithMetrics enables the lightweight scheduling counters exposed via
// CollectMetrics. Disabled by default: a scheduler this small should
// cost nothing extra for callers who never ask for the numbers.
func WithMetrics(enabled bool) Option {
	return optionFunc(func(o *schedulerOptions) {
		o.metricsEnabled = enabled
	})
}

// WithCheckpointBudget sets how many consecutive quantum ticks a thread may
// run across without ever calling Checkpoint before it is logged (at
// LevelWarn) as non-cooperative; the counter then resets, so the warning
// repeats every n ticks for as long as the thread keeps not checkpointing.
// This is diagnostic only — the thread is never killed on the library's
// own initiative; forcibly reclaiming an uncooperative thread's resources
// is explicitly out of scope (see spec's Non-goals). A budget of 0 (the
// default) disables the check.
func WithCheckpointBudget(n int) Option {
	return optionFunc(func(o *schedulerOptions) {
		o.checkpointBudget = n
	})
}

func resolveOptions(opts []Option) schedulerOptions {
	cfg := schedulerOptions{
		logger: getGlobalLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyScheduler(&cfg)
	}
	return cfg
}
