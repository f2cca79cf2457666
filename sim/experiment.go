package sim

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dinesim/dinesim/sim/trace"
)

// Result is the outcome of one experiment run.
type Result struct {
	RunID         string
	Strategy      Strategy
	Events        []trace.Event
	Analysis      *trace.Analysis
	Duration      time.Duration
	SeatHighWater int // 0 unless the conductor strategy ran
}

// RunExperiment builds a ring per cfg, launches one goroutine per
// philosopher running the configured strategy, and waits for every
// philosopher to finish its meals. The returned Result carries the full
// event trace together with its offline analysis.
//
// The EventLog is created here and owned by this run; independent runs never
// share log state. A strategy that can deadlock (naive) may block forever —
// callers that want a bound must impose their own timeout around this call.
func RunExperiment(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid experiment config: %w", err)
	}
	cfg = cfg.withDefaults()

	log := NewEventLog()
	runID := log.StartRun(string(cfg.Strategy))
	table := NewTable(cfg.Philosophers, log, cfg.Timing)

	var conductor *Conductor
	if cfg.Strategy == StrategyConductor {
		conductor = NewConductor(cfg.Seats)
	}

	// Materialize every philosopher (and its RNG) before any goroutine
	// starts; PartitionedRNG is not safe for concurrent derivation.
	rng := NewPartitionedRNG(NewExperimentKey(cfg.Seed))
	phils := make([]*Philosopher, cfg.Philosophers)
	for i := range phils {
		phils[i] = NewPhilosopher(i, table, conductor, rng.ForSubsystem(SubsystemPhilosopher(i)))
	}

	logrus.Infof("experiment %s: %d philosophers, %d meals each, strategy=%s",
		runID, cfg.Philosophers, cfg.Meals, cfg.Strategy)
	start := time.Now()

	errs := make([]error, cfg.Philosophers)
	var wg sync.WaitGroup
	for i, p := range phils {
		wg.Add(1)
		go func(i int, p *Philosopher) {
			defer wg.Done()
			if err := p.Run(cfg.Strategy, cfg.Meals); err != nil {
				errs[i] = fmt.Errorf("philosopher %d: %w", i, err)
			}
		}(i, p)
	}
	wg.Wait()
	duration := time.Since(start)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	events := log.Events()
	res := &Result{
		RunID:    runID,
		Strategy: cfg.Strategy,
		Events:   events,
		Analysis: trace.Analyze(events, cfg.Philosophers),
		Duration: duration,
	}
	if conductor != nil {
		res.SeatHighWater = conductor.HighWater()
	}
	logrus.Infof("experiment %s: complete in %s, %d events", runID, duration, len(events))
	return res, nil
}
