package sim

import (
	"fmt"
	"time"
)

// TimingConfig groups the timing knobs shared by the table and the
// philosophers. All durations are expressed in abstract time units; Unit maps
// one unit onto wall-clock time.
type TimingConfig struct {
	Unit         time.Duration // wall-clock length of one time unit (default 1ms)
	ThinkMax     int           // max think duration in units, drawn uniformly per cycle (default 3)
	EatUnits     int           // eat duration in units (default 2)
	TimeoutUnits int           // naive-timeout window for the second fork (default 100)
	Backoff      BackoffPolicy // zero value = DefaultBackoff
	Sleep        SleepFunc     // nil = time.Sleep
}

// withDefaults returns a copy with zero-valued fields resolved.
func (tc TimingConfig) withDefaults() TimingConfig {
	if tc.Unit == 0 {
		tc.Unit = time.Millisecond
	}
	if tc.ThinkMax == 0 {
		tc.ThinkMax = 3
	}
	if tc.EatUnits == 0 {
		tc.EatUnits = 2
	}
	if tc.TimeoutUnits == 0 {
		tc.TimeoutUnits = 100
	}
	if tc.Backoff.isZero() {
		tc.Backoff = DefaultBackoff
	}
	if tc.Sleep == nil {
		tc.Sleep = time.Sleep
	}
	return tc
}

// Config describes one experiment run: a ring of Philosophers forks and
// actors, each completing Meals eat cycles under the chosen Strategy.
type Config struct {
	Philosophers int
	Meals        int
	Strategy     Strategy
	Seats        int   // conductor capacity; 0 defaults to Philosophers-1
	Seed         int64 // master seed for per-philosopher think jitter
	Timing       TimingConfig
}

// Validate checks the configuration before a run. The seat bound matters:
// capacity must stay strictly below the philosopher count for the
// admission-gated strategy's deadlock-avoidance argument to hold.
func (c Config) Validate() error {
	if c.Philosophers < 2 {
		return fmt.Errorf("philosophers: got %d, need at least 2", c.Philosophers)
	}
	if c.Meals < 0 {
		return fmt.Errorf("meals: got %d, must be non-negative", c.Meals)
	}
	if !IsValidStrategy(string(c.Strategy)) {
		return fmt.Errorf("unknown strategy %q (valid: %v)", c.Strategy, StrategyNames())
	}
	if c.Seats != 0 && (c.Seats < 1 || c.Seats >= c.Philosophers) {
		return fmt.Errorf("seats: got %d, must be in [1, %d]", c.Seats, c.Philosophers-1)
	}
	return nil
}

// withDefaults resolves optional fields after validation.
func (c Config) withDefaults() Config {
	if c.Seats == 0 {
		c.Seats = c.Philosophers - 1
	}
	c.Timing = c.Timing.withDefaults()
	return c
}
