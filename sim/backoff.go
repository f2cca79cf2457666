package sim

import "time"

// SleepFunc suspends the caller for the given duration. Production code uses
// time.Sleep; tests inject a recording or no-op implementation to keep runs
// deterministic and fast.
type SleepFunc func(time.Duration)

// BackoffPolicy describes a binary-exponential retry schedule in abstract
// time units: the first wait is Initial, each subsequent wait is multiplied
// by Multiplier, and no wait exceeds Cap.
//
// The default schedule (1, 2, 4, 8, ..., 1000, 1000, ...) is shared by every
// contention path in the engine so that experiment timings stay comparable
// across strategies.
type BackoffPolicy struct {
	Initial    int
	Multiplier int
	Cap        int
}

// DefaultBackoff is the standard schedule: start at 1 unit, double, cap at 1000.
var DefaultBackoff = BackoffPolicy{Initial: 1, Multiplier: 2, Cap: 1000}

// isZero reports whether the policy is unset and should fall back to DefaultBackoff.
func (p BackoffPolicy) isZero() bool {
	return p.Initial == 0 && p.Multiplier == 0 && p.Cap == 0
}

// Start returns a fresh iterator over the schedule. Each contended operation
// starts its own iterator; the schedule never carries over between operations.
func (p BackoffPolicy) Start() *Backoff {
	return &Backoff{policy: p, next: p.Initial}
}

// Backoff iterates a BackoffPolicy's wait schedule.
type Backoff struct {
	policy BackoffPolicy
	next   int
}

// Next returns the current wait in time units and advances the schedule.
func (b *Backoff) Next() int {
	wait := b.next
	if wait > b.policy.Cap {
		wait = b.policy.Cap
	}
	b.next = wait * b.policy.Multiplier
	return wait
}
