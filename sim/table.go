package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dinesim/dinesim/sim/trace"
)

// NoHolder marks a fork that no philosopher currently holds.
const NoHolder = -1

// fork is a binary-state exclusive resource. The state is held iff holder is
// set; only the current holder may transition it back to free. Fork state is
// guarded by the owning Table's mutex, never touched directly.
type fork struct {
	id     int
	held   bool
	holder int
}

// OwnershipError reports a release attempted by a philosopher that does not
// hold the fork. It is a programming-logic fault: the offending operation is
// aborted immediately and never retried.
type OwnershipError struct {
	Fork      int
	Holder    int // NoHolder when the fork was free
	Requester int
}

func (e *OwnershipError) Error() string {
	if e.Holder == NoHolder {
		return fmt.Sprintf("fork %d: release by philosopher %d but no philosopher holds it", e.Fork, e.Requester)
	}
	return fmt.Sprintf("fork %d: release by philosopher %d but philosopher %d holds it", e.Fork, e.Requester, e.Holder)
}

// Table is the ring of N forks shared by N philosophers. A single mutex
// guards all fork state: that one critical section is what makes the atomic
// dual-acquire's check-and-set indivisible relative to every other
// philosopher's acquire, and it keeps single-fork transitions race-free under
// real goroutine parallelism.
//
// Every state transition is recorded in the run's EventLog while the lock is
// still held, so the trace order matches the order transitions actually
// happened in.
type Table struct {
	mu      sync.Mutex
	forks   []fork
	log     *EventLog
	timing  TimingConfig
	backoff BackoffPolicy
}

// NewTable creates a ring of n forks logging to log. The timing config must
// already be resolved (see TimingConfig.withDefaults).
func NewTable(n int, log *EventLog, timing TimingConfig) *Table {
	if n < 2 {
		panic(fmt.Sprintf("NewTable: need at least 2 forks, got %d", n))
	}
	t := &Table{
		forks:   make([]fork, n),
		log:     log,
		timing:  timing,
		backoff: timing.Backoff,
	}
	for i := range t.forks {
		t.forks[i] = fork{id: i, holder: NoHolder}
	}
	return t
}

// Forks returns the number of forks in the ring.
func (t *Table) Forks() int {
	return len(t.forks)
}

// Holder returns the identity of the philosopher holding the fork, or
// NoHolder if it is free.
func (t *Table) Holder(forkID int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.forks[forkID].holder
}

// sleepUnits suspends the caller for the given number of time units.
func (t *Table) sleepUnits(units int) {
	t.timing.Sleep(time.Duration(units) * t.timing.Unit)
}

// tryTake attempts the free→held transition under the table lock.
func (t *Table) tryTake(phil, forkID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := &t.forks[forkID]
	if f.held {
		return false
	}
	f.held = true
	f.holder = phil
	t.log.Record(phil, trace.KindAcquire, forkID)
	return true
}

// Acquire blocks until the fork is free and transitions it to held by phil.
// A TRY event is logged immediately; contention is absorbed by the backoff
// schedule and never surfaced as an error. No fairness is guaranteed by this
// primitive alone — that is the calling strategy's job.
func (t *Table) Acquire(phil, forkID int) {
	t.log.Record(phil, trace.KindTry, forkID)
	b := t.backoff.Start()
	for !t.tryTake(phil, forkID) {
		wait := b.Next()
		logrus.Debugf("philosopher %d: fork %d busy, backing off %d units", phil, forkID, wait)
		t.sleepUnits(wait)
	}
}

// AcquireWithin is Acquire with a bounded wait: it gives up once the
// accumulated backoff reaches window units and reports whether the fork was
// taken. Used by the naive-timeout strategy for its second fork; the caller
// decides what to log and release on timeout.
func (t *Table) AcquireWithin(phil, forkID, window int) bool {
	t.log.Record(phil, trace.KindTry, forkID)
	b := t.backoff.Start()
	waited := 0
	for !t.tryTake(phil, forkID) {
		if waited >= window {
			return false
		}
		wait := b.Next()
		if waited+wait > window {
			wait = window - waited
		}
		waited += wait
		t.sleepUnits(wait)
	}
	return true
}

// AcquireBoth blocks until both forks are simultaneously free, then takes
// both in one indivisible step with a single ACQUIRE event listing both
// indices. If either fork is held, neither is taken and the caller backs off
// on the standard schedule. No philosopher ever observes a partially-updated
// pair.
func (t *Table) AcquireBoth(phil, left, right int) {
	t.log.Record(phil, trace.KindTry, left, right)
	b := t.backoff.Start()
	for {
		t.mu.Lock()
		lf, rf := &t.forks[left], &t.forks[right]
		if !lf.held && !rf.held {
			lf.held, lf.holder = true, phil
			rf.held, rf.holder = true, phil
			t.log.Record(phil, trace.KindAcquire, left, right)
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
		wait := b.Next()
		logrus.Debugf("philosopher %d: pair (%d,%d) unavailable, backing off %d units", phil, left, right, wait)
		t.sleepUnits(wait)
	}
}

// Release transitions the fork back to free. It fails with an OwnershipError
// if phil is not the current holder, including when the fork is already free;
// on failure the fork state is untouched and no event is logged.
func (t *Table) Release(phil, forkID int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := &t.forks[forkID]
	if !f.held || f.holder != phil {
		holder := f.holder
		if !f.held {
			holder = NoHolder
		}
		return &OwnershipError{Fork: forkID, Holder: holder, Requester: phil}
	}
	f.held = false
	f.holder = NoHolder
	t.log.Record(phil, trace.KindRelease, forkID)
	return nil
}
