package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/dinesim/dinesim/sim/trace"
)

// Strategy names a fork-acquisition protocol. The set is closed: new
// protocols are added here and dispatched in Philosopher.Run, never at call
// sites.
type Strategy string

const (
	// StrategyNaive always takes left then right. It is the deadlock-prone
	// negative reference: a run of it is not guaranteed to terminate.
	StrategyNaive Strategy = "naive"
	// StrategyAsymmetric has even philosophers take left-then-right and odd
	// ones right-then-left, breaking the symmetric circular wait.
	StrategyAsymmetric Strategy = "asymmetric"
	// StrategyConductor gates acquisition behind a FIFO seat semaphore capped
	// below the philosopher count.
	StrategyConductor Strategy = "conductor"
	// StrategyAtomic takes both forks in one indivisible check-and-set, or
	// neither.
	StrategyAtomic Strategy = "atomic"
	// StrategyNaiveTimeout is naive with a bounded wait on the second fork:
	// on timeout the first fork is put back and the cycle restarts.
	StrategyNaiveTimeout Strategy = "naive-timeout"
)

// validStrategies maps accepted strategy names.
var validStrategies = map[Strategy]bool{
	StrategyNaive:        true,
	StrategyAsymmetric:   true,
	StrategyConductor:    true,
	StrategyAtomic:       true,
	StrategyNaiveTimeout: true,
}

// IsValidStrategy returns true if the given name is a recognized strategy.
func IsValidStrategy(name string) bool {
	return validStrategies[Strategy(name)]
}

// StrategyNames returns the valid strategy names in a stable order.
func StrategyNames() []string {
	return []string{
		string(StrategyNaive),
		string(StrategyAsymmetric),
		string(StrategyConductor),
		string(StrategyAtomic),
		string(StrategyNaiveTimeout),
	}
}

// Philosopher is one actor on the ring: it cycles between thinking and
// eating, contending for the two forks adjacent to its seat. The left fork
// index equals the philosopher's identity and the right fork is the next one
// around the ring; both are fixed at construction.
type Philosopher struct {
	ID    int
	left  int
	right int

	table     *Table
	conductor *Conductor // nil unless running the conductor strategy
	rng       *rand.Rand
}

// NewPhilosopher seats philosopher id at the table. conductor may be nil; it
// is required only by the conductor strategy. rng drives think-time jitter
// and must not be shared with another philosopher.
func NewPhilosopher(id int, table *Table, conductor *Conductor, rng *rand.Rand) *Philosopher {
	n := table.Forks()
	return &Philosopher{
		ID:        id,
		left:      id % n,
		right:     (id + 1) % n,
		table:     table,
		conductor: conductor,
		rng:       rng,
	}
}

// Run executes meals complete eat cycles under the named strategy and
// returns once the last meal finished. Contention never surfaces as an
// error; an ownership violation on release does, and aborts the run.
func (p *Philosopher) Run(strategy Strategy, meals int) error {
	switch strategy {
	case StrategyNaive:
		return p.runNaive(meals)
	case StrategyAsymmetric:
		return p.runAsymmetric(meals)
	case StrategyConductor:
		return p.runConductor(meals)
	case StrategyAtomic:
		return p.runAtomic(meals)
	case StrategyNaiveTimeout:
		return p.runNaiveTimeout(meals)
	default:
		return fmt.Errorf("philosopher %d: unknown strategy %q", p.ID, strategy)
	}
}

// think suspends for a uniformly-drawn duration up to ThinkMax units.
func (p *Philosopher) think() {
	thinkMax := p.table.timing.ThinkMax
	if thinkMax <= 0 {
		return
	}
	units := p.rng.Intn(thinkMax + 1)
	p.table.sleepUnits(units)
}

// dine runs the common eating phase: both forks are already held on entry,
// and both are released before it returns.
func (p *Philosopher) dine() error {
	p.table.log.Record(p.ID, trace.KindEatStart, p.left, p.right)
	p.table.sleepUnits(p.table.timing.EatUnits)
	p.table.log.Record(p.ID, trace.KindEatEnd, p.left, p.right)
	if err := p.table.Release(p.ID, p.left); err != nil {
		return err
	}
	return p.table.Release(p.ID, p.right)
}

func (p *Philosopher) runNaive(meals int) error {
	for eaten := 0; eaten < meals; eaten++ {
		p.think()
		p.table.Acquire(p.ID, p.left)
		p.table.Acquire(p.ID, p.right)
		if err := p.dine(); err != nil {
			return err
		}
	}
	logrus.Debugf("philosopher %d: done after %d meals", p.ID, meals)
	return nil
}

func (p *Philosopher) runAsymmetric(meals int) error {
	first, second := p.left, p.right
	if p.ID%2 == 1 {
		first, second = p.right, p.left
	}
	for eaten := 0; eaten < meals; eaten++ {
		p.think()
		p.table.Acquire(p.ID, first)
		p.table.Acquire(p.ID, second)
		if err := p.dine(); err != nil {
			return err
		}
	}
	logrus.Debugf("philosopher %d: done after %d meals", p.ID, meals)
	return nil
}

func (p *Philosopher) runConductor(meals int) error {
	if p.conductor == nil {
		return fmt.Errorf("philosopher %d: conductor strategy requires a conductor", p.ID)
	}
	for eaten := 0; eaten < meals; eaten++ {
		p.think()
		p.conductor.RequestSeat()
		p.table.Acquire(p.ID, p.left)
		p.table.Acquire(p.ID, p.right)
		err := p.dine()
		p.conductor.LeaveSeat()
		if err != nil {
			return err
		}
	}
	logrus.Debugf("philosopher %d: done after %d meals", p.ID, meals)
	return nil
}

func (p *Philosopher) runAtomic(meals int) error {
	for eaten := 0; eaten < meals; eaten++ {
		p.think()
		p.table.AcquireBoth(p.ID, p.left, p.right)
		if err := p.dine(); err != nil {
			return err
		}
	}
	logrus.Debugf("philosopher %d: done after %d meals", p.ID, meals)
	return nil
}

// runNaiveTimeout restarts the whole cycle when the second fork cannot be
// taken within the timeout window: the first fork goes back on the table and
// the meal does not count. Only the first-acquired fork is put back; the
// acquisition order itself never changes.
func (p *Philosopher) runNaiveTimeout(meals int) error {
	window := p.table.timing.TimeoutUnits
	for eaten := 0; eaten < meals; {
		p.think()
		p.table.Acquire(p.ID, p.left)
		if !p.table.AcquireWithin(p.ID, p.right, window) {
			p.table.log.Record(p.ID, trace.KindTimeout, p.left, p.right)
			logrus.Debugf("philosopher %d: timed out waiting for fork %d, restarting cycle", p.ID, p.right)
			if err := p.table.Release(p.ID, p.left); err != nil {
				return err
			}
			continue
		}
		if err := p.dine(); err != nil {
			return err
		}
		eaten++
	}
	logrus.Debugf("philosopher %d: done after %d meals", p.ID, meals)
	return nil
}
