package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinesim/dinesim/sim/trace"
)

func testRNG(id int) *PartitionedRNG {
	return NewPartitionedRNG(NewExperimentKey(int64(id)))
}

func TestNewPhilosopher_RingIndicesWrapAround(t *testing.T) {
	table, _ := newTestTable(t, 5, TimingConfig{Sleep: noSleep})

	p := NewPhilosopher(4, table, nil, testRNG(1).ForSubsystem(SubsystemPhilosopher(4)))

	assert.Equal(t, 4, p.left)
	assert.Equal(t, 0, p.right)
}

func TestPhilosopher_Run_UnknownStrategy_Fails(t *testing.T) {
	table, _ := newTestTable(t, 3, TimingConfig{Sleep: noSleep})
	p := NewPhilosopher(0, table, nil, testRNG(1).ForSubsystem(SubsystemPhilosopher(0)))

	err := p.Run(Strategy("zen"), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "zen")
}

func TestPhilosopher_ConductorStrategy_RequiresConductor(t *testing.T) {
	table, _ := newTestTable(t, 3, TimingConfig{Sleep: noSleep})
	p := NewPhilosopher(0, table, nil, testRNG(1).ForSubsystem(SubsystemPhilosopher(0)))

	err := p.Run(StrategyConductor, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "conductor")
}

func TestPhilosopher_Atomic_SingleCycleEventSequence(t *testing.T) {
	// GIVEN a lone philosopher at a two-fork table
	table, log := newTestTable(t, 2, TimingConfig{Sleep: noSleep})
	p := NewPhilosopher(0, table, nil, testRNG(7).ForSubsystem(SubsystemPhilosopher(0)))

	// WHEN it completes one atomic meal
	require.NoError(t, p.Run(StrategyAtomic, 1))

	// THEN the trace is the canonical six-event cycle with a paired ACQUIRE
	events := log.Events()
	kinds := make([]trace.Kind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	assert.Equal(t, []trace.Kind{
		trace.KindTry, trace.KindAcquire,
		trace.KindEatStart, trace.KindEatEnd,
		trace.KindRelease, trace.KindRelease,
	}, kinds)
	assert.Equal(t, []int{0, 1}, events[1].Forks)
}

func TestPhilosopher_Asymmetric_OddIdentityLeadsWithRightFork(t *testing.T) {
	table, log := newTestTable(t, 3, TimingConfig{Sleep: noSleep})
	p := NewPhilosopher(1, table, nil, testRNG(7).ForSubsystem(SubsystemPhilosopher(1)))

	require.NoError(t, p.Run(StrategyAsymmetric, 1))

	first := log.Events()[0]
	require.Equal(t, trace.KindTry, first.Kind)
	assert.Equal(t, []int{2}, first.Forks) // right fork of philosopher 1
}

func TestPhilosopher_Asymmetric_EvenIdentityLeadsWithLeftFork(t *testing.T) {
	table, log := newTestTable(t, 3, TimingConfig{Sleep: noSleep})
	p := NewPhilosopher(2, table, nil, testRNG(7).ForSubsystem(SubsystemPhilosopher(2)))

	require.NoError(t, p.Run(StrategyAsymmetric, 1))

	first := log.Events()[0]
	assert.Equal(t, []int{2}, first.Forks) // left fork of philosopher 2
}

func TestPhilosopher_ZeroMeals_DoesNothing(t *testing.T) {
	table, log := newTestTable(t, 3, TimingConfig{Sleep: noSleep})
	p := NewPhilosopher(0, table, nil, testRNG(7).ForSubsystem(SubsystemPhilosopher(0)))

	require.NoError(t, p.Run(StrategyNaive, 0))

	assert.Equal(t, 0, log.Len())
}

func TestPhilosopher_NaiveTimeout_RestartsAndStillFinishes(t *testing.T) {
	// GIVEN the right fork held by a neighbor until two timeouts have fired
	table, log := newTestTable(t, 3, TimingConfig{Sleep: noSleep, TimeoutUnits: 5})
	table.Acquire(1, 1)
	p := NewPhilosopher(0, table, nil, testRNG(7).ForSubsystem(SubsystemPhilosopher(0)))

	done := make(chan error, 1)
	go func() { done <- p.Run(StrategyNaiveTimeout, 1) }()

	// wait for at least one TIMEOUT, then free the fork
	timeouts := func() int {
		n := 0
		for _, ev := range log.Events() {
			if ev.Kind == trace.KindTimeout {
				n++
			}
		}
		return n
	}
	require.Eventually(t, func() bool { return timeouts() >= 1 }, timeWait, timeTick)
	require.NoError(t, table.Release(1, 1))

	require.NoError(t, <-done)
	a := trace.Analyze(log.Events(), 3)
	assert.Equal(t, 1, a.Meals[0])
	assert.True(t, a.Clean())
}

func TestIsValidStrategy(t *testing.T) {
	for _, name := range StrategyNames() {
		assert.True(t, IsValidStrategy(name), name)
	}
	assert.False(t, IsValidStrategy("dijkstra"))
}
