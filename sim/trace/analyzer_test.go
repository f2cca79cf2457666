package trace

import (
	"testing"
)

// meal builds the four-event happy path for one philosopher's meal.
func meal(phil, n int) []Event {
	left := phil
	right := (phil + 1) % n
	return []Event{
		{Philosopher: phil, Kind: KindTry, Forks: []int{left}},
		{Philosopher: phil, Kind: KindAcquire, Forks: []int{left}},
		{Philosopher: phil, Kind: KindTry, Forks: []int{right}},
		{Philosopher: phil, Kind: KindAcquire, Forks: []int{right}},
		{Philosopher: phil, Kind: KindEatStart, Forks: []int{left, right}},
		{Philosopher: phil, Kind: KindEatEnd, Forks: []int{left, right}},
		{Philosopher: phil, Kind: KindRelease, Forks: []int{left}},
		{Philosopher: phil, Kind: KindRelease, Forks: []int{right}},
	}
}

func TestAnalyze_WellFormedTrace_CountsMeals(t *testing.T) {
	// GIVEN a trace where philosophers 0 and 2 each complete two meals
	var events []Event
	for i := 0; i < 2; i++ {
		events = append(events, meal(0, 5)...)
		events = append(events, meal(2, 5)...)
	}

	// WHEN the trace is analyzed
	a := Analyze(events, 5)

	// THEN meal counts match and no errors are reported
	want := []int{2, 0, 2, 0, 0}
	for i, m := range a.Meals {
		if m != want[i] {
			t.Errorf("Meals[%d]: got %d, want %d", i, m, want[i])
		}
	}
	if !a.Clean() {
		t.Errorf("expected clean analysis, got violations=%v sequenceErrors=%v",
			a.Violations, a.SequenceErrors)
	}
}

func TestAnalyze_NeighborEatingOverlap_ReportsViolation(t *testing.T) {
	// GIVEN philosopher 1 starts eating while philosopher 0 is still eating
	events := []Event{
		{Philosopher: 0, Kind: KindEatStart, Forks: []int{0, 1}},
		{Philosopher: 1, Kind: KindEatStart, Forks: []int{1, 2}},
		{Philosopher: 1, Kind: KindEatEnd, Forks: []int{1, 2}},
		{Philosopher: 0, Kind: KindEatEnd, Forks: []int{0, 1}},
	}

	// WHEN the trace is analyzed
	a := Analyze(events, 5)

	// THEN exactly one violation names the pair
	if len(a.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(a.Violations))
	}
	v := a.Violations[0]
	if v.Philosopher != 1 || v.Neighbor != 0 {
		t.Errorf("violation: got phil=%d neighbor=%d, want phil=1 neighbor=0", v.Philosopher, v.Neighbor)
	}
	if v.Index != 1 {
		t.Errorf("violation index: got %d, want 1", v.Index)
	}
}

func TestAnalyze_NonAdjacentOverlap_IsNotAViolation(t *testing.T) {
	// GIVEN philosophers 0 and 2 eat concurrently (they share no fork)
	events := []Event{
		{Philosopher: 0, Kind: KindEatStart, Forks: []int{0, 1}},
		{Philosopher: 2, Kind: KindEatStart, Forks: []int{2, 3}},
		{Philosopher: 0, Kind: KindEatEnd, Forks: []int{0, 1}},
		{Philosopher: 2, Kind: KindEatEnd, Forks: []int{2, 3}},
	}

	a := Analyze(events, 5)

	if !a.Clean() {
		t.Errorf("non-adjacent overlap flagged: violations=%v", a.Violations)
	}
	if a.Meals[0] != 1 || a.Meals[2] != 1 {
		t.Errorf("meal counts: got %v", a.Meals)
	}
}

func TestAnalyze_RingWraparound_NeighborZeroAndLast(t *testing.T) {
	// GIVEN philosopher 0 starts eating while philosopher n-1 is eating
	events := []Event{
		{Philosopher: 4, Kind: KindEatStart, Forks: []int{4, 0}},
		{Philosopher: 0, Kind: KindEatStart, Forks: []int{0, 1}},
	}

	a := Analyze(events, 5)

	if len(a.Violations) != 1 {
		t.Fatalf("expected 1 violation across the ring seam, got %d", len(a.Violations))
	}
	if a.Violations[0].Neighbor != 4 {
		t.Errorf("neighbor: got %d, want 4", a.Violations[0].Neighbor)
	}
}

func TestAnalyze_EatEndWithoutStart_ReportsSequenceError(t *testing.T) {
	// GIVEN an EAT_END with no preceding EAT_START
	events := []Event{
		{Philosopher: 3, Kind: KindEatEnd, Forks: []int{3, 4}},
	}

	a := Analyze(events, 5)

	if len(a.SequenceErrors) != 1 {
		t.Fatalf("expected 1 sequence error, got %d", len(a.SequenceErrors))
	}
	se := a.SequenceErrors[0]
	if se.Philosopher != 3 || se.Kind != KindEatEnd {
		t.Errorf("sequence error: got %+v", se)
	}
	// THEN the orphan EAT_END does not count as a meal
	if a.Meals[3] != 0 {
		t.Errorf("Meals[3]: got %d, want 0", a.Meals[3])
	}
}

func TestAnalyze_DoubleEatStart_ReportsSequenceError(t *testing.T) {
	events := []Event{
		{Philosopher: 1, Kind: KindEatStart, Forks: []int{1, 2}},
		{Philosopher: 1, Kind: KindEatStart, Forks: []int{1, 2}},
	}

	a := Analyze(events, 5)

	if len(a.SequenceErrors) != 1 {
		t.Fatalf("expected 1 sequence error, got %d", len(a.SequenceErrors))
	}
	if a.SequenceErrors[0].Reason != "already eating" {
		t.Errorf("reason: got %q", a.SequenceErrors[0].Reason)
	}
}

func TestAnalyze_EmptyTrace_ZeroValueAnalysis(t *testing.T) {
	a := Analyze(nil, 5)

	if len(a.Meals) != 5 {
		t.Fatalf("Meals length: got %d, want 5", len(a.Meals))
	}
	if !a.Clean() {
		t.Error("empty trace should be clean")
	}
}
