package trace

import "fmt"

// Violation records a mutual-exclusion breach: a philosopher started eating
// while a ring neighbor was still marked eating.
type Violation struct {
	Index       int // position of the offending event in the trace
	Philosopher int
	Neighbor    int
}

func (v Violation) String() string {
	return fmt.Sprintf("event %d: philosopher %d started eating while neighbor %d was eating",
		v.Index, v.Philosopher, v.Neighbor)
}

// SequenceError records a malformed lifecycle transition, such as an EAT_END
// for a philosopher that was never marked eating.
type SequenceError struct {
	Index       int
	Philosopher int
	Kind        Kind
	Reason      string
}

func (e SequenceError) String() string {
	return fmt.Sprintf("event %d: philosopher %d %s: %s", e.Index, e.Philosopher, e.Kind, e.Reason)
}

// Analysis is the reconstruction of a run from its ordered trace.
type Analysis struct {
	Meals          []int // completed meals per philosopher, indexed by identity
	Violations     []Violation
	SequenceErrors []SequenceError
}

// Clean reports whether the trace showed no violations and no sequence errors.
func (a *Analysis) Clean() bool {
	return len(a.Violations) == 0 && len(a.SequenceErrors) == 0
}

// Analyze replays an ordered event trace for n philosophers and reconstructs
// per-philosopher meal counts, mutual-exclusion violations, and malformed
// event sequences. It is a pure function of the trace: the event slice is
// never mutated and no state survives the call.
//
// The working set of currently-eating philosophers is maintained from
// EAT_START/EAT_END pairs. A violation is an EAT_START for philosopher i while
// (i-1 mod n) or (i+1 mod n) is in the set; a sequence error is an EAT_END for
// a philosopher not in the set, or an EAT_START for one already in it.
func Analyze(events []Event, n int) *Analysis {
	a := &Analysis{Meals: make([]int, n)}
	if n == 0 {
		return a
	}
	eating := make(map[int]bool, n)
	for i := range events {
		ev := &events[i]
		phil := ev.Philosopher
		switch ev.Kind {
		case KindEatStart:
			if eating[phil] {
				a.SequenceErrors = append(a.SequenceErrors, SequenceError{
					Index: i, Philosopher: phil, Kind: ev.Kind,
					Reason: "already eating",
				})
			}
			left := (phil - 1 + n) % n
			right := (phil + 1) % n
			for _, neighbor := range []int{left, right} {
				if neighbor != phil && eating[neighbor] {
					a.Violations = append(a.Violations, Violation{
						Index: i, Philosopher: phil, Neighbor: neighbor,
					})
				}
			}
			eating[phil] = true
		case KindEatEnd:
			if !eating[phil] {
				a.SequenceErrors = append(a.SequenceErrors, SequenceError{
					Index: i, Philosopher: phil, Kind: ev.Kind,
					Reason: "not currently eating",
				})
				continue
			}
			delete(eating, phil)
			if phil >= 0 && phil < n {
				a.Meals[phil]++
			}
		}
	}
	return a
}
