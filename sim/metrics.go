// Aggregates per-run statistics for final reporting.

package sim

import "fmt"

// Metrics summarizes one experiment run for human consumption: meal counts
// per philosopher and the analyzer's verdict on the trace.
type Metrics struct {
	RunID          string
	Strategy       Strategy
	Meals          []int
	Events         int
	Violations     int
	SequenceErrors int
	SeatHighWater  int
	DurationMS     int64
}

// NewMetrics derives the summary from a completed experiment result.
func NewMetrics(res *Result) *Metrics {
	return &Metrics{
		RunID:          res.RunID,
		Strategy:       res.Strategy,
		Meals:          res.Analysis.Meals,
		Events:         len(res.Events),
		Violations:     len(res.Analysis.Violations),
		SequenceErrors: len(res.Analysis.SequenceErrors),
		SeatHighWater:  res.SeatHighWater,
		DurationMS:     res.Duration.Milliseconds(),
	}
}

// Print displays the run summary.
func (m *Metrics) Print() {
	fmt.Println("=== Experiment Metrics ===")
	fmt.Printf("Run              : %s\n", m.RunID)
	fmt.Printf("Strategy         : %s\n", m.Strategy)
	fmt.Printf("Duration         : %d ms\n", m.DurationMS)
	fmt.Printf("Events           : %d\n", m.Events)
	for phil, meals := range m.Meals {
		fmt.Printf("Philosopher %-4d : %d meals\n", phil, meals)
	}
	fmt.Printf("Violations       : %d\n", m.Violations)
	fmt.Printf("Sequence errors  : %d\n", m.SequenceErrors)
	if m.Strategy == StrategyConductor {
		fmt.Printf("Seat high water  : %d\n", m.SeatHighWater)
	}
}
