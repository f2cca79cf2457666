package sim

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dinesim/dinesim/sim/trace"
)

// EventLog is the append-only record of philosopher actions for one
// experiment run. It is owned by the run that created it: StartRun tags
// subsequent events with a fresh run identifier and resets the elapsed-time
// origin, Clear empties the log between independent runs.
//
// All methods are safe for concurrent use; the append order is the total
// order the analyzer later replays.
type EventLog struct {
	mu        sync.Mutex
	runID     string
	algorithm string
	origin    time.Time
	events    []trace.Event
	runSeq    int
}

// NewEventLog creates an empty log with no active run.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// StartRun begins a new run for the named algorithm: the elapsed-time origin
// is reset and all subsequent events carry the returned run identifier.
func (l *EventLog) StartRun(algorithm string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runSeq++
	l.runID = fmt.Sprintf("%s-%d", algorithm, l.runSeq)
	l.algorithm = algorithm
	l.origin = time.Now()
	return l.runID
}

// Clear empties the log between independent runs. The run counter is kept so
// that run identifiers never repeat within one log's lifetime.
func (l *EventLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
	l.runID = ""
	l.algorithm = ""
}

// Record appends one event for the active run. Panics if no run was started;
// recording outside a run is a driver bug, not a contention condition.
func (l *EventLog) Record(phil int, kind trace.Kind, forks ...int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.runID == "" {
		panic("EventLog.Record: no active run, call StartRun first")
	}
	l.events = append(l.events, trace.Event{
		RunID:       l.runID,
		Algorithm:   l.algorithm,
		T:           time.Since(l.origin).Milliseconds(),
		Philosopher: phil,
		Kind:        kind,
		Forks:       forks,
	})
}

// Events returns a snapshot copy of the log contents.
func (l *EventLog) Events() []trace.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]trace.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// WriteJSONL emits the log as JSON lines in the external trace format.
func (l *EventLog) WriteJSONL(w io.Writer) error {
	return trace.WriteEvents(w, l.Events())
}
