// Package trace provides pure event records for philosopher runs and the
// offline analyzer that validates them. This package has no dependencies on
// sim/ — it stores and inspects data only.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Kind identifies one step of a philosopher's acquire/eat/release lifecycle.
type Kind string

const (
	KindTry      Kind = "TRY"
	KindAcquire  Kind = "ACQUIRE"
	KindEatStart Kind = "EAT_START"
	KindEatEnd   Kind = "EAT_END"
	KindRelease  Kind = "RELEASE"
	KindTimeout  Kind = "TIMEOUT"
)

// validKinds maps accepted event kind strings.
var validKinds = map[Kind]bool{
	KindTry:      true,
	KindAcquire:  true,
	KindEatStart: true,
	KindEatEnd:   true,
	KindRelease:  true,
	KindTimeout:  true,
}

// IsValidKind returns true if the given kind string is a recognized event kind.
func IsValidKind(kind string) bool {
	return validKinds[Kind(kind)]
}

// Event is one record in a run's trace. Events are appended in the order the
// logging calls execute; T is informational elapsed time and carries no
// ordering guarantee of its own.
type Event struct {
	RunID       string `json:"runId"`
	Algorithm   string `json:"algorithm"`
	T           int64  `json:"t"` // ms elapsed since run start
	Philosopher int    `json:"phil"`
	Kind        Kind   `json:"event"`
	Forks       []int  `json:"forks"`
}

// WriteEvents encodes events as JSON lines, one object per event.
func WriteEvents(w io.Writer, events []Event) error {
	enc := json.NewEncoder(w)
	for i := range events {
		if err := enc.Encode(&events[i]); err != nil {
			return fmt.Errorf("encoding event %d: %w", i, err)
		}
	}
	return nil
}

// ReadEvents decodes a JSON-lines trace. Blank lines are skipped; a line that
// fails to decode or carries an unknown event kind is an error.
func ReadEvents(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("trace line %d: %w", line, err)
		}
		if !validKinds[ev.Kind] {
			return nil, fmt.Errorf("trace line %d: unknown event kind %q", line, ev.Kind)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return events, nil
}

// ActorCount infers the philosopher count from a trace: the highest
// philosopher identity seen, plus one. Returns 0 for an empty trace.
func ActorCount(events []Event) int {
	n := 0
	for i := range events {
		if events[i].Philosopher+1 > n {
			n = events[i].Philosopher + 1
		}
	}
	return n
}
