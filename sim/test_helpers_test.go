package sim

import "time"

// Polling bounds for require.Eventually in concurrency tests.
const (
	timeWait = 5 * time.Second
	timeTick = time.Millisecond
)

// fastTiming shrinks the time unit so scenario runs finish in milliseconds
// while keeping real sleeps (and therefore real interleaving jitter).
func fastTiming() TimingConfig {
	return TimingConfig{Unit: 50 * time.Microsecond}
}
