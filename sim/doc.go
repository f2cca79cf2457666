// Package sim provides the core engine for dining-philosophers contention
// experiments: N philosophers arranged in a ring around N forks, each fork
// shared by its two ring neighbors, with interchangeable deadlock-avoidance
// strategies layered over a common backoff-acquire primitive.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - table.go: the fork ring, ownership tracking, and the acquire/release
//     primitives (including the atomic dual-acquire)
//   - philosopher.go: the per-actor eat/think loop and the strategy variants
//   - experiment.go: the driver that wires a ring together and runs it
//
// # Architecture
//
// The sim package holds all mutable run state; sim/trace holds pure data:
//   - sim/trace/: event records, JSONL encoding, and the offline analyzer
//     that reconstructs meal counts and detects mutual-exclusion violations
//
// Every state transition a philosopher makes is recorded in an EventLog owned
// by the experiment run. Correctness (no deadlock, no mutual-exclusion
// violation, eventual fairness) is verified after the fact from the ordered
// trace alone — the engine itself performs no deadlock detection.
//
// # Strategies
//
// Strategies form a closed named set dispatched through Philosopher.Run:
//   - naive: left then right, unconditionally; the deadlock-prone reference
//   - asymmetric: even ids go left-right, odd ids right-left
//   - conductor: a FIFO seat semaphore capped at N-1 gates acquisition
//   - atomic: both forks taken in one indivisible check-and-set, or neither
//   - naive-timeout: naive plus a bounded wait on the second fork
//
// All waiting uses the same binary-exponential backoff schedule (backoff.go);
// an injectable SleepFunc keeps the schedule unit-testable.
package sim
