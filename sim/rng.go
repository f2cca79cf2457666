package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// ExperimentKey uniquely identifies a reproducible experiment run. Two runs
// with the same key and identical configuration draw identical think-time
// jitter (interleaving under real goroutines still varies, which is the
// point of the exercise).
type ExperimentKey int64

// NewExperimentKey creates an ExperimentKey from a seed value.
func NewExperimentKey(seed int64) ExperimentKey {
	return ExperimentKey(seed)
}

// SubsystemPhilosopher returns the RNG subsystem name for philosopher id.
func SubsystemPhilosopher(id int) string {
	return fmt.Sprintf("philosopher_%d", id)
}

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, derived as masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: ForSubsystem is NOT safe for concurrent use; the experiment
// driver materializes every philosopher's RNG before launching goroutines,
// and each returned *rand.Rand is used by a single goroutine only.
type PartitionedRNG struct {
	key        ExperimentKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from an ExperimentKey.
func NewPartitionedRNG(key ExperimentKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same *rand.Rand instance.
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the ExperimentKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() ExperimentKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
