package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// NoiseSource supplies uniform draws in [0, 1).
// *rand.Rand satisfies it; tests substitute a fixed sequence.
type NoiseSource interface {
	Float64() float64
}

// === AnalysisKey ===

// AnalysisKey uniquely identifies a reproducible analysis run.
// Two runs with the same AnalysisKey and identical settings
// MUST produce bit-for-bit identical samples.
type AnalysisKey int64

// NewAnalysisKey creates an AnalysisKey from a seed value.
func NewAnalysisKey(seed int64) AnalysisKey {
	return AnalysisKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemNoise is the RNG subsystem for measurement noise.
	// Uses the master seed directly so that a bare --seed run is stable.
	SubsystemNoise = "noise"
)

// SubsystemAnalysis returns the subsystem name for the N-th analysis issued
// by one Analyzer. Each analysis draws from its own stream.
func SubsystemAnalysis(id uint64) string {
	return fmt.Sprintf("analysis_%d", id)
}

// SubsystemAssumption returns the subsystem name used when several
// assumptions are generated side by side from one key.
func SubsystemAssumption(a ComplexityAssumption) string {
	return "assumption_" + string(a)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemNoise: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        AnalysisKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from an AnalysisKey.
func NewPartitionedRNG(key AnalysisKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemNoise {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the AnalysisKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() AnalysisKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
