package sim

import (
	"hash/fnv"
	"math/rand"

	erand "golang.org/x/exp/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible training run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce identical season summaries.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemPool is the RNG subsystem for recruit generation.
	// Uses master seed directly so --seed alone pins the recruit classes.
	SubsystemPool = "pool"

	// SubsystemMarket drives processing order, bid adjustments and the lottery.
	SubsystemMarket = "market"

	// SubsystemMeet drives tie jitter, injuries and meet-day variability.
	SubsystemMeet = "meet"

	// SubsystemAgent drives exploration, tie-breaking and replay sampling.
	SubsystemAgent = "agent"

	// SubsystemHeuristic drives the fixed random-bid teams.
	SubsystemHeuristic = "heuristic"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemPool: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Isolation matters here: an extra exploration draw in the agent must not
// shift which recruits the pool generates next season.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
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
	if name == SubsystemPool {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === Source adapter ===

// SourceOf adapts a *rand.Rand into the source interface gonum's samplers take.
// Draws made through the adapter advance the wrapped stream, so weighted
// sampling stays on the same reproducible sequence as every other draw.
func SourceOf(rng *rand.Rand) erand.Source {
	return &rngSource{rng: rng}
}

type rngSource struct {
	rng *rand.Rand
}

func (s *rngSource) Uint64() uint64 { return s.rng.Uint64() }

func (s *rngSource) Seed(seed uint64) { s.rng.Seed(int64(seed)) }
