package sim

import (
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical catalogs and client workloads.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemCatalog is the RNG subsystem for catalog generation
	// (item sizes). Uses the master seed directly so a bare --seed run
	// reproduces the same catalog as an explicit --catalog-seed run
	// with the same value.
	SubsystemCatalog = "catalog"

	// SubsystemClients is the RNG subsystem for client request generation
	// (item picks, per-request counts, arrival jitter).
	SubsystemClients = "clients"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - An explicit Override for the subsystem, if set, wins.
//   - For SubsystemCatalog: uses the master seed directly.
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine;
// in practice all generation happens before the server starts.
type PartitionedRNG struct {
	key        SimulationKey
	overrides  map[string]int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		overrides:  make(map[string]int64),
		subsystems: make(map[string]*rand.Rand),
	}
}

// Override pins the named subsystem to an explicit seed instead of the
// derived one. This backs the separate catalog/client seed knobs on the CLI.
// Must be called before the first ForSubsystem for that name.
func (p *PartitionedRNG) Override(name string, seed int64) {
	p.overrides[name] = seed
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	switch {
	case p.overrides[name] != 0:
		derivedSeed = p.overrides[name]
	case name == SubsystemCatalog:
		derivedSeed = int64(p.key)
	default:
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
