// ═══════════════════════════════════════════════════════════════════════════
// Allocation RNG
// ═══════════════════════════════════════════════════════════════════════════
//
// WHAT: the stochastic gate consulted once per allocation attempt.
// WHY stdlib: no PRNG appears anywhere in the retrieval pack's production
//             (non-test) code — every candidate dependency in the pack is a
//             logging/CLI/serialization/storage library, none of which
//             supplies a seedable generator. math/rand is the only
//             standard-library concern carried into this package; every
//             other ambient concern routes through a third-party library
//             (see the ledger in DESIGN.md).
//
// ═══════════════════════════════════════════════════════════════════════════

package tage

import "math/rand"

// RNG is the one-method surface the allocation gate draws from. Tests
// supply a deterministic stub; production code defaults to *rand.Rand.
type RNG interface {
	Intn(n int) int
}

func defaultRNG(seed uint64) RNG {
	return rand.New(rand.NewSource(int64(seed)))
}

// allocProbability is the denominator of the 1-in-10 stochastic allocation
// gate from the update engine's allocation step.
const allocProbability = 10

func allocGatePasses(r RNG) bool {
	return r.Intn(allocProbability) == 0
}
