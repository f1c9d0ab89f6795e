// ═══════════════════════════════════════════════════════════════════════════
// Bimodal Table
// ═══════════════════════════════════════════════════════════════════════════
//
// WHAT: PC-indexed 2-bit saturating counters, the base predictor used when
//       no tagged table holds a matching entry.
// HOW:  A flat array of 2^13 counters, indexed directly by low PC bits.
// WHY:  Guarantees every branch gets a prediction, including ones that have
//       never allocated a tagged entry.
//
// ═══════════════════════════════════════════════════════════════════════════

package tage

const (
	bimodalIndexBits = 13
	bimodalSize      = 1 << bimodalIndexBits
	bimodalIndexMask = bimodalSize - 1

	bimodalMax     = 3
	bimodalWeaklyTaken = 2
)

type bimodalTable struct {
	counters [bimodalSize]uint8
}

func (b *bimodalTable) init() {
	for i := range b.counters {
		b.counters[i] = bimodalWeaklyTaken
	}
}

func bimodalIndex(pc uint64) uint32 {
	return uint32(pc) & bimodalIndexMask
}

func (b *bimodalTable) read(idx uint32) uint8 {
	return b.counters[idx]
}

// predict reports the base-predictor direction for idx: taken iff the
// counter has reached its halfway point or higher.
func (b *bimodalTable) predict(idx uint32) bool {
	return b.counters[idx] >= bimodalWeaklyTaken
}

func (b *bimodalTable) update(idx uint32, taken bool) {
	c := b.counters[idx]
	if taken {
		if c < bimodalMax {
			c++
		}
	} else if c > 0 {
		c--
	}
	b.counters[idx] = c
}
