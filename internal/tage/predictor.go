// ═══════════════════════════════════════════════════════════════════════════
// Predictor
// ═══════════════════════════════════════════════════════════════════════════
//
// WHAT: the owning struct gluing GHR/PHR, CSRs, the bimodal table and the
//       twelve tagged tables into the two host-facing calls Predict/Update.
// HOW:  New builds every table and CSR at construction time, sized and
//       zeroed per §3's lifecycle rules; Predict and Update are the only
//       mutating entry points after that.
//
// ═══════════════════════════════════════════════════════════════════════════

package tage

const (
	altConfMax  = 15
	altConfInit = 8

	cyclePeriod = 1 << 20
)

// BranchKind identifies the instruction class a resolved branch came from.
// The predictor core never branches on it — it exists purely so the host
// simulator's call sites stay source-compatible with a wider instruction
// set than conditional branches alone.
type BranchKind uint8

const (
	BranchKindConditional BranchKind = iota
	BranchKindCall
	BranchKindReturn
	BranchKindIndirect
)

// pendingPrediction is the scratch a Predict call leaves behind for the
// Update call that resolves it. mainTable/altTable hold numTables as the
// "no hit" sentinel.
type pendingPrediction struct {
	valid    bool
	pc       uint64
	mainTable int
	altTable  int
	mainIdx   uint32
	altIdx    uint32
	idx       [numTables]uint32
	tag       [numTables]uint16
	mainPred  bool
	altPred   bool
	predDir   bool
}

// Predictor is a TAGE conditional branch direction predictor: a bimodal
// base predictor backed by twelve geometric-history tagged tables, folded
// CSR history compression, and useful-bit-paced allocation on misprediction.
//
// A Predictor is not safe for concurrent use; the host must serialize
// Predict/Update pairs for a single instance, and must call Update exactly
// once per Predict before issuing the next Predict.
type Predictor struct {
	bimodal bimodalTable
	tagged  [numTables]taggedTable

	csrIndex [numTables]foldedHistory
	csrTag0  [numTables]foldedHistory
	csrTag1  [numTables]foldedHistory

	// phrOffset is a per-table PHR-mix offset. The observed source sets it
	// uniformly to zero; kept as a field rather than a constant so a future
	// variant can make it nonzero without changing the index formula's shape.
	phrOffset [numTables]uint

	ghr globalHistory
	phr pathHistory

	altConf     uint8
	updateCount uint32
	decayPhase  uint8

	pending pendingPrediction

	rng    RNG
	seed   uint64
}

// Option configures a Predictor at construction time.
type Option func(*Predictor)

// WithRNGSeed seeds the standard-library RNG backing the allocation gate.
func WithRNGSeed(seed uint64) Option {
	return func(p *Predictor) {
		p.seed = seed
	}
}

// WithRNG injects a caller-supplied RNG, overriding WithRNGSeed. Tests use
// this to make the allocation gate deterministic.
func WithRNG(r RNG) Option {
	return func(p *Predictor) {
		p.rng = r
	}
}

// New builds a Predictor with all tables allocated and zeroed per the
// lifecycle rules: tagged entries start at (tag=0, pred=0, u=0), the
// bimodal table starts at WeaklyTaken, alt_conf starts at 8.
func New(opts ...Option) *Predictor {
	p := &Predictor{}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = defaultRNG(p.seed)
	}
	p.Initialize()
	return p
}

// Initialize resets all state to the defaults in the data model. It is
// idempotent up to the PRNG seed/stream position.
func (p *Predictor) Initialize() {
	p.bimodal.init()
	for t := 0; t < numTables; t++ {
		p.tagged[t] = newTaggedTable(t)
		p.csrIndex[t] = newFoldedHistory(histLen[t], idxBits[t])
		p.csrTag0[t] = newFoldedHistory(histLen[t], tagBits[t])
		p.csrTag1[t] = newFoldedHistory(histLen[t], tagBits[t]-1)
	}
	p.ghr.reset()
	p.phr.reset()
	p.altConf = altConfInit
	p.updateCount = 0
	p.decayPhase = 0
	p.pending = pendingPrediction{}
}
