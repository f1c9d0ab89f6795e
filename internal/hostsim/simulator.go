// ═══════════════════════════════════════════════════════════════════════════
// Simulator
// ═══════════════════════════════════════════════════════════════════════════
//
// WHAT: owns a predictor, a scheduler and the execution units, replays a
//       stream of branch records against them, and reports IPC,
//       misprediction rate and predictor occupancy together.
// HOW:  each branch record becomes a one-operation dispatch: the scheduler
//       treats it as always-ready (branches carry no register operands),
//       Predict supplies the speculative direction at issue time, and the
//       resolved outcome from the trace drives Update and the
//       misprediction tally.
//
// ═══════════════════════════════════════════════════════════════════════════

package hostsim

import "github.com/supraxlab/tage/internal/tage"

// BranchRecord is one resolved dynamic branch from a host instruction
// stream: the PC that was predicted, its target, whether it was actually
// taken, and its instruction-class tag.
type BranchRecord struct {
	PC     uint64
	Target uint64
	Taken  bool
	Kind   tage.BranchKind
}

// Result summarizes a completed replay.
type Result struct {
	Branches       int
	Mispredictions int
	Cycles         uint64
	Instructions   uint64
	PredictorStats tage.Stats
}

func (r Result) IPC() float64 {
	if r.Cycles == 0 {
		return 0
	}
	return float64(r.Instructions) / float64(r.Cycles)
}

func (r Result) MispredictRate() float64 {
	if r.Branches == 0 {
		return 0
	}
	return float64(r.Mispredictions) / float64(r.Branches)
}

// Simulator replays BranchRecords through a Predictor and a Scheduler,
// dispatching one branch operation per record and retiring it once its
// resolved outcome is known.
type Simulator struct {
	Predictor *tage.Predictor
	Scheduler Scheduler
}

// NewSimulator builds a fresh Simulator with a newly initialized
// predictor; opts configure the predictor (e.g. WithRNGSeed).
func NewSimulator(opts ...tage.Option) *Simulator {
	return &Simulator{
		Predictor: tage.New(opts...),
	}
}

// Replay runs every record through predict/dispatch/issue/update in
// order, as the host's fetch-to-retire pipeline would.
func (s *Simulator) Replay(records []BranchRecord) Result {
	var res Result

	for _, rec := range records {
		slot, ok := s.Scheduler.Dispatch(Operation{
			Opcode: OpBranch,
			PC:     rec.PC,
			Target: rec.Target,
		})
		if !ok {
			// Window full: drain it before continuing, mirroring a host
			// stalling fetch until retirement frees a slot.
			s.drainWindow(&res)
			slot, ok = s.Scheduler.Dispatch(Operation{
				Opcode: OpBranch,
				PC:     rec.PC,
				Target: rec.Target,
			})
			if !ok {
				continue
			}
		}

		predicted := s.Predictor.Predict(rec.PC)
		s.Scheduler.ScheduleCycle0()
		s.Scheduler.ScheduleCycle1()
		res.Cycles++

		s.Predictor.Update(rec.PC, rec.Target, rec.Taken, rec.Kind)
		s.Scheduler.Retire(slot)
		res.Instructions++
		res.Branches++
		if predicted != rec.Taken {
			res.Mispredictions++
		}
	}

	res.PredictorStats = s.Predictor.Stats()
	return res
}

func (s *Simulator) drainWindow(res *Result) {
	for i := 0; i < WindowSize; i++ {
		if s.Scheduler.Window.Ops[i].Valid {
			s.Scheduler.Retire(uint8(i))
			res.Cycles++
		}
	}
}
