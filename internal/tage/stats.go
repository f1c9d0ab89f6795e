// ═══════════════════════════════════════════════════════════════════════════
// Stats
// ═══════════════════════════════════════════════════════════════════════════
//
// WHAT: a read-only snapshot of predictor occupancy and confidence, for the
//       host harness to print. Never consulted by Predict/Update.
//
// ═══════════════════════════════════════════════════════════════════════════

package tage

// TableStats summarizes one tagged table's occupancy.
type TableStats struct {
	HistoryLen  uint
	Entries     int
	EntriesUsed int
	AvgPred     float64
	AvgUseful   float64
}

// Stats is a point-in-time snapshot of the predictor's internal state,
// intended for telemetry/printing by the host harness rather than for any
// decision the core itself makes.
type Stats struct {
	Tables     [numTables]TableStats
	AltConf    uint8
	DecayPhase uint8
}

// Stats builds a snapshot of the predictor's current occupancy and
// confidence state.
func (p *Predictor) Stats() Stats {
	var s Stats
	s.AltConf = p.altConf
	s.DecayPhase = p.decayPhase
	for t := 0; t < numTables; t++ {
		tt := &p.tagged[t]
		ts := TableStats{
			HistoryLen: histLen[t],
			Entries:    len(tt.entries),
		}
		var predSum, usefulSum float64
		for _, e := range tt.entries {
			if e.tag != 0 || e.pred != 0 || e.useful != 0 {
				ts.EntriesUsed++
			}
			predSum += float64(e.pred)
			usefulSum += float64(e.useful)
		}
		if ts.Entries > 0 {
			ts.AvgPred = predSum / float64(ts.Entries)
			ts.AvgUseful = usefulSum / float64(ts.Entries)
		}
		s.Tables[t] = ts
	}
	return s
}
