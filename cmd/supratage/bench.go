package main

import (
	"math/rand"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/supraxlab/tage/internal/hostsim"
	"github.com/supraxlab/tage/internal/tage"
)

func newBenchCmd() *cobra.Command {
	var (
		numPCs     int
		numBranches int
		seed       uint64
		pattern    string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Generate a synthetic branch stream and replay it",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			records := generateBenchStream(pattern, numPCs, numBranches, seed)
			logger.Info("synthetic stream generated",
				zap.String("pattern", pattern),
				zap.Int("pcs", numPCs),
				zap.Int("branches", len(records)),
			)

			sim := hostsim.NewSimulator(tage.WithRNGSeed(seed))
			res := sim.Replay(records)
			printSummary(cmd, res)
			return nil
		},
	}

	cmd.Flags().IntVar(&numPCs, "pcs", 8, "distinct branch PCs to cycle through")
	cmd.Flags().IntVar(&numBranches, "branches", 100000, "total branch records to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed for both generation and allocation gate")
	cmd.Flags().StringVar(&pattern, "pattern", "alternating", "branch pattern: alternating, loop, random")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable development-mode logging")
	return cmd
}

// generateBenchStream produces a deterministic synthetic stream so
// allocation behavior can be explored without a recorded trace.
func generateBenchStream(pattern string, numPCs, numBranches int, seed uint64) []hostsim.BranchRecord {
	rng := rand.New(rand.NewSource(int64(seed)))
	pcs := make([]uint64, numPCs)
	for i := range pcs {
		pcs[i] = uint64(0x1000 + i*0x100)
	}

	records := make([]hostsim.BranchRecord, numBranches)
	for i := range records {
		pc := pcs[i%len(pcs)]
		var taken bool
		switch pattern {
		case "loop":
			// Taken on every iteration except every 8th (a typical
			// small-trip-count loop exit).
			taken = i%8 != 7
		case "random":
			taken = rng.Intn(2) == 0
		default: // alternating
			taken = i%2 == 0
		}
		records[i] = hostsim.BranchRecord{PC: pc, Taken: taken}
	}
	return records
}
