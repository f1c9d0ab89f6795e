package main

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/supraxlab/tage/internal/hostsim"
	"github.com/supraxlab/tage/internal/tage"
	"github.com/supraxlab/tage/internal/trace"
)

func newRunCmd() *cobra.Command {
	var (
		gzipped bool
		seed    uint64
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "run TRACE",
		Short: "Replay a trace file through the predictor and print stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return errors.Wrap(err, "constructing logger")
			}
			defer logger.Sync() //nolint:errcheck

			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "opening trace %s", args[0])
			}
			defer f.Close()

			var reader *trace.Reader
			if gzipped {
				reader, err = trace.NewGzipReader(f)
				if err != nil {
					return err
				}
				defer reader.Close()
			} else {
				reader = trace.NewReader(f)
			}

			records, err := reader.ReadAll()
			if err != nil {
				return errors.Wrap(err, "reading trace")
			}
			logger.Info("trace loaded", zap.Int("records", len(records)), zap.String("path", args[0]))

			sim := hostsim.NewSimulator(tage.WithRNGSeed(seed))
			res := sim.Replay(records)

			logger.Info("replay complete",
				zap.Int("branches", res.Branches),
				zap.Int("mispredictions", res.Mispredictions),
				zap.Float64("mispredict_rate", res.MispredictRate()),
				zap.Float64("ipc", res.IPC()),
			)

			printSummary(cmd, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&gzipped, "gzip", false, "trace file is gzip-compressed")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "allocation-gate PRNG seed")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable development-mode logging")
	return cmd
}

func printSummary(cmd *cobra.Command, res hostsim.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Branches", res.Branches})
	t.AppendRow(table.Row{"Mispredictions", res.Mispredictions})
	t.AppendRow(table.Row{"Mispredict rate", res.MispredictRate()})
	t.AppendRow(table.Row{"IPC", res.IPC()})
	t.AppendRow(table.Row{"Alt conf", res.PredictorStats.AltConf})
	t.AppendRow(table.Row{"Decay phase", res.PredictorStats.DecayPhase})
	t.Render()

	tables := table.NewWriter()
	tables.SetOutputMirror(cmd.OutOrStdout())
	tables.AppendHeader(table.Row{"Table", "Hist Len", "Entries", "Used", "Avg Pred", "Avg Useful"})
	for i, ts := range res.PredictorStats.Tables {
		tables.AppendRow(table.Row{i, ts.HistoryLen, ts.Entries, ts.EntriesUsed, ts.AvgPred, ts.AvgUseful})
	}
	tables.Render()
}
