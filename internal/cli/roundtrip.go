package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golift/internal/logging"
	"github.com/yaklabco/golift/pkg/config"
	"github.com/yaklabco/golift/pkg/liftover"
	"github.com/yaklabco/golift/pkg/query"
	"github.com/yaklabco/golift/pkg/reporter"
	"github.com/yaklabco/golift/pkg/roundtrip"
	"github.com/yaklabco/golift/pkg/runner"
)

type roundTripFlags struct {
	blocksAB       string
	blocksBA       string
	pair           string
	failOnMismatch bool
	report         reportFlags
}

func newRoundTripCommand() *cobra.Command {
	var cfg config.Config
	flags := &roundTripFlags{}

	cmd := &cobra.Command{
		Use:     "roundtrip [input]",
		Aliases: []string{"rt"},
		Short:   "Validate that coordinates survive A→B→A",
		Long: `Lift every record A→B with the A→B blocks and back B→A with the B→A
blocks, then compare the result with the original. A record passes only
when it comes back exactly where it started.

Intervals are validated piecewise by default: each mapped piece of the
forward lift is mapped back on its own and the pieces are merged. With
--strict the interval must stay inside a single block in both directions.

Examples:
  golift roundtrip --blocks-ab A_to_B.blocks.tsv --blocks-ba B_to_A.blocks.tsv points.txt
  golift roundtrip --pair pombase_leupold -f bed --strict regions.bed
  golift roundtrip --pair pombase_leupold --fail-on-mismatch --format summary in.txt`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundTrip(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.blocksAB, "blocks-ab", "", "blocks TSV file mapping A to B")
	cmd.Flags().StringVar(&flags.blocksBA, "blocks-ba", "", "blocks TSV file mapping B to A")
	cmd.Flags().StringVar(&flags.pair, "pair", "", "configured genome pair to use instead of block files")
	cmd.Flags().StringVarP(&cfg.InputFormat, "input-format", "f", "", "input format: chrpos, bed, region (default chrpos)")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "require intervals to stay within one block")
	cmd.Flags().BoolVar(&cfg.AllowSplit, "allow-split", false, "validate intervals piecewise (default)")
	cmd.Flags().BoolVar(&flags.failOnMismatch, "fail-on-mismatch", false, "exit with status 1 if any record fails")
	cmd.Flags().BoolVar(&cfg.Stats, "stats", false, "print pass/fail statistics to stderr")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	addReportFlags(cmd, &cfg, &flags.report)

	return cmd
}

func runRoundTrip(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *roundTripFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	pathAB, pathBA, err := roundTripBlockPaths(cfg, flags)
	if err != nil {
		return err
	}

	format, err := query.ParseFormat(cfg.InputFormat)
	if err != nil {
		return usageError(err)
	}
	mode := roundtrip.ModeFromFlags(cfg.Strict)

	ab, err := loadIndex(ctx, pathAB, cfg.Blocks.RejectOverlaps)
	if err != nil {
		return err
	}
	ba, err := loadIndex(ctx, pathBA, cfg.Blocks.RejectOverlaps)
	if err != nil {
		return err
	}
	validator := roundtrip.New(ab, ba)

	input, err := openInput(ctx, cmd, inputArg(args))
	if err != nil {
		return err
	}
	queries, err := query.ReadAll(input, format)
	if err != nil {
		return err
	}

	logger.Debug("validating round trip",
		logging.FieldRecords, len(queries),
		logging.FieldMode, mode,
	)

	stats := runner.NewStats()
	var rep *reporter.Report
	if format.IsInterval() {
		results, err := runner.Map(ctx, queries, cfg.Jobs, func(q query.Query) roundtrip.IntervalResult {
			if !q.OK() {
				return roundtrip.IntervalResult{Status: liftover.StatusBadInput}
			}
			return validator.Interval(q.Contig, q.Start, q.End, mode)
		})
		if err != nil {
			return err
		}
		for _, res := range results {
			stats.AddRoundTrip(res.Status)
		}
		rep = reporter.NewRoundTripIntervalReport(results, stats)
	} else {
		results, err := runner.Map(ctx, queries, cfg.Jobs, func(q query.Query) roundtrip.PointResult {
			if !q.OK() {
				return roundtrip.PointResult{Status: liftover.StatusBadInput}
			}
			return validator.Point(q.Contig, q.Start)
		})
		if err != nil {
			return err
		}
		for _, res := range results {
			stats.AddRoundTrip(res.Status)
		}
		rep = reporter.NewRoundTripPointReport(results, stats)
	}

	if err := writeReport(cmd, cfg, &flags.report, rep); err != nil {
		return err
	}
	if cfg.Stats {
		printStats(cmd, rep)
	}

	if flags.failOnMismatch && stats.Fail > 0 {
		return fmt.Errorf("%w: %d of %d records", ErrRoundTripMismatch, stats.Fail, stats.Total)
	}
	return nil
}

// roundTripBlockPaths picks both block files from flags or a configured pair.
// Explicit files override the pair's entries one by one.
func roundTripBlockPaths(cfg *config.Config, flags *roundTripFlags) (string, string, error) {
	pathAB, pathBA := flags.blocksAB, flags.blocksBA
	if pathAB != "" && pathBA != "" {
		return pathAB, pathBA, nil
	}

	name, pair, err := cfg.ResolvePair(flags.pair)
	if err != nil {
		return "", "", usageError(fmt.Errorf("%w (or pass --blocks-ab and --blocks-ba)", err))
	}
	if pathAB == "" {
		pathAB = pair.BlocksAB
	}
	if pathBA == "" {
		pathBA = pair.BlocksBA
	}
	if pathAB == "" || pathBA == "" {
		return "", "", usageError(errors.New("round trips need both blocks_ab and blocks_ba for pair " + name))
	}
	return pathAB, pathBA, nil
}
