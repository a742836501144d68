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
	"github.com/yaklabco/golift/pkg/runner"
)

type liftFlags struct {
	blocks  string
	pair    string
	reverse bool
	report  reportFlags
}

func newLiftCommand() *cobra.Command {
	var cfg config.Config
	flags := &liftFlags{}

	cmd := &cobra.Command{
		Use:   "lift [input]",
		Short: "Lift coordinates from assembly A to assembly B",
		Long:  liftLongDescription,
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLift(cmd, args, &cfg, flags)
		},
	}

	addLiftFlags(cmd, &cfg, flags)

	return cmd
}

const liftLongDescription = `Lift CHR:POS points, BED intervals or CHR:START-END regions through a
blocks TSV file. Every input record produces one output record (one per
segment for split intervals) carrying a status code.

Reads from the input file, or from stdin when it is omitted or "-".

Intervals that cross a block boundary are handled by the interval policy:
  reject   report CROSSES_BLOCK (default, --strict)
  split    emit one SPLIT segment per mapped piece (--allow-split)
  stitch   merge the covering blocks into one B span and report gaps (--stitch)

Examples:
  golift lift -b A_to_B.blocks.tsv points.txt
  golift lift -b A_to_B.blocks.tsv -f bed --allow-split regions.bed
  golift lift --pair pombase_leupold -f region --stitch queries.txt
  golift lift --pair pombase_leupold --reverse -f bed -o lifted.tsv in.bed
  cat points.txt | golift lift -b A_to_B.blocks.tsv --stats`

func addLiftFlags(cmd *cobra.Command, cfg *config.Config, flags *liftFlags) {
	cmd.Flags().StringVarP(&flags.blocks, "blocks", "b", "", "blocks TSV file mapping A to B")
	cmd.Flags().StringVar(&flags.pair, "pair", "", "configured genome pair to use instead of --blocks")
	cmd.Flags().BoolVar(&flags.reverse, "reverse", false, "lift B to A using the pair's blocks_ba file")
	cmd.Flags().StringVarP(&cfg.InputFormat, "input-format", "f", "", "input format: chrpos, bed, region (default chrpos)")
	cmd.Flags().StringVar(&cfg.Policy, "policy", "", "interval policy: reject, split, stitch")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "reject intervals that cross blocks")
	cmd.Flags().BoolVar(&cfg.AllowSplit, "allow-split", false, "split intervals that cross blocks")
	cmd.Flags().BoolVar(&cfg.Stitch, "stitch", false, "stitch intervals across collinear blocks")
	cmd.Flags().BoolVar(&cfg.Stats, "stats", false, "print mapping statistics to stderr")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	addReportFlags(cmd, cfg, &flags.report)
}

func runLift(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *liftFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	blocksPath, err := liftBlocksPath(cmd, cfg, flags)
	if err != nil {
		return err
	}

	policy, err := resolvePolicy(cfg)
	if err != nil {
		return err
	}

	format, err := query.ParseFormat(cfg.InputFormat)
	if err != nil {
		return usageError(err)
	}
	if !format.IsInterval() && cfg.PolicySwitchesSet() {
		logger.Warn("interval policy switches have no effect on point queries", logging.FieldInputFormat, format)
	}

	idx, err := loadIndex(ctx, blocksPath, cfg.Blocks.RejectOverlaps)
	if err != nil {
		return err
	}

	input, err := openInput(ctx, cmd, inputArg(args))
	if err != nil {
		return err
	}
	queries, err := query.ReadAll(input, format)
	if err != nil {
		return err
	}

	logger.Debug("lifting",
		logging.FieldRecords, len(queries),
		logging.FieldPolicy, policy,
		logging.FieldJobs, runner.EffectiveJobs(cfg.Jobs, len(queries)),
	)

	var rep *reporter.Report
	if format.IsInterval() {
		rep, err = liftIntervals(cmd, idx, queries, policy, cfg.Jobs)
	} else {
		rep, err = liftPoints(cmd, idx, queries, cfg.Jobs)
	}
	if err != nil {
		return err
	}

	logger.Debug("lift complete",
		logging.FieldRecords, rep.Stats.Total,
		logging.FieldMapped, rep.Stats.Mapped,
	)

	if err := writeReport(cmd, cfg, &flags.report, rep); err != nil {
		return err
	}
	if cfg.Stats {
		printStats(cmd, rep)
	}
	return nil
}

func liftPoints(cmd *cobra.Command, idx *liftover.Index, queries []query.Query, jobs int) (*reporter.Report, error) {
	results, err := runner.Map(commandContext(cmd), queries, jobs, func(q query.Query) liftover.PointResult {
		if !q.OK() {
			return liftover.PointResult{Status: liftover.StatusBadInput}
		}
		return idx.LiftPoint(q.Contig, q.Start)
	})
	if err != nil {
		return nil, err
	}

	stats := runner.NewStats()
	for _, res := range results {
		stats.AddLift(res.Status, res.Status.Mapped())
	}
	return reporter.NewLiftPointReport(results, stats), nil
}

func liftIntervals(
	cmd *cobra.Command,
	idx *liftover.Index,
	queries []query.Query,
	policy liftover.Policy,
	jobs int,
) (*reporter.Report, error) {
	results, err := runner.Map(commandContext(cmd), queries, jobs, func(q query.Query) liftover.IntervalResult {
		if !q.OK() {
			return liftover.IntervalResult{Status: liftover.StatusBadInput}
		}
		return idx.LiftInterval(q.Contig, q.Start, q.End, policy)
	})
	if err != nil {
		return nil, err
	}

	stats := runner.NewStats()
	for _, res := range results {
		stats.AddInterval(res)
	}
	return reporter.NewLiftIntervalReport(results, stats, policy == liftover.PolicyStitch), nil
}

// liftBlocksPath picks the block file from --blocks or from a configured pair.
func liftBlocksPath(cmd *cobra.Command, cfg *config.Config, flags *liftFlags) (string, error) {
	if flags.blocks != "" {
		if flags.pair != "" || flags.reverse {
			return "", usageError(errors.New("--blocks cannot be combined with --pair or --reverse"))
		}
		return flags.blocks, nil
	}

	name, pair, err := cfg.ResolvePair(flags.pair)
	if err != nil {
		return "", usageError(fmt.Errorf("%w (or pass --blocks)", err))
	}

	path, key := pair.BlocksAB, "blocks_ab"
	if flags.reverse {
		path, key = pair.BlocksBA, "blocks_ba"
	}
	if path == "" {
		return "", usageError(fmt.Errorf("genome pair %q has no %s file", name, key))
	}

	logging.FromContext(commandContext(cmd)).Debug("using genome pair",
		logging.FieldPair, pair.Label(name),
		logging.FieldPath, path,
	)
	return path, nil
}
