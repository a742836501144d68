package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golift/internal/configloader"
	"github.com/yaklabco/golift/internal/logging"
	"github.com/yaklabco/golift/pkg/config"
	"github.com/yaklabco/golift/pkg/liftover"
	"github.com/yaklabco/golift/pkg/reporter"
	"github.com/yaklabco/golift/pkg/runner"
)

// maxOverlapWarnings caps the per-overlap warnings logged for one block file.
const maxOverlapWarnings = 5

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig merges the configuration layers under the values given on the
// command line.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, "", err
		}
		return nil, "", dataError(errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldPolicy, cfg.Policy,
		logging.FieldInputFormat, cfg.InputFormat,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)
	return cfg, workDir, nil
}

// resolvePolicy prefers the --strict/--allow-split/--stitch switches over the
// configured policy name.
func resolvePolicy(cfg *config.Config) (liftover.Policy, error) {
	if cfg.PolicySwitchesSet() {
		return liftover.PolicyFromFlags(cfg.Strict, cfg.AllowSplit, cfg.Stitch), nil
	}
	policy, err := liftover.ParsePolicy(cfg.Policy)
	if err != nil {
		return "", usageError(err)
	}
	return policy, nil
}

// loadIndex reads a block file and indexes it. Overlapping blocks are logged,
// or rejected when blocks.reject_overlaps is set.
func loadIndex(ctx context.Context, path string, rejectOverlaps bool) (*liftover.Index, error) {
	logger := logging.FromContext(ctx)

	idx, info, err := runner.LoadIndex(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	logger.Debug("loaded blocks",
		logging.FieldPath, path,
		logging.FieldBlocks, idx.Len(),
		logging.FieldContigs, len(idx.Contigs()),
		logging.FieldDigest, info.Digest(),
	)

	overlaps := idx.Overlaps()
	if len(overlaps) == 0 {
		return idx, nil
	}
	if rejectOverlaps {
		return nil, dataError(fmt.Errorf("%s: %d overlapping blocks; first: %s overlaps %s",
			path, len(overlaps), overlaps[0].First, overlaps[0].Second))
	}

	for i, ov := range overlaps {
		if i == maxOverlapWarnings {
			logger.Warn("more overlapping blocks not shown",
				logging.FieldPath, path,
				logging.FieldSkipped, len(overlaps)-i,
			)
			break
		}
		logger.Warn("overlapping blocks",
			logging.FieldPath, path,
			logging.FieldBlock, ov.First.String(),
			logging.FieldOther, ov.Second.String(),
		)
	}
	return idx, nil
}

// inputArg returns the optional positional input path.
func inputArg(args []string) string {
	if len(args) == 0 {
		return stdinName
	}
	return args[0]
}

// reportFlags are the output options shared by commands that emit reports.
type reportFlags struct {
	output  string
	compact bool
	title   string
}

func addReportFlags(cmd *cobra.Command, cfg *config.Config, flags *reportFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&cfg.Format, "format", "", "output format: tsv, json, summary, html (default tsv)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "write minified JSON")
	cmd.Flags().StringVar(&flags.title, "title", "", "title of HTML reports")
}

// writeReport formats rep to the requested output.
func writeReport(cmd *cobra.Command, cfg *config.Config, flags *reportFlags, rep *reporter.Report) error {
	format, err := reporter.ParseFormat(cfg.Format)
	if err != nil {
		return usageError(err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	out, err := openOutput(cmd, flags.output)
	if err != nil {
		return err
	}
	defer out.abort()

	rpt, err := reporter.New(reporter.Options{
		Writer:  out.Writer,
		Format:  format,
		Color:   colorMode,
		Compact: flags.compact,
		Title:   flags.title,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rpt.Report(commandContext(cmd), rep); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return out.commit()
}

// printStats writes the --stats counter line to stderr.
func printStats(cmd *cobra.Command, rep *reporter.Report) {
	fmt.Fprintln(cmd.ErrOrStderr(), reporter.FormatStatsLine(rep.Kind, rep.Stats))
}
