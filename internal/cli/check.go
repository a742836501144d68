package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golift/internal/logging"
	"github.com/yaklabco/golift/internal/ui/pretty"
	"github.com/yaklabco/golift/pkg/config"
	"github.com/yaklabco/golift/pkg/reporter"
	"github.com/yaklabco/golift/pkg/runner"
)

type checkFlags struct {
	ignore     []string
	extensions []string
	verbose    bool
	report     reportFlags
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Validate block files",
		Long: `Parse and index block files, reporting per-file block and contig counts
and any overlapping blocks on the A side.

Directories are searched for files with the configured extensions (.tsv by
default). Files named explicitly are checked whatever their extension.

Exits with status 65 if a file cannot be parsed, or has overlapping blocks
while blocks.reject_overlaps is set.

Examples:
  golift check                        # Check block files under the current directory
  golift check A_to_B.blocks.tsv      # Check one file
  golift check -v maps/               # Per-contig detail
  golift check --format json maps/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "block file extensions to search for (default .tsv)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "show per-contig statistics instead of a report")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	addReportFlags(cmd, &cfg, &flags.report)

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg.Check.Ignore = flags.ignore
	cliCfg.Check.Extensions = flags.extensions

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	opts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     lowerAll(cfg.Check.Extensions),
		ExcludeGlobs:   cfg.Check.Ignore,
		FollowSymlinks: cfg.Check.FollowSymlinks,
		Jobs:           cfg.Jobs,
	}
	logger.Debug("checking block files",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.CheckFiles(ctx, opts)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if flags.verbose {
		if err := writeCheckDetail(cmd, flags.report.output, result, workDir); err != nil {
			return err
		}
	} else {
		if err := writeReport(cmd, cfg, &flags.report, reporter.NewCheckReport(result, workDir)); err != nil {
			return err
		}
	}

	logger.Debug("check complete",
		logging.FieldFiles, len(result.Files),
		logging.FieldBlocks, result.BlocksTotal,
	)

	switch {
	case result.HasFailures():
		return dataError(fmt.Errorf("%w: %d of %d files could not be parsed",
			ErrCheckFailed, result.FilesErrored, len(result.Files)))
	case result.HasOverlaps() && cfg.Blocks.RejectOverlaps:
		return dataError(fmt.Errorf("%w: %d files have overlapping blocks",
			ErrCheckFailed, result.FilesWithOverlaps))
	}
	return nil
}

// writeCheckDetail prints every file with its contig table, then a summary line.
func writeCheckDetail(cmd *cobra.Command, outputPath string, result *runner.CheckResult, workDir string) error {
	out, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	defer out.abort()

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out.Writer))

	var builder strings.Builder
	for _, outcome := range result.Files {
		outcome.Path = relativeTo(workDir, outcome.Path)
		builder.WriteString(styles.FormatFileOutcome(outcome, true))
	}
	builder.WriteString(styles.FormatCheckSummary(result))

	if _, err := io.WriteString(out, builder.String()); err != nil {
		return fmt.Errorf("write check results: %w", err)
	}
	return out.commit()
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func relativeTo(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}
