package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golift/internal/logging"
	"github.com/yaklabco/golift/pkg/block"
	"github.com/yaklabco/golift/pkg/paf"
)

type pafFlags struct {
	output string
	sort   bool
}

func newPAFCommand() *cobra.Command {
	flags := &pafFlags{}

	cmd := &cobra.Command{
		Use:   "paf [alignments.paf]",
		Short: "Convert minimap2 PAF alignments to a blocks file",
		Long: `Split every PAF alignment into gap-free blocks using its cg:Z CIGAR tag.
Run minimap2 with -c so the tag is present. Query coordinates become the
A side and target coordinates the B side.

Reads from stdin when the file is omitted or "-".

Examples:
  minimap2 -c B.fa A.fa | golift paf -o A_to_B.blocks.tsv
  golift paf --sort aln.paf -o A_to_B.blocks.tsv`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPAF(cmd, inputArg(args), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output blocks file (default: stdout)")
	cmd.Flags().BoolVar(&flags.sort, "sort", false, "sort blocks by contig and start instead of alignment order")

	return cmd
}

func runPAF(cmd *cobra.Command, inputPath string, flags *pafFlags) error {
	ctx := commandContext(cmd)

	input, err := openInput(ctx, cmd, inputPath)
	if err != nil {
		return err
	}

	blocks, stats, err := paf.ReadBlocks(input)
	if err != nil {
		return fmt.Errorf("convert %s: %w", inputPath, err)
	}
	if flags.sort {
		block.Sort(blocks)
	}

	out, err := openOutput(cmd, flags.output)
	if err != nil {
		return err
	}
	defer out.abort()

	if err := block.Write(out, blocks); err != nil {
		return err
	}
	if err := out.commit(); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("converted alignments",
		logging.FieldInput, inputPath,
		logging.FieldRecords, stats.Alignments,
		logging.FieldBlocks, stats.Blocks,
	)
	return nil
}
