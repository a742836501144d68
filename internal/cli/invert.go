package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golift/internal/logging"
	"github.com/yaklabco/golift/pkg/block"
	"github.com/yaklabco/golift/pkg/runner"
)

func newInvertCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "invert <blocks>",
		Short: "Derive B→A blocks from an A→B blocks file",
		Long: `Swap the A and B sides of every block, keeping strand and score, and
write the result sorted by the new contig name and start.

Examples:
  golift invert A_to_B.blocks.tsv -o B_to_A.blocks.tsv`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvert(cmd, args[0], outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output blocks file (default: stdout)")

	return cmd
}

func runInvert(cmd *cobra.Command, path, outputPath string) error {
	ctx := commandContext(cmd)

	blocks, _, err := runner.LoadBlocks(ctx, path)
	if err != nil {
		return fmt.Errorf("load blocks: %w", err)
	}
	inverted := block.Invert(blocks)

	out, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	defer out.abort()

	if err := block.Write(out, inverted); err != nil {
		return err
	}
	if err := out.commit(); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("inverted blocks",
		logging.FieldInput, path,
		logging.FieldOutput, outputPath,
		logging.FieldBlocks, len(inverted),
	)
	return nil
}
