package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/golift/pkg/runner"
)

// FormatFileOutcome renders the check result for one block file: a header
// line, a per-contig table, then any overlaps or the parse error.
func (s *Styles) FormatFileOutcome(outcome runner.FileOutcome, showContigs bool) string {
	var builder strings.Builder

	if outcome.Error != nil {
		builder.WriteString(fmt.Sprintf("%s  %s  %s\n",
			s.FilePath.Render(outcome.Path),
			s.Error.Render("error"),
			outcome.Error.Error(),
		))
		return builder.String()
	}

	builder.WriteString(fmt.Sprintf("%s  %s\n",
		s.FilePath.Render(outcome.Path),
		s.Dim.Render(fmt.Sprintf("%d %s on %d %s",
			outcome.Blocks, plural(outcome.Blocks, "block", "blocks"),
			len(outcome.Contigs), plural(len(outcome.Contigs), "contig", "contigs"))),
	))

	if showContigs && len(outcome.Contigs) > 0 {
		table := Table{
			Headers: []string{"Contig", "Blocks", "Bases", "Span", "+", "-"},
			Align:   []Align{AlignLeft, AlignRight, AlignRight, AlignLeft, AlignRight, AlignRight},
		}
		for _, c := range outcome.Contigs {
			table.Rows = append(table.Rows, []string{
				c.Contig,
				strconv.Itoa(c.Blocks),
				strconv.FormatUint(c.Bases, 10),
				fmt.Sprintf("%d-%d", c.Start, c.End),
				strconv.Itoa(c.Forward),
				strconv.Itoa(c.Reverse),
			})
		}
		builder.WriteString(table.Render(s))
	}

	for _, ov := range outcome.Overlaps {
		builder.WriteString(fmt.Sprintf("  %s  %s overlaps %s\n",
			s.Warning.Render("overlap"),
			s.Location.Render(ov.First.String()),
			s.Location.Render(ov.Second.String()),
		))
	}
	return builder.String()
}

// FormatCheckSummary formats the closing line of the check command.
// Example: "3 files checked, 1 with overlaps, 1 failed".
func (s *Styles) FormatCheckSummary(result *runner.CheckResult) string {
	n := len(result.Files)
	parts := []string{fmt.Sprintf("%d %s checked", n, plural(n, "file", "files"))}
	if result.FilesWithOverlaps > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d with overlaps", result.FilesWithOverlaps)))
	}
	if result.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", result.FilesErrored)))
	}
	if !result.HasFailures() && !result.HasOverlaps() {
		parts = append(parts, s.Success.Render("all valid"))
	}
	return strings.Join(parts, ", ") + "\n"
}
