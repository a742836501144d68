package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/golift/internal/ui/pretty"
	"github.com/yaklabco/golift/pkg/liftover"
	"github.com/yaklabco/golift/pkg/roundtrip"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles derives help styles from the shared output styles.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	s := pretty.NewStyles(colorEnabled)
	return &HelpStyles{
		Command:     s.Bold,
		Heading:     s.SummaryTitle,
		Subcommand:  s.Success,
		Flag:        s.Info,
		Description: s.SummaryValue,
		Example:     s.Dim,
		Dim:         s.Dim,
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Commands:" }}{{range .Commands}}{{if .IsAvailableCommand}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlags .InheritedFlags }}
{{- end}}

{{- if .HasHelpSubCommands}}

{{ styleHeading "Help Topics:" }}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{ styleSubcommand (rpad .CommandPath .CommandPathPadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}{{if or .Runnable .HasSubCommands}}` + usageTemplate + `{{end}}`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":            h.styles.Command.Render,
		"styleHeading":            h.styles.Heading.Render,
		"styleSubcommand":         h.styles.Subcommand.Render,
		"styleDescription":        h.styles.Description.Render,
		"styleDim":                h.styles.Dim.Render,
		"styleFlags":              h.styleFlags,
		"rpad":                    rpad,
		"join":                    strings.Join,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// styleFlags colors the flag names of a pflag usage block and dims the
// value type, keeping pflag's own column layout.
func (h *HelpFormatter) styleFlags(flags *pflag.FlagSet) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" || !strings.HasPrefix(trimmed, "-") {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	// pflag separates the flag column from the description with 2+ spaces.
	head, desc, found := strings.Cut(trimmed, "  ")
	if !found {
		return line
	}
	gap := len(desc) - len(strings.TrimLeft(desc, " "))

	tokens := strings.Fields(head)
	for i, tok := range tokens {
		if strings.HasPrefix(tok, "-") {
			name, comma := strings.CutSuffix(tok, ",")
			tokens[i] = h.styles.Flag.Render(name)
			if comma {
				tokens[i] += ","
			}
		} else {
			tokens[i] = h.styles.Dim.Render(tok)
		}
	}

	return indent + strings.Join(tokens, " ") + strings.Repeat(" ", 2+gap) +
		h.styles.Description.Render(strings.TrimLeft(desc, " "))
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// the help and usage functions from the root.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(usageTemplate)
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(helpTemplate)
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})

	cmd.AddCommand(newStatusesHelpTopic())
}

var statusHelp = []struct {
	status liftover.Status
	text   string
}{
	{liftover.StatusOK, "mapped inside a single block"},
	{liftover.StatusBadInput, "the input line could not be parsed"},
	{liftover.StatusNoContig, "the contig has no blocks"},
	{liftover.StatusUnmapped, "the position falls between blocks"},
	{liftover.StatusUnmappedStart, "the interval start falls between blocks"},
	{liftover.StatusCrossesBlock, "the interval crosses a block boundary (reject policy)"},
	{liftover.StatusSplit, "a mapped piece of a split interval"},
	{liftover.StatusUnmappedSeg, "an unmapped piece of a split interval"},
	{liftover.StatusStitchedOK, "stitched across collinear blocks without gaps"},
	{liftover.StatusStitchedWithGaps, "stitched across collinear blocks with gaps"},
	{liftover.StatusContigChange, "stitching failed: the blocks change B contig"},
	{liftover.StatusStrandChange, "stitching failed: the blocks change strand"},
	{roundtrip.StatusPass, "the round trip returned the original coordinates"},
	{roundtrip.StatusFail, "the round trip returned different coordinates"},
	{roundtrip.StatusNoContigBA, "the lifted contig has no B→A blocks"},
	{roundtrip.StatusCrossesBlockBA, "the lifted interval crosses a B→A block boundary"},
}

func newStatusesHelpTopic() *cobra.Command {
	var builder strings.Builder
	builder.WriteString("Every output record carries one status code:\n\n")
	for _, s := range statusHelp {
		builder.WriteString(fmt.Sprintf("  %-20s %s\n", s.status, s.text))
	}
	builder.WriteString(`
Round trips report the forward or backward lift status when either fails.`)

	return &cobra.Command{
		Use:   "statuses",
		Short: "Status codes written to output records",
		Long:  builder.String(),
	}
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
