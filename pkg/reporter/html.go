package reporter

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdownEscapes are the characters escaped in table cells.
const markdownEscapes = "\\`*_[]<>|"

// HTMLReporter renders a Markdown document with a summary list and a GFM
// table of records, converted to a standalone HTML page.
type HTMLReporter struct {
	opts Options
	md   goldmark.Markdown
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		md:   goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(_ context.Context, report *Report) error {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(Markdown(report, r.opts.Title)), &body); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	page.WriteString("<title>" + html.EscapeString(r.opts.Title) + "</title>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	if _, err := io.Copy(r.opts.Writer, &page); err != nil {
		return fmt.Errorf("write HTML: %w", err)
	}
	return nil
}

// Markdown renders the report as a Markdown document.
func Markdown(report *Report, title string) string {
	var b strings.Builder

	b.WriteString("# " + escapeMarkdown(title) + "\n\n")
	b.WriteString("Report: `" + string(report.Kind) + "`\n\n")

	b.WriteString("## Summary\n\n")
	stats := report.Stats
	b.WriteString("- Records: " + strconv.Itoa(stats.Total) + "\n")
	switch {
	case report.Kind.RoundTrip():
		b.WriteString("- Passed: " + strconv.Itoa(stats.Pass) + "\n")
		b.WriteString("- Failed: " + strconv.Itoa(stats.Fail) + "\n")
	case report.Kind != KindCheck:
		b.WriteString("- Mapped: " + strconv.Itoa(stats.Mapped) + "\n")
		if report.Kind == KindLiftIntervals {
			b.WriteString("- Split pieces: " + strconv.Itoa(stats.Split) + "\n")
		}
	}
	for _, status := range stats.Statuses() {
		fmt.Fprintf(&b, "- %s: %d\n", escapeMarkdown(status.String()), stats.ByStatus[status])
	}
	b.WriteString("\n")

	if len(report.Rows) == 0 {
		b.WriteString("No records.\n")
		return b.String()
	}

	b.WriteString("## Records\n\n")
	writeMarkdownRow(&b, report.Columns)
	sep := make([]string, len(report.Columns))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range report.Rows {
		writeMarkdownRow(&b, rowText(row))
	}
	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeMarkdown(c)
	}
	b.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}

func escapeMarkdown(s string) string {
	if !strings.ContainsAny(s, markdownEscapes) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(markdownEscapes, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
