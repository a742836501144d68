package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/golift/pkg/block"
	"github.com/yaklabco/golift/pkg/liftover"
	"github.com/yaklabco/golift/pkg/reporter"
	"github.com/yaklabco/golift/pkg/roundtrip"
	"github.com/yaklabco/golift/pkg/runner"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to tsv", input: "", want: reporter.FormatTSV},
		{name: "tsv", input: "tsv", want: reporter.FormatTSV},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "html", input: "html", want: reporter.FormatHTML},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "tsv reporter", format: reporter.FormatTSV},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "html reporter", format: reporter.FormatHTML},
		{name: "empty defaults to tsv", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func render(t *testing.T, format reporter.Format, report *reporter.Report) string {
	t.Helper()
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: format, Color: "never"})
	require.NoError(t, err)
	require.NoError(t, rep.Report(context.Background(), report))
	return buf.String()
}

func pointReport() *reporter.Report {
	results := []liftover.PointResult{
		{Contig: "chr1", Pos: 104, To: liftover.Point{Contig: "chr1B", Pos: 504, Strand: block.StrandForward}, Status: liftover.StatusOK},
		{Contig: "chr9", Pos: 0, Status: liftover.StatusNoContig},
		{Status: liftover.StatusBadInput},
	}
	stats := runner.NewStats()
	for _, r := range results {
		stats.AddLift(r.Status, r.Status.Mapped())
	}
	return reporter.NewLiftPointReport(results, stats)
}

func TestTSV_LiftPoints(t *testing.T) {
	t.Parallel()

	want := "contigA\tposA\tcontigB\tposB\tstrand\tstatus\n" +
		"chr1\t105\tchr1B\t505\t+\tOK\n" +
		"chr9\t1\t\t\t\tNO_CONTIG\n" +
		"\t\t\t\t\tBAD_INPUT\n"
	assert.Equal(t, want, render(t, reporter.FormatTSV, pointReport()))
}

func TestTSV_LiftIntervals(t *testing.T) {
	t.Parallel()

	results := []liftover.IntervalResult{
		{
			ContigA: "chr1", StartA: 105, EndA: 125, Status: liftover.StatusSplit, Mapped: true,
			Segments: []liftover.Segment{
				{ContigA: "chr1", StartA: 105, EndA: 110, ContigB: "chr1B", StartB: 505, EndB: 510, Strand: block.StrandForward, Status: liftover.StatusSplit},
				{ContigA: "chr1", StartA: 110, EndA: 111, Status: liftover.StatusUnmappedSeg},
			},
		},
		{ContigA: "chr1", StartA: 0, EndA: 5, Status: liftover.StatusUnmappedStart},
		{ContigA: "chr1", StartA: 7, EndA: 7, Status: liftover.StatusBadInput},
	}

	got := render(t, reporter.FormatTSV, reporter.NewLiftIntervalReport(results, runner.NewStats(), false))
	want := "contigA\tstartA\tendA\tcontigB\tstartB\tendB\tstrand\tstatus\n" +
		"chr1\t105\t110\tchr1B\t505\t510\t+\tSPLIT\n" +
		"chr1\t110\t111\t\t\t\t\tUNMAPPED_SEG\n" +
		"chr1\t0\t5\t\t\t\t\tUNMAPPED_START\n" +
		"\t\t\t\t\t\t\tBAD_INPUT\n"
	assert.Equal(t, want, got)
}

func TestTSV_LiftIntervalsWithGaps(t *testing.T) {
	t.Parallel()

	results := []liftover.IntervalResult{
		{
			ContigA: "chr1", StartA: 0, EndA: 30, Status: liftover.StatusStitchedWithGaps, Mapped: true,
			Segments: []liftover.Segment{
				{ContigA: "chr1", StartA: 0, EndA: 30, ContigB: "chrB", StartB: 0, EndB: 35, Strand: block.StrandForward, Status: liftover.StatusStitchedWithGaps},
			},
			Gaps: []liftover.Gap{{Kind: liftover.GapB, Start: 10, End: 15}},
		},
		{
			ContigA: "chr1", StartA: 0, EndA: 30, Status: liftover.StatusContigChange,
			Gaps: []liftover.Gap{{Kind: liftover.GapContigChange, From: "chrB", To: "chrC"}},
		},
	}

	got := render(t, reporter.FormatTSV, reporter.NewLiftIntervalReport(results, runner.NewStats(), true))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "\tstatus\tgaps"))
	assert.Equal(t, "chr1\t0\t30\tchrB\t0\t35\t+\tSTITCHED_WITH_GAPS\tGAP_B:5@B:11→15", lines[1])
	assert.Equal(t, "chr1\t0\t30\t\t\t\t\tCONTIG_CHANGE\tCONTIG_CHANGE@B:chrB→chrC", lines[2])
}

func TestTSV_RoundTrip(t *testing.T) {
	t.Parallel()

	points := []roundtrip.PointResult{
		{
			Contig: "chr1", Pos: 9,
			Forward: liftover.Point{Contig: "chrB", Pos: 19},
			Back:    liftover.Point{Contig: "chr1", Pos: 9},
			Status:  roundtrip.StatusPass,
		},
		{Contig: "chr1", Pos: 9, Forward: liftover.Point{Contig: "chrB", Pos: 19}, Status: liftover.StatusUnmapped},
	}
	got := render(t, reporter.FormatTSV, reporter.NewRoundTripPointReport(points, runner.NewStats()))
	assert.Equal(t, "contigA\tposA\tcontigB\tposB\tcontigA2\tposA2\tstatus\n"+
		"chr1\t10\tchrB\t20\tchr1\t10\tPASS\n"+
		"chr1\t10\tchrB\t20\t\t\tUNMAPPED\n", got)

	intervals := []roundtrip.IntervalResult{
		{
			Contig: "chr1", Start: 0, End: 10,
			Forward: roundtrip.Span{Contig: "chrB", Start: 100, End: 110},
			Status:  roundtrip.StatusCrossesBlockBA,
		},
	}
	got = render(t, reporter.FormatTSV, reporter.NewRoundTripIntervalReport(intervals, runner.NewStats()))
	assert.Equal(t, "contigA\tstartA\tendA\tcontigB\tstartB\tendB\tcontigA2\tstartA2\tendA2\tstatus\n"+
		"chr1\t0\t10\tchrB\t100\t110\t\t\t\tCROSSES_BLOCK_BA\n", got)
}

func TestJSON_OrderedRecords(t *testing.T) {
	t.Parallel()

	out := render(t, reporter.FormatJSON, pointReport())

	var decoded struct {
		Version string           `json:"version"`
		Kind    string           `json:"kind"`
		Records []map[string]any `json:"records"`
		Summary struct {
			Total    int            `json:"total"`
			Mapped   int            `json:"mapped"`
			ByStatus map[string]int `json:"byStatus"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "lift-points", decoded.Kind)
	require.Len(t, decoded.Records, 3)
	assert.Equal(t, "chr1B", decoded.Records[0]["contigB"])
	assert.InDelta(t, 505, decoded.Records[0]["posB"], 0)
	assert.Nil(t, decoded.Records[2]["contigA"])
	assert.Equal(t, 3, decoded.Summary.Total)
	assert.Equal(t, 1, decoded.Summary.Mapped)
	assert.Equal(t, 1, decoded.Summary.ByStatus["NO_CONTIG"])

	// Keys keep the column order.
	first := strings.Index(out, `"contigA"`)
	second := strings.Index(out, `"posA"`)
	last := strings.Index(out, `"status"`)
	assert.True(t, first < second && second < last, "keys out of column order:\n%s", out)
}

func TestJSON_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})
	require.NoError(t, rep.Report(context.Background(), pointReport()))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestSummary(t *testing.T) {
	t.Parallel()

	out := render(t, reporter.FormatSummary, pointReport())
	assert.Contains(t, out, "Records:   3")
	assert.Contains(t, out, "Mapped:    1")
	assert.Contains(t, out, "BAD_INPUT")
	assert.NotContains(t, out, "chr1B")
}

func TestHTML(t *testing.T) {
	t.Parallel()

	out := render(t, reporter.FormatHTML, pointReport())
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>golift report</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>contigA</th>")
	assert.Contains(t, out, "<td>chr1B</td>")
	assert.Contains(t, out, "<td>NO_CONTIG</td>")
	assert.Contains(t, out, "<li>Mapped: 1</li>")
}

func TestMarkdown_EscapesCells(t *testing.T) {
	t.Parallel()

	report := &reporter.Report{
		Kind:    reporter.KindCheck,
		Columns: []string{"path", "error"},
		Rows:    []reporter.Row{{"a|b_c.tsv", nil}},
		Stats:   runner.NewStats(),
	}
	md := reporter.Markdown(report, "t")
	assert.Contains(t, md, "| a\\|b\\_c.tsv |  |")
}

func TestCheckReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result := &runner.CheckResult{Files: []runner.FileOutcome{
		{Path: filepath.Join(dir, "good.tsv"), Blocks: 4, Contigs: make([]liftover.ContigStats, 2)},
		{Path: filepath.Join(dir, "overlap.tsv"), Blocks: 2, Contigs: make([]liftover.ContigStats, 1), Overlaps: make([]liftover.Overlap, 1)},
		{Path: filepath.Join(dir, "bad.tsv"), Error: errors.New("bad.tsv:2: invalid block")},
	}}

	report := reporter.NewCheckReport(result, dir)
	assert.Equal(t, 3, report.Stats.Total)

	got := render(t, reporter.FormatTSV, report)
	assert.Equal(t, "path\tblocks\tcontigs\toverlaps\tstatus\terror\n"+
		"good.tsv\t4\t2\t0\tOK\t\n"+
		"overlap.tsv\t2\t1\t1\tOVERLAPS\t\n"+
		"bad.tsv\t\t\t\tERROR\tbad.tsv:2: invalid block\n", got)

	summary := render(t, reporter.FormatSummary, report)
	assert.Contains(t, summary, "overlap.tsv")
	assert.Contains(t, summary, "error  bad.tsv:2: invalid block")
}

func TestFormatStatsLine(t *testing.T) {
	t.Parallel()

	stats := runner.Stats{Total: 10, Mapped: 9, Split: 2, Pass: 7, Fail: 3}
	assert.Equal(t, "total=10 mapped=9", reporter.FormatStatsLine(reporter.KindLiftPoints, stats))
	assert.Equal(t, "total=10 mapped=9 split=2", reporter.FormatStatsLine(reporter.KindLiftIntervals, stats))
	assert.Equal(t, "total=10 pass=7 fail=3", reporter.FormatStatsLine(reporter.KindRoundTripPoints, stats))
	assert.Equal(t, "total=10 pass=7 fail=3", reporter.FormatStatsLine(reporter.KindRoundTripIntervals, stats))
}
