package reporter

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/yaklabco/golift/pkg/block"
	"github.com/yaklabco/golift/pkg/liftover"
	"github.com/yaklabco/golift/pkg/roundtrip"
	"github.com/yaklabco/golift/pkg/runner"
)

// Kind identifies the record layout of a report.
type Kind string

// Report kinds.
const (
	KindLiftPoints         Kind = "lift-points"
	KindLiftIntervals      Kind = "lift-intervals"
	KindRoundTripPoints    Kind = "roundtrip-points"
	KindRoundTripIntervals Kind = "roundtrip-intervals"
	KindCheck              Kind = "check"
)

// RoundTrip reports whether the kind carries round-trip records.
func (k Kind) RoundTrip() bool {
	return k == KindRoundTripPoints || k == KindRoundTripIntervals
}

// Column layouts. Point positions are 1-based; interval coordinates are
// 0-based half-open.
var (
	liftPointColumns = []string{"contigA", "posA", "contigB", "posB", "strand", "status"}

	liftIntervalColumns = []string{"contigA", "startA", "endA", "contigB", "startB", "endB", "strand", "status"}

	roundTripPointColumns = []string{"contigA", "posA", "contigB", "posB", "contigA2", "posA2", "status"}

	roundTripIntervalColumns = []string{
		"contigA", "startA", "endA", "contigB", "startB", "endB",
		"contigA2", "startA2", "endA2", "status",
	}

	checkColumns = []string{"path", "blocks", "contigs", "overlaps", "status", "error"}
)

// Check statuses.
const (
	CheckOK       = "OK"
	CheckOverlaps = "OVERLAPS"
	CheckError    = "ERROR"
)

// Row is one output record. Cells hold a string, a uint64, an int or nil;
// nil is a blank field.
type Row []any

// Report is a fully computed result set ready for formatting.
type Report struct {
	Kind    Kind
	Columns []string
	Rows    []Row
	Stats   runner.Stats
}

// NewLiftPointReport builds a report from point lifts. Malformed queries
// leave every field but the status blank.
func NewLiftPointReport(results []liftover.PointResult, stats runner.Stats) *Report {
	rep := &Report{Kind: KindLiftPoints, Columns: liftPointColumns, Stats: stats}
	for _, res := range results {
		row := make(Row, len(liftPointColumns))
		row[5] = res.Status.String()
		if res.Status != liftover.StatusBadInput {
			row[0], row[1] = res.Contig, res.Pos+1
		}
		if res.Status == liftover.StatusOK {
			row[2], row[3], row[4] = res.To.Contig, res.To.Pos+1, res.To.Strand.String()
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}

// NewLiftIntervalReport builds a report from interval lifts, one row per
// segment. Results without segments get a single row with blank B fields.
// withGaps adds the stitching gap column.
func NewLiftIntervalReport(results []liftover.IntervalResult, stats runner.Stats, withGaps bool) *Report {
	columns := liftIntervalColumns
	if withGaps {
		columns = append(columns[:len(columns):len(columns)], "gaps")
	}
	rep := &Report{Kind: KindLiftIntervals, Columns: columns, Stats: stats}

	for _, res := range results {
		if len(res.Segments) == 0 {
			row := make(Row, len(columns))
			if res.Status != liftover.StatusBadInput {
				row[0], row[1], row[2] = res.ContigA, res.StartA, res.EndA
			}
			row[7] = res.Status.String()
			if withGaps {
				row[8] = liftover.FormatGaps(res.Gaps)
			}
			rep.Rows = append(rep.Rows, row)
			continue
		}

		for i, seg := range res.Segments {
			row := make(Row, len(columns))
			row[0], row[1], row[2] = seg.ContigA, seg.StartA, seg.EndA
			if seg.Status != liftover.StatusUnmappedSeg {
				row[3], row[4], row[5], row[6] = seg.ContigB, seg.StartB, seg.EndB, seg.Strand.String()
			}
			row[7] = seg.Status.String()
			if withGaps && i == 0 {
				row[8] = liftover.FormatGaps(res.Gaps)
			}
			rep.Rows = append(rep.Rows, row)
		}
	}
	return rep
}

// NewRoundTripPointReport builds a report from point round trips.
func NewRoundTripPointReport(results []roundtrip.PointResult, stats runner.Stats) *Report {
	rep := &Report{Kind: KindRoundTripPoints, Columns: roundTripPointColumns, Stats: stats}
	for _, res := range results {
		row := make(Row, len(roundTripPointColumns))
		row[6] = res.Status.String()
		if res.Status != liftover.StatusBadInput {
			row[0], row[1] = res.Contig, res.Pos+1
		}
		if res.Forward.Contig != "" {
			row[2], row[3] = res.Forward.Contig, res.Forward.Pos+1
		}
		if res.Back.Contig != "" {
			row[4], row[5] = res.Back.Contig, res.Back.Pos+1
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}

// NewRoundTripIntervalReport builds a report from interval round trips.
func NewRoundTripIntervalReport(results []roundtrip.IntervalResult, stats runner.Stats) *Report {
	rep := &Report{Kind: KindRoundTripIntervals, Columns: roundTripIntervalColumns, Stats: stats}
	for _, res := range results {
		row := make(Row, len(roundTripIntervalColumns))
		row[9] = res.Status.String()
		if res.Status != liftover.StatusBadInput {
			row[0], row[1], row[2] = res.Contig, res.Start, res.End
		}
		if res.Forward.Contig != "" {
			row[3], row[4], row[5] = res.Forward.Contig, res.Forward.Start, res.Forward.End
		}
		if res.Back.Contig != "" {
			row[6], row[7], row[8] = res.Back.Contig, res.Back.Start, res.Back.End
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}

// NewCheckReport builds a report with one row per checked block file. Paths
// are made relative to workDir when possible.
func NewCheckReport(result *runner.CheckResult, workDir string) *Report {
	rep := &Report{Kind: KindCheck, Columns: checkColumns, Stats: runner.NewStats()}
	for _, file := range result.Files {
		path := file.Path
		if workDir != "" {
			if rel, err := filepath.Rel(workDir, path); err == nil {
				path = rel
			}
		}

		row := Row{path, file.Blocks, len(file.Contigs), len(file.Overlaps), CheckOK, nil}
		switch {
		case file.Error != nil:
			row[1], row[2], row[3] = nil, nil, nil
			row[4], row[5] = CheckError, file.Error.Error()
		case len(file.Overlaps) > 0:
			row[4] = CheckOverlaps
		}
		rep.Stats.Total++
		rep.Stats.ByStatus[liftover.Status(row[4].(string))]++
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}

// FormatStatsLine formats the counters written to stderr by --stats, e.g.
// "total=10 mapped=9 split=2".
func FormatStatsLine(kind Kind, stats runner.Stats) string {
	switch kind {
	case KindLiftPoints:
		return fmt.Sprintf("total=%d mapped=%d", stats.Total, stats.Mapped)
	case KindLiftIntervals:
		return fmt.Sprintf("total=%d mapped=%d split=%d", stats.Total, stats.Mapped, stats.Split)
	case KindRoundTripPoints, KindRoundTripIntervals:
		return fmt.Sprintf("total=%d pass=%d fail=%d", stats.Total, stats.Pass, stats.Fail)
	default:
		return fmt.Sprintf("total=%d", stats.Total)
	}
}

// cellText renders a cell for text formats.
func cellText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	case block.Strand:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func rowText(row Row) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = cellText(v)
	}
	return out
}
