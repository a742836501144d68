package reporter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// jsonVersion is the schema version of JSON reports.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string       `json:"version"`
	Kind    Kind         `json:"kind"`
	Columns []string     `json:"columns"`
	Records []JSONRecord `json:"records"`
	Summary JSONSummary  `json:"summary"`
}

// JSONRecord is one row encoded as an object whose keys follow the column
// order. Blank fields are null.
type JSONRecord struct {
	columns []string
	row     Row
}

// MarshalJSON implements json.Marshaler.
func (rec JSONRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range rec.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var v any
		if i < len(rec.row) {
			v = rec.row[i]
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", col, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	Total    int            `json:"total"`
	Mapped   int            `json:"mapped"`
	Split    int            `json:"split"`
	Pass     int            `json:"pass"`
	Fail     int            `json:"fail"`
	ByStatus map[string]int `json:"byStatus"`
}

// JSONReporter formats reports as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, report *Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(buildJSONOutput(report)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func buildJSONOutput(report *Report) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Kind:    report.Kind,
		Columns: report.Columns,
		Records: make([]JSONRecord, 0, len(report.Rows)),
		Summary: JSONSummary{
			Total:    report.Stats.Total,
			Mapped:   report.Stats.Mapped,
			Split:    report.Stats.Split,
			Pass:     report.Stats.Pass,
			Fail:     report.Stats.Fail,
			ByStatus: make(map[string]int, len(report.Stats.ByStatus)),
		},
	}
	for _, row := range report.Rows {
		output.Records = append(output.Records, JSONRecord{columns: report.Columns, row: row})
	}
	for status, n := range report.Stats.ByStatus {
		output.Summary.ByStatus[status.String()] = n
	}
	return output
}
