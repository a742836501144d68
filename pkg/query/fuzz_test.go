package query_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/golift/pkg/query"
)

func FuzzParse(f *testing.F) {
	f.Add("chr1:100")
	f.Add("chr1\t99\t200\tname")
	f.Add("chr1:200-100")
	f.Add("chr1:0")
	f.Add(":")
	f.Add("chr1:1-18446744073709551615")

	f.Fuzz(func(t *testing.T, raw string) {
		for _, format := range []query.Format{query.FormatChromPos, query.FormatBED, query.FormatRegion} {
			q := query.Parse(format, raw)
			if !q.OK() {
				if !errors.Is(q.Err, query.ErrBadInput) {
					t.Fatalf("%s %q: error %v does not wrap ErrBadInput", format, raw, q.Err)
				}
				continue
			}
			if q.Contig == "" {
				t.Fatalf("%s %q: parsed without a contig", format, raw)
			}
			if q.Start >= q.End {
				t.Fatalf("%s %q: empty interval [%d, %d)", format, raw, q.Start, q.End)
			}
		}
	})
}
