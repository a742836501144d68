package runner

import (
	"maps"
	"slices"

	"github.com/yaklabco/golift/pkg/liftover"
	"github.com/yaklabco/golift/pkg/roundtrip"
)

// Stats captures aggregate counters over one stream of records.
type Stats struct {
	// Total is the number of input records, malformed ones included.
	Total int

	// Mapped counts records with at least one mapped segment.
	Mapped int

	// Split counts the mapped pieces of intervals lifted piecewise.
	Split int

	// Pass and Fail are used by round trips; every non-PASS record is a failure.
	Pass int
	Fail int

	// ByStatus maps each status code to the number of records carrying it.
	ByStatus map[liftover.Status]int
}

// NewStats returns Stats with initialized maps.
func NewStats() Stats {
	return Stats{ByStatus: make(map[liftover.Status]int)}
}

// AddLift records one lift outcome.
func (s *Stats) AddLift(status liftover.Status, mapped bool) {
	s.add(status)
	if mapped {
		s.Mapped++
	}
}

// AddInterval records one interval lift, counting its mapped split pieces.
func (s *Stats) AddInterval(res liftover.IntervalResult) {
	s.AddLift(res.Status, res.Mapped)
	for _, seg := range res.Segments {
		if seg.Status == liftover.StatusSplit {
			s.Split++
		}
	}
}

// AddRoundTrip records one round-trip outcome.
func (s *Stats) AddRoundTrip(status liftover.Status) {
	s.add(status)
	if status == roundtrip.StatusPass {
		s.Pass++
	} else {
		s.Fail++
	}
}

func (s *Stats) add(status liftover.Status) {
	if s.ByStatus == nil {
		s.ByStatus = make(map[liftover.Status]int)
	}
	s.Total++
	s.ByStatus[status]++
}

// Statuses returns the status codes seen, sorted.
func (s Stats) Statuses() []liftover.Status {
	return slices.Sorted(maps.Keys(s.ByStatus))
}
