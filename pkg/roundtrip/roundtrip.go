// Package roundtrip checks that an A→B block set and a B→A block set agree:
// coordinates are lifted forward, lifted back, and compared with the input.
//
// The two indexes are independent. The backward set may come from its own
// alignment run rather than from inverting the forward set, so FAIL is an
// ordinary outcome and never an error.
package roundtrip

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/yaklabco/golift/pkg/liftover"
	"github.com/yaklabco/golift/pkg/query"
)

// Round-trip outcomes. Forward failures reuse the liftover statuses.
const (
	StatusPass           liftover.Status = "PASS"
	StatusFail           liftover.Status = "FAIL"
	StatusNoContigBA     liftover.Status = "NO_CONTIG_BA"
	StatusCrossesBlockBA liftover.Status = "CROSSES_BLOCK_BA"
)

// Mode selects how intervals are validated.
type Mode string

const (
	// ModeStrict requires one block-contained segment in each direction.
	ModeStrict Mode = "strict"
	// ModeSplit lifts every forward piece back on its own and requires the
	// pieces to reassemble into the original interval.
	ModeSplit Mode = "split"
)

// ParseMode validates a mode name. An empty name means split.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSplit:
		return ModeSplit, nil
	case ModeStrict:
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("unknown round-trip mode %q; valid modes: strict, split", s)
	}
}

// ModeFromFlags resolves the --strict switch. Piecewise validation is the
// default, so --allow-split on its own changes nothing.
func ModeFromFlags(strict bool) Mode {
	if strict {
		return ModeStrict
	}
	return ModeSplit
}

// Span is a half-open range on one contig. The zero Span means "not reached".
type Span struct {
	Contig string
	Start  uint64
	End    uint64
}

// Len is the number of bases in the span.
func (s Span) Len() uint64 {
	return s.End - s.Start
}

// PointResult is the outcome of a point round trip. Forward is the B position
// and Back the reconstructed A position; each is zero when that leg was not
// reached or did not map.
type PointResult struct {
	Contig  string
	Pos     uint64
	Forward liftover.Point
	Back    liftover.Point
	Status  liftover.Status
}

// IntervalResult is the outcome of an interval round trip.
//
// In split mode Forward is the first forward piece (zero when that piece is a
// gap) and Back is the first merged reconstruction. Pieces counts the forward
// partition, gaps included.
type IntervalResult struct {
	Contig  string
	Start   uint64
	End     uint64
	Mode    Mode
	Forward Span
	Back    Span
	Pieces  int
	Status  liftover.Status
}

// Validator composes a forward and a backward index.
type Validator struct {
	ab *liftover.Index
	ba *liftover.Index
}

// New returns a Validator over the A→B index ab and the B→A index ba.
func New(ab, ba *liftover.Index) *Validator {
	return &Validator{ab: ab, ba: ba}
}

// Point lifts a 0-based position A→B→A.
func (v *Validator) Point(contig string, pos uint64) PointResult {
	res := PointResult{Contig: contig, Pos: pos}

	fwd := v.ab.LiftPoint(contig, pos)
	if fwd.Status != liftover.StatusOK {
		res.Status = fwd.Status
		return res
	}
	res.Forward = fwd.To

	back := v.ba.LiftPoint(fwd.To.Contig, fwd.To.Pos)
	if back.Status != liftover.StatusOK {
		res.Status = back.Status
		return res
	}
	res.Back = back.To

	if back.To.Contig == contig && back.To.Pos == pos {
		res.Status = StatusPass
	} else {
		res.Status = StatusFail
	}
	return res
}

// PointQuery parses "contig:pos" (1-based) and runs Point. Unparsable input
// gives BAD_INPUT with every field empty.
func (v *Validator) PointQuery(raw string) PointResult {
	contig, pos, err := query.ParsePoint(raw)
	if err != nil {
		return PointResult{Status: liftover.StatusBadInput}
	}
	return v.Point(contig, pos)
}

// Interval lifts [start, end) A→B→A under the given mode.
func (v *Validator) Interval(contig string, start, end uint64, mode Mode) IntervalResult {
	res := IntervalResult{Contig: contig, Start: start, End: end, Mode: mode}
	if start >= end {
		res.Status = liftover.StatusBadInput
		return res
	}
	if mode == ModeStrict {
		return v.strict(res)
	}
	return v.split(res)
}

func (v *Validator) strict(res IntervalResult) IntervalResult {
	fwd := v.ab.LiftInterval(res.Contig, res.Start, res.End, liftover.PolicyReject)
	switch fwd.Status {
	case liftover.StatusOK:
	case liftover.StatusNoContig:
		res.Status = liftover.StatusNoContig
		return res
	default:
		res.Status = liftover.StatusCrossesBlock
		return res
	}
	res.Pieces = 1
	res.Forward = bSpan(fwd.Segments[0])

	back := v.ba.LiftInterval(res.Forward.Contig, res.Forward.Start, res.Forward.End, liftover.PolicyReject)
	switch back.Status {
	case liftover.StatusOK:
	case liftover.StatusNoContig:
		res.Status = StatusNoContigBA
		return res
	default:
		res.Status = StatusCrossesBlockBA
		return res
	}
	res.Back = bSpan(back.Segments[0])

	if res.Back == (Span{Contig: res.Contig, Start: res.Start, End: res.End}) {
		res.Status = StatusPass
	} else {
		res.Status = StatusFail
	}
	return res
}

func (v *Validator) split(res IntervalResult) IntervalResult {
	if !v.ab.HasContig(res.Contig) {
		res.Status = liftover.StatusNoContig
		return res
	}

	var pieces []Span
	failed := false
	for seg := range v.ab.Partition(res.Contig, res.Start, res.End) {
		res.Pieces++
		if seg.Status != liftover.StatusSplit {
			failed = true
			continue
		}
		fwd := bSpan(seg)
		if res.Pieces == 1 {
			res.Forward = fwd
		}
		back := v.ba.LiftInterval(fwd.Contig, fwd.Start, fwd.End, liftover.PolicyReject)
		if back.Status != liftover.StatusOK {
			failed = true
			continue
		}
		pieces = append(pieces, bSpan(back.Segments[0]))
	}
	if failed {
		res.Status = StatusFail
		return res
	}

	merged := Merge(pieces)
	if len(merged) > 0 {
		res.Back = merged[0]
	}
	if len(merged) == 1 && merged[0] == (Span{Contig: res.Contig, Start: res.Start, End: res.End}) {
		res.Status = StatusPass
	} else {
		res.Status = StatusFail
	}
	return res
}

// Merge sorts spans by start and joins each span to the previous one when
// both are on the same contig and the first ends where the second begins.
// The input is not modified.
func Merge(spans []Span) []Span {
	sorted := slices.Clone(spans)
	slices.SortStableFunc(sorted, func(a, b Span) int {
		return cmp.Compare(a.Start, b.Start)
	})

	var out []Span
	for _, s := range sorted {
		if n := len(out); n > 0 && out[n-1].Contig == s.Contig && out[n-1].End == s.Start {
			out[n-1].End = s.End
			continue
		}
		out = append(out, s)
	}
	return out
}

func bSpan(seg liftover.Segment) Span {
	return Span{Contig: seg.ContigB, Start: seg.StartB, End: seg.EndB}
}
