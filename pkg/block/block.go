// Package block defines the collinear alignment block, the unit of every liftover.
// A block maps a half-open range on a contig of genome A onto an equal-length
// half-open range on a contig of genome B, in either orientation.
package block

import (
	"errors"
	"fmt"
)

// Strand is the relative orientation of the two sides of a block.
type Strand byte

const (
	// StrandUnknown is the zero value and never appears in a valid block.
	StrandUnknown Strand = 0
	StrandForward Strand = '+'
	StrandReverse Strand = '-'
)

// ParseStrand converts "+" or "-" to a Strand.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return StrandForward, nil
	case "-":
		return StrandReverse, nil
	default:
		return StrandUnknown, fmt.Errorf("%w: strand %q; must be + or -", ErrInvalidBlock, s)
	}
}

// String returns "+", "-" or "" for the unknown strand.
func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	default:
		return ""
	}
}

// ErrInvalidBlock is returned when block coordinates violate the block invariants.
var ErrInvalidBlock = errors.New("invalid block")

// Block is an ungapped alignment segment. Coordinates are 0-based half-open.
// Blocks are values; nothing mutates one after New returns it.
type Block struct {
	ContigA string
	StartA  uint64
	EndA    uint64
	ContigB string
	StartB  uint64
	EndB    uint64
	Strand  Strand
	Score   uint32
}

// New builds a Block and checks its invariants.
func New(contigA string, startA, endA uint64, contigB string, startB, endB uint64, strand Strand, score uint32) (Block, error) {
	b := Block{
		ContigA: contigA,
		StartA:  startA,
		EndA:    endA,
		ContigB: contigB,
		StartB:  startB,
		EndB:    endB,
		Strand:  strand,
		Score:   score,
	}
	if err := b.Validate(); err != nil {
		return Block{}, err
	}
	return b, nil
}

// Validate reports the first violated invariant, wrapped in ErrInvalidBlock.
func (b Block) Validate() error {
	switch {
	case b.ContigA == "" || b.ContigB == "":
		return fmt.Errorf("%w: empty contig name", ErrInvalidBlock)
	case b.StartA >= b.EndA:
		return fmt.Errorf("%w: startA %d must be < endA %d", ErrInvalidBlock, b.StartA, b.EndA)
	case b.StartB >= b.EndB:
		return fmt.Errorf("%w: startB %d must be < endB %d", ErrInvalidBlock, b.StartB, b.EndB)
	case b.EndA-b.StartA != b.EndB-b.StartB:
		return fmt.Errorf("%w: length on A (%d) differs from length on B (%d)",
			ErrInvalidBlock, b.EndA-b.StartA, b.EndB-b.StartB)
	case b.Strand != StrandForward && b.Strand != StrandReverse:
		return fmt.Errorf("%w: missing strand", ErrInvalidBlock)
	}
	return nil
}

// Len is the number of bases the block covers on either side.
func (b Block) Len() uint64 {
	return b.EndA - b.StartA
}

// Contains reports whether posA lies in [StartA, EndA).
func (b Block) Contains(posA uint64) bool {
	return b.StartA <= posA && posA < b.EndA
}

// MapPoint maps a 0-based position on A to the 0-based position on B.
// The caller must ensure b.Contains(posA).
//
// On the reverse strand the last base of the A range pairs with the first base
// of the B range, so the offset is measured from the other end.
func (b Block) MapPoint(posA uint64) uint64 {
	offset := posA - b.StartA
	if b.Strand == StrandReverse {
		return b.StartB + (b.Len() - 1 - offset)
	}
	return b.StartB + offset
}

// MapRange maps the A sub-range [startA, endA) to B. Both ends must lie inside
// the block. The result is ordered low to high regardless of strand.
func (b Block) MapRange(startA, endA uint64) (startB, endB uint64) {
	first := b.MapPoint(startA)
	last := b.MapPoint(endA - 1)
	if first > last {
		first, last = last, first
	}
	return first, last + 1
}

// Swap returns the block seen from the B side: B becomes A and vice versa.
// Strand and score are unchanged.
func (b Block) Swap() Block {
	return Block{
		ContigA: b.ContigB,
		StartA:  b.StartB,
		EndA:    b.EndB,
		ContigB: b.ContigA,
		StartB:  b.StartA,
		EndB:    b.EndA,
		Strand:  b.Strand,
		Score:   b.Score,
	}
}

// String formats the block as "chr1:100-110 -> chr1B:500-510 (+)".
func (b Block) String() string {
	return fmt.Sprintf("%s:%d-%d -> %s:%d-%d (%s)",
		b.ContigA, b.StartA, b.EndA, b.ContigB, b.StartB, b.EndB, b.Strand)
}
