// Package liftover implements the coordinate translation engine: a per-contig
// block index, point and interval lifting, interval partitioning across block
// boundaries, and stitching of intervals that span several blocks.
//
// All coordinates are 0-based and intervals are half-open unless a function
// says otherwise. An Index is immutable once built and safe for concurrent use.
package liftover

import (
	"cmp"
	"slices"
	"sort"

	"github.com/yaklabco/golift/pkg/block"
)

// Lookup is the tagged outcome of FindBlock.
type Lookup uint8

const (
	// LookupFound means a block covers the queried position.
	LookupFound Lookup = iota
	// LookupNoContig means the contig has no blocks at all.
	LookupNoContig
	// LookupNoBlock means the contig is known but no block covers the position.
	LookupNoBlock
)

// String returns a short name for the lookup outcome.
func (l Lookup) String() string {
	switch l {
	case LookupFound:
		return "found"
	case LookupNoContig:
		return "no-contig"
	case LookupNoBlock:
		return "no-block"
	default:
		return "unknown"
	}
}

// Index holds blocks grouped by ContigA and sorted by StartA.
type Index struct {
	byContig map[string][]block.Block
	total    int
}

// NewIndex groups blocks by ContigA and sorts each group by StartA.
// Input order across contigs does not matter; within a contig, blocks with the
// same start keep their input order.
//
// Non-overlap is not checked here. Use Overlaps for an explicit validation pass.
// When blocks do overlap, FindBlock returns whichever containing block the
// binary search reaches first.
func NewIndex(blocks []block.Block) *Index {
	idx := &Index{
		byContig: make(map[string][]block.Block),
		total:    len(blocks),
	}
	for _, b := range blocks {
		idx.byContig[b.ContigA] = append(idx.byContig[b.ContigA], b)
	}
	for _, list := range idx.byContig {
		slices.SortStableFunc(list, func(x, y block.Block) int {
			return cmp.Compare(x.StartA, y.StartA)
		})
	}
	return idx
}

// FindBlock returns the block covering pos on contig.
func (x *Index) FindBlock(contig string, pos uint64) (block.Block, Lookup) {
	list, ok := x.byContig[contig]
	if !ok || len(list) == 0 {
		return block.Block{}, LookupNoContig
	}
	i, found := search(list, pos)
	if !found {
		return block.Block{}, LookupNoBlock
	}
	return list[i], LookupFound
}

// HasContig reports whether any block starts on contig.
func (x *Index) HasContig(contig string) bool {
	return len(x.byContig[contig]) > 0
}

// search is the binary search over a start-sorted block list.
func search(list []block.Block, pos uint64) (int, bool) {
	lo, hi := 0, len(list)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		b := list[mid]
		switch {
		case pos < b.StartA:
			hi = mid
		case pos >= b.EndA:
			lo = mid + 1
		default:
			return mid, true
		}
	}
	return 0, false
}

// Contigs returns the indexed contig names in lexical order.
func (x *Index) Contigs() []string {
	names := make([]string, 0, len(x.byContig))
	for name := range x.byContig {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Blocks returns a copy of the sorted block list for contig.
func (x *Index) Blocks(contig string) []block.Block {
	return slices.Clone(x.byContig[contig])
}

// Len returns the total number of indexed blocks.
func (x *Index) Len() int {
	return x.total
}

// Overlap describes two adjacent blocks on the same contig whose A ranges intersect.
type Overlap struct {
	Contig string
	First  block.Block
	Second block.Block
}

// Overlaps lists every adjacent pair of blocks that violates the non-overlap
// assumption, ordered by contig then position.
func (x *Index) Overlaps() []Overlap {
	var out []Overlap
	for _, contig := range x.Contigs() {
		list := x.byContig[contig]
		for i := 1; i < len(list); i++ {
			if list[i-1].EndA > list[i].StartA {
				out = append(out, Overlap{Contig: contig, First: list[i-1], Second: list[i]})
			}
		}
	}
	return out
}

// ContigStats summarises the blocks of one contig.
type ContigStats struct {
	Contig  string
	Blocks  int
	Bases   uint64
	Start   uint64
	End     uint64
	Forward int
	Reverse int
}

// Stats returns per-contig statistics in contig order.
func (x *Index) Stats() []ContigStats {
	out := make([]ContigStats, 0, len(x.byContig))
	for _, contig := range x.Contigs() {
		list := x.byContig[contig]
		st := ContigStats{Contig: contig, Blocks: len(list), Start: list[0].StartA}
		for _, b := range list {
			st.Bases += b.Len()
			st.End = max(st.End, b.EndA)
			if b.Strand == block.StrandReverse {
				st.Reverse++
			} else {
				st.Forward++
			}
		}
		out = append(out, st)
	}
	return out
}
