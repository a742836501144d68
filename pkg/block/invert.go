package block

import (
	"cmp"
	"slices"
)

// Invert derives a B→A block set from an A→B one. Every block is swapped,
// keeping strand and score, and the result is ordered by the new ContigA name
// and then by the new StartA. Ties keep their input order.
func Invert(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Swap()
	}
	Sort(out)
	return out
}

// Sort orders blocks by ContigA, then StartA, in place. The sort is stable.
func Sort(blocks []Block) {
	slices.SortStableFunc(blocks, func(x, y Block) int {
		if c := cmp.Compare(x.ContigA, y.ContigA); c != 0 {
			return c
		}
		return cmp.Compare(x.StartA, y.StartA)
	})
}
