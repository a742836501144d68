// Package paf converts pairwise alignments in PAF format into liftover blocks.
//
// Only alignments carrying a cg:Z CIGAR tag (minimap2 -c) can be converted.
// The query is treated as genome A and the target as genome B.
package paf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/golift/pkg/block"
)

// Sentinel errors.
var (
	ErrMalformedLine  = errors.New("malformed PAF line")
	ErrMissingCIGAR   = errors.New("PAF line lacks cg:Z tag (run minimap2 with -c)")
	ErrMalformedCIGAR = errors.New("malformed CIGAR")
)

// mandatoryFields is the number of fixed PAF columns.
const mandatoryFields = 12

const cigarTag = "cg:Z:"

// Op is one CIGAR operation.
type Op struct {
	Code byte
	Len  uint64
}

// ParseCIGAR splits a compact CIGAR string such as "10M2I5M" into operations.
// Every operation code must be preceded by a length.
func ParseCIGAR(s string) ([]Op, error) {
	var ops []Op
	numStart := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if i == numStart {
			return nil, fmt.Errorf("%w: %q: operation %q at offset %d has no length", ErrMalformedCIGAR, s, c, i)
		}
		n, err := strconv.ParseUint(s[numStart:i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrMalformedCIGAR, s, err)
		}
		ops = append(ops, Op{Code: c, Len: n})
		numStart = i + 1
	}
	if numStart != len(s) {
		return nil, fmt.Errorf("%w: %q: trailing length without operation", ErrMalformedCIGAR, s)
	}
	return ops, nil
}

// Record holds the PAF columns used for block derivation.
type Record struct {
	QueryName   string
	QueryLen    uint64
	QueryStart  uint64
	QueryEnd    uint64
	Strand      block.Strand
	TargetName  string
	TargetLen   uint64
	TargetStart uint64
	TargetEnd   uint64
	MapQ        uint32
	CIGAR       []Op
}

// ParseLine parses one tab-separated PAF line, including its cg:Z tag.
func ParseLine(line string) (Record, error) {
	f := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(f) < mandatoryFields {
		return Record{}, fmt.Errorf("%w: expected at least %d fields, got %d", ErrMalformedLine, mandatoryFields, len(f))
	}

	var nums [6]uint64
	for i, idx := range [6]int{1, 2, 3, 6, 7, 8} {
		v, err := strconv.ParseUint(f[idx], 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: column %d: %q is not a non-negative integer", ErrMalformedLine, idx+1, f[idx])
		}
		nums[i] = v
	}
	strand, err := block.ParseStrand(f[4])
	if err != nil {
		return Record{}, fmt.Errorf("%w: column 5: strand %q", ErrMalformedLine, f[4])
	}
	mapq, err := strconv.ParseUint(f[11], 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("%w: column 12: mapq %q", ErrMalformedLine, f[11])
	}

	rec := Record{
		QueryName:   f[0],
		QueryLen:    nums[0],
		QueryStart:  nums[1],
		QueryEnd:    nums[2],
		Strand:      strand,
		TargetName:  f[5],
		TargetLen:   nums[3],
		TargetStart: nums[4],
		TargetEnd:   nums[5],
		MapQ:        uint32(mapq),
	}

	cg, ok := findTag(f[mandatoryFields:], cigarTag)
	if !ok {
		return Record{}, ErrMissingCIGAR
	}
	if rec.CIGAR, err = ParseCIGAR(cg); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func findTag(tags []string, prefix string) (string, bool) {
	for _, t := range tags {
		if v, ok := strings.CutPrefix(t, prefix); ok {
			return v, true
		}
	}
	return "", false
}

// Blocks walks the CIGAR and emits one block per M run. I advances the query,
// D advances the target, and any other operation is skipped without moving
// either side. On the reverse strand the target is walked down from TargetEnd.
func (r Record) Blocks() ([]block.Block, error) {
	var out []block.Block
	qa := r.QueryStart
	ta := r.TargetStart
	if r.Strand == block.StrandReverse {
		ta = r.TargetEnd
	}

	for _, op := range r.CIGAR {
		switch op.Code {
		case 'M':
			if op.Len == 0 {
				continue
			}
			startB, endB := ta, ta+op.Len
			if r.Strand == block.StrandReverse {
				if op.Len > ta {
					return nil, fmt.Errorf("%w: %dM runs past the start of %s", ErrMalformedCIGAR, op.Len, r.TargetName)
				}
				startB, endB = ta-op.Len, ta
			}
			b, err := block.New(r.QueryName, qa, qa+op.Len, r.TargetName, startB, endB, r.Strand, r.MapQ)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
			qa += op.Len
			ta = r.advanceTarget(ta, op.Len)
		case 'I':
			qa += op.Len
		case 'D':
			if r.Strand == block.StrandReverse && op.Len > ta {
				return nil, fmt.Errorf("%w: %dD runs past the start of %s", ErrMalformedCIGAR, op.Len, r.TargetName)
			}
			ta = r.advanceTarget(ta, op.Len)
		}
	}
	return out, nil
}

func (r Record) advanceTarget(ta, n uint64) uint64 {
	if r.Strand == block.StrandReverse {
		return ta - n
	}
	return ta + n
}

// Stats counts what Convert read and wrote.
type Stats struct {
	Alignments int
	Blocks     int
}

// ReadBlocks converts every alignment in a PAF stream. Blank lines are
// skipped; any other unusable line aborts with its line number.
func ReadBlocks(r io.Reader) ([]block.Block, Stats, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)

	var (
		blocks []block.Block
		stats  Stats
	)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			return nil, stats, &block.ParseError{Line: ln, Err: err}
		}
		bs, err := rec.Blocks()
		if err != nil {
			return nil, stats, &block.ParseError{Line: ln, Err: err}
		}
		stats.Alignments++
		stats.Blocks += len(bs)
		blocks = append(blocks, bs...)
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("read PAF: %w", err)
	}
	return blocks, stats, nil
}

// Convert reads PAF from r and writes a blocks TSV to w in alignment order.
func Convert(r io.Reader, w io.Writer) (Stats, error) {
	blocks, stats, err := ReadBlocks(r)
	if err != nil {
		return stats, err
	}
	if err := block.Write(w, blocks); err != nil {
		return stats, err
	}
	return stats, nil
}
