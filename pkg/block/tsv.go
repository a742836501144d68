package block

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Header is the column header written at the top of every blocks TSV file.
const Header = "contigA\tstartA\tendA\tcontigB\tstartB\tendB\tstrand\tmapq"

// fieldCount is the number of tab-separated columns in a blocks record.
const fieldCount = 8

// maxLineBytes bounds a single TSV line; contig names are short so this is generous.
const maxLineBytes = 1 << 20

// ErrMalformedRecord is returned for structurally invalid lines in a blocks file.
var ErrMalformedRecord = errors.New("malformed blocks record")

// ParseError locates a fatal problem in a blocks file.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReadFile loads every block from a blocks TSV file.
func ReadFile(path string) ([]Block, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blocks file: %w", err)
	}
	defer fh.Close()

	blocks, err := Read(fh)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return blocks, nil
}

// Read parses a blocks TSV stream. The first line is the header and is skipped.
// Blank lines are ignored. Any other malformed line aborts the read: a mapping
// table with a corrupt row cannot be trusted.
func Read(r io.Reader) ([]Block, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read blocks: %w", err)
		}
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("%w: missing header row", ErrMalformedRecord)}
	}

	var blocks []Block
	ln := 1
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		b, err := ParseRecord(line)
		if err != nil {
			return nil, &ParseError{Line: ln, Err: err}
		}
		blocks = append(blocks, b)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read blocks: %w", err)
	}
	return blocks, nil
}

// ParseRecord parses one tab-separated blocks line.
func ParseRecord(line string) (Block, error) {
	f := strings.Split(line, "\t")
	if len(f) != fieldCount {
		return Block{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, fieldCount, len(f))
	}

	var coords [4]uint64
	for i, idx := range [4]int{1, 2, 4, 5} {
		v, err := strconv.ParseUint(f[idx], 10, 64)
		if err != nil {
			return Block{}, fmt.Errorf("%w: field %d: %q is not a non-negative integer", ErrMalformedRecord, idx+1, f[idx])
		}
		coords[i] = v
	}

	strand, err := ParseStrand(f[6])
	if err != nil {
		return Block{}, err
	}

	score, err := strconv.ParseUint(f[7], 10, 32)
	if err != nil {
		return Block{}, fmt.Errorf("%w: mapq %q is not a non-negative integer", ErrMalformedRecord, f[7])
	}

	return New(f[0], coords[0], coords[1], f[3], coords[2], coords[3], strand, uint32(score))
}

// Write emits the header followed by one line per block, in slice order.
func Write(w io.Writer, blocks []Block) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, b := range blocks {
		if _, err := bw.WriteString(FormatRecord(b) + "\n"); err != nil {
			return fmt.Errorf("write block: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush blocks: %w", err)
	}
	return nil
}

// FormatRecord renders a block as a single TSV line without the newline.
func FormatRecord(b Block) string {
	var sb strings.Builder
	sb.WriteString(b.ContigA)
	sb.WriteByte('\t')
	sb.WriteString(strconv.FormatUint(b.StartA, 10))
	sb.WriteByte('\t')
	sb.WriteString(strconv.FormatUint(b.EndA, 10))
	sb.WriteByte('\t')
	sb.WriteString(b.ContigB)
	sb.WriteByte('\t')
	sb.WriteString(strconv.FormatUint(b.StartB, 10))
	sb.WriteByte('\t')
	sb.WriteString(strconv.FormatUint(b.EndB, 10))
	sb.WriteByte('\t')
	sb.WriteString(b.Strand.String())
	sb.WriteByte('\t')
	sb.WriteString(strconv.FormatUint(uint64(b.Score), 10))
	return sb.String()
}
