package block_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/golift/pkg/block"
)

const sampleBlocks = block.Header + `
chr2	0	50	II	1000	1050	-	60
chr1	110	120	I	510	520	+	60
chr1	100	110	I	500	510	+	42
`

func TestRead(t *testing.T) {
	t.Parallel()

	blocks, err := block.Read(strings.NewReader(sampleBlocks))
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, "chr2", blocks[0].ContigA)
	assert.Equal(t, block.StrandReverse, blocks[0].Strand)
	assert.Equal(t, uint32(42), blocks[2].Score)
}

func TestRead_SkipsBlankLinesAndCRLF(t *testing.T) {
	t.Parallel()

	input := block.Header + "\r\n\r\nchr1\t0\t10\tI\t0\t10\t+\t1\r\n\n"
	blocks, err := block.Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, uint32(1), blocks[0].Score)
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantLine int
		wantErr  error
	}{
		{"empty file", "", 1, block.ErrMalformedRecord},
		{"too few fields", block.Header + "\nchr1\t0\t10\tI\t0\t10\t+\n", 2, block.ErrMalformedRecord},
		{"too many fields", block.Header + "\nchr1\t0\t10\tI\t0\t10\t+\t1\textra\n", 2, block.ErrMalformedRecord},
		{"negative start", block.Header + "\nchr1\t-1\t10\tI\t0\t11\t+\t1\n", 2, block.ErrMalformedRecord},
		{"bad strand", block.Header + "\nchr1\t0\t10\tI\t0\t10\t.\t1\n", 2, block.ErrInvalidBlock},
		{"bad mapq", block.Header + "\nchr1\t0\t10\tI\t0\t10\t+\thigh\n", 2, block.ErrMalformedRecord},
		{"length mismatch", block.Header + "\nchr1\t0\t10\tI\t0\t12\t+\t1\nchr1\t0\t1\tI\t0\t1\t+\t1\n", 2, block.ErrInvalidBlock},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := block.Read(strings.NewReader(testCase.input))
			require.Error(t, err)
			require.ErrorIs(t, err, testCase.wantErr)

			var perr *block.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, testCase.wantLine, perr.Line)
		})
	}
}

func TestReadFile_ReportsPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.blocks.tsv")
	require.NoError(t, os.WriteFile(path, []byte(block.Header+"\nchr1\t0\n"), 0644))

	_, err := block.ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path+":2:")
}

func TestWrite_RoundTrips(t *testing.T) {
	t.Parallel()

	blocks, err := block.Read(strings.NewReader(sampleBlocks))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, block.Write(&buf, blocks))
	assert.Equal(t, sampleBlocks, buf.String())
}

func TestInvert(t *testing.T) {
	t.Parallel()

	blocks, err := block.Read(strings.NewReader(sampleBlocks))
	require.NoError(t, err)

	inv := block.Invert(blocks)
	require.Len(t, inv, 3)

	// Sorted by new contig, then by new start.
	assert.Equal(t, "I", inv[0].ContigA)
	assert.Equal(t, uint64(500), inv[0].StartA)
	assert.Equal(t, "I", inv[1].ContigA)
	assert.Equal(t, uint64(510), inv[1].StartA)
	assert.Equal(t, "II", inv[2].ContigA)
	assert.Equal(t, block.StrandReverse, inv[2].Strand)
	assert.Equal(t, "chr2", inv[2].ContigB)

	// Input is untouched.
	assert.Equal(t, "chr2", blocks[0].ContigA)
}
