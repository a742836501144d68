package runner

import (
	"bytes"
	"context"
	"errors"

	"github.com/yaklabco/golift/pkg/block"
	"github.com/yaklabco/golift/pkg/fsutil"
	"github.com/yaklabco/golift/pkg/liftover"
)

// LoadBlocks reads and parses a blocks TSV file. Parse errors carry the path.
func LoadBlocks(ctx context.Context, path string) ([]block.Block, *fsutil.FileInfo, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	blocks, err := block.Read(bytes.NewReader(content))
	if err != nil {
		var perr *block.ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, nil, err
	}
	return blocks, info, nil
}

// LoadIndex reads a blocks file and builds its lookup index.
func LoadIndex(ctx context.Context, path string) (*liftover.Index, *fsutil.FileInfo, error) {
	blocks, info, err := LoadBlocks(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return liftover.NewIndex(blocks), info, nil
}
