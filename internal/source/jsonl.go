package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// JSONL reads one JSON object per line from a file. Blank and malformed
// lines are skipped.
type JSONL struct {
	Path string
}

// Fetch reads the file in full.
func (s JSONL) Fetch(ctx context.Context) ([]types.Row, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Path, err)
	}
	defer f.Close()

	var rows []types.Row
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		row, err := decodeRow(line)
		if err != nil {
			if errors.Is(err, types.ErrMalformedRecord) {
				continue
			}
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.Path, err)
	}
	return rows, nil
}
