// Package source loads the initial dataset for a grid. Every source yields
// a slice of rows; none of them writes anything back.
package source

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// Source produces a dataset. Fetch is a one-shot request: no retry and no
// caching. Callers bound it with ctx.
type Source interface {
	Fetch(ctx context.Context) ([]types.Row, error)
}

// Open returns the Source selected by cfg.Source.
// Returns ErrUnknownSource for an unrecognized name and ErrSourceRequired
// when a file-backed source has no path.
func Open(cfg types.Config) (Source, error) {
	switch cfg.Source {
	case types.SourceSample:
		return Sample{}, nil
	case types.SourceTVMaze:
		return NewTVMaze(cfg.TVMaze), nil
	case types.SourceJSONL:
		if cfg.JSONL.Path == "" {
			return nil, fmt.Errorf("jsonl path: %w", types.ErrSourceRequired)
		}
		return JSONL{Path: cfg.JSONL.Path}, nil
	case types.SourceSQLite:
		if cfg.SQLite.Path == "" {
			return nil, fmt.Errorf("sqlite path: %w", types.ErrSourceRequired)
		}
		if cfg.SQLite.Table == "" {
			return nil, fmt.Errorf("sqlite table: %w", types.ErrSourceRequired)
		}
		return SQLite{Path: cfg.SQLite.Path, Table: cfg.SQLite.Table}, nil
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Source, types.ErrUnknownSource)
	}
}
