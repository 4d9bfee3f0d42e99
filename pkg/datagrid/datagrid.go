// Package datagrid provides the public API for the editable grid controller.
// It exposes the constructors while keeping the store, edit tracker, and
// filter/page engine internal.
//
// Example:
//
//	g := datagrid.New(10, columns)
//	g.Load(rows)
//	g.SetFilter("alice")
//	for _, r := range g.Page() {
//	    ...
//	}
package datagrid

import (
	"context"
	"log/slog"

	"github.com/mesh-intelligence/datagrid/internal/grid"
	"github.com/mesh-intelligence/datagrid/internal/source"
	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// Version is the release version of the module.
const Version = "0.3.0"

// New creates an empty grid with the given page size and column groups.
// With no groups, columns are derived from the first loaded row.
func New(pageSize int, groups []types.ColumnGroup) types.Grid {
	return grid.New(pageSize, groups)
}

// NewWithLogger is New with load and edit events sent to log.
func NewWithLogger(pageSize int, groups []types.ColumnGroup, log *slog.Logger) types.Grid {
	return grid.New(pageSize, groups, grid.WithLogger(log))
}

// Fetch reads the dataset named by cfg.Source once.
func Fetch(ctx context.Context, cfg types.Config) ([]types.Row, error) {
	src, err := source.Open(cfg)
	if err != nil {
		return nil, err
	}
	return src.Fetch(ctx)
}
