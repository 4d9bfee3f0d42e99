package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mesh-intelligence/datagrid/internal/columns"
	"github.com/mesh-intelligence/datagrid/internal/grid"
	"github.com/mesh-intelligence/datagrid/internal/source"
	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// openSource opens the configured dataset source. Configuration mistakes
// are user errors.
func openSource(c types.Config) (source.Source, error) {
	src, err := source.Open(c)
	if err != nil {
		if errors.Is(err, types.ErrUnknownSource) || errors.Is(err, types.ErrSourceRequired) {
			return nil, userError("open source: %w", err)
		}
		return nil, sysError("open source: %w", err)
	}
	return src, nil
}

// newGrid returns an empty grid laid out for the configured source.
func newGrid(c types.Config, log *slog.Logger) *grid.Grid {
	return grid.New(c.PageSize, columns.ForSource(c.Source), grid.WithLogger(log))
}

// title names the dataset in the browser header.
func title(c types.Config) string {
	switch c.Source {
	case types.SourceSample:
		return "People"
	case types.SourceTVMaze:
		return fmt.Sprintf("TV Shows: %q", c.TVMaze.Query)
	case types.SourceJSONL:
		return filepath.Base(c.JSONL.Path)
	case types.SourceSQLite:
		return fmt.Sprintf("%s: %s", filepath.Base(c.SQLite.Path), c.SQLite.Table)
	default:
		return c.Source
	}
}

// columnLabels returns the display label of each leaf column, prefixed with
// its group header when the column belongs to a titled group.
func columnLabels(groups []types.ColumnGroup, cols []types.Column) []string {
	group := make(map[string]string)
	for _, g := range groups {
		for _, c := range g.Columns {
			group[c.Path] = g.Header
		}
	}
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Header
		if h := group[c.Path]; h != "" {
			labels[i] = h + ": " + c.Header
		}
	}
	return labels
}
