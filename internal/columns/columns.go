// Package columns holds the column layouts for the bundled datasets.
package columns

import "github.com/mesh-intelligence/datagrid/pkg/types"

// People is the flat layout for the sample person rows.
func People() []types.ColumnGroup {
	return []types.ColumnGroup{
		{
			ID: "person",
			Columns: []types.Column{
				{Path: "name", Header: "Name"},
				{Path: "age", Header: "Age"},
				{Path: "status", Header: "Status"},
			},
		},
	}
}

// Shows is the grouped layout for TVMaze search results.
func Shows() []types.ColumnGroup {
	return []types.ColumnGroup{
		{
			ID:     "tv_show",
			Header: "TV Show",
			Columns: []types.Column{
				{Path: "show.name", Header: "Name"},
				{Path: "show.type", Header: "Type"},
			},
		},
		{
			ID:     "details",
			Header: "Details",
			Columns: []types.Column{
				{Path: "show.language", Header: "Language"},
				{Path: "show.genres", Header: "Genres", Renderer: types.RendererBadges},
				{Path: "show.runtime", Header: "Runtime", Renderer: types.RendererDuration},
				{Path: "show.status", Header: "Status"},
			},
		},
	}
}

// ForSource returns the layout for a dataset source. Sources without a
// fixed schema return nil so the grid derives columns from the data.
func ForSource(source string) []types.ColumnGroup {
	switch source {
	case types.SourceSample:
		return People()
	case types.SourceTVMaze:
		return Shows()
	default:
		return nil
	}
}
