package source

import (
	"context"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// Sample is the compiled-in person dataset.
type Sample struct{}

// Fetch returns a fresh copy of the sample rows.
func (Sample) Fetch(context.Context) ([]types.Row, error) {
	return []types.Row{
		{"name": "Alice", "age": 25, "status": "Active"},
		{"name": "Bob", "age": 30, "status": "Inactive"},
		{"name": "Charlie", "age": 35, "status": "Pending"},
	}, nil
}
