package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// SQLite reads every row of one table. Column names become field names.
type SQLite struct {
	Path  string
	Table string
}

// Fetch opens the database and selects the whole table in storage
// order.
func (s SQLite) Fetch(ctx context.Context) ([]types.Row, error) {
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Path, err)
	}
	defer db.Close()

	query := "SELECT * FROM " + quoteIdent(s.Table)
	rs, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.Table, err)
	}
	defer rs.Close()

	cols, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	var rows []types.Row
	for rs.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", s.Table, err)
		}
		row := make(types.Row, len(cols))
		for i, c := range cols {
			row[c] = sqlValue(values[i])
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", s.Table, err)
	}
	return rows, nil
}

// sqlValue maps driver values onto row value kinds.
func sqlValue(v any) any {
	switch val := v.(type) {
	case int64:
		return int(val)
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return v
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
