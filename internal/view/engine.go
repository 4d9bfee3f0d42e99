// Package view derives the visible rows of a dataset from a global text
// filter and a fixed-size page window. Nothing is cached: every call
// recomputes from the current working rows.
package view

import (
	"strings"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// Rows is the read side of the dataset the engine filters.
type Rows interface {
	Len() int
	Rows() []types.Row
}

// Engine holds the filter text and page window.
type Engine struct {
	rows      Rows
	fields    []string // Searched field paths; empty searches every leaf.
	query     string
	pageIndex int
	pageSize  int
}

// NewEngine returns an Engine over rows with the given page size. A page
// size below 1 is treated as 1. fields restricts matching to those paths.
func NewEngine(rows Rows, pageSize int, fields []string) *Engine {
	e := &Engine{rows: rows, fields: fields}
	e.SetPageSize(pageSize)
	return e
}

// Normalize trims and case-folds a filter query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// SetFilter stores the normalized query and returns to the first page.
func (e *Engine) SetFilter(query string) {
	e.query = Normalize(query)
	e.pageIndex = 0
}

// Filter returns the normalized query.
func (e *Engine) Filter() string {
	return e.query
}

// Reset clears the filter and returns to the first page.
func (e *Engine) Reset() {
	e.query = ""
	e.pageIndex = 0
}

// VisibleRows returns the rows matching the filter in dataset order. A row
// matches when the text form of any searched field contains the query,
// ignoring case. The empty query matches every row.
func (e *Engine) VisibleRows() []types.IndexedRow {
	all := e.rows.Rows()
	out := make([]types.IndexedRow, 0, len(all))
	for i, r := range all {
		if e.matches(r) {
			out = append(out, types.IndexedRow{Index: i, Row: r})
		}
	}
	return out
}

func (e *Engine) matches(r types.Row) bool {
	if e.query == "" {
		return true
	}
	paths := e.fields
	if len(paths) == 0 {
		paths = r.Paths()
	}
	for _, p := range paths {
		v, err := r.Lookup(p)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(types.FormatValue(v)), e.query) {
			return true
		}
	}
	return false
}

// PageSize returns the number of rows per page.
func (e *Engine) PageSize() int {
	return e.pageSize
}

// SetPageSize changes the page size, clamping below 1 to 1, and keeps the
// page index in range.
func (e *Engine) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	e.pageSize = n
	e.pageIndex = clamp(e.pageIndex, e.lastPage(e.visibleCount()))
}

// PageIndex returns the current page, clamped to the current visible rows.
func (e *Engine) PageIndex() int {
	return clamp(e.pageIndex, e.lastPage(e.visibleCount()))
}

// SetPage moves to page index, clamped to [0, PageCount()-1].
func (e *Engine) SetPage(index int) {
	e.pageIndex = clamp(index, e.lastPage(e.visibleCount()))
}

// PageCount returns ceil(visible/pageSize), at least 1.
func (e *Engine) PageCount() int {
	return e.pageCount(e.visibleCount())
}

// PageRows returns the visible rows of the current page.
func (e *Engine) PageRows() []types.IndexedRow {
	visible := e.VisibleRows()
	page := clamp(e.pageIndex, e.lastPage(len(visible)))
	start := page * e.pageSize
	if start >= len(visible) {
		return []types.IndexedRow{}
	}
	end := min(start+e.pageSize, len(visible))
	return visible[start:end]
}

// FirstPage moves to page 0.
func (e *Engine) FirstPage() { e.SetPage(0) }

// PreviousPage moves back one page, stopping at the first.
func (e *Engine) PreviousPage() { e.SetPage(e.PageIndex() - 1) }

// NextPage moves forward one page, stopping at the last.
func (e *Engine) NextPage() { e.SetPage(e.PageIndex() + 1) }

// LastPage moves to the last page.
func (e *Engine) LastPage() { e.SetPage(e.PageCount() - 1) }

// CanPreviousPage reports whether a page precedes the current one.
func (e *Engine) CanPreviousPage() bool {
	return e.PageIndex() > 0
}

// CanNextPage reports whether a page follows the current one.
func (e *Engine) CanNextPage() bool {
	return e.PageIndex() < e.PageCount()-1
}

// Info returns the page window metadata with totalRows as the dataset size.
func (e *Engine) Info(totalRows int) types.PageInfo {
	visible := e.visibleCount()
	count := e.pageCount(visible)
	index := clamp(e.pageIndex, count-1)
	return types.PageInfo{
		Index:           index,
		Count:           count,
		Size:            e.pageSize,
		VisibleRows:     visible,
		TotalRows:       totalRows,
		CanPreviousPage: index > 0,
		CanNextPage:     index < count-1,
	}
}

func (e *Engine) visibleCount() int {
	if e.query == "" {
		return e.rows.Len()
	}
	return len(e.VisibleRows())
}

func (e *Engine) pageCount(visible int) int {
	if visible == 0 {
		return 1
	}
	return (visible + e.pageSize - 1) / e.pageSize
}

func (e *Engine) lastPage(visible int) int {
	return e.pageCount(visible) - 1
}

func clamp(v, hi int) int {
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}
