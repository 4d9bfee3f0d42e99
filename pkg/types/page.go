package types

// Navigation actions sent by the presentation layer's pager.
const (
	NavFirst    = "first"
	NavPrevious = "previous"
	NavNext     = "next"
	NavLast     = "last"
	NavJump     = "jump"
)

// PageInfo describes the current page window.
type PageInfo struct {
	Index           int // 0-based current page.
	Count           int // Number of pages; at least 1.
	Size            int // Rows per page.
	VisibleRows     int // Rows surviving the filter.
	TotalRows       int // Rows in the working dataset.
	CanPreviousPage bool
	CanNextPage     bool
}

// Cell is one rendered value of a row view.
type Cell struct {
	Column Column
	Value  any
}

// RowView is one row of the current page as the presentation layer sees it.
type RowView struct {
	Index   int // Position in the working dataset; pass back to edit calls.
	Cells   []Cell
	Editing bool
}
