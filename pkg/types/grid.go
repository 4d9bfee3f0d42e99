package types

// LoadTicket identifies one dataset load request. Only the most recently
// issued ticket may complete; older tickets are stale.
type LoadTicket struct {
	Seq       uint64 // Monotonic per grid, starting at 1.
	RequestID string // UUID v7, for correlating log lines.
}

// Grid is the single read/update surface handed to a presentation layer.
// It holds no dataset state of its own; implementations delegate to a
// dataset store, an edit tracker, and a filter/page engine.
// Grid is not safe for concurrent use; drive it from one event loop.
type Grid interface {
	// Load replaces the dataset and resets edit, filter, and page state.
	Load(rows []Row)

	// BeginLoad issues a ticket for an asynchronous load. CompleteLoad
	// applies rows only when ticket is the latest issued, returning
	// ErrStaleLoad otherwise.
	BeginLoad() LoadTicket
	CompleteLoad(ticket LoadTicket, rows []Row) error

	// Columns returns the leaf columns in display order.
	Columns() []Column

	// HeaderGroups returns header rows, outermost first.
	HeaderGroups() []HeaderGroup

	// Page returns the rows of the current page window.
	Page() []RowView

	// PageInfo returns pagination metadata for the current window.
	PageInfo() PageInfo

	// Row returns a copy of the working row at index.
	// Returns ErrIndexOutOfRange for an invalid index.
	Row(index int) (Row, error)

	// IsEditing reports whether the row at index is in edit mode.
	IsEditing(index int) bool

	// SetFilter sets the global text filter and returns to the first page.
	SetFilter(query string)

	// Filter returns the normalized filter text.
	Filter() string

	// Navigate moves the page window. target is only used by NavJump.
	// Returns ErrUnknownNavigation for an unrecognized action; targets
	// outside the valid range are clamped.
	Navigate(action string, target int) error

	// BeginEdit puts a row into edit mode. Idempotent.
	BeginEdit(index int) error

	// UpdateField writes a raw input value into a row in edit mode.
	// Returns ErrNotEditing, ErrIndexOutOfRange, or ErrInvalidFieldPath.
	UpdateField(index int, path string, raw string) error

	// Save commits a row's edits. No-op for a row not in edit mode.
	Save(index int) error

	// Cancel discards a row's edits. No-op for a row not in edit mode.
	Cancel(index int) error
}
