// Package grid composes the dataset store, edit tracker, and filter/page
// engine into the single read/update surface handed to a presentation
// layer. Grid holds no dataset state of its own.
package grid

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/datagrid/internal/edit"
	"github.com/mesh-intelligence/datagrid/internal/store"
	"github.com/mesh-intelligence/datagrid/internal/view"
	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// Compile-time interface check: Grid must implement types.Grid.
var _ types.Grid = (*Grid)(nil)

// Grid is the editable grid controller.
type Grid struct {
	store   *store.Store
	tracker *edit.Tracker
	engine  *view.Engine
	groups  []types.ColumnGroup
	log     *slog.Logger

	// loadSeq is the sequence number of the latest issued load ticket.
	loadSeq uint64
}

// Option configures a Grid.
type Option func(*Grid)

// WithLogger sets the logger used for load and edit events.
func WithLogger(l *slog.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.log = l
		}
	}
}

// New returns an empty Grid with the given page size and column groups.
// With no column groups, columns are derived from the first row on each
// Load.
func New(pageSize int, groups []types.ColumnGroup, opts ...Option) *Grid {
	s := store.New()
	g := &Grid{
		store:   s,
		tracker: edit.NewTracker(s),
		groups:  groups,
		log:     slog.Default(),
	}
	var fields []string
	for _, c := range types.Leaves(groups) {
		fields = append(fields, c.Path)
	}
	g.engine = view.NewEngine(s, pageSize, fields)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load replaces the dataset and resets edit, filter, and page state.
func (g *Grid) Load(rows []types.Row) {
	g.store.Load(rows)
	g.tracker.Reset()
	g.engine.Reset()
	g.log.Debug("dataset loaded", "rows", len(rows))
}

// BeginLoad issues a ticket for an asynchronous load. Issuing a ticket
// makes every earlier ticket stale.
func (g *Grid) BeginLoad() types.LoadTicket {
	g.loadSeq++
	t := types.LoadTicket{Seq: g.loadSeq, RequestID: newRequestID()}
	g.log.Debug("load requested", "seq", t.Seq, "request_id", t.RequestID)
	return t
}

// CompleteLoad applies rows if ticket is the latest issued. A stale ticket
// returns ErrStaleLoad and leaves the grid untouched, so a slow response
// never overwrites a newer one.
func (g *Grid) CompleteLoad(ticket types.LoadTicket, rows []types.Row) error {
	if ticket.Seq != g.loadSeq || ticket.Seq == 0 {
		g.log.Warn("discarding stale load",
			"seq", ticket.Seq, "latest", g.loadSeq, "request_id", ticket.RequestID)
		return fmt.Errorf("load %d (latest %d): %w", ticket.Seq, g.loadSeq, types.ErrStaleLoad)
	}
	g.Load(rows)
	return nil
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Columns returns the leaf columns in display order.
func (g *Grid) Columns() []types.Column {
	if len(g.groups) > 0 {
		return types.Leaves(g.groups)
	}
	return g.derivedColumns()
}

// derivedColumns lists the leaf fields of the first row, one column each.
func (g *Grid) derivedColumns() []types.Column {
	first, err := g.store.Row(0)
	if err != nil {
		return nil
	}
	paths := first.Paths()
	cols := make([]types.Column, len(paths))
	for i, p := range paths {
		cols[i] = types.Column{Path: p, Header: p}
	}
	return cols
}

// HeaderGroups returns the header rows, outermost first. Grouped columns
// produce a group row above the leaf row; a group cell spans its columns
// and ungrouped columns get placeholder cells.
func (g *Grid) HeaderGroups() []types.HeaderGroup {
	var out []types.HeaderGroup
	if types.Grouped(g.groups) {
		var cells []types.HeaderCell
		for _, grp := range g.groups {
			if grp.Header == "" {
				for _, c := range grp.Columns {
					cells = append(cells, types.HeaderCell{
						ID:            "placeholder_" + c.Path,
						ColSpan:       1,
						IsPlaceholder: true,
					})
				}
				continue
			}
			if len(grp.Columns) == 0 {
				continue
			}
			cells = append(cells, types.HeaderCell{
				ID:      grp.ID,
				Label:   grp.Header,
				ColSpan: len(grp.Columns),
			})
		}
		out = append(out, types.HeaderGroup{ID: fmt.Sprint(len(out)), Headers: cells})
	}

	cols := g.Columns()
	leaf := make([]types.HeaderCell, len(cols))
	for i, c := range cols {
		leaf[i] = types.HeaderCell{ID: c.Path, Label: c.Header, ColSpan: 1}
	}
	return append(out, types.HeaderGroup{ID: fmt.Sprint(len(out)), Headers: leaf})
}

// Page returns the rows of the current page window with one cell per leaf
// column. A column whose path is absent from a row yields a nil value.
func (g *Grid) Page() []types.RowView {
	cols := g.Columns()
	rows := g.engine.PageRows()
	out := make([]types.RowView, len(rows))
	for i, ir := range rows {
		cells := make([]types.Cell, len(cols))
		for j, c := range cols {
			v, _ := ir.Row.Lookup(c.Path)
			cells[j] = types.Cell{Column: c, Value: v}
		}
		out[i] = types.RowView{
			Index:   ir.Index,
			Cells:   cells,
			Editing: g.tracker.IsEditing(ir.Index),
		}
	}
	return out
}

// PageInfo returns pagination metadata for the current window.
func (g *Grid) PageInfo() types.PageInfo {
	return g.engine.Info(g.store.Len())
}

// Row returns a copy of the working row at index.
func (g *Grid) Row(index int) (types.Row, error) {
	return g.store.Row(index)
}

// IsEditing reports whether the row at index is in edit mode.
func (g *Grid) IsEditing(index int) bool {
	return g.tracker.IsEditing(index)
}

// Editing returns the rows in edit mode, ascending.
func (g *Grid) Editing() []int {
	return g.tracker.Editing()
}

// Dirty reports whether the row at index has uncommitted edits.
func (g *Grid) Dirty(index int) bool {
	return g.store.Dirty(index)
}

// SetFilter sets the global text filter and returns to the first page.
func (g *Grid) SetFilter(query string) {
	g.engine.SetFilter(query)
}

// Filter returns the normalized filter text.
func (g *Grid) Filter() string {
	return g.engine.Filter()
}

// SetPageSize changes the number of rows per page.
func (g *Grid) SetPageSize(n int) {
	g.engine.SetPageSize(n)
}

// Navigate moves the page window.
func (g *Grid) Navigate(action string, target int) error {
	switch action {
	case types.NavFirst:
		g.engine.FirstPage()
	case types.NavPrevious:
		g.engine.PreviousPage()
	case types.NavNext:
		g.engine.NextPage()
	case types.NavLast:
		g.engine.LastPage()
	case types.NavJump:
		g.engine.SetPage(target)
	default:
		return fmt.Errorf("%q: %w", action, types.ErrUnknownNavigation)
	}
	return nil
}

// BeginEdit puts a row into edit mode.
func (g *Grid) BeginEdit(index int) error {
	return g.tracker.BeginEdit(index)
}

// UpdateField coerces raw toward the kind of the value currently at path
// and writes it into the working row. The row must be in edit mode.
func (g *Grid) UpdateField(index int, path string, raw string) error {
	if _, err := g.store.Row(index); err != nil {
		return err
	}
	if !g.tracker.IsEditing(index) {
		return fmt.Errorf("row %d: %w", index, types.ErrNotEditing)
	}
	current, err := g.store.Field(index, path)
	if err != nil {
		return err
	}
	return g.store.SetField(index, path, Coerce(current, raw))
}

// Save commits a row's edits.
func (g *Grid) Save(index int) error {
	if err := g.tracker.Save(index); err != nil {
		return err
	}
	g.log.Debug("row saved", "row", index)
	return nil
}

// Cancel discards a row's edits.
func (g *Grid) Cancel(index int) error {
	if err := g.tracker.Cancel(index); err != nil {
		return err
	}
	g.log.Debug("row reverted", "row", index)
	return nil
}
