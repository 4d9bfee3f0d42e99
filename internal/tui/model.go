// Package tui is a terminal presentation layer for the editable grid. It
// renders header groups, the current page, and pager controls, and turns
// key presses into grid calls. All grid state lives in the grid; the model
// only tracks the cursor and input widgets.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/datagrid/internal/source"
	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// Grid is the controller surface the view drives.
type Grid interface {
	types.Grid
	Dirty(index int) bool
}

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeEdit
)

// loadedMsg carries the result of one dataset fetch.
type loadedMsg struct {
	ticket types.LoadTicket
	rows   []types.Row
	err    error
}

// Model is the bubbletea model for the grid view.
type Model struct {
	ctx   context.Context
	grid  Grid
	src   source.Source
	log   *slog.Logger
	title string

	mode    mode
	cx, cy  int // cursor column and row within the current page
	search  textinput.Model
	editor  textinput.Model
	keys    keyMap
	help    help.Model
	loading bool
	pending uint64 // seq of the fetch whose result we are waiting for
	status  string
	err     error
	width   int
	height  int
}

// New returns a Model over g. When src is non-nil the first fetch starts
// from Init.
func New(ctx context.Context, g Grid, src source.Source, title string, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "Search all columns..."

	editor := textinput.New()
	editor.Prompt = ""

	return Model{
		ctx:     ctx,
		grid:    g,
		src:     src,
		log:     log,
		title:   title,
		search:  search,
		editor:  editor,
		keys:    defaultKeyMap(),
		help:    help.New(),
		loading: src != nil,
	}
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	if m.src == nil {
		return nil
	}
	ticket := m.grid.BeginLoad()
	return m.fetch(ticket)
}

func (m Model) fetch(ticket types.LoadTicket) tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		rows, err := src.Fetch(ctx)
		return loadedMsg{ticket: ticket, rows: rows, err: err}
	}
}

func (m Model) reload() (Model, tea.Cmd) {
	if m.src == nil {
		return m, nil
	}
	ticket := m.grid.BeginLoad()
	m.loading = true
	m.pending = ticket.Seq
	m.status = "loading…"
	return m, m.fetch(ticket)
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case loadedMsg:
		return m.applyLoad(msg), nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m Model) applyLoad(msg loadedMsg) Model {
	if m.pending != 0 && msg.ticket.Seq != m.pending {
		m.log.Debug("ignoring superseded fetch", "seq", msg.ticket.Seq, "pending", m.pending)
		return m
	}
	m.loading = false
	m.pending = 0
	if msg.err != nil {
		m.err = msg.err
		m.log.Error("fetch failed", "request_id", msg.ticket.RequestID, "err", msg.err)
		return m
	}
	if err := m.grid.CompleteLoad(msg.ticket, msg.rows); err != nil {
		if errors.Is(err, types.ErrStaleLoad) {
			return m
		}
		m.err = err
		return m
	}
	m.err = nil
	m.cx, m.cy = 0, 0
	m.search.SetValue("")
	m.status = fmt.Sprintf("loaded %d rows", len(msg.rows))
	m.log.Info("dataset loaded", "rows", len(msg.rows), "request_id", msg.ticket.RequestID)
	return m
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.grid.Page()
	cols := m.grid.Columns()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cy > 0 {
			m.cy--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cy < len(page)-1 {
			m.cy++
		}
	case key.Matches(msg, m.keys.Left):
		if m.cx > 0 {
			m.cx--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cx < len(cols)-1 {
			m.cx++
		}
	case key.Matches(msg, m.keys.FirstPage):
		m.navigate(types.NavFirst)
	case key.Matches(msg, m.keys.PrevPage):
		m.navigate(types.NavPrevious)
	case key.Matches(msg, m.keys.NextPage):
		m.navigate(types.NavNext)
	case key.Matches(msg, m.keys.LastPage):
		m.navigate(types.NavLast)
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.grid.Filter())
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit(page, cols)
	case key.Matches(msg, m.keys.Save):
		if row, ok := m.currentRow(page); ok {
			m.finishRow(row.Index, m.grid.Save, "saved")
		}
	case key.Matches(msg, m.keys.Cancel):
		if row, ok := m.currentRow(page); ok {
			m.finishRow(row.Index, m.grid.Cancel, "reverted")
		}
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) navigate(action string) {
	if err := m.grid.Navigate(action, 0); err != nil {
		m.err = err
		return
	}
	m.cy = 0
}

func (m Model) currentRow(page []types.RowView) (types.RowView, bool) {
	if m.cy < 0 || m.cy >= len(page) {
		return types.RowView{}, false
	}
	return page[m.cy], true
}

func (m *Model) finishRow(index int, op func(int) error, verb string) {
	editing := m.grid.IsEditing(index)
	if err := op(index); err != nil {
		m.err = err
		return
	}
	if editing {
		m.status = fmt.Sprintf("row %d %s", index+1, verb)
	}
	m.clampCursor()
}

func (m Model) beginEdit(page []types.RowView, cols []types.Column) (tea.Model, tea.Cmd) {
	row, ok := m.currentRow(page)
	if !ok || m.cx >= len(cols) {
		return m, nil
	}
	if err := m.grid.BeginEdit(row.Index); err != nil {
		m.err = err
		return m, nil
	}
	m.mode = modeEdit
	m.editor.SetValue(types.FormatValue(row.Cells[m.cx].Value))
	m.editor.CursorEnd()
	return m, m.editor.Focus()
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeNormal
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeNormal
		m.search.Blur()
		m.search.SetValue("")
		m.grid.SetFilter("")
		m.cy = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.grid.SetFilter(m.search.Value())
	m.cy = 0
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		row, ok := m.currentRow(m.grid.Page())
		m.applyCell()
		m.mode = modeNormal
		m.editor.Blur()
		if ok {
			m.followRow(row.Index)
		}
		return m, nil
	case tea.KeyTab:
		row, ok := m.currentRow(m.grid.Page())
		m.applyCell()
		if !ok || !m.followRow(row.Index) {
			m.mode = modeNormal
			m.editor.Blur()
			return m, nil
		}
		cols := m.grid.Columns()
		m.cx = (m.cx + 1) % max(len(cols), 1)
		if cur, ok := m.currentRow(m.grid.Page()); ok && m.cx < len(cur.Cells) {
			m.editor.SetValue(types.FormatValue(cur.Cells[m.cx].Value))
			m.editor.CursorEnd()
		}
		return m, nil
	case tea.KeyEsc:
		m.mode = modeNormal
		m.editor.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// followRow moves the cursor to the row at index on the current page. It
// reports false, with a status note, when an edit filtered the row off the
// page; the row stays in edit mode until the filter lets it back.
func (m *Model) followRow(index int) bool {
	for i, r := range m.grid.Page() {
		if r.Index == index {
			m.cy = i
			return true
		}
	}
	if m.grid.IsEditing(index) {
		m.status = fmt.Sprintf("row %d no longer matches the filter; clear it to save or cancel", index+1)
	}
	m.clampCursor()
	return false
}

// applyCell writes the editor value into the cell under the cursor. An
// edit the grid rejects is logged and dropped.
func (m *Model) applyCell() {
	page := m.grid.Page()
	cols := m.grid.Columns()
	row, ok := m.currentRow(page)
	if !ok || m.cx >= len(cols) {
		return
	}
	path := cols[m.cx].Path
	if err := m.grid.UpdateField(row.Index, path, m.editor.Value()); err != nil {
		if errors.Is(err, types.ErrInvalidFieldPath) || errors.Is(err, types.ErrNotEditing) {
			m.log.Warn("edit ignored", "row", row.Index, "path", path, "err", err)
			m.status = fmt.Sprintf("edit ignored: %v", err)
			return
		}
		m.err = err
		return
	}
	m.clampCursor()
}

// clampCursor keeps the cursor on the page after the visible rows change.
func (m *Model) clampCursor() {
	n := len(m.grid.Page())
	if m.cy >= n {
		m.cy = n - 1
	}
	if m.cy < 0 {
		m.cy = 0
	}
}

// View renders the grid.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if m.mode == modeSearch {
		b.WriteString(m.search.View())
	} else if f := m.grid.Filter(); f != "" {
		b.WriteString(dimStyle.Render("Search: " + f))
	} else {
		b.WriteString(dimStyle.Render("Search all columns... (/)"))
	}
	b.WriteString("\n\n")

	page := m.grid.Page()
	cols := m.grid.Columns()
	widths := columnWidths(cols, page)

	for _, line := range renderHeaders(m.grid.HeaderGroups(), widths) {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	for ri, r := range page {
		b.WriteString(m.renderRow(ri, r, widths))
		b.WriteString("\n")
	}
	if len(page) == 0 {
		b.WriteString(dimStyle.Render("  no rows"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderPager(m.grid.PageInfo()))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	case m.loading:
		b.WriteString(statusStyle.Render("loading…"))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderRow(ri int, r types.RowView, widths []int) string {
	marker := "  "
	if r.Editing {
		marker = editingStyle.Render("✎ ")
		if m.grid.Dirty(r.Index) {
			marker = editingStyle.Render("* ")
		}
	}
	cells := make([]string, len(r.Cells))
	for ci, cell := range r.Cells {
		w := widths[ci]
		var s string
		if ri == m.cy && ci == m.cx && m.mode == modeEdit {
			s = m.editor.View()
			if pad := w - lipgloss.Width(s); pad > 0 {
				s += strings.Repeat(" ", pad)
			}
		} else {
			s = RenderCell(cell.Column, cell.Value)
			if lipgloss.Width(s) > w {
				s = fit(types.FormatValue(cell.Value), w)
			} else {
				s = fit(s, w)
			}
		}
		if ri == m.cy && ci == m.cx && m.mode != modeEdit {
			s = cursorStyle.Render(s)
		} else if r.Editing {
			s = editingStyle.Render(s)
		}
		cells[ci] = s
	}
	return marker + strings.Join(cells, colSep)
}
