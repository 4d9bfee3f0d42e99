package types

// Renderer tags understood by the presentation layer. The grid never
// interprets them.
const (
	RendererPlain    = ""
	RendererBadges   = "badges"
	RendererDuration = "duration"
)

// Column describes one displayed field.
type Column struct {
	Path     string // Field path into the row ("show.name").
	Header   string // Header label.
	Renderer string // One of the Renderer constants; empty renders plain text.
}

// ColumnGroup groups leaf columns under a shared header. A group with an
// empty Header is ungrouped: its columns get placeholder cells in the group
// header row.
type ColumnGroup struct {
	ID      string
	Header  string
	Columns []Column
}

// HeaderCell is one cell of a header row.
type HeaderCell struct {
	ID            string
	Label         string
	ColSpan       int
	IsPlaceholder bool // Occupies space above an ungrouped column; renders empty.
}

// HeaderGroup is one row of header cells, outermost first.
type HeaderGroup struct {
	ID      string
	Headers []HeaderCell
}

// Leaves flattens groups into their leaf columns in display order.
func Leaves(groups []ColumnGroup) []Column {
	var out []Column
	for _, g := range groups {
		out = append(out, g.Columns...)
	}
	return out
}

// Grouped reports whether any group carries its own header.
func Grouped(groups []ColumnGroup) bool {
	for _, g := range groups {
		if g.Header != "" {
			return true
		}
	}
	return false
}
