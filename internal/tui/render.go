package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// styles
var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	groupHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	cursorStyle      = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	editingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badgeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("2"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const (
	minColWidth = 4
	maxColWidth = 32
	colSep      = " │ "
)

// RenderCell formats a value according to the column's renderer tag.
func RenderCell(c types.Column, v any) string {
	switch c.Renderer {
	case types.RendererBadges:
		var parts []string
		switch set := v.(type) {
		case []string:
			parts = set
		case []any:
			for _, item := range set {
				parts = append(parts, types.FormatValue(item))
			}
		default:
			return types.FormatValue(v)
		}
		badges := make([]string, len(parts))
		for i, p := range parts {
			badges[i] = badgeStyle.Render(p)
		}
		return strings.Join(badges, " ")
	case types.RendererDuration:
		minutes, ok := asMinutes(v)
		if !ok {
			return types.FormatValue(v)
		}
		return formatDuration(minutes)
	default:
		return types.FormatValue(v)
	}
}

func asMinutes(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// formatDuration renders minutes as "H hour(s) and M minute(s)".
func formatDuration(minutes int) string {
	return fmt.Sprintf("%d hour(s) and %d minute(s)", minutes/60, minutes%60)
}

// columnWidths sizes each leaf column to fit its header and the cells of
// the current page.
func columnWidths(cols []types.Column, page []types.RowView) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = max(minColWidth, lipgloss.Width(c.Header))
	}
	for _, r := range page {
		for i, cell := range r.Cells {
			if i >= len(widths) {
				break
			}
			widths[i] = max(widths[i], lipgloss.Width(RenderCell(cell.Column, cell.Value)))
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColWidth)
	}
	return widths
}

// fit pads or truncates s to exactly w cells.
func fit(s string, w int) string {
	if lipgloss.Width(s) > w {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes)) > w-1 {
			runes = runes[:len(runes)-1]
		}
		return string(runes) + "…"
	}
	return s + strings.Repeat(" ", w-lipgloss.Width(s))
}

// renderHeaders draws one line per header group. A cell spanning several
// columns takes their combined width plus the separators between them.
func renderHeaders(groups []types.HeaderGroup, widths []int) []string {
	lines := make([]string, 0, len(groups))
	for gi, g := range groups {
		style := headerStyle
		if gi < len(groups)-1 {
			style = groupHeaderStyle
		}
		var cells []string
		col := 0
		for _, h := range g.Headers {
			span := max(h.ColSpan, 1)
			w := 0
			for i := col; i < col+span && i < len(widths); i++ {
				w += widths[i]
			}
			w += (span - 1) * lipgloss.Width(colSep)
			col += span
			label := h.Label
			if h.IsPlaceholder {
				label = ""
				cells = append(cells, fit(label, w))
				continue
			}
			cells = append(cells, style.Render(fit(label, w)))
		}
		lines = append(lines, strings.Join(cells, colSep))
	}
	return lines
}

// renderPager draws the first/previous/next/last controls and the page
// position.
func renderPager(info types.PageInfo) string {
	button := func(label string, enabled bool) string {
		if enabled {
			return label
		}
		return dimStyle.Render(label)
	}
	return fmt.Sprintf("%s %s %s %s  Page %d of %d  (%d of %d rows)",
		button("<<", info.CanPreviousPage),
		button("<", info.CanPreviousPage),
		button(">", info.CanNextPage),
		button(">>", info.CanNextPage),
		info.Index+1, info.Count,
		info.VisibleRows, info.TotalRows,
	)
}
