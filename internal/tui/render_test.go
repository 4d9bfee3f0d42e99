package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{minutes: 0, want: "0 hour(s) and 0 minute(s)"},
		{minutes: 45, want: "0 hour(s) and 45 minute(s)"},
		{minutes: 60, want: "1 hour(s) and 0 minute(s)"},
		{minutes: 135, want: "2 hour(s) and 15 minute(s)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.minutes))
	}
}

func TestRenderCell(t *testing.T) {
	duration := types.Column{Renderer: types.RendererDuration}
	badges := types.Column{Renderer: types.RendererBadges}
	plain := types.Column{}

	assert.Equal(t, "1 hour(s) and 30 minute(s)", RenderCell(duration, 90))
	assert.Equal(t, "1 hour(s) and 30 minute(s)", RenderCell(duration, 90.0))
	assert.Equal(t, "n/a", RenderCell(duration, "n/a"), "edited text falls back to plain")
	assert.Equal(t, "", RenderCell(duration, nil))

	out := RenderCell(badges, []string{"Drama", "Horror"})
	assert.Contains(t, out, "Drama")
	assert.Contains(t, out, "Horror")
	assert.Equal(t, "Drama", strings.TrimSpace(RenderCell(badges, "Drama")))

	assert.Equal(t, "25", RenderCell(plain, 25))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab  ", fit("ab", 4))
	assert.Equal(t, "abc…", fit("abcdefgh", 4))
	assert.Equal(t, 4, lipgloss.Width(fit("abcdefgh", 4)))
}

func TestRenderHeadersSpansColumns(t *testing.T) {
	groups := []types.HeaderGroup{
		{ID: "0", Headers: []types.HeaderCell{
			{ID: "tv_show", Label: "TV Show", ColSpan: 2},
			{ID: "placeholder_x", ColSpan: 1, IsPlaceholder: true},
		}},
		{ID: "1", Headers: []types.HeaderCell{
			{ID: "a", Label: "Name", ColSpan: 1},
			{ID: "b", Label: "Type", ColSpan: 1},
			{ID: "x", Label: "X", ColSpan: 1},
		}},
	}
	widths := []int{6, 8, 4}

	lines := renderHeaders(groups, widths)
	require.Len(t, lines, 2)
	assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[1]),
		"group row must line up with the leaf row")
	assert.Contains(t, lines[0], "TV Show")
}

func TestColumnWidths(t *testing.T) {
	cols := []types.Column{{Path: "name", Header: "Name"}, {Path: "note", Header: "N"}}
	page := []types.RowView{{Cells: []types.Cell{
		{Column: cols[0], Value: "Bartholomew"},
		{Column: cols[1], Value: strings.Repeat("x", 100)},
	}}}

	widths := columnWidths(cols, page)
	assert.Equal(t, []int{11, maxColWidth}, widths)
}

func TestRenderPager(t *testing.T) {
	out := renderPager(types.PageInfo{Index: 1, Count: 3, VisibleRows: 25, TotalRows: 40})
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, "(25 of 40 rows)")
	assert.Contains(t, out, "<<")
	assert.Contains(t, out, ">>")
}
