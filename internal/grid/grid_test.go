package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/datagrid/internal/columns"
	"github.com/mesh-intelligence/datagrid/pkg/types"
)

func people() []types.Row {
	return []types.Row{
		{"name": "Alice", "age": 25, "status": "Active"},
		{"name": "Bob", "age": 30, "status": "Inactive"},
		{"name": "Charlie", "age": 35, "status": "Pending"},
	}
}

func shows() []types.Row {
	return []types.Row{
		{"score": 0.9, "show": map[string]any{
			"name": "Snow", "type": "Scripted", "language": "English",
			"genres": []string{"Drama", "Thriller"}, "runtime": 60, "status": "Ended",
		}},
		{"score": 0.8, "show": map[string]any{
			"name": "Snowpiercer", "type": "Scripted", "language": "English",
			"genres": []string{"Drama", "Science-Fiction"}, "runtime": 60, "status": "Ended",
		}},
	}
}

func newPeopleGrid(t *testing.T, pageSize int) *Grid {
	t.Helper()
	g := New(pageSize, columns.People())
	g.Load(people())
	return g
}

func names(page []types.RowView) []string {
	out := make([]string, len(page))
	for i, r := range page {
		out[i] = types.FormatValue(r.Cells[0].Value)
	}
	return out
}

func TestPagingScenario(t *testing.T) {
	g := newPeopleGrid(t, 2)

	info := g.PageInfo()
	assert.Equal(t, 2, info.Count)
	assert.Equal(t, 0, info.Index)
	assert.True(t, info.CanNextPage)
	assert.False(t, info.CanPreviousPage)
	assert.Equal(t, []string{"Alice", "Bob"}, names(g.Page()))

	require.NoError(t, g.Navigate(types.NavNext, 0))
	assert.Equal(t, []string{"Charlie"}, names(g.Page()))
	assert.Equal(t, 2, g.Page()[0].Index)
}

func TestCancelRestoresPreEditValue(t *testing.T) {
	g := newPeopleGrid(t, 10)

	require.NoError(t, g.BeginEdit(1))
	require.NoError(t, g.UpdateField(1, "status", "Active"))
	assert.True(t, g.Dirty(1))
	require.NoError(t, g.Cancel(1))

	row, err := g.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "Inactive", row["status"])
	assert.False(t, g.IsEditing(1))
	assert.False(t, g.Dirty(1))
}

func TestSaveMakesEditTheBaseline(t *testing.T) {
	g := newPeopleGrid(t, 10)

	require.NoError(t, g.BeginEdit(0))
	require.NoError(t, g.UpdateField(0, "age", "26"))
	require.NoError(t, g.Save(0))
	require.NoError(t, g.Cancel(0))

	row, err := g.Row(0)
	require.NoError(t, err)
	assert.Equal(t, 26, row["age"])

	require.NoError(t, g.BeginEdit(0))
	require.NoError(t, g.UpdateField(0, "age", "27"))
	require.NoError(t, g.Cancel(0))
	row, err = g.Row(0)
	require.NoError(t, err)
	assert.Equal(t, 26, row["age"])
}

func TestUpdateFieldErrors(t *testing.T) {
	g := newPeopleGrid(t, 10)
	require.NoError(t, g.BeginEdit(0))

	tests := []struct {
		name    string
		index   int
		path    string
		wantErr error
	}{
		{name: "row not in edit mode", index: 1, path: "status", wantErr: types.ErrNotEditing},
		{name: "index out of range", index: 7, path: "status", wantErr: types.ErrIndexOutOfRange},
		{name: "unknown field", index: 0, path: "email", wantErr: types.ErrInvalidFieldPath},
		{name: "empty path", index: 0, path: "", wantErr: types.ErrInvalidFieldPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, g.UpdateField(tt.index, tt.path, "x"), tt.wantErr)
		})
	}

	row, err := g.Row(0)
	require.NoError(t, err)
	assert.Equal(t, people()[0], row, "failed edits leave the row unchanged")
}

func TestUpdateFieldRejectsNestedRow(t *testing.T) {
	g := New(10, columns.Shows())
	g.Load(shows())
	require.NoError(t, g.BeginEdit(0))

	assert.ErrorIs(t, g.UpdateField(0, "show", "oops"), types.ErrInvalidFieldPath)

	row, err := g.Row(0)
	require.NoError(t, err)
	assert.Equal(t, shows()[0], row)
	assert.Equal(t, "Snow", g.Page()[0].Cells[0].Value)
	assert.False(t, g.Dirty(0))
}

func TestUpdateFieldKeepsUnparseableText(t *testing.T) {
	g := newPeopleGrid(t, 10)
	require.NoError(t, g.BeginEdit(2))
	require.NoError(t, g.UpdateField(2, "age", "thirty-five"))

	row, err := g.Row(2)
	require.NoError(t, err)
	assert.Equal(t, "thirty-five", row["age"])
}

func TestBeginEditOutOfRange(t *testing.T) {
	g := newPeopleGrid(t, 10)
	assert.ErrorIs(t, g.BeginEdit(3), types.ErrIndexOutOfRange)
	assert.NoError(t, g.Save(3), "save on a clean row is a no-op")
	assert.NoError(t, g.Cancel(3), "cancel on a clean row is a no-op")
}

func TestPageEditingFlag(t *testing.T) {
	g := newPeopleGrid(t, 10)
	require.NoError(t, g.BeginEdit(1))

	page := g.Page()
	require.Len(t, page, 3)
	assert.False(t, page[0].Editing)
	assert.True(t, page[1].Editing)
	assert.Equal(t, []int{1}, g.Editing())
}

func TestFilterResetsPage(t *testing.T) {
	g := newPeopleGrid(t, 1)
	require.NoError(t, g.Navigate(types.NavLast, 0))
	require.Equal(t, 2, g.PageInfo().Index)

	g.SetFilter(" LI ")
	assert.Equal(t, "li", g.Filter())
	info := g.PageInfo()
	assert.Equal(t, 0, info.Index)
	assert.Equal(t, 2, info.VisibleRows)
	assert.Equal(t, 3, info.TotalRows)
	assert.Equal(t, []string{"Alice"}, names(g.Page()))
}

func TestFilterSearchesDisplayedColumnsOnly(t *testing.T) {
	g := New(10, columns.Shows())
	g.Load(shows())

	g.SetFilter("0.9")
	assert.Empty(t, g.Page(), "score is not a displayed column")

	g.SetFilter("science")
	require.Len(t, g.Page(), 1)
	assert.Equal(t, 1, g.Page()[0].Index)
}

func TestNavigate(t *testing.T) {
	g := newPeopleGrid(t, 1)

	tests := []struct {
		action string
		target int
		want   int
	}{
		{action: types.NavNext, want: 1},
		{action: types.NavNext, want: 2},
		{action: types.NavNext, want: 2},
		{action: types.NavPrevious, want: 1},
		{action: types.NavFirst, want: 0},
		{action: types.NavPrevious, want: 0},
		{action: types.NavLast, want: 2},
		{action: types.NavJump, target: 1, want: 1},
		{action: types.NavJump, target: 40, want: 2},
		{action: types.NavJump, target: -2, want: 0},
	}

	for _, tt := range tests {
		require.NoError(t, g.Navigate(tt.action, tt.target))
		assert.Equal(t, tt.want, g.PageInfo().Index, "after %s %d", tt.action, tt.target)
	}

	assert.ErrorIs(t, g.Navigate("sideways", 0), types.ErrUnknownNavigation)
}

func TestLoadResetsState(t *testing.T) {
	g := newPeopleGrid(t, 1)
	require.NoError(t, g.BeginEdit(0))
	g.SetFilter("bob")
	g.SetPageSize(2)

	g.Load(people()[:2])

	assert.Empty(t, g.Editing())
	assert.Equal(t, "", g.Filter())
	info := g.PageInfo()
	assert.Equal(t, 0, info.Index)
	assert.Equal(t, 2, info.TotalRows)
	assert.Equal(t, 2, info.Size)
}

func TestLoadTickets(t *testing.T) {
	g := New(10, columns.People())

	first := g.BeginLoad()
	second := g.BeginLoad()
	assert.Greater(t, second.Seq, first.Seq)
	assert.NotEqual(t, first.RequestID, second.RequestID)

	require.NoError(t, g.CompleteLoad(second, people()))
	assert.Equal(t, 3, g.PageInfo().TotalRows)

	err := g.CompleteLoad(first, people()[:1])
	assert.ErrorIs(t, err, types.ErrStaleLoad)
	assert.Equal(t, 3, g.PageInfo().TotalRows, "stale load must not overwrite newer data")

	assert.ErrorIs(t, g.CompleteLoad(types.LoadTicket{}, nil), types.ErrStaleLoad)
}

func TestHeaderGroupsGrouped(t *testing.T) {
	g := New(10, columns.Shows())
	g.Load(shows())

	hg := g.HeaderGroups()
	require.Len(t, hg, 2)

	top := hg[0].Headers
	require.Len(t, top, 2)
	assert.Equal(t, types.HeaderCell{ID: "tv_show", Label: "TV Show", ColSpan: 2}, top[0])
	assert.Equal(t, types.HeaderCell{ID: "details", Label: "Details", ColSpan: 4}, top[1])

	leaf := hg[1].Headers
	require.Len(t, leaf, 6)
	assert.Equal(t, "Name", leaf[0].Label)
	assert.Equal(t, "show.runtime", leaf[4].ID)
}

func TestHeaderGroupsPlaceholders(t *testing.T) {
	groups := append(columns.People(), types.ColumnGroup{
		ID:      "meta",
		Header:  "Meta",
		Columns: []types.Column{{Path: "name", Header: "Again"}},
	})
	g := New(10, groups)

	hg := g.HeaderGroups()
	require.Len(t, hg, 2)
	top := hg[0].Headers
	require.Len(t, top, 4)
	for _, c := range top[:3] {
		assert.True(t, c.IsPlaceholder)
		assert.Equal(t, 1, c.ColSpan)
	}
	assert.Equal(t, "Meta", top[3].Label)
}

func TestHeaderGroupsFlat(t *testing.T) {
	g := newPeopleGrid(t, 10)
	hg := g.HeaderGroups()
	require.Len(t, hg, 1)
	require.Len(t, hg[0].Headers, 3)
	assert.Equal(t, "Status", hg[0].Headers[2].Label)
}

func TestDerivedColumns(t *testing.T) {
	g := New(10, nil)
	assert.Empty(t, g.Columns())

	g.Load(people())
	cols := g.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, types.Column{Path: "age", Header: "age"}, cols[0])

	page := g.Page()
	require.Len(t, page, 3)
	assert.Equal(t, 30, page[1].Cells[0].Value)
}

func TestPageMissingFieldIsNil(t *testing.T) {
	g := New(10, columns.People())
	g.Load([]types.Row{{"name": "Dana"}})

	page := g.Page()
	require.Len(t, page, 1)
	assert.Nil(t, page[0].Cells[1].Value)
}
