// Package edit tracks which rows are in edit mode and drives the commit and
// revert transitions of the dataset store.
package edit

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// State is the edit state of one row.
type State int

// Row edit states. Every row starts Clean.
const (
	Clean State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Dataset is the part of the store the tracker drives. The tracker is the
// only caller of Commit and Revert.
type Dataset interface {
	Len() int
	Commit(index int) error
	Revert(index int) error
}

// Tracker holds the set of rows in edit mode. It never holds row values;
// those stay in the Dataset.
type Tracker struct {
	data    Dataset
	editing map[int]bool
}

// NewTracker returns a Tracker over data with every row Clean.
func NewTracker(data Dataset) *Tracker {
	return &Tracker{
		data:    data,
		editing: make(map[int]bool),
	}
}

// BeginEdit moves a row from Clean to Editing. Idempotent.
// Returns ErrIndexOutOfRange for an invalid row.
func (t *Tracker) BeginEdit(index int) error {
	if err := t.check(index); err != nil {
		return err
	}
	t.editing[index] = true
	return nil
}

// Save commits the row and returns it to Clean. A Clean row is left alone.
func (t *Tracker) Save(index int) error {
	return t.finish(index, t.data.Commit)
}

// Cancel reverts the row and returns it to Clean. A Clean row is left alone.
func (t *Tracker) Cancel(index int) error {
	return t.finish(index, t.data.Revert)
}

func (t *Tracker) finish(index int, apply func(int) error) error {
	if !t.editing[index] {
		return nil
	}
	if err := apply(index); err != nil {
		return err
	}
	delete(t.editing, index)
	return nil
}

// State returns the edit state of the row at index. Unknown rows are Clean.
func (t *Tracker) State(index int) State {
	if t.editing[index] {
		return Editing
	}
	return Clean
}

// IsEditing reports whether the row at index is in edit mode.
func (t *Tracker) IsEditing(index int) bool {
	return t.editing[index]
}

// Editing returns the indices of rows in edit mode, ascending.
func (t *Tracker) Editing() []int {
	out := make([]int, 0, len(t.editing))
	for i := range t.editing {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Reset returns every row to Clean without touching the dataset. Called
// when the dataset is replaced.
func (t *Tracker) Reset() {
	clear(t.editing)
}

func (t *Tracker) check(index int) error {
	if index < 0 || index >= t.data.Len() {
		return fmt.Errorf("row %d of %d: %w", index, t.data.Len(), types.ErrIndexOutOfRange)
	}
	return nil
}
