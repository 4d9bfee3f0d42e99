// Package store holds the working copy of a dataset and the snapshot of
// last-committed values used as the revert target.
package store

import (
	"fmt"
	"reflect"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// Store owns the working and snapshot datasets. Both slices always have the
// same length and the same row order; rows are never inserted or deleted
// after Load.
//
// Commit and Revert belong to the edit lifecycle. Only the edit tracker
// calls them; everything else reads rows or writes fields.
type Store struct {
	working  []types.Row
	snapshot []types.Row
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Load replaces both datasets with independent deep copies of initial.
func (s *Store) Load(initial []types.Row) {
	s.working = make([]types.Row, len(initial))
	s.snapshot = make([]types.Row, len(initial))
	for i, r := range initial {
		if r == nil {
			r = types.Row{}
		}
		s.working[i] = r.Clone()
		s.snapshot[i] = r.Clone()
	}
}

// Len returns the number of rows.
func (s *Store) Len() int {
	return len(s.working)
}

// Row returns a deep copy of the working row at index.
func (s *Store) Row(index int) (types.Row, error) {
	if err := s.check(index); err != nil {
		return nil, err
	}
	return s.working[index].Clone(), nil
}

// Snapshot returns a deep copy of the committed row at index.
func (s *Store) Snapshot(index int) (types.Row, error) {
	if err := s.check(index); err != nil {
		return nil, err
	}
	return s.snapshot[index].Clone(), nil
}

// Rows returns deep copies of every working row in order.
func (s *Store) Rows() []types.Row {
	out := make([]types.Row, len(s.working))
	for i, r := range s.working {
		out[i] = r.Clone()
	}
	return out
}

// Field returns the working value at path in the row at index.
func (s *Store) Field(index int, path string) (any, error) {
	if err := s.check(index); err != nil {
		return nil, err
	}
	v, err := s.working[index].Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("row %d field %q: %w", index, path, err)
	}
	return v, nil
}

// SetField writes value at path in the working row at index. The snapshot
// is untouched.
func (s *Store) SetField(index int, path string, value any) error {
	if err := s.check(index); err != nil {
		return err
	}
	if err := s.working[index].Assign(path, value); err != nil {
		return fmt.Errorf("row %d field %q: %w", index, path, err)
	}
	return nil
}

// Commit makes the working row at index the new revert target.
func (s *Store) Commit(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.snapshot[index] = s.working[index].Clone()
	return nil
}

// Revert discards edits to the row at index by restoring the snapshot.
func (s *Store) Revert(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.working[index] = s.snapshot[index].Clone()
	return nil
}

// Dirty reports whether the working row at index differs from its snapshot.
func (s *Store) Dirty(index int) bool {
	if s.check(index) != nil {
		return false
	}
	return !reflect.DeepEqual(s.working[index], s.snapshot[index])
}

func (s *Store) check(index int) error {
	if index < 0 || index >= len(s.working) {
		return fmt.Errorf("row %d of %d: %w", index, len(s.working), types.ErrIndexOutOfRange)
	}
	return nil
}
