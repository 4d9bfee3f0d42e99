package types

import (
	"slices"
	"strconv"
	"strings"
)

// PathSeparator separates the segments of a field path ("show.name").
const PathSeparator = "."

// Row is one record in a dataset. Values are strings, numbers, string sets
// ([]string), or nested rows. A row is addressed by its position in the
// working dataset, never by a value it holds.
type Row map[string]any

// IndexedRow pairs a row with its position in the working dataset.
type IndexedRow struct {
	Index int // Position in the working dataset.
	Row   Row // Deep copy of the row at Index.
}

// SplitPath breaks a field path into its segments.
// Returns ErrInvalidFieldPath if the path or any segment is empty.
func SplitPath(path string) ([]string, error) {
	if path == "" {
		return nil, ErrInvalidFieldPath
	}
	segments := strings.Split(path, PathSeparator)
	for _, s := range segments {
		if s == "" {
			return nil, ErrInvalidFieldPath
		}
	}
	return segments, nil
}

// Clone returns a deep copy of the row. Nested rows and string sets are
// copied so the result shares no mutable state with r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Row:
		return val.Clone()
	case map[string]any:
		return map[string]any(Row(val).Clone())
	case []string:
		cp := make([]string, len(val))
		copy(cp, val)
		return cp
	case []any:
		cp := make([]any, len(val))
		for i, item := range val {
			cp[i] = cloneValue(item)
		}
		return cp
	default:
		return v
	}
}

// Lookup returns the value stored at path.
// Returns ErrInvalidFieldPath if any segment is missing or an intermediate
// segment is not a nested row.
func (r Row) Lookup(path string) (any, error) {
	segments, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	var cur any = r
	for _, seg := range segments {
		m, ok := asMap(cur)
		if !ok {
			return nil, ErrInvalidFieldPath
		}
		v, ok := m[seg]
		if !ok {
			return nil, ErrInvalidFieldPath
		}
		cur = v
	}
	return cur, nil
}

// Assign replaces the leaf value stored at path. The path must already
// exist and must not name a nested row; Assign never creates or replaces
// structure, so an edit cannot change the row schema.
// Returns ErrInvalidFieldPath otherwise.
func (r Row) Assign(path string, value any) error {
	segments, err := SplitPath(path)
	if err != nil {
		return err
	}
	m := map[string]any(r)
	for _, seg := range segments[:len(segments)-1] {
		next, ok := asMap(m[seg])
		if !ok {
			return ErrInvalidFieldPath
		}
		m = next
	}
	last := segments[len(segments)-1]
	cur, ok := m[last]
	if !ok {
		return ErrInvalidFieldPath
	}
	if _, nested := asMap(cur); nested {
		return ErrInvalidFieldPath
	}
	m[last] = value
	return nil
}

// Paths returns the path of every leaf field in the row, sorted
// lexicographically.
func (r Row) Paths() []string {
	var out []string
	collectPaths(r, "", &out)
	slices.Sort(out)
	return out
}

func collectPaths(m map[string]any, prefix string, out *[]string) {
	for k, v := range m {
		p := k
		if prefix != "" {
			p = prefix + PathSeparator + k
		}
		if nested, ok := asMap(v); ok {
			collectPaths(nested, p, out)
			continue
		}
		*out = append(*out, p)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Row:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

// FormatValue renders a field value as plain text. String sets are joined
// with commas, nested rows are rendered field by field in path order, and
// nil renders as the empty string.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ",")
	case Row, map[string]any:
		m, _ := asMap(val)
		paths := Row(m).Paths()
		parts := make([]string, 0, len(paths))
		for _, p := range paths {
			leaf, _ := Row(m).Lookup(p)
			parts = append(parts, FormatValue(leaf))
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
