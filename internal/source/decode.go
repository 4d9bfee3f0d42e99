package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// decodeRow parses one JSON object into a Row. Integral numbers become int,
// other numbers float64, arrays of strings []string, and objects nested
// rows.
func decodeRow(data []byte) (types.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedRecord, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", types.ErrMalformedRecord, raw)
	}
	return types.Row(normalizeObject(obj)), nil
}

func normalizeObject(obj map[string]any) map[string]any {
	for k, v := range obj {
		obj[k] = normalize(v)
	}
	return obj
}

func normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n)
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		return normalizeObject(val)
	case []any:
		strs := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				out := make([]any, len(val))
				for i, x := range val {
					out[i] = normalize(x)
				}
				return out
			}
			strs = append(strs, s)
		}
		return strs
	default:
		return v
	}
}
