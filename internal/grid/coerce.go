package grid

import (
	"strconv"
	"strings"
)

// Coerce converts raw input text toward the kind of current. Numeric text
// becomes a number when current is numeric, comma-separated text becomes a
// string set when current is one. Anything that does not parse is kept as
// the raw string; edited values are not validated.
func Coerce(current any, raw string) any {
	switch current.(type) {
	case int:
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f
		}
	case int64:
		if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return n
		}
	case float64:
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f
		}
	case bool:
		if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			return b
		}
	case []string, []any:
		return splitSet(raw)
	}
	return raw
}

func splitSet(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
