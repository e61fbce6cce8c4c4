package scoring

import (
	"encoding/json"
	"strconv"
)

// FloatOrDefault attempts a numeric parse of v and substitutes def on
// failure. No panics, no error plumbing — malformed fields degrade to the
// documented default instead of failing a whole batch.
func FloatOrDefault(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return def
}

// IntOrDefault is FloatOrDefault for integers. Fractional values truncate.
func IntOrDefault(v any, def int) int {
	if n, ok := IntFromAny(v); ok {
		return n
	}
	return def
}

// IntFromAny reports whether v holds something usable as an integer id.
// Dependency lists arrive as decoded JSON ([]any), so float64 is the common
// case; non-integer entries are dropped by callers.
func IntFromAny(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}
