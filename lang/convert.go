package lang

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// parseFloat parses a numeric literal's raw text as a float64. It is a thin
// wrapper over strconv.ParseFloat kept separate so lexical and semantic
// numeric parsing share one implementation.
func parseFloat(text string) (float64, bool) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// toNumber implements the TO_NUMBER coercion rule from §4.3: null, empty
// string, and non-numeric strings fail with a type error; booleans yield 0
// or 1; numbers pass through.
func toNumber(v any) (float64, *Error) {
	switch x := v.(type) {
	case nil:
		return 0, ErrTypeMismatch
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}

		return 0, nil
	case string:
		if x == "" {
			return 0, ErrTypeMismatch
		}

		f, ok := parseFloat(strings.TrimSpace(x))
		if !ok {
			return 0, ErrTypeMismatch
		}

		return f, nil
	default:
		return 0, ErrTypeMismatch
	}
}

// toBoolean implements the TO_BOOLEAN truthiness rules from §4.3.
func toBoolean(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case string:
		if x == "" {
			return false
		}

		switch strings.ToLower(x) {
		case "false", "no", "0":
			return false
		case "true", "yes", "1":
			return true
		default:
			return true
		}
	case []any:
		return len(x) > 0
	case OrderedSequence[Event]:
		return len(x) > 0
	case OrderedSequence[Visit]:
		return len(x) > 0
	default:
		return true
	}
}

// toStringValue implements TO_STRING: null maps to the sentinel null value
// (represented as a nil any), never the four-character word "null".
func toStringValue(v any) any {
	if v == nil {
		return nil
	}

	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return x
	}
}

// formatNumber renders a float64 the way the DSL prints numbers: integral
// values without a trailing ".0".
func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

// numericEqual implements the numeric-compare coercion from §4.3: both
// sides are coerced to float64; NaN never equals anything, including
// itself.
func numericEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}

	return a == b
}

// valuesEqual implements the cross-type EQ rule from §4.3.
func valuesEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}

	if a == nil || b == nil {
		return false
	}

	an, aIsNum := asNumber(a)
	bn, bIsNum := asNumber(b)

	if aIsNum && bIsNum {
		return numericEqual(an, bn)
	}

	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)

	if aIsStr && bIsStr {
		return as == bs
	}

	// A number and a non-numeric string are never equal: no implicit
	// parsing.
	if (aIsNum && bIsStr) || (aIsStr && bIsNum) {
		return false
	}

	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			return ab == bb
		}

		return false
	}

	return a == b
}

// asNumber reports whether v is already a numeric Go value (not a string
// that merely looks numeric) and returns it as a float64.
func asNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

// parseTimestamp accepts either an ISO-8601 timestamp or a bare epoch-ms
// numeric string, permissively, per the open question resolved in §9.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}

	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}
