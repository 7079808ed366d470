package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are accepted for date-valued filter clauses, most specific
// first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// coerceValue converts a wire string into the field kind's native type:
// string for string-like kinds, float64 for numbers, bool, or time.Time.
func coerceValue(kind Kind, raw string) (any, error) {
	switch kind {
	case KindString, KindEnum, KindID:
		return raw, nil
	case KindNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return n, nil
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return b, nil
	case KindDate:
		s := strings.TrimSpace(raw)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("%q is not a date", raw)
	default:
		return nil, fmt.Errorf("unsupported field kind")
	}
}

// fieldString renders an accessor result as a string for string-kind
// operations. Accessors for string-like fields return string, fmt.Stringer,
// or nil.
func fieldString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// fieldNumber widens any numeric accessor result to float64.
func fieldNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// equalValue tests entity value against a coerced filter value for one kind.
// Identifier comparison folds case so UUID text representations match
// regardless of client casing.
func equalValue(kind Kind, entity any, coerced any) bool {
	switch kind {
	case KindString, KindEnum:
		return fieldString(entity) == coerced.(string)
	case KindID:
		return strings.EqualFold(fieldString(entity), coerced.(string))
	case KindNumber:
		n, ok := fieldNumber(entity)
		return ok && n == coerced.(float64)
	case KindBool:
		b, ok := entity.(bool)
		return ok && b == coerced.(bool)
	case KindDate:
		t, ok := entity.(time.Time)
		return ok && t.Equal(coerced.(time.Time))
	default:
		return false
	}
}

// orderValue compares entity value against a coerced filter value for ordered
// operators. Only numbers and dates are orderable by filters.
func orderValue(kind Kind, entity any, coerced any) (int, bool) {
	switch kind {
	case KindNumber:
		n, ok := fieldNumber(entity)
		if !ok {
			return 0, false
		}
		target := coerced.(float64)
		switch {
		case n < target:
			return -1, true
		case n > target:
			return 1, true
		default:
			return 0, true
		}
	case KindDate:
		t, ok := entity.(time.Time)
		if !ok {
			return 0, false
		}
		return t.Compare(coerced.(time.Time)), true
	default:
		return 0, false
	}
}

// compareEntityValues orders two accessor results of the same kind for
// sorting. Strings fold case; booleans order false before true.
func compareEntityValues(kind Kind, a, b any) int {
	switch kind {
	case KindString, KindEnum, KindID:
		return strings.Compare(strings.ToLower(fieldString(a)), strings.ToLower(fieldString(b)))
	case KindNumber:
		na, _ := fieldNumber(a)
		nb, _ := fieldNumber(b)
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	case KindBool:
		ba, _ := a.(bool)
		bb, _ := b.(bool)
		switch {
		case !ba && bb:
			return -1
		case ba && !bb:
			return 1
		default:
			return 0
		}
	case KindDate:
		ta, _ := a.(time.Time)
		tb, _ := b.(time.Time)
		return ta.Compare(tb)
	default:
		return 0
	}
}
