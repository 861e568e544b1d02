package switcher

import (
	"strconv"
	"time"
)

// propertyStrings flattens a property value into matchable strings. Array
// values contribute every element.
func propertyStrings(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case bool:
		return []string{strconv.FormatBool(v)}
	case int:
		return []string{strconv.Itoa(v)}
	case int64:
		return []string{strconv.FormatInt(v, 10)}
	case float64:
		return []string{formatFloat(v)}
	case time.Time:
		return []string{v.Format(time.RFC3339)}
	case []string:
		return v
	case []float64:
		out := make([]string, 0, len(v))
		for _, f := range v {
			out = append(out, formatFloat(f))
		}
		return out
	case []any:
		var out []string
		for _, e := range v {
			out = append(out, propertyStrings(e)...)
		}
		return out
	default:
		return nil
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// propertySortValue reduces a property value to a comparable scalar. Array
// values compare by their first element. The second return is false when the
// property is absent or has no comparable representation; such items sort
// after items that have the property, whatever direction was requested.
func propertySortValue(item *Item, key string) (any, bool) {
	raw, ok := item.Properties[key]
	if !ok || raw == nil {
		return nil, false
	}
	return scalarValue(raw)
}

func scalarValue(raw any) (any, bool) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, false
		}
		return v, true
	case bool:
		if v {
			return 1.0, true
		}
		return 0.0, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case time.Time:
		return v.Format(time.RFC3339), true
	case []string:
		if len(v) == 0 {
			return nil, false
		}
		return scalarValue(v[0])
	case []float64:
		if len(v) == 0 {
			return nil, false
		}
		return v[0], true
	case []any:
		if len(v) == 0 {
			return nil, false
		}
		return scalarValue(v[0])
	default:
		return nil, false
	}
}

// compareScalars orders two comparable property scalars: numerically when
// both are numbers, lexicographically otherwise. Lexicographic comparison of
// ISO date strings is chronological by construction.
func compareScalars(a, b any) int {
	an, aNum := a.(float64)
	bn, bNum := b.(float64)
	if aNum && bNum {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	as := scalarString(a)
	bs := scalarString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return formatFloat(s)
	default:
		return ""
	}
}
