package lang

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// FormatValue renders a constant value in tacit syntax.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "()"

	case bool:
		return strconv.FormatBool(val)

	case int:
		return strconv.Itoa(val)

	case int64:
		return strconv.FormatInt(val, 10)

	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)

	case string:
		return strconv.Quote(val)

	case []any:
		return formatSlice(val)

	case map[string]any:
		return formatMap(val)

	default:
		return fmt.Sprintf("%v", val)
	}
}

// ValueType names the Go type of a constant value.
func ValueType(v any) string {
	if v == nil {
		return "nil"
	}

	return reflect.TypeOf(v).String()
}

func formatSlice(vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = FormatValue(v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func formatMap(m map[string]any) string {
	keys := slices.Sorted(maps.Keys(m))

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Quote(k) + ": " + FormatValue(m[k])
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
