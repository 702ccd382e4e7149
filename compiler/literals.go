package compiler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// renderLiteral renders a decoded YAML/JSON value as Go source text for
// splicing into validate.Literal/Enum/WithDefault arguments.
func renderLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case []any:
		parts := make([]string, len(val))
		for i, entry := range val {
			parts[i] = renderLiteral(entry)
		}
		return "[]any{" + strings.Join(parts, ", ") + "}"
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = strconv.Quote(k) + ": " + renderLiteral(val[k])
		}
		return "map[string]any{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// renderPattern renders a regular expression as a Go string literal,
// preferring raw strings so patterns stay readable.
func renderPattern(expr string) string {
	if !strings.Contains(expr, "`") {
		return "`" + expr + "`"
	}
	return strconv.Quote(expr)
}

// renderFloat renders a numeric bound argument.
func renderFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
