package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calquist/oasvalid/parser"
)

// formatExprs maps schema format tags to their dedicated validator
// constructors. A recognized format fully replaces the base string
// validator, including any length or pattern constraints on the same node.
var formatExprs = map[string]string{
	"email":     "validate.Email()",
	"uuid":      "validate.UUID()",
	"uri":       "validate.URI()",
	"date":      "validate.Date()",
	"date-time": "validate.DateTime()",
	"time":      "validate.Time()",
	"duration":  "validate.Duration()",
	"binary":    "validate.Binary()",
	"byte":      "validate.Base64()",
}

// compileString implements the string precedence chain: extensible enum
// beats regular enum, regular enum beats format, format beats length and
// pattern constraints.
func (c *compiler) compileString(node *parser.Schema) string {
	if suggested := node.ExtensibleEnum(); suggested != nil {
		parts := make([]string, len(suggested))
		for i, v := range suggested {
			parts[i] = strconv.Quote(v)
		}
		return "validate.ExtensibleEnum(" + strings.Join(parts, ", ") + ")"
	}

	if len(node.Enum) > 0 {
		return enumExpr(node.Enum)
	}

	code := stringBaseExpr(node)
	if node.Default != nil {
		code = withDefault(code, node.Default)
	}
	return code
}

func stringBaseExpr(node *parser.Schema) string {
	if expr, ok := formatExprs[node.Format]; ok {
		return expr
	}
	var b strings.Builder
	b.WriteString("validate.String()")
	if node.MinLength != nil {
		fmt.Fprintf(&b, ".Min(%d)", *node.MinLength)
	}
	if node.MaxLength != nil {
		fmt.Fprintf(&b, ".Max(%d)", *node.MaxLength)
	}
	if node.Pattern != "" {
		b.WriteString(".Pattern(" + renderPattern(node.Pattern) + ")")
	}
	return b.String()
}

// compileNumber builds a numeric validator with bounds. Numeric enums never
// reach here; the dispatcher handles them first.
func (c *compiler) compileNumber(node *parser.Schema) string {
	var b strings.Builder
	if primaryType(node) == "integer" {
		b.WriteString("validate.Integer()")
	} else {
		b.WriteString("validate.Number()")
	}
	if node.Minimum != nil {
		b.WriteString(".Min(" + renderFloat(*node.Minimum) + ")")
	}
	if node.Maximum != nil {
		b.WriteString(".Max(" + renderFloat(*node.Maximum) + ")")
	}
	if f, ok := asFloat(node.ExclusiveMinimum); ok {
		b.WriteString(".ExclusiveMin(" + renderFloat(f) + ")")
	}
	if f, ok := asFloat(node.ExclusiveMaximum); ok {
		b.WriteString(".ExclusiveMax(" + renderFloat(f) + ")")
	}
	code := b.String()
	if node.Default != nil {
		code = withDefault(code, node.Default)
	}
	return code
}

func (c *compiler) compileBoolean(node *parser.Schema) string {
	code := "validate.Boolean()"
	if node.Default != nil {
		code = withDefault(code, node.Default)
	}
	return code
}

// asFloat converts the 3.1 numeric exclusive-bound spellings to float64.
// Boolean bounds (the pre-normalization 3.0 form) report false.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
