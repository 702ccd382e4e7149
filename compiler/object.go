package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calquist/oasvalid/parser"
)

// compileObject builds a keyed-object validator. Properties are emitted in
// declaration order so output is reproducible. The strict/loose switch comes
// from the compilation options and applies to the whole subtree; a
// schema-valued additionalProperties constraint is not representable and is
// dropped.
func (c *compiler) compileObject(node *parser.Schema) string {
	var b strings.Builder
	b.WriteString("validate.Object()")
	for _, name := range node.Properties.Keys() {
		fmt.Fprintf(&b, ".Field(%q, %s)", name, c.compile(node.Properties.Get(name)))
	}
	if len(node.Required) > 0 {
		quoted := make([]string, len(node.Required))
		for i, name := range node.Required {
			quoted[i] = strconv.Quote(name)
		}
		b.WriteString(".Require(" + strings.Join(quoted, ", ") + ")")
	}
	if c.strict {
		b.WriteString(".Strict()")
	} else {
		b.WriteString(".Loose()")
	}
	return b.String()
}

// compileArray builds an array validator. An absent items schema means
// unconstrained elements. uniqueItems is not representable and is dropped.
func (c *compiler) compileArray(node *parser.Schema) string {
	item := "validate.Any()"
	if node.Items != nil {
		item = c.compile(node.Items)
	}
	var b strings.Builder
	b.WriteString("validate.Array(" + item + ")")
	if node.MinItems != nil {
		fmt.Fprintf(&b, ".MinItems(%d)", *node.MinItems)
	}
	if node.MaxItems != nil {
		fmt.Fprintf(&b, ".MaxItems(%d)", *node.MaxItems)
	}
	code := b.String()
	if node.Default != nil {
		code = withDefault(code, node.Default)
	}
	return code
}
