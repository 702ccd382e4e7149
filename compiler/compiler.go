package compiler

import (
	"strings"

	"github.com/calquist/oasvalid/parser"
)

// Options carries the accumulated state threaded through a compilation.
type Options struct {
	// Imports is the accumulator for symbolic component dependencies. When
	// nil a fresh set is created. Concurrent top-level compilations must
	// each own their own set; merging afterward is a plain union.
	Imports ImportSet
	// IsTopLevel marks the compilation of a named component schema
	// declaration, as opposed to an inline sub-schema. Callers emitting
	// component declarations set it; it does not change the expression
	// shape, only documents the call site's contract (self-imports are
	// filtered by the caller, which knows the declaration name).
	IsTopLevel bool
	// StrictValidation selects reject-unknown-keys object mode. The flag
	// applies to the whole subtree; nested schemas cannot override it.
	StrictValidation bool
}

// Result is the output of one compilation: a single validator-construction
// expression and the set of component-schema names it references.
type Result struct {
	Code    string
	Imports ImportSet
}

// Compile converts a schema node into a validator-construction expression in
// the validate DSL. It always terminates: references compile to symbolic
// names without recursing into the referent, so recursion depth is bounded
// by inline nesting, not by the reference graph.
func Compile(node *parser.Schema, opts Options) Result {
	imports := opts.Imports
	if imports == nil {
		imports = NewImportSet()
	}
	c := &compiler{imports: imports, strict: opts.StrictValidation}
	return Result{Code: c.compile(node), Imports: imports}
}

type compiler struct {
	imports ImportSet
	strict  bool
}

// compile is the dispatcher. Each step returns immediately when it matches;
// the order encodes the precedence rules (type arrays before the nullable
// flag, enum before type compilation on non-strings, discriminators before
// plain unions).
func (c *compiler) compile(node *parser.Schema) string {
	if node == nil {
		return "validate.Any()"
	}

	// References are opaque: emit a lazy symbolic reference, record the
	// dependency, done.
	if node.IsReference() {
		name := ComponentName(node.Ref)
		c.imports.Add(name)
		return LazyRef(name)
	}

	// A 3.1 const is a single-element enum in different clothing.
	if node.Const != nil && len(node.Enum) == 0 {
		clone := *node
		clone.Enum = []any{node.Const}
		clone.Const = nil
		return c.compile(&clone)
	}

	// 3.1 type arrays, including the ["T","null"] nullable spelling.
	if _, ok := node.Type.([]any); ok {
		return c.compileTypeArray(node)
	}

	// The scalar "null" spelling compiles like its one-element array form.
	if t, ok := node.Type.(string); ok && t == "null" {
		return "validate.Literal(nil)"
	}

	// Enum takes precedence over type compilation except for strings,
	// where the extensible-enum check must run first.
	if len(node.Enum) > 0 && primaryType(node) != "string" {
		return c.compileEnumNode(node)
	}

	// 3.0 nullable flag: strip, compile the rest, wrap.
	if node.Nullable {
		clone := *node
		clone.Nullable = false
		return "validate.Nullable(" + c.compile(&clone) + ")"
	}

	if node.AllOf != nil {
		return c.compileAllOf(node.AllOf)
	}
	if node.AnyOf != nil {
		return c.compileAlternatives(node.AnyOf, node.Discriminator, false)
	}
	if node.OneOf != nil {
		return c.compileAlternatives(node.OneOf, node.Discriminator, true)
	}

	switch effectiveKind(node) {
	case "string":
		return c.compileString(node)
	case "number", "integer":
		return c.compileNumber(node)
	case "boolean":
		return c.compileBoolean(node)
	case "array":
		return c.compileArray(node)
	case "object":
		return c.compileObject(node)
	default:
		return "validate.Any()"
	}
}

// compileTypeArray handles 3.1 multi-type nodes. A single non-null type with
// a null marker compiles as that type wrapped in Nullable; multiple non-null
// types compile as independent single-type clones combined with Union. The
// clones also strip the 3.0 nullable flag so a node carrying both
// nullability spellings is wrapped exactly once.
func (c *compiler) compileTypeArray(node *parser.Schema) string {
	nonNull, hasNull := splitNullType(typeList(node))
	if len(nonNull) == 0 {
		if hasNull {
			return "validate.Literal(nil)"
		}
		return "validate.Any()"
	}

	if len(nonNull) == 1 {
		clone := *node
		clone.Type = nonNull[0]
		clone.Nullable = false
		code := c.compile(&clone)
		if hasNull {
			return "validate.Nullable(" + code + ")"
		}
		return code
	}

	branches := make([]string, len(nonNull))
	for i, t := range nonNull {
		clone := *node
		clone.Type = t
		clone.Nullable = false
		branches[i] = c.compile(&clone)
	}
	code := "validate.Union(" + strings.Join(branches, ", ") + ")"
	if hasNull {
		code = "validate.Nullable(" + code + ")"
	}
	return code
}

// compileEnumNode compiles a closed enum, attaching the default if present.
func (c *compiler) compileEnumNode(node *parser.Schema) string {
	code := enumExpr(node.Enum)
	if node.Default != nil {
		code = withDefault(code, node.Default)
	}
	return code
}

// enumExpr renders a literal for a single value and a finite-alternatives
// validator for several.
func enumExpr(values []any) string {
	if len(values) == 1 {
		return "validate.Literal(" + renderLiteral(values[0]) + ")"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = renderLiteral(v)
	}
	return "validate.Enum(" + strings.Join(parts, ", ") + ")"
}

func withDefault(code string, def any) string {
	return "validate.WithDefault(" + code + ", " + renderLiteral(def) + ")"
}
