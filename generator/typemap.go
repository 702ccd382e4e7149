package generator

import (
	"fmt"
	"strings"

	"github.com/calquist/oasvalid/compiler"
	"github.com/calquist/oasvalid/internal/naming"
	"github.com/calquist/oasvalid/parser"
)

// typeDecl renders the inferred Go type declaration emitted alongside a
// component schema's validator constructor. The declaration mirrors the
// shape the validator accepts: structs for objects, defined types for
// arrays and primitives, an alias for top-level references. Union schemas
// have no single Go shape and infer to any.
func typeDecl(name string, node *parser.Schema) string {
	typeName := compiler.ComponentName(name)
	var b strings.Builder

	switch {
	case node.IsReference():
		fmt.Fprintf(&b, "// %s is an alias for %s.\n", typeName, compiler.ComponentName(node.Ref))
		fmt.Fprintf(&b, "type %s = %s\n", typeName, compiler.ComponentName(node.Ref))

	case len(node.AllOf) > 0:
		writeTypeComment(&b, typeName, node, "combines the constraints of its source schemas.")
		writeAllOfStruct(&b, typeName, node)

	case len(node.OneOf) > 0 || len(node.AnyOf) > 0:
		writeTypeComment(&b, typeName, node, "holds one of several alternative shapes.")
		fmt.Fprintf(&b, "type %s = any\n", typeName)

	default:
		switch effectiveTypeKind(node) {
		case "object":
			if node.Properties.Len() == 0 && node.AdditionalProperties.HasSchema() {
				writeTypeComment(&b, typeName, node, "maps arbitrary keys to one value shape.")
				fmt.Fprintf(&b, "type %s map[string]%s\n", typeName, goType(node.AdditionalProperties.Schema, true, typeName))
			} else {
				writeTypeComment(&b, typeName, node, "is the object shape validated by "+compiler.SchemaFuncName(name)+".")
				writeStruct(&b, typeName, node)
			}
		case "array":
			writeTypeComment(&b, typeName, node, "is the array shape validated by "+compiler.SchemaFuncName(name)+".")
			item := "any"
			if node.Items != nil {
				item = goType(node.Items, true, typeName)
			}
			fmt.Fprintf(&b, "type %s []%s\n", typeName, item)
		case "string":
			writeTypeComment(&b, typeName, node, "is a string value validated by "+compiler.SchemaFuncName(name)+".")
			fmt.Fprintf(&b, "type %s %s\n", typeName, stringGoType(node.Format))
			writeEnumConsts(&b, typeName, node)
		case "integer":
			writeTypeComment(&b, typeName, node, "is an integer value validated by "+compiler.SchemaFuncName(name)+".")
			fmt.Fprintf(&b, "type %s %s\n", typeName, integerGoType(node.Format))
		case "number":
			writeTypeComment(&b, typeName, node, "is a numeric value validated by "+compiler.SchemaFuncName(name)+".")
			fmt.Fprintf(&b, "type %s %s\n", typeName, numberGoType(node.Format))
		case "boolean":
			writeTypeComment(&b, typeName, node, "is a boolean value validated by "+compiler.SchemaFuncName(name)+".")
			fmt.Fprintf(&b, "type %s bool\n", typeName)
		default:
			writeTypeComment(&b, typeName, node, "places no constraint on its value shape.")
			fmt.Fprintf(&b, "type %s = any\n", typeName)
		}
	}

	return b.String()
}

// writeTypeComment emits the doc comment for a type declaration, preferring
// the schema's own description over the fallback text.
func writeTypeComment(b *strings.Builder, typeName string, node *parser.Schema, fallback string) {
	text := fallback
	if node.Description != "" {
		text = firstLine(node.Description)
	}
	fmt.Fprintf(b, "// %s %s\n", typeName, text)
}

// writeStruct emits a struct declaration with one field per property, in
// declaration order to match the validator's field order.
func writeStruct(b *strings.Builder, typeName string, node *parser.Schema) {
	fmt.Fprintf(b, "type %s struct {\n", typeName)
	writeStructFields(b, typeName, node, make(map[string]int))
	b.WriteString("}\n")
}

// writeAllOfStruct emits a struct that embeds referenced branches and
// inlines the fields of inline object branches, matching the fold the
// validator applies with Intersect.
func writeAllOfStruct(b *strings.Builder, typeName string, node *parser.Schema) {
	fmt.Fprintf(b, "type %s struct {\n", typeName)
	used := make(map[string]int)
	for _, branch := range node.AllOf {
		if branch == nil {
			continue
		}
		if branch.IsReference() {
			fmt.Fprintf(b, "\t%s\n", compiler.ComponentName(branch.Ref))
			continue
		}
		writeStructFields(b, typeName, branch, used)
	}
	b.WriteString("}\n")
}

// writeStructFields emits field declarations for one object schema's
// properties. used tracks emitted field identifiers so properties that
// collapse to the same Go name (e.g. "@id" and "id") stay distinct.
func writeStructFields(b *strings.Builder, typeName string, node *parser.Schema, used map[string]int) {
	for _, propName := range node.Properties.Keys() {
		prop := node.Properties.Get(propName)
		if prop == nil {
			continue
		}
		required := containsString(node.Required, propName)

		fieldName := naming.ToPascalCase(propName)
		if n := used[fieldName]; n > 0 {
			fieldName = fmt.Sprintf("%s%d", fieldName, n+1)
		}
		used[naming.ToPascalCase(propName)]++

		fieldType := goType(prop, required, typeName)
		tag := propName
		if !required {
			tag += ",omitempty"
		}
		fmt.Fprintf(b, "\t%s %s `json:%q`\n", fieldName, fieldType, tag)
	}
}

// writeEnumConsts emits named constants for a closed string enum, one per
// declared value. Open (extensible) enums get no constants for the
// suggested values because any string is admissible.
func writeEnumConsts(b *strings.Builder, typeName string, node *parser.Schema) {
	if len(node.Enum) == 0 || node.ExtensibleEnum() != nil {
		return
	}
	var consts []string
	seen := make(map[string]bool)
	for _, v := range node.Enum {
		s, ok := v.(string)
		if !ok {
			return
		}
		suffix := naming.ToPascalCase(s)
		if suffix == "" {
			continue
		}
		constName := typeName + suffix
		if seen[constName] {
			continue
		}
		seen[constName] = true
		consts = append(consts, fmt.Sprintf("\t%s %s = %q", constName, typeName, s))
	}
	if len(consts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n// Declared %s values.\nconst (\n%s\n)\n", typeName, strings.Join(consts, "\n"))
}

// goType maps a schema node to the Go type used for a struct field or
// element. enclosing is the type currently being declared; a field that
// references it directly gets pointer indirection so the declaration stays
// legal Go. Optional and nullable scalars are pointers so absence is
// distinguishable from the zero value.
func goType(node *parser.Schema, required bool, enclosing string) string {
	if node == nil {
		return "any"
	}

	if node.IsReference() {
		refType := compiler.ComponentName(node.Ref)
		if refType == enclosing || !required || schemaNullable(node) {
			return "*" + refType
		}
		return refType
	}

	var t string
	switch effectiveTypeKind(node) {
	case "string":
		t = stringGoType(node.Format)
	case "integer":
		t = integerGoType(node.Format)
	case "number":
		t = numberGoType(node.Format)
	case "boolean":
		t = "bool"
	case "array":
		item := "any"
		if node.Items != nil {
			item = goType(node.Items, true, enclosing)
		}
		t = "[]" + item
	case "object":
		if node.Properties.Len() == 0 && node.AdditionalProperties.HasSchema() {
			t = "map[string]" + goType(node.AdditionalProperties.Schema, true, enclosing)
		} else {
			t = "map[string]any"
		}
	default:
		return "any"
	}

	if !pointerable(t) {
		return t
	}
	if !required || schemaNullable(node) {
		return "*" + t
	}
	return t
}

// pointerable reports whether optional/nullable handling should wrap the
// type in a pointer. Slices, maps, and any already admit nil.
func pointerable(t string) bool {
	if t == "any" || t == "[]byte" {
		return false
	}
	return !strings.HasPrefix(t, "[]") && !strings.HasPrefix(t, "map[") && !strings.HasPrefix(t, "*")
}

func stringGoType(format string) string {
	switch format {
	case "date-time":
		return "time.Time"
	case "byte", "binary":
		return "[]byte"
	default:
		return "string"
	}
}

func integerGoType(format string) string {
	if format == "int32" {
		return "int32"
	}
	return "int64"
}

func numberGoType(format string) string {
	if format == "float" {
		return "float32"
	}
	return "float64"
}

// effectiveTypeKind mirrors the compiler's shape classification for type
// inference: explicit single types win, then object and array facets.
func effectiveTypeKind(node *parser.Schema) string {
	switch t := node.Type.(type) {
	case string:
		if t != "" && t != "null" {
			return t
		}
	case []any:
		var nonNull []string
		for _, entry := range t {
			if s, ok := entry.(string); ok && s != "null" {
				nonNull = append(nonNull, s)
			}
		}
		if len(nonNull) == 1 {
			return nonNull[0]
		}
		if len(nonNull) > 1 {
			return ""
		}
	}
	if node.Properties.Len() > 0 || node.AdditionalProperties != nil || len(node.Required) > 0 {
		return "object"
	}
	if node.Items != nil {
		return "array"
	}
	if len(node.Enum) > 0 {
		return "string"
	}
	return ""
}

// schemaNullable reports whether the node admits null in either the 3.0
// flag spelling or the 3.1 type-array spelling.
func schemaNullable(node *parser.Schema) bool {
	if node.Nullable {
		return true
	}
	if types, ok := node.Type.([]any); ok {
		for _, entry := range types {
			if s, ok := entry.(string); ok && s == "null" {
				return true
			}
		}
	}
	return false
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// firstLine returns the first line of a description, trimmed, for use as a
// single-line doc comment.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
