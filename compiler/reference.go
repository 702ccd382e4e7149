package compiler

import (
	"strings"

	"github.com/calquist/oasvalid/internal/naming"
)

// ComponentName extracts the final path segment of a local component
// reference and sanitizes it into a Go identifier. The same name is used as
// the import-set entry and as the base of the emitted symbolic reference,
// so sanitization must be stable across call sites.
func ComponentName(ref string) string {
	name := ref
	if idx := strings.LastIndex(ref, "/"); idx != -1 {
		name = ref[idx+1:]
	}
	return naming.ToPascalCase(name)
}

// SchemaFuncName returns the validator constructor name emitted for a
// component schema, e.g. "Pet" -> "PetSchema".
func SchemaFuncName(component string) string {
	return naming.ToPascalCase(component) + "Schema"
}

// LazyRef renders the symbolic-reference expression for a component name.
// References are wrapped in validate.Lazy so mutually recursive schema
// constructors never call each other during construction; Go forbids the
// direct form for self-referential declarations anyway.
func LazyRef(component string) string {
	return "validate.Lazy(" + SchemaFuncName(component) + ")"
}
