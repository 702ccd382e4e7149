package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/calquist/oasvalid/parser"
)

// compileAllOf folds branches pairwise with Intersect: each subsequent
// branch's constraints AND with the accumulated ones.
func (c *compiler) compileAllOf(branches []*parser.Schema) string {
	switch len(branches) {
	case 0:
		return "validate.Any()"
	case 1:
		return c.compile(branches[0])
	}
	acc := c.compile(branches[0])
	for _, branch := range branches[1:] {
		acc = "validate.Intersect(" + acc + ", " + c.compile(branch) + ")"
	}
	return acc
}

// compileAlternatives handles anyOf and oneOf. A discriminator turns either
// into a tagged union; without one, anyOf is an inclusive union and oneOf is
// the stricter exactly-one refinement.
func (c *compiler) compileAlternatives(branches []*parser.Schema, disc *parser.Discriminator, exactlyOne bool) string {
	switch len(branches) {
	case 0:
		return "validate.Any()"
	case 1:
		return c.compile(branches[0])
	}

	if disc != nil && disc.PropertyName != "" {
		if code, ok := c.compileDiscriminated(branches, disc); ok {
			return code
		}
	}

	codes := make([]string, len(branches))
	for i, branch := range branches {
		codes[i] = c.compile(branch)
	}
	if exactlyOne {
		return "validate.ExactlyOne(" + strings.Join(codes, ", ") + ")"
	}
	return "validate.Union(" + strings.Join(codes, ", ") + ")"
}

// compileDiscriminated emits a tagged union keyed on the discriminator
// property. Every branch gets an implicit tag first: the component name for
// references (the OAS default mapping) or the literal value an inline
// schema pins on the discriminator property. An explicit mapping then
// overrides the implicit tag of the component it names and may add tags for
// schemas outside the branch list; a partial mapping never drops the
// unmapped branches. When a tag cannot be derived for some branch the
// caller falls back to the undiscriminated shape.
func (c *compiler) compileDiscriminated(branches []*parser.Schema, disc *parser.Discriminator) (string, bool) {
	tagged := make(map[string]string)
	implicitTags := make(map[string]string)

	for _, branch := range branches {
		tag, ok := branchTag(branch, disc.PropertyName)
		if !ok {
			return "", false
		}
		tagged[tag] = c.compile(branch)
		if branch.IsReference() {
			implicitTags[ComponentName(branch.Ref)] = tag
		}
	}

	for tag, ref := range disc.Mapping {
		name := ComponentName(ref)
		if implicit, ok := implicitTags[name]; ok && implicit != tag {
			delete(tagged, implicit)
		}
		c.imports.Add(name)
		tagged[tag] = LazyRef(name)
	}

	tags := make([]string, 0, len(tagged))
	for tag := range tagged {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var b strings.Builder
	fmt.Fprintf(&b, "validate.Discriminated(%q, map[string]validate.Validator{", disc.PropertyName)
	for i, tag := range tags {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %s", tag, tagged[tag])
	}
	b.WriteString("})")
	return b.String(), true
}

// branchTag derives the discriminator tag for one branch: the component name
// for references, or the literal value the branch pins on the discriminator
// property for inline schemas.
func branchTag(branch *parser.Schema, property string) (string, bool) {
	if branch == nil {
		return "", false
	}
	if branch.IsReference() {
		return ComponentName(branch.Ref), true
	}
	prop := branch.Properties.Get(property)
	if prop == nil {
		return "", false
	}
	if tag, ok := prop.Const.(string); ok {
		return tag, true
	}
	if len(prop.Enum) == 1 {
		if tag, ok := prop.Enum[0].(string); ok {
			return tag, true
		}
	}
	return "", false
}
