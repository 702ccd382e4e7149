package compiler

import "github.com/calquist/oasvalid/parser"

// typeList returns the node's declared types as a string slice regardless of
// whether the document spelled type as a scalar or a 3.1 array. Non-string
// entries are skipped.
func typeList(node *parser.Schema) []string {
	switch t := node.Type.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, entry := range t {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// splitNullType partitions a type list into the non-null types and a flag
// for whether "null" was present.
func splitNullType(types []string) (nonNull []string, hasNull bool) {
	for _, t := range types {
		if t == "null" {
			hasNull = true
			continue
		}
		nonNull = append(nonNull, t)
	}
	return nonNull, hasNull
}

// primaryType returns the single effective type of a node, or "" when the
// node has no type or a multi-type array. A ["T","null"] pair reports T;
// the null half is the dispatcher's concern.
func primaryType(node *parser.Schema) string {
	nonNull, _ := splitNullType(typeList(node))
	if len(nonNull) == 1 {
		return nonNull[0]
	}
	return ""
}

// effectiveKind classifies an inline node for primitive/array/object
// dispatch. Untyped nodes that carry object or array facets classify by
// those facets; anything else reports "".
func effectiveKind(node *parser.Schema) string {
	if t := primaryType(node); t != "" {
		return t
	}
	if node.Properties.Len() > 0 || node.AdditionalProperties != nil || len(node.Required) > 0 {
		return "object"
	}
	if node.Items != nil {
		return "array"
	}
	return ""
}
