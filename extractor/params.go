package extractor

import "github.com/calquist/oasvalid/parser"

// ParameterGroups holds an operation's effective parameters split by
// location. Body and formData parameters never appear here: normalization
// rewrites them into request bodies before extraction.
type ParameterGroups struct {
	Query  []*parser.Parameter
	Path   []*parser.Parameter
	Header []*parser.Parameter
}

// Parameters merges the path-level and operation-level parameter lists. An
// operation parameter overrides a path-level parameter with the same name
// and location. Order is deterministic: path-level parameters first in
// declaration order (each replaced in place when overridden), then the
// remaining operation parameters in declaration order.
func (m OperationMetadata) Parameters() []*parser.Parameter {
	type key struct{ name, in string }

	overrides := make(map[key]*parser.Parameter, len(m.Operation.Parameters))
	for _, p := range m.Operation.Parameters {
		overrides[key{p.Name, p.In}] = p
	}

	merged := make([]*parser.Parameter, 0, len(m.PathParameters)+len(m.Operation.Parameters))
	taken := make(map[key]bool, len(m.PathParameters))
	for _, p := range m.PathParameters {
		k := key{p.Name, p.In}
		taken[k] = true
		if override, ok := overrides[k]; ok {
			merged = append(merged, override)
			continue
		}
		merged = append(merged, p)
	}
	for _, p := range m.Operation.Parameters {
		if !taken[key{p.Name, p.In}] {
			merged = append(merged, p)
		}
	}
	return merged
}

// Groups splits the merged parameters by location. Locations other than
// query, path, and header are ignored.
func (m OperationMetadata) Groups() ParameterGroups {
	var g ParameterGroups
	for _, p := range m.Parameters() {
		switch p.In {
		case "query":
			g.Query = append(g.Query, p)
		case "path":
			g.Path = append(g.Path, p)
		case "header":
			g.Header = append(g.Header, p)
		}
	}
	return g
}
