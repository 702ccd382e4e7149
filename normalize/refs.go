package normalize

import (
	"strings"

	"github.com/calquist/oasvalid/internal/httputil"
	"github.com/calquist/oasvalid/parser"
)

// refMapping defines a prefix substitution for $ref rewriting
type refMapping struct {
	from string
	to   string
}

// oas2RefMappings maps OAS 2.0 $ref prefixes to their 3.x equivalents
var oas2RefMappings = []refMapping{
	{"#/definitions/", "#/components/schemas/"},
	{"#/parameters/", "#/components/parameters/"},
	{"#/responses/", "#/components/responses/"},
}

// rewriteRef rewrites an OAS 2.0 local $ref to 3.x format.
// Non-local references and unknown prefixes pass through unchanged.
func rewriteRef(ref string) string {
	if !strings.HasPrefix(ref, "#/") {
		return ref
	}
	for _, m := range oas2RefMappings {
		if strings.HasPrefix(ref, m.from) {
			return m.to + ref[len(m.from):]
		}
	}
	return ref
}

// rewriteDocumentRefs rewrites all OAS 2.0 $ref values in the document,
// including the non-schema reference positions the schema walker does not
// cover (parameter refs, response refs, discriminator mappings).
func rewriteDocumentRefs(doc *parser.Document) {
	forEachSchema(doc, func(_ string, s *parser.Schema) {
		if s.Ref != "" {
			s.Ref = rewriteRef(s.Ref)
		}
		if s.Discriminator != nil {
			for key, ref := range s.Discriminator.Mapping {
				s.Discriminator.Mapping[key] = rewriteRef(ref)
			}
		}
	})

	rewriteParamRefs := func(params []*parser.Parameter) {
		for _, param := range params {
			if param != nil && param.Ref != "" {
				param.Ref = rewriteRef(param.Ref)
			}
		}
	}

	for _, pathKey := range doc.Paths.Keys() {
		item := doc.Paths.Get(pathKey)
		rewriteParamRefs(item.Parameters)
		for _, method := range httputil.MethodOrder {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			rewriteParamRefs(op.Parameters)
			if op.Responses == nil {
				continue
			}
			if op.Responses.Default != nil && op.Responses.Default.Ref != "" {
				op.Responses.Default.Ref = rewriteRef(op.Responses.Default.Ref)
			}
			for _, resp := range op.Responses.Codes {
				if resp != nil && resp.Ref != "" {
					resp.Ref = rewriteRef(resp.Ref)
				}
			}
		}
	}
}
