package normalize

import (
	"fmt"

	"github.com/calquist/oasvalid/internal/httputil"
	"github.com/calquist/oasvalid/parser"
)

// schemaVisitor receives every schema node in the document along with a
// dotted document path for issue reporting.
type schemaVisitor func(path string, s *parser.Schema)

// forEachSchema walks every schema location in the document: component
// schemas, parameter schemas, request body content, and response content and
// headers. Inline sub-schemas are visited recursively; $ref nodes are visited
// but not followed, so reference cycles do not recurse.
func forEachSchema(doc *parser.Document, visit schemaVisitor) {
	if doc == nil {
		return
	}

	if doc.Components != nil {
		for _, name := range doc.Components.Schemas.Keys() {
			walkSchema(fmt.Sprintf("components.schemas.%s", name), doc.Components.Schemas.Get(name), visit)
		}
		for name, param := range doc.Components.Parameters {
			walkSchema(fmt.Sprintf("components.parameters.%s.schema", name), param.Schema, visit)
		}
		for name, body := range doc.Components.RequestBodies {
			walkContent(fmt.Sprintf("components.requestBodies.%s", name), body.Content, visit)
		}
		for name, resp := range doc.Components.Responses {
			walkResponse(fmt.Sprintf("components.responses.%s", name), resp, visit)
		}
	}

	for _, name := range doc.Definitions.Keys() {
		walkSchema(fmt.Sprintf("definitions.%s", name), doc.Definitions.Get(name), visit)
	}

	for _, pathKey := range doc.Paths.Keys() {
		item := doc.Paths.Get(pathKey)
		prefix := fmt.Sprintf("paths.%s", pathKey)
		walkParameters(prefix+".parameters", item.Parameters, visit)
		for _, method := range httputil.MethodOrder {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			opPrefix := fmt.Sprintf("%s.%s", prefix, method)
			walkParameters(opPrefix+".parameters", op.Parameters, visit)
			if op.RequestBody != nil {
				walkContent(opPrefix+".requestBody", op.RequestBody.Content, visit)
			}
			if op.Responses != nil {
				if op.Responses.Default != nil {
					walkResponse(opPrefix+".responses.default", op.Responses.Default, visit)
				}
				for code, resp := range op.Responses.Codes {
					walkResponse(fmt.Sprintf("%s.responses.%s", opPrefix, code), resp, visit)
				}
			}
		}
	}
}

func walkParameters(path string, params []*parser.Parameter, visit schemaVisitor) {
	for i, param := range params {
		if param == nil {
			continue
		}
		walkSchema(fmt.Sprintf("%s[%d].schema", path, i), param.Schema, visit)
		walkSchema(fmt.Sprintf("%s[%d].items", path, i), param.Items, visit)
	}
}

func walkContent(path string, content map[string]*parser.MediaType, visit schemaVisitor) {
	for mediaType, mt := range content {
		if mt == nil {
			continue
		}
		walkSchema(fmt.Sprintf("%s.content.%s.schema", path, mediaType), mt.Schema, visit)
	}
}

func walkResponse(path string, resp *parser.Response, visit schemaVisitor) {
	if resp == nil {
		return
	}
	walkSchema(path+".schema", resp.Schema, visit)
	walkContent(path, resp.Content, visit)
	for name, header := range resp.Headers {
		if header == nil {
			continue
		}
		walkSchema(fmt.Sprintf("%s.headers.%s.schema", path, name), header.Schema, visit)
		walkSchema(fmt.Sprintf("%s.headers.%s.items", path, name), header.Items, visit)
	}
}

// walkSchema visits a schema node and all of its inline descendants
func walkSchema(path string, s *parser.Schema, visit schemaVisitor) {
	if s == nil {
		return
	}
	visit(path, s)

	if s.Properties != nil {
		for _, name := range s.Properties.Keys() {
			walkSchema(fmt.Sprintf("%s.properties.%s", path, name), s.Properties.Get(name), visit)
		}
	}
	if s.AdditionalProperties.HasSchema() {
		walkSchema(path+".additionalProperties", s.AdditionalProperties.Schema, visit)
	}
	walkSchema(path+".items", s.Items, visit)
	for i, sub := range s.AllOf {
		walkSchema(fmt.Sprintf("%s.allOf[%d]", path, i), sub, visit)
	}
	for i, sub := range s.AnyOf {
		walkSchema(fmt.Sprintf("%s.anyOf[%d]", path, i), sub, visit)
	}
	for i, sub := range s.OneOf {
		walkSchema(fmt.Sprintf("%s.oneOf[%d]", path, i), sub, visit)
	}
	walkSchema(path+".not", s.Not, visit)
}
