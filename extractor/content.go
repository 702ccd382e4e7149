package extractor

import (
	"sort"

	"github.com/calquist/oasvalid/parser"
)

// ContentTypeMapping pairs one declared media type with its schema. The
// emitters invoke the compiler once per mapping.
type ContentTypeMapping struct {
	ContentType string
	Schema      *parser.Schema
}

// ResponseContent groups the content-type mappings of one response status.
type ResponseContent struct {
	// Status is the response key: a numeric code, a wildcard like "2XX", or
	// "default".
	Status   string
	Response *parser.Response
	Mappings []ContentTypeMapping
}

// RequestMappings returns the content-type mappings of the operation's
// request body, sorted by content type. Operations without a body, and
// media types without a schema, contribute nothing.
func RequestMappings(op *parser.Operation) []ContentTypeMapping {
	if op == nil || op.RequestBody == nil {
		return nil
	}
	return contentMappings(op.RequestBody.Content)
}

// ResponseMappings returns the per-status content-type mappings of the
// operation's responses, coded statuses in sorted order with "default" last.
func ResponseMappings(op *parser.Operation) []ResponseContent {
	if op == nil || op.Responses == nil {
		return nil
	}

	codes := make([]string, 0, len(op.Responses.Codes))
	for code := range op.Responses.Codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]ResponseContent, 0, len(codes)+1)
	for _, code := range codes {
		resp := op.Responses.Codes[code]
		out = append(out, ResponseContent{
			Status:   code,
			Response: resp,
			Mappings: contentMappings(resp.Content),
		})
	}
	if op.Responses.Default != nil {
		out = append(out, ResponseContent{
			Status:   "default",
			Response: op.Responses.Default,
			Mappings: contentMappings(op.Responses.Default.Content),
		})
	}
	return out
}

func contentMappings(content map[string]*parser.MediaType) []ContentTypeMapping {
	if len(content) == 0 {
		return nil
	}
	types := make([]string, 0, len(content))
	for ct := range content {
		types = append(types, ct)
	}
	sort.Strings(types)

	var out []ContentTypeMapping
	for _, ct := range types {
		mt := content[ct]
		if mt == nil || mt.Schema == nil {
			continue
		}
		out = append(out, ContentTypeMapping{ContentType: ct, Schema: mt.Schema})
	}
	return out
}
