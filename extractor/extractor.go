package extractor

import (
	"strconv"
	"strings"

	"github.com/calquist/oasvalid/internal/httputil"
	"github.com/calquist/oasvalid/internal/naming"
	"github.com/calquist/oasvalid/parser"
)

// OperationMetadata describes one (path, method) pair of the document with
// its resolved operation id. Operations appear in document order: paths in
// declaration order, methods in canonical order within each path.
type OperationMetadata struct {
	// PathKey is the path template as declared, e.g. "/users/{id}".
	PathKey string
	// Method is the lowercase HTTP method.
	Method string
	// Operation is the underlying document node.
	Operation *parser.Operation
	// PathParameters are the parameters declared on the path item, which
	// apply to every operation under it unless overridden.
	PathParameters []*parser.Parameter
	// OperationID is the resolved id: the declared operationId when present,
	// otherwise derived from method and path segments, in either case made
	// unique across the document by collision numbering.
	OperationID string
}

// Extract walks the document's paths and returns one OperationMetadata per
// operation, in document order. Operation ids are resolved and collision
// numbered here so every downstream consumer sees the same final ids.
func Extract(doc *parser.Document) []OperationMetadata {
	if doc == nil || doc.Paths == nil {
		return nil
	}

	var metas []OperationMetadata
	for _, pathKey := range doc.Paths.Keys() {
		item := doc.Paths.Get(pathKey)
		if item == nil {
			continue
		}
		for _, method := range httputil.MethodOrder {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			metas = append(metas, OperationMetadata{
				PathKey:        pathKey,
				Method:         method,
				Operation:      op,
				PathParameters: item.Parameters,
				OperationID:    baseOperationID(op, method, pathKey),
			})
		}
	}

	disambiguate(metas)
	return metas
}

// baseOperationID returns the declared operationId, or derives one from the
// method and path when the document omits it.
func baseOperationID(op *parser.Operation, method, pathKey string) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return DeriveOperationID(method, pathKey)
}

// DeriveOperationID builds an operation id from an HTTP method and a path
// template: "get" + "/users/{id}" becomes "getUsersById". Template
// parameters contribute a "By<Name>" segment.
func DeriveOperationID(method, pathKey string) string {
	parts := []string{strings.ToLower(method)}
	for _, segment := range strings.Split(pathKey, "/") {
		if segment == "" {
			continue
		}
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			parts = append(parts, "by", strings.Trim(segment, "{}"))
			continue
		}
		parts = append(parts, segment)
	}
	return naming.ToCamelCase(strings.Join(parts, " "))
}

// disambiguate renames colliding operation ids in place. Operations sharing
// a base id keep document order: the first keeps the bare id and every later
// one gets its 1-based position in the group appended ("getUsers",
// "getUsers2", "getUsers3").
func disambiguate(metas []OperationMetadata) {
	counts := make(map[string]int, len(metas))
	for _, m := range metas {
		counts[m.OperationID]++
	}

	seen := make(map[string]int, len(counts))
	for i := range metas {
		id := metas[i].OperationID
		if counts[id] < 2 {
			continue
		}
		seen[id]++
		if seen[id] > 1 {
			metas[i].OperationID = id + strconv.Itoa(seen[id])
		}
	}
}
