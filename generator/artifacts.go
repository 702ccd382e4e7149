package generator

import (
	"fmt"

	"github.com/calquist/oasvalid/compiler"
	"github.com/calquist/oasvalid/extractor"
	"github.com/calquist/oasvalid/internal/naming"
	"github.com/calquist/oasvalid/parser"
)

// artifact is one emitted validator constructor: a named function returning
// the compiled expression.
type artifact struct {
	// name is the constructor identifier, e.g. "PetSchema".
	name string
	// doc is the one-line comment text placed above the constructor.
	doc string
	// code is the validator-construction expression.
	code string
	// imports are the component names the expression references.
	imports compiler.ImportSet
	// typeDecl is the inferred Go type declaration emitted above the
	// constructor. Only component schemas carry one; synthetic
	// per-operation bodies validate anonymous shapes.
	typeDecl string
}

// bodyValidator is how client and server code reference a compiled request
// or response body: a call expression on either a component constructor or a
// synthetic per-operation one.
type bodyValidator struct {
	// status is the response key ("200", "2XX", "default"); empty for
	// request bodies.
	status string
	// contentType is the media type the schema was declared under.
	contentType string
	// expr calls the validator constructor, e.g. "PetSchema()".
	expr string
}

// operationArtifacts collects everything emitted for one operation.
type operationArtifacts struct {
	meta extractor.OperationMetadata
	// bodies are the synthetic constructors for inline request and response
	// schemas. Referenced schemas reuse the component constructor and add
	// nothing here.
	bodies    []artifact
	request   *bodyValidator
	responses []bodyValidator
	// Server-side parameter validators. Nil when the operation has no
	// parameters at that location or server generation is off.
	query  *artifact
	path   *artifact
	header *artifact
}

// requestSchemaName is the synthetic constructor name for an operation's
// inline request body schema.
func requestSchemaName(operationID string) string {
	return naming.ToPascalCase(operationID) + "RequestSchema"
}

// responseSchemaName is the synthetic constructor name for an operation's
// inline response body schema at one status.
func responseSchemaName(operationID, status string) string {
	return naming.ToPascalCase(operationID) + statusToken(status) + "ResponseSchema"
}

// statusToken renders a response key as an identifier fragment. Numeric
// codes and wildcards pass through ("200", "2XX"); keyword statuses like
// "default" are title-cased so the synthetic constructor name stays
// exported-looking.
func statusToken(status string) string {
	if status == "" || (status[0] >= '0' && status[0] <= '9') {
		return status
	}
	return naming.ToTitle(status)
}

// looksLikeSchema is the structural guard run before compilation. Entries
// holding foreign data (a type field that is neither a string nor a type
// array) are skipped with a warning instead of failing the run.
func looksLikeSchema(s *parser.Schema) bool {
	if s == nil {
		return false
	}
	switch s.Type.(type) {
	case nil, string, []any:
		return true
	default:
		return false
	}
}

// reportDroppedConstraints records a warning for every constraint in the
// inline subtree that the validate DSL cannot express and the compiler
// silently drops. References are not followed; the referent is scanned under
// its own component entry.
func reportDroppedConstraints(result *GenerateResult, path string, s *parser.Schema) {
	if s == nil || s.IsReference() {
		return
	}
	if s.UniqueItems {
		addIssue(result, path, "uniqueItems is not representable and was dropped", SeverityWarning)
	}
	if s.AdditionalProperties.HasSchema() {
		addIssue(result, path, "schema-valued additionalProperties is not representable and was dropped", SeverityWarning)
	}

	if s.Properties != nil {
		for _, name := range s.Properties.Keys() {
			reportDroppedConstraints(result, path+".properties."+name, s.Properties.Get(name))
		}
	}
	if s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil {
		reportDroppedConstraints(result, path+".additionalProperties", s.AdditionalProperties.Schema)
	}
	if s.Items != nil {
		reportDroppedConstraints(result, path+".items", s.Items)
	}
	for i, branch := range s.AllOf {
		reportDroppedConstraints(result, fmt.Sprintf("%s.allOf[%d]", path, i), branch)
	}
	for i, branch := range s.AnyOf {
		reportDroppedConstraints(result, fmt.Sprintf("%s.anyOf[%d]", path, i), branch)
	}
	for i, branch := range s.OneOf {
		reportDroppedConstraints(result, fmt.Sprintf("%s.oneOf[%d]", path, i), branch)
	}
	if s.Not != nil {
		reportDroppedConstraints(result, path+".not", s.Not)
	}
}

// checkDuplicateArtifacts rejects colliding constructor names. Collisions
// should not occur after operation-id disambiguation, but silently letting
// one artifact shadow another would corrupt the output, so this is fatal.
func checkDuplicateArtifacts(components []artifact, ops []operationArtifacts) error {
	seen := make(map[string]bool)
	check := func(name string) error {
		if seen[name] {
			return fmt.Errorf("generator: duplicate generated artifact name %q", name)
		}
		seen[name] = true
		return nil
	}

	for _, a := range components {
		if err := check(a.name); err != nil {
			return err
		}
	}
	for _, op := range ops {
		for _, a := range op.bodies {
			if err := check(a.name); err != nil {
				return err
			}
		}
		for _, a := range []*artifact{op.query, op.path, op.header} {
			if a == nil {
				continue
			}
			if err := check(a.name); err != nil {
				return err
			}
		}
	}
	return nil
}
