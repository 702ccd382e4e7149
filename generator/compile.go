package generator

import (
	"golang.org/x/sync/errgroup"

	"github.com/calquist/oasvalid/compiler"
	"github.com/calquist/oasvalid/extractor"
	"github.com/calquist/oasvalid/internal/naming"
	"github.com/calquist/oasvalid/parser"
)

// buildComponentArtifacts compiles every components.schemas entry into a
// constructor artifact, in declaration order. Compilations run on a bounded
// worker pool; each task owns its own import set so no locking is needed,
// and results land in index-addressed slots to keep output deterministic.
func (g *Generator) buildComponentArtifacts(doc *parser.Document, result *GenerateResult) ([]artifact, error) {
	if doc == nil || doc.Components == nil || doc.Components.Schemas == nil {
		return nil, nil
	}
	schemas := doc.Components.Schemas

	type task struct {
		name   string
		schema *parser.Schema
	}
	var tasks []task
	for _, name := range schemas.Keys() {
		schema := schemas.Get(name)
		path := "components.schemas." + name
		if !looksLikeSchema(schema) {
			addIssue(result, path, "entry is not a schema object, skipped", SeverityWarning)
			continue
		}
		reportDroppedConstraints(result, path, schema)
		tasks = append(tasks, task{name: name, schema: schema})
	}

	// Type names that would shadow the client runtime's declarations get no
	// inferred type; the validator constructor still emits.
	reservedTypes := make(map[string]bool)
	if g.GenerateClient {
		reservedTypes["Client"] = true
		reservedTypes["NewClient"] = true
	}
	for _, tk := range tasks {
		if reservedTypes[compiler.ComponentName(tk.name)] {
			addIssue(result, "components.schemas."+tk.name,
				"type name collides with generated client runtime, inferred type skipped", SeverityWarning)
		}
	}

	artifacts := make([]artifact, len(tasks))
	var grp errgroup.Group
	grp.SetLimit(g.workers())
	for i, tk := range tasks {
		grp.Go(func() error {
			compiled := compiler.Compile(tk.schema, compiler.Options{
				IsTopLevel:       true,
				StrictValidation: g.StrictValidation,
			})
			// Self-references stay lazy in the expression but are not a
			// dependency of the declaration.
			component := compiler.ComponentName(tk.name)
			compiled.Imports.Remove(component)
			var td string
			if !reservedTypes[component] {
				td = typeDecl(tk.name, tk.schema)
			}
			artifacts[i] = artifact{
				name:     compiler.SchemaFuncName(tk.name),
				doc:      "validates the " + tk.name + " component schema.",
				code:     compiled.Code,
				imports:  compiled.Imports,
				typeDecl: td,
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// buildOperationArtifacts compiles the request and response bodies and the
// server parameter schemas of every operation. One pool task per operation.
func (g *Generator) buildOperationArtifacts(doc *parser.Document, result *GenerateResult) ([]operationArtifacts, error) {
	metas := extractor.Extract(doc)
	if len(metas) == 0 {
		return nil, nil
	}

	// Issue reporting happens up front on the single goroutine; the pool
	// tasks only compile.
	for _, meta := range metas {
		opPath := "paths." + meta.PathKey + "." + meta.Method
		for _, m := range extractor.RequestMappings(meta.Operation) {
			reportDroppedConstraints(result, opPath+".requestBody.content."+m.ContentType, m.Schema)
		}
		for _, rc := range extractor.ResponseMappings(meta.Operation) {
			for _, m := range rc.Mappings {
				reportDroppedConstraints(result, opPath+".responses."+rc.Status+".content."+m.ContentType, m.Schema)
			}
		}
	}

	ops := make([]operationArtifacts, len(metas))
	var grp errgroup.Group
	grp.SetLimit(g.workers())
	for i, meta := range metas {
		grp.Go(func() error {
			ops[i] = g.compileOperation(meta)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return ops, nil
}

func (g *Generator) compileOperation(meta extractor.OperationMetadata) operationArtifacts {
	op := operationArtifacts{meta: meta}

	if m, ok := preferredMapping(extractor.RequestMappings(meta.Operation)); ok {
		bv := bodyValidator{contentType: m.ContentType}
		bv.expr = g.bodyExpr(&op, m.Schema, requestSchemaName(meta.OperationID),
			"validates the "+meta.OperationID+" request body.")
		op.request = &bv
	}

	for _, rc := range extractor.ResponseMappings(meta.Operation) {
		m, ok := preferredMapping(rc.Mappings)
		if !ok {
			continue
		}
		bv := bodyValidator{status: rc.Status, contentType: m.ContentType}
		bv.expr = g.bodyExpr(&op, m.Schema, responseSchemaName(meta.OperationID, rc.Status),
			"validates the "+meta.OperationID+" "+rc.Status+" response body.")
		op.responses = append(op.responses, bv)
	}

	if g.GenerateServer {
		groups := meta.Groups()
		base := naming.ToCamelCase(meta.OperationID)
		op.query = g.paramArtifact(base+"QuerySchema", groups.Query, true)
		op.path = g.paramArtifact(base+"PathSchema", groups.Path, true)
		op.header = g.paramArtifact(base+"HeaderSchema", groups.Header, false)
	}
	return op
}

// bodyExpr returns the constructor call expression for a body schema. A
// reference reuses the component constructor; an inline schema gets a
// synthetic constructor appended to the operation's artifacts.
func (g *Generator) bodyExpr(op *operationArtifacts, schema *parser.Schema, syntheticName, doc string) string {
	if schema.IsReference() {
		return compiler.SchemaFuncName(compiler.ComponentName(schema.Ref)) + "()"
	}
	compiled := compiler.Compile(schema, compiler.Options{
		IsTopLevel:       true,
		StrictValidation: g.StrictValidation,
	})
	op.bodies = append(op.bodies, artifact{
		name:    syntheticName,
		doc:     doc,
		code:    compiled.Code,
		imports: compiled.Imports,
	})
	return syntheticName + "()"
}

// paramArtifact compiles one parameter group into an object validator.
// Query and path groups are strict so unknown keys are rejected; header
// groups are always loose because real requests carry standard headers the
// document never declares.
func (g *Generator) paramArtifact(name string, params []*parser.Parameter, strict bool) *artifact {
	if len(params) == 0 {
		return nil
	}

	props := parser.NewSchemaMap()
	var required []string
	for _, p := range params {
		schema := p.Schema
		if schema == nil {
			schema = &parser.Schema{}
		}
		props.Set(p.Name, schema)
		if p.Required {
			required = append(required, p.Name)
		}
	}
	obj := &parser.Schema{Type: "object", Properties: props, Required: required}

	compiled := compiler.Compile(obj, compiler.Options{StrictValidation: strict})
	return &artifact{
		name:    name,
		code:    compiled.Code,
		imports: compiled.Imports,
	}
}

// preferredMapping picks the schema to compile when a body declares several
// media types: application/json when present, otherwise the first mapping.
func preferredMapping(mappings []extractor.ContentTypeMapping) (extractor.ContentTypeMapping, bool) {
	if len(mappings) == 0 {
		return extractor.ContentTypeMapping{}, false
	}
	for _, m := range mappings {
		if m.ContentType == "application/json" {
			return m, true
		}
	}
	return mappings[0], true
}
