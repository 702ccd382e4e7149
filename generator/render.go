package generator

import (
	"bytes"
	"fmt"

	"github.com/calquist/oasvalid/parser"
)

const (
	schemasFileName = "schemas.gen.go"
	clientFileName  = "client.gen.go"
	serverFileName  = "server.gen.go"

	validateImportPath = "github.com/calquist/oasvalid/validate"
)

// writeFileHeader emits the generated-code marker, the source document
// identity, and the package clause.
func writeFileHeader(buf *bytes.Buffer, packageName string, doc *parser.Document) {
	buf.WriteString("// Code generated by oasvalid. DO NOT EDIT.\n")
	if doc != nil && doc.Info != nil && doc.Info.Title != "" {
		fmt.Fprintf(buf, "//\n// Source: %s %s\n", doc.Info.Title, doc.Info.Version)
	}
	fmt.Fprintf(buf, "\npackage %s\n\n", packageName)
}

// writeArtifact emits one validator constructor.
func writeArtifact(buf *bytes.Buffer, a artifact) {
	if a.doc != "" {
		fmt.Fprintf(buf, "// %s %s\n", a.name, a.doc)
	}
	fmt.Fprintf(buf, "func %s() validate.Validator {\n\treturn %s\n}\n\n", a.name, a.code)
}

// renderSchemasFile emits one inferred type declaration plus one validator
// constructor per component schema in declaration order, then the synthetic
// per-operation body constructors in document order.
func (g *Generator) renderSchemasFile(doc *parser.Document, components []artifact, ops []operationArtifacts) ([]byte, error) {
	count := len(components)
	for _, op := range ops {
		count += len(op.bodies)
	}

	buf := getBuffer(count)
	defer putBuffer(buf, count)

	writeFileHeader(buf, g.packageName(), doc)
	fmt.Fprintf(buf, "import (\n\t\"%s\"\n)\n\n", validateImportPath)

	for _, a := range components {
		if a.typeDecl != "" {
			buf.WriteString(a.typeDecl)
			buf.WriteString("\n")
		}
		writeArtifact(buf, a)
	}
	for _, op := range ops {
		for _, a := range op.bodies {
			writeArtifact(buf, a)
		}
	}

	return formatSource(schemasFileName, buf.Bytes())
}
