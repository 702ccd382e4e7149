package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/calquist/oasvalid/internal/naming"
	"github.com/calquist/oasvalid/parser"
)

// serverRuntime is the shared support code emitted once per server file.
const serverRuntime = `// coerceParam converts a raw parameter string to its declared primitive
// kind so typed validators see the value shape they expect. Values that do
// not parse pass through as strings and fail type validation with the
// location of the offending parameter.
func coerceParam(kind, v string) any {
	switch kind {
	case "integer", "number":
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return v
}

// queryMap flattens URL query values into the object form validators
// operate on, coercing declared non-string parameters. Repeated keys keep
// their first value.
func queryMap(values url.Values, kinds map[string]string) map[string]any {
	m := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			m[k] = coerceParam(kinds[k], vs[0])
		}
	}
	return m
}

// headerMap flattens request headers into the object form validators
// operate on, keyed by canonical header name.
func headerMap(h http.Header, kinds map[string]string) map[string]any {
	m := make(map[string]any, len(h))
	for k, vs := range h {
		if len(vs) > 0 {
			m[k] = coerceParam(kinds[k], vs[0])
		}
	}
	return m
}

// stringMap widens a router's path-parameter map for validation, coercing
// declared non-string parameters.
func stringMap(params map[string]string, kinds map[string]string) map[string]any {
	m := make(map[string]any, len(params))
	for k, v := range params {
		m[k] = coerceParam(kinds[k], v)
	}
	return m
}

// readBody consumes the request body and restores it so the wrapped handler
// can read it again.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	data, err := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(data))
	return data, err
}
`

// renderServerFile emits server.gen.go: per-operation parameter validators,
// request validation functions, and handler wrappers.
func (g *Generator) renderServerFile(doc *parser.Document, ops []operationArtifacts) ([]byte, error) {
	buf := getBuffer(len(ops))
	defer putBuffer(buf, len(ops))

	writeFileHeader(buf, g.packageName(), doc)
	fmt.Fprintf(buf, `import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"%s"
)

`, validateImportPath)
	buf.WriteString(serverRuntime)
	buf.WriteString("\n")

	for _, op := range ops {
		writeServerOperation(buf, op)
	}

	return formatSource(serverFileName, buf.Bytes())
}

// paramKindsLiteral renders the declared-kind map a parameter group's
// runtime coercion needs. Only kinds the coercion converts are listed;
// groups of string parameters render as nil.
func paramKindsLiteral(params []*parser.Parameter) string {
	var entries []string
	for _, p := range params {
		if p == nil || p.Schema == nil {
			continue
		}
		switch kind := effectiveTypeKind(p.Schema); kind {
		case "integer", "number", "boolean":
			entries = append(entries, fmt.Sprintf("%q: %q", p.Name, kind))
		}
	}
	if len(entries) == 0 {
		return "nil"
	}
	return "map[string]string{" + strings.Join(entries, ", ") + "}"
}

func writeServerOperation(buf *bytes.Buffer, op operationArtifacts) {
	opName := naming.ToPascalCase(op.meta.OperationID)

	for _, a := range []*artifact{op.query, op.path, op.header} {
		if a != nil {
			writeArtifact(buf, *a)
		}
	}

	// The validation function: strict query and path checks, loose header
	// check, JSON body decode and check.
	fmt.Fprintf(buf, "// Validate%sRequest checks the parameters and decoded body of an incoming\n", opName)
	fmt.Fprintf(buf, "// %s %s request. pathParams carries the values the router extracted from\n", strings.ToUpper(op.meta.Method), op.meta.PathKey)
	buf.WriteString("// the route pattern.\n")
	fmt.Fprintf(buf, "func Validate%sRequest(r *http.Request, pathParams map[string]string) error {\n", opName)
	buf.WriteString("\tvar iss validate.Issues\n")
	groups := op.meta.Groups()
	if op.query != nil {
		fmt.Fprintf(buf, "\tiss = append(iss, %s().Validate(\"query\", queryMap(r.URL.Query(), %s))...)\n",
			op.query.name, paramKindsLiteral(groups.Query))
	}
	if op.path != nil {
		fmt.Fprintf(buf, "\tiss = append(iss, %s().Validate(\"path\", stringMap(pathParams, %s))...)\n",
			op.path.name, paramKindsLiteral(groups.Path))
	}
	if op.header != nil {
		fmt.Fprintf(buf, "\tiss = append(iss, %s().Validate(\"header\", headerMap(r.Header, %s))...)\n",
			op.header.name, paramKindsLiteral(groups.Header))
	}
	if op.request != nil {
		buf.WriteString(`	data, err := readBody(r)
	if err != nil {
		return err
	}
	if len(data) > 0 {
		decoded, err := validate.DecodeJSON(data)
		if err != nil {
			return err
		}
`)
		fmt.Fprintf(buf, "\t\tiss = append(iss, %s.Validate(\"body\", decoded)...)\n\t}\n", op.request.expr)
	}
	buf.WriteString("\tif len(iss) > 0 {\n\t\treturn iss\n\t}\n\treturn nil\n}\n\n")

	// The wrapper: reject invalid requests with 400 before the handler runs.
	fmt.Fprintf(buf, "// Wrap%s validates requests before invoking next. Invalid requests get a\n", opName)
	buf.WriteString("// 400 response carrying the validation issues. pathParams extracts route\n")
	buf.WriteString("// parameters from the request; nil means the operation's path validator\n")
	buf.WriteString("// sees an empty parameter set.\n")
	fmt.Fprintf(buf, "func Wrap%s(next http.HandlerFunc, pathParams func(*http.Request) map[string]string) http.HandlerFunc {\n", opName)
	buf.WriteString(`	return func(w http.ResponseWriter, r *http.Request) {
		var params map[string]string
		if pathParams != nil {
			params = pathParams(r)
		}
`)
	fmt.Fprintf(buf, "\t\tif err := Validate%sRequest(r, params); err != nil {\n", opName)
	buf.WriteString(`			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		next(w, r)
	}
}

`)
}
