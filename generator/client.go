package generator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/calquist/oasvalid/internal/naming"
	"github.com/calquist/oasvalid/parser"
)

// clientRuntime is the shared support code emitted once per client file.
// The generated methods below it only ever go through do and decodeResponse.
const clientRuntime = `// Client issues requests against a server implementing this API.
type Client struct {
	// BaseURL is the server base URL, without a trailing slash.
	BaseURL string
	// HTTPClient is the underlying client. Nil falls back to
	// http.DefaultClient.
	HTTPClient *http.Client
	// UserAgent is sent with every request when set.
	UserAgent string
}

// NewClient returns a Client targeting baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body []byte) (*http.Response, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return httpClient.Do(req)
}

// decodeResponse decodes a JSON response body and validates it against the
// validator registered for the response status. Lookup order: exact code,
// then the NXX wildcard, then "default". Statuses with no registered
// validator are decoded but not validated.
func decodeResponse(resp *http.Response, validators map[string]validate.Validator) (any, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	v, err := validate.DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	code := strconv.Itoa(resp.StatusCode)
	validator, ok := validators[code]
	if !ok {
		validator, ok = validators[code[:1]+"XX"]
	}
	if !ok {
		validator, ok = validators["default"]
	}
	if !ok {
		return v, nil
	}
	if iss := validator.Validate("", v); len(iss) > 0 {
		return v, iss
	}
	return v, nil
}
`

// renderClientFile emits client.gen.go: the shared runtime plus one typed
// method per operation.
func (g *Generator) renderClientFile(doc *parser.Document, ops []operationArtifacts) ([]byte, error) {
	buf := getBuffer(len(ops))
	defer putBuffer(buf, len(ops))

	writeFileHeader(buf, g.packageName(), doc)
	fmt.Fprintf(buf, `import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"%s"
)

`, validateImportPath)
	buf.WriteString(clientRuntime)
	buf.WriteString("\n")

	for _, op := range ops {
		writeClientMethod(buf, op)
	}

	return formatSource(clientFileName, buf.Bytes())
}

func writeClientMethod(buf *bytes.Buffer, op operationArtifacts) {
	meta := op.meta
	methodName := naming.ToPascalCase(meta.OperationID)
	groups := meta.Groups()
	hasQuery := len(groups.Query) > 0
	hasBody := op.request != nil

	fmt.Fprintf(buf, "// %s calls %s %s.\n", methodName, strings.ToUpper(meta.Method), meta.PathKey)
	if meta.Operation.Summary != "" {
		fmt.Fprintf(buf, "// %s\n", strings.ReplaceAll(strings.TrimSpace(meta.Operation.Summary), "\n", " "))
	}

	args := []string{"ctx context.Context"}
	for _, p := range groups.Path {
		args = append(args, argName(p.Name)+" string")
	}
	if hasQuery {
		args = append(args, "query url.Values")
	}
	if hasBody {
		args = append(args, "body any")
	}
	fmt.Fprintf(buf, "func (c *Client) %s(%s) (any, *http.Response, error) {\n", methodName, strings.Join(args, ", "))

	if hasBody {
		fmt.Fprintf(buf, "\tif iss := %s.Validate(\"body\", body); len(iss) > 0 {\n\t\treturn nil, nil, iss\n\t}\n", op.request.expr)
		buf.WriteString("\tpayload, err := validate.EncodeJSON(body)\n\tif err != nil {\n\t\treturn nil, nil, err\n\t}\n")
	}

	fmt.Fprintf(buf, "\tpath := %s\n", pathExpression(meta.PathKey))

	queryArg := "nil"
	if hasQuery {
		queryArg = "query"
	}
	contentType, bodyArg := `""`, "nil"
	if hasBody {
		contentType = strconv.Quote(op.request.contentType)
		bodyArg = "payload"
	}
	fmt.Fprintf(buf, "\tresp, err := c.do(ctx, %s, path, %s, %s, %s)\n", httpMethodConst(meta.Method), queryArg, contentType, bodyArg)
	buf.WriteString("\tif err != nil {\n\t\treturn nil, nil, err\n\t}\n\tdefer resp.Body.Close()\n")

	buf.WriteString("\tout, err := decodeResponse(resp, map[string]validate.Validator{\n")
	for _, rv := range op.responses {
		fmt.Fprintf(buf, "\t\t%q: %s,\n", rv.status, rv.expr)
	}
	buf.WriteString("\t})\n\treturn out, resp, err\n}\n\n")
}

// pathExpression renders a path template as a Go string expression with
// each {param} replaced by its escaped argument.
func pathExpression(pathKey string) string {
	var parts []string
	rest := pathKey
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			break
		}
		end := strings.Index(rest, "}")
		if end < open {
			break
		}
		if open > 0 {
			parts = append(parts, strconv.Quote(rest[:open]))
		}
		parts = append(parts, "url.PathEscape("+argName(rest[open+1:end])+")")
		rest = rest[end+1:]
	}
	if rest != "" || len(parts) == 0 {
		parts = append(parts, strconv.Quote(rest))
	}
	return strings.Join(parts, " + ")
}

// httpMethodConst maps a lowercase HTTP method to its net/http constant.
func httpMethodConst(method string) string {
	switch method {
	case "get":
		return "http.MethodGet"
	case "put":
		return "http.MethodPut"
	case "post":
		return "http.MethodPost"
	case "delete":
		return "http.MethodDelete"
	case "options":
		return "http.MethodOptions"
	case "head":
		return "http.MethodHead"
	case "patch":
		return "http.MethodPatch"
	case "trace":
		return "http.MethodTrace"
	default:
		return strconv.Quote(strings.ToUpper(method))
	}
}

// goKeywords are the identifiers that cannot name a parameter.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// argName converts a parameter name to a Go argument identifier.
func argName(name string) string {
	arg := naming.ToCamelCase(name)
	if arg == "" || goKeywords[arg] {
		return arg + "_"
	}
	return arg
}
