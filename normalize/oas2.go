package normalize

import (
	"fmt"

	"github.com/calquist/oasvalid/internal/httputil"
	"github.com/calquist/oasvalid/parser"
)

// defaultMediaType is assumed when a 2.0 document declares no consumes or
// produces media types.
const defaultMediaType = "application/json"

// upgradeOAS2 rewrites an OAS 2.0 document to the 3.1 shape in place
func (n *Normalizer) upgradeOAS2(doc *parser.Document, result *Result) {
	doc.Servers = n.buildServers(doc, result)

	if doc.Definitions.Len() > 0 || len(doc.ParamDefs) > 0 || len(doc.RespDefs) > 0 {
		if doc.Components == nil {
			doc.Components = &parser.Components{}
		}
	}
	if doc.Definitions.Len() > 0 {
		doc.Components.Schemas = doc.Definitions
	}
	if len(doc.ParamDefs) > 0 {
		doc.Components.Parameters = make(map[string]*parser.Parameter, len(doc.ParamDefs))
		for name, param := range doc.ParamDefs {
			n.upgradeParameter(param, fmt.Sprintf("parameters.%s", name), result)
			doc.Components.Parameters[name] = param
		}
	}
	if len(doc.RespDefs) > 0 {
		doc.Components.Responses = make(map[string]*parser.Response, len(doc.RespDefs))
		for name, resp := range doc.RespDefs {
			n.upgradeResponse(resp, doc.Produces)
			doc.Components.Responses[name] = resp
		}
	}

	for _, pathKey := range doc.Paths.Keys() {
		item := doc.Paths.Get(pathKey)
		prefix := fmt.Sprintf("paths.%s", pathKey)
		item.Parameters = n.upgradeParameterList(item.Parameters, prefix+".parameters", result)
		for _, method := range httputil.MethodOrder {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			n.upgradeOperation(op, doc, fmt.Sprintf("%s.%s", prefix, method), result)
		}
	}

	rewriteDocumentRefs(doc)

	doc.Host = ""
	doc.BasePath = ""
	doc.Schemes = nil
	doc.Consumes = nil
	doc.Produces = nil
	doc.Definitions = nil
	doc.ParamDefs = nil
	doc.RespDefs = nil
}

// buildServers folds host/basePath/schemes into a 3.x servers list
func (n *Normalizer) buildServers(doc *parser.Document, result *Result) []*parser.Server {
	if doc.Host == "" {
		n.addIssue(result, "servers", "no host specified, using default server URL /", SeverityInfo)
		return []*parser.Server{{URL: "/"}}
	}

	schemes := doc.Schemes
	if len(schemes) == 0 {
		schemes = []string{"https"}
	}
	basePath := doc.BasePath
	if basePath == "" {
		basePath = "/"
	}

	servers := make([]*parser.Server, 0, len(schemes))
	for _, scheme := range schemes {
		servers = append(servers, &parser.Server{
			URL: fmt.Sprintf("%s://%s%s", scheme, doc.Host, basePath),
		})
	}
	return servers
}

// upgradeOperation rewrites one operation: body and formData parameters
// become a requestBody, remaining parameters get their schema facets hoisted,
// and response schemas move under content.
func (n *Normalizer) upgradeOperation(op *parser.Operation, doc *parser.Document, opPath string, result *Result) {
	var bodyParam *parser.Parameter
	var formParams []*parser.Parameter
	others := make([]*parser.Parameter, 0, len(op.Parameters))
	for _, param := range op.Parameters {
		switch {
		case param == nil:
		case param.In == "body":
			if bodyParam != nil {
				n.addIssue(result, opPath+".parameters",
					"multiple body parameters declared, keeping the first", SeverityWarning)
				continue
			}
			bodyParam = param
		case param.In == "formData":
			formParams = append(formParams, param)
		default:
			others = append(others, param)
		}
	}
	op.Parameters = n.upgradeParameterList(others, opPath+".parameters", result)

	switch {
	case bodyParam != nil && len(formParams) > 0:
		n.addIssue(result, opPath+".parameters",
			"both body and formData parameters declared, ignoring formData", SeverityWarning)
		fallthrough
	case bodyParam != nil:
		op.RequestBody = n.bodyToRequestBody(bodyParam, op, doc)
	case len(formParams) > 0:
		op.RequestBody = n.formDataToRequestBody(formParams, op, doc, opPath, result)
	}

	if op.Responses != nil {
		produces := op.Produces
		if len(produces) == 0 {
			produces = doc.Produces
		}
		n.upgradeResponse(op.Responses.Default, produces)
		for _, resp := range op.Responses.Codes {
			n.upgradeResponse(resp, produces)
		}
	}

	op.Consumes = nil
	op.Produces = nil
}

// bodyToRequestBody converts an in:body parameter to a requestBody
func (n *Normalizer) bodyToRequestBody(bodyParam *parser.Parameter, op *parser.Operation, doc *parser.Document) *parser.RequestBody {
	consumes := op.Consumes
	if len(consumes) == 0 {
		consumes = doc.Consumes
	}
	if len(consumes) == 0 {
		consumes = []string{defaultMediaType}
	}

	body := &parser.RequestBody{
		Description: bodyParam.Description,
		Required:    bodyParam.Required,
		Content:     make(map[string]*parser.MediaType, len(consumes)),
	}
	for _, mediaType := range consumes {
		body.Content[mediaType] = &parser.MediaType{Schema: bodyParam.Schema}
	}
	return body
}

// formDataToRequestBody folds in:formData parameters into a single object
// schema under a form media type
func (n *Normalizer) formDataToRequestBody(formParams []*parser.Parameter, op *parser.Operation, doc *parser.Document, opPath string, result *Result) *parser.RequestBody {
	mediaType := "application/x-www-form-urlencoded"
	for _, c := range append(op.Consumes, doc.Consumes...) {
		if c == "multipart/form-data" {
			mediaType = c
			break
		}
	}

	properties := parser.NewSchemaMap()
	var required []string
	for i, param := range formParams {
		properties.Set(param.Name, n.parameterSchema(param, fmt.Sprintf("%s.parameters[%d]", opPath, i), result))
		if param.Required {
			required = append(required, param.Name)
		}
	}

	return &parser.RequestBody{
		Required: len(required) > 0,
		Content: map[string]*parser.MediaType{
			mediaType: {Schema: &parser.Schema{
				Type:       "object",
				Properties: properties,
				Required:   required,
			}},
		},
	}
}

// upgradeResponse moves a 2.0 response schema under content
func (n *Normalizer) upgradeResponse(resp *parser.Response, produces []string) {
	if resp == nil || resp.Schema == nil {
		return
	}
	if len(produces) == 0 {
		produces = []string{defaultMediaType}
	}
	resp.Content = make(map[string]*parser.MediaType, len(produces))
	for _, mediaType := range produces {
		resp.Content[mediaType] = &parser.MediaType{Schema: resp.Schema}
	}
	resp.Schema = nil
}

// upgradeParameterList upgrades non-body parameters in place, dropping any
// stray body parameters (they are handled at the operation level)
func (n *Normalizer) upgradeParameterList(params []*parser.Parameter, path string, result *Result) []*parser.Parameter {
	if len(params) == 0 {
		return nil
	}
	upgraded := make([]*parser.Parameter, 0, len(params))
	for i, param := range params {
		if param == nil {
			continue
		}
		if param.In == "body" || param.In == "formData" {
			n.addIssue(result, fmt.Sprintf("%s[%d]", path, i),
				fmt.Sprintf("%s parameter outside an operation is not supported, dropped", param.In), SeverityWarning)
			continue
		}
		n.upgradeParameter(param, fmt.Sprintf("%s[%d]", path, i), result)
		upgraded = append(upgraded, param)
	}
	return upgraded
}

// upgradeParameter hoists 2.0 inline schema facets into a schema object
func (n *Normalizer) upgradeParameter(param *parser.Parameter, path string, result *Result) {
	if param.Ref != "" || param.Schema != nil {
		return
	}
	param.Schema = n.parameterSchema(param, path, result)

	switch param.CollectionFormat {
	case "", "csv":
		// csv is the 2.0 default and maps to the 3.x default style
	case "multi":
		explode := true
		param.Explode = &explode
	default:
		n.addIssue(result, path,
			fmt.Sprintf("collectionFormat %q has no 3.x equivalent, using default style", param.CollectionFormat), SeverityWarning)
	}

	param.Type = ""
	param.Format = ""
	param.Items = nil
	param.CollectionFormat = ""
	param.Default = nil
	param.Maximum = nil
	param.ExclusiveMaximum = false
	param.Minimum = nil
	param.ExclusiveMinimum = false
	param.MaxLength = nil
	param.MinLength = nil
	param.Pattern = ""
	param.MaxItems = nil
	param.MinItems = nil
	param.Enum = nil
}

// parameterSchema builds a schema from the facets a 2.0 parameter carries
// directly. Boolean exclusive bounds are carried over as-is; the shared
// canonicalization pass rewrites them to the numeric form.
func (n *Normalizer) parameterSchema(param *parser.Parameter, path string, result *Result) *parser.Schema {
	s := &parser.Schema{
		Format:    param.Format,
		Items:     param.Items,
		Default:   param.Default,
		Maximum:   param.Maximum,
		Minimum:   param.Minimum,
		MaxLength: param.MaxLength,
		MinLength: param.MinLength,
		Pattern:   param.Pattern,
		MaxItems:  param.MaxItems,
		MinItems:  param.MinItems,
		Enum:      param.Enum,
	}
	if param.Type == "" {
		n.addIssue(result, path, "parameter has no type, treating as string", SeverityWarning)
		s.Type = "string"
	} else {
		s.Type = param.Type
	}
	if param.ExclusiveMaximum {
		s.ExclusiveMaximum = true
	}
	if param.ExclusiveMinimum {
		s.ExclusiveMinimum = true
	}
	return s
}
