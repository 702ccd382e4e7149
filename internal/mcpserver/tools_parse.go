package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/calquist/oasvalid/extractor"
)

type parseInput struct {
	Spec specInput `json:"spec" jsonschema:"The OAS document to parse"`
}

type parseSummaryServer struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type parseOutput struct {
	Version        string               `json:"version"`
	OASVersion     string               `json:"oas_version"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	PathCount      int                  `json:"path_count"`
	OperationCount int                  `json:"operation_count"`
	SchemaCount    int                  `json:"schema_count"`
	OperationIDs   []string             `json:"operation_ids,omitempty"`
	Servers        []parseSummaryServer `json:"servers,omitempty"`
	Format         string               `json:"format"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		Version:    result.Version,
		OASVersion: result.OASVersion.String(),
		Format:     string(result.SourceFormat),
	}

	doc := result.Document
	if doc == nil {
		return nil, output, nil
	}

	if doc.Info != nil {
		output.Title = doc.Info.Title
		output.Description = doc.Info.Description
	}
	output.PathCount = doc.Paths.Len()
	if doc.Components != nil {
		output.SchemaCount = doc.Components.Schemas.Len()
	}
	output.SchemaCount += doc.Definitions.Len()

	ops := extractor.Extract(doc)
	output.OperationCount = len(ops)
	output.OperationIDs = makeSlice[string](len(ops))
	for _, op := range ops {
		output.OperationIDs = append(output.OperationIDs, op.OperationID)
	}

	output.Servers = makeSlice[parseSummaryServer](len(doc.Servers))
	for _, s := range doc.Servers {
		if s != nil {
			output.Servers = append(output.Servers, parseSummaryServer{
				URL:         s.URL,
				Description: s.Description,
			})
		}
	}

	return nil, output, nil
}
