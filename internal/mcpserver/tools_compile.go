package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/calquist/oasvalid/compiler"
	"github.com/calquist/oasvalid/parser"
)

type compileSchemaInput struct {
	Schema string `json:"schema"           jsonschema:"Inline schema object content (JSON or YAML)"`
	Strict bool   `json:"strict,omitempty" jsonschema:"Compile objects in reject-unknown-keys mode"`
}

type compileSchemaOutput struct {
	Expression string   `json:"expression"`
	References []string `json:"references,omitempty"`
}

func handleCompileSchema(_ context.Context, _ *mcp.CallToolRequest, input compileSchemaInput) (*mcp.CallToolResult, compileSchemaOutput, error) {
	if input.Schema == "" {
		return errResult(fmt.Errorf("schema is required")), compileSchemaOutput{}, nil
	}
	if int64(len(input.Schema)) > cfg.MaxInlineSize {
		return errResult(fmt.Errorf("schema content size %d bytes exceeds maximum %d bytes", len(input.Schema), cfg.MaxInlineSize)), compileSchemaOutput{}, nil
	}

	var node parser.Schema
	if err := yaml.Unmarshal([]byte(input.Schema), &node); err != nil {
		return errResult(fmt.Errorf("parsing schema: %w", err)), compileSchemaOutput{}, nil
	}

	compiled := compiler.Compile(&node, compiler.Options{StrictValidation: input.Strict})

	output := compileSchemaOutput{
		Expression: compiled.Code,
	}
	if refs := compiled.Imports.Sorted(); len(refs) > 0 {
		output.References = refs
	}
	return nil, output, nil
}
