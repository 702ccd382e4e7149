package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSchemaTool_Object(t *testing.T) {
	input := compileSchemaInput{
		Schema: `
type: object
required: [name]
properties:
  name:
    type: string
    minLength: 1
  age:
    type: integer
    minimum: 0
`,
	}
	result, output, err := handleCompileSchema(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Contains(t, output.Expression, "validate.Object()")
	assert.Contains(t, output.Expression, `Field("name", validate.String().Min(1))`)
	assert.Contains(t, output.Expression, ".Require(\"name\")")
	assert.Empty(t, output.References)
}

func TestCompileSchemaTool_Strict(t *testing.T) {
	input := compileSchemaInput{
		Schema: "type: object\nproperties:\n  id:\n    type: string\n",
		Strict: true,
	}
	_, output, err := handleCompileSchema(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Contains(t, output.Expression, ".Strict()")
}

func TestCompileSchemaTool_References(t *testing.T) {
	input := compileSchemaInput{
		Schema: `
type: array
items:
  $ref: "#/components/schemas/Pet"
`,
	}
	_, output, err := handleCompileSchema(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Contains(t, output.Expression, "validate.Lazy(PetSchema)")
	assert.Equal(t, []string{"Pet"}, output.References)
}

func TestCompileSchemaTool_EmptySchema(t *testing.T) {
	result, _, err := handleCompileSchema(context.Background(), &mcp.CallToolRequest{}, compileSchemaInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestCompileSchemaTool_InvalidYAML(t *testing.T) {
	input := compileSchemaInput{Schema: "type: [unclosed"}
	result, _, err := handleCompileSchema(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
