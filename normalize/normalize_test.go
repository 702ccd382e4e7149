package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calquist/oasvalid/parser"
)

func parseFixture(t *testing.T, path string) *parser.ParseResult {
	t.Helper()
	result, err := parser.New().Parse(path)
	require.NoError(t, err)
	return result
}

func parseInline(t *testing.T, doc string) *parser.ParseResult {
	t.Helper()
	result, err := parser.New().ParseBytes([]byte(doc))
	require.NoError(t, err)
	return result
}

func TestNormalizeOAS2(t *testing.T) {
	parsed := parseFixture(t, "../testdata/petstore-2.0.yaml")
	result, err := Normalize(parsed)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "2.0", result.SourceVersion)

	doc := result.Document
	assert.Equal(t, "3.1.0", doc.OpenAPI)
	assert.Empty(t, doc.Swagger)
	assert.Equal(t, parser.OASVersion31, doc.OASVersion)

	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://petstore.example.com/v1", doc.Servers[0].URL)
	assert.Empty(t, doc.Host)
	assert.Empty(t, doc.BasePath)

	require.NotNil(t, doc.Components)
	assert.Equal(t, []string{"Pet", "NewPet"}, doc.Components.Schemas.Keys())
	assert.Nil(t, doc.Definitions)
}

func TestNormalizeOAS2RewritesRefs(t *testing.T) {
	parsed := parseFixture(t, "../testdata/petstore-2.0.yaml")
	result, err := Normalize(parsed)
	require.NoError(t, err)

	get := result.Document.Paths.Get("/pets").Get
	require.NotNil(t, get)
	resp := get.Responses.Codes["200"]
	require.NotNil(t, resp)
	assert.Nil(t, resp.Schema)

	mt := resp.Content["application/json"]
	require.NotNil(t, mt)
	require.NotNil(t, mt.Schema.Items)
	assert.Equal(t, "#/components/schemas/Pet", mt.Schema.Items.Ref)
}

func TestNormalizeOAS2BodyParameter(t *testing.T) {
	parsed := parseFixture(t, "../testdata/petstore-2.0.yaml")
	result, err := Normalize(parsed)
	require.NoError(t, err)

	post := result.Document.Paths.Get("/pets").Post
	require.NotNil(t, post)
	assert.Empty(t, post.Parameters)

	require.NotNil(t, post.RequestBody)
	assert.True(t, post.RequestBody.Required)
	mt := post.RequestBody.Content["application/json"]
	require.NotNil(t, mt)
	assert.Equal(t, "#/components/schemas/NewPet", mt.Schema.Ref)
}

func TestNormalizeOAS2ParameterFacets(t *testing.T) {
	parsed := parseFixture(t, "../testdata/petstore-2.0.yaml")
	result, err := Normalize(parsed)
	require.NoError(t, err)

	get := result.Document.Paths.Get("/pets").Get
	require.Len(t, get.Parameters, 1)
	limit := get.Parameters[0]
	assert.Empty(t, limit.Type)

	require.NotNil(t, limit.Schema)
	assert.Equal(t, "integer", limit.Schema.Type)
	require.NotNil(t, limit.Schema.Minimum)
	assert.Equal(t, float64(1), *limit.Schema.Minimum)
	// exclusiveMaximum: true folded the numeric bound into the 3.1 form
	assert.Nil(t, limit.Schema.Maximum)
	assert.Equal(t, float64(100), limit.Schema.ExclusiveMaximum)
}

func TestNormalizeOAS2FormData(t *testing.T) {
	doc := `swagger: "2.0"
info:
  title: T
  version: 1.0.0
paths:
  /upload:
    post:
      operationId: upload
      parameters:
        - name: title
          in: formData
          type: string
          required: true
        - name: tags
          in: formData
          type: string
      responses:
        '204':
          description: done
`
	result, err := Normalize(parseInline(t, doc))
	require.NoError(t, err)

	post := result.Document.Paths.Get("/upload").Post
	assert.Empty(t, post.Parameters)
	require.NotNil(t, post.RequestBody)
	assert.True(t, post.RequestBody.Required)

	mt := post.RequestBody.Content["application/x-www-form-urlencoded"]
	require.NotNil(t, mt)
	assert.Equal(t, "object", mt.Schema.Type)
	assert.Equal(t, []string{"title", "tags"}, mt.Schema.Properties.Keys())
	assert.Equal(t, []string{"title"}, mt.Schema.Required)
}

func TestNormalizeOAS30KeepsNullable(t *testing.T) {
	parsed := parseFixture(t, "../testdata/petstore-3.0.yaml")
	result, err := Normalize(parsed)
	require.NoError(t, err)
	require.True(t, result.Success)

	pet := result.Document.Components.Schemas.Get("Pet")
	require.NotNil(t, pet)
	assert.True(t, pet.Properties.Get("tag").Nullable)
}

func TestNormalizeCanonicalizesSchemas(t *testing.T) {
	doc := `openapi: 3.0.0
info:
  title: T
  version: 1.0.0
paths: {}
components:
  schemas:
    Bounded:
      type: number
      maximum: 10
      exclusiveMaximum: true
    Single:
      type:
        - string
    Dangling:
      type: integer
      exclusiveMinimum: true
`
	result, err := Normalize(parseInline(t, doc))
	require.NoError(t, err)

	schemas := result.Document.Components.Schemas

	bounded := schemas.Get("Bounded")
	assert.Nil(t, bounded.Maximum)
	assert.Equal(t, float64(10), bounded.ExclusiveMaximum)

	assert.Equal(t, "string", schemas.Get("Single").Type)

	dangling := schemas.Get("Dangling")
	assert.Nil(t, dangling.ExclusiveMinimum)
	require.True(t, result.HasWarnings())
	found := false
	for _, issue := range result.Issues {
		if issue.Path == "components.schemas.Dangling" {
			found = true
			assert.Contains(t, issue.Message, "exclusiveMinimum")
		}
	}
	assert.True(t, found)
}

func TestNormalizeOAS31NullTypeArrayRetained(t *testing.T) {
	parsed := parseFixture(t, "../testdata/petstore-3.1.yaml")
	result, err := Normalize(parsed)
	require.NoError(t, err)

	tag := result.Document.Components.Schemas.Get("Pet").Properties.Get("tag")
	assert.Equal(t, []any{"string", "null"}, tag.Type)
}

func TestNormalizeNilInput(t *testing.T) {
	_, err := Normalize(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil parse result")
}
