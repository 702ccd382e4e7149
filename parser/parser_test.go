package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestParseOAS2(t *testing.T) {
	result, err := New().Parse("../testdata/petstore-2.0.yaml")
	require.NoError(t, err)

	assert.Equal(t, "2.0", result.Version)
	assert.Equal(t, OASVersion20, result.OASVersion)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)

	doc := result.Document
	require.NotNil(t, doc)
	require.NotNil(t, doc.Info)
	assert.Equal(t, "Petstore API", doc.Info.Title)
	assert.Equal(t, "petstore.example.com", doc.Host)
	assert.Equal(t, "/v1", doc.BasePath)

	require.Equal(t, []string{"Pet", "NewPet"}, doc.Definitions.Keys())

	post := doc.Paths.Get("/pets").Post
	require.NotNil(t, post)
	require.Len(t, post.Parameters, 1)
	body := post.Parameters[0]
	assert.Equal(t, "body", body.In)
	require.NotNil(t, body.Schema)
	assert.Equal(t, "#/definitions/NewPet", body.Schema.Ref)
}

func TestParseOAS30(t *testing.T) {
	result, err := New().Parse("../testdata/petstore-3.0.yaml")
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", result.Version)
	assert.Equal(t, OASVersion30, result.OASVersion)

	doc := result.Document
	require.NotNil(t, doc.Components)
	require.Equal(t, []string{"Pet", "NewPet", "Error"}, doc.Components.Schemas.Keys())
	require.Equal(t, []string{"/pets", "/pets/{petId}"}, doc.Paths.Keys())

	pet := doc.Components.Schemas.Get("Pet")
	require.NotNil(t, pet)
	assert.Equal(t, []string{"id", "name", "tag", "status", "friends"}, pet.Properties.Keys())

	tag := pet.Properties.Get("tag")
	require.NotNil(t, tag)
	assert.True(t, tag.Nullable)

	status := pet.Properties.Get("status")
	require.NotNil(t, status)
	assert.Equal(t, []string{"available", "pending", "sold"}, status.ExtensibleEnum())

	friends := pet.Properties.Get("friends")
	require.NotNil(t, friends)
	require.NotNil(t, friends.Items)
	assert.Equal(t, "#/components/schemas/Pet", friends.Items.Ref)
	assert.True(t, friends.Items.IsReference())

	get := doc.Paths.Get("/pets").Get
	require.NotNil(t, get)
	require.NotNil(t, get.Responses)
	assert.NotNil(t, get.Responses.Codes["200"])
	assert.NotNil(t, get.Responses.Default)
}

func TestParseOAS31(t *testing.T) {
	result, err := New().Parse("../testdata/petstore-3.1.yaml")
	require.NoError(t, err)

	assert.Equal(t, "3.1.0", result.Version)
	assert.Equal(t, OASVersion31, result.OASVersion)

	pet := result.Document.Components.Schemas.Get("Pet")
	require.NotNil(t, pet)

	tag := pet.Properties.Get("tag")
	require.NotNil(t, tag)
	assert.Equal(t, []any{"string", "null"}, tag.Type)

	kind := pet.Properties.Get("kind")
	require.NotNil(t, kind)
	require.Len(t, kind.OneOf, 2)
	require.NotNil(t, kind.Discriminator)
	assert.Equal(t, "species", kind.Discriminator.PropertyName)

	species := result.Document.Components.Schemas.Get("Cat").Properties.Get("species")
	require.NotNil(t, species)
	assert.Equal(t, "cat", species.Const)

	limit := result.Document.Paths.Get("/pets").Get.Parameters[0]
	require.NotNil(t, limit.Schema)
	assert.Equal(t, 100, limit.Schema.ExclusiveMaximum)
}

func TestParseUnsupportedVersion(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "3.2 is out of range",
			doc:     "openapi: 3.2.0\ninfo:\n  title: T\n  version: 1.0.0\n",
			wantErr: "unsupported OpenAPI version",
		},
		{
			name:    "swagger 1.2 is out of range",
			doc:     "swagger: \"1.2\"\ninfo:\n  title: T\n  version: 1.0.0\n",
			wantErr: "unsupported OpenAPI version",
		},
		{
			name:    "missing version field",
			doc:     "info:\n  title: T\n  version: 1.0.0\n",
			wantErr: "unable to detect OpenAPI version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().ParseBytes([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseVersionSeries(t *testing.T) {
	tests := []struct {
		raw    string
		want   OASVersion
		wantOK bool
	}{
		{"2.0", OASVersion20, true},
		{"3.0.0", OASVersion30, true},
		{"3.0.3", OASVersion30, true},
		{"3.0.10", OASVersion30, true},
		{"3.1.0", OASVersion31, true},
		{"3.1.1", OASVersion31, true},
		{"3.2.0", Unknown, false},
		{"1.2", Unknown, false},
		{"", Unknown, false},
	}

	for _, tt := range tests {
		t.Run("v"+tt.raw, func(t *testing.T) {
			got, ok := ParseVersion(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBytesJSON(t *testing.T) {
	doc := `{
		"openapi": "3.0.0",
		"info": {"title": "JSON API", "version": "1.0.0"},
		"paths": {}
	}`
	result, err := New().ParseBytes([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "ParseBytes.json", result.SourcePath)
	assert.Equal(t, "JSON API", result.Document.Info.Title)
}

func TestParseReader(t *testing.T) {
	doc := "openapi: 3.1.0\ninfo:\n  title: Reader API\n  version: 1.0.0\n"
	result, err := New().ParseReader(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.yaml", result.SourcePath)
	assert.Equal(t, OASVersion31, result.OASVersion)
	assert.Equal(t, int64(len(doc)), result.SourceSize)
}

func TestResponsesRejectInvalidStatusCode(t *testing.T) {
	doc := `openapi: 3.0.0
info:
  title: T
  version: 1.0.0
paths:
  /a:
    get:
      responses:
        banana:
          description: nope
`
	_, err := New().ParseBytes([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid status code "banana"`)
}

func TestAdditionalPropertiesForms(t *testing.T) {
	doc := `openapi: 3.0.0
info:
  title: T
  version: 1.0.0
paths: {}
components:
  schemas:
    Closed:
      type: object
      additionalProperties: false
    Typed:
      type: object
      additionalProperties:
        type: string
`
	result, err := New().ParseBytes([]byte(doc))
	require.NoError(t, err)

	closed := result.Document.Components.Schemas.Get("Closed")
	require.NotNil(t, closed.AdditionalProperties)
	require.NotNil(t, closed.AdditionalProperties.Allowed)
	assert.False(t, *closed.AdditionalProperties.Allowed)
	assert.False(t, closed.AdditionalProperties.HasSchema())

	typed := result.Document.Components.Schemas.Get("Typed")
	require.NotNil(t, typed.AdditionalProperties)
	assert.True(t, typed.AdditionalProperties.HasSchema())
	assert.Equal(t, "string", typed.AdditionalProperties.Schema.Type)
}

func TestSchemaMapPreservesDeclarationOrder(t *testing.T) {
	doc := `openapi: 3.0.0
info:
  title: T
  version: 1.0.0
paths: {}
components:
  schemas:
    Zebra:
      type: object
      properties:
        zz: {type: string}
        aa: {type: string}
        mm: {type: string}
        bb: {type: string}
    Alpha:
      type: string
`
	result, err := New().ParseBytes([]byte(doc))
	require.NoError(t, err)

	schemas := result.Document.Components.Schemas
	assert.Equal(t, []string{"Zebra", "Alpha"}, schemas.Keys())
	assert.Equal(t, []string{"zz", "aa", "mm", "bb"}, schemas.Get("Zebra").Properties.Keys())
}

func TestExtensibleEnumMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"non-list value", "type: string\nx-extensible-enum: nope\n"},
		{"non-string entry", "type: string\nx-extensible-enum: [a, 2]\n"},
		{"empty list", "type: string\nx-extensible-enum: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Schema
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &s))
			assert.Nil(t, s.ExtensibleEnum())
		})
	}
}
