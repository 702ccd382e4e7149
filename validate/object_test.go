package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectStrictness(t *testing.T) {
	// {properties: {id: string}, required: [id]}
	build := func(strict bool) Validator {
		o := Object().Field("id", String()).Require("id")
		if strict {
			return o.Strict()
		}
		return o.Loose()
	}

	input := map[string]any{"id": "x", "extra": 1}

	iss := build(true).Validate("", input)
	require.Len(t, iss, 1)
	assert.Equal(t, CodeUnknownKey, iss[0].Code)
	assert.Equal(t, "/extra", iss[0].Path)

	assert.Empty(t, build(false).Validate("", input))
}

func TestObjectRequired(t *testing.T) {
	v := Object().
		Field("id", String()).
		Field("tag", String()).
		Require("id").
		Loose()

	assert.Empty(t, v.Validate("", map[string]any{"id": "1"}))

	iss := v.Validate("", map[string]any{"tag": "t"})
	require.Len(t, iss, 1)
	assert.Equal(t, CodeRequired, iss[0].Code)
	assert.Equal(t, "/id", iss[0].Path)
}

func TestObjectNestedPaths(t *testing.T) {
	v := Object().
		Field("pet", Object().Field("age", Integer()).Require("age").Loose()).
		Require("pet").
		Loose()

	iss := v.Validate("", map[string]any{"pet": map[string]any{"age": "old"}})
	require.Len(t, iss, 1)
	assert.Equal(t, "/pet/age", iss[0].Path)
}

func TestObjectRejectsNonObject(t *testing.T) {
	iss := Object().Loose().Validate("", []any{})
	require.Len(t, iss, 1)
	assert.Equal(t, CodeInvalidType, iss[0].Code)
}

func TestObjectFieldOrderDeterminism(t *testing.T) {
	v := Object().
		Field("b", Integer()).
		Field("a", Integer()).
		Require("a", "b").
		Loose()

	iss := v.Validate("", map[string]any{})
	require.Len(t, iss, 2)
	// Declaration order, not lexical order.
	assert.Equal(t, "/b", iss[0].Path)
	assert.Equal(t, "/a", iss[1].Path)
}
