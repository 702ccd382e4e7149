package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/calquist/oasvalid/parser"
)

func mustSchema(t *testing.T, doc string) *parser.Schema {
	t.Helper()
	var s parser.Schema
	require.NoError(t, yaml.Unmarshal([]byte(doc), &s))
	return &s
}

func compileCode(t *testing.T, doc string) string {
	t.Helper()
	return Compile(mustSchema(t, doc), Options{}).Code
}

func TestCompileReference(t *testing.T) {
	result := Compile(mustSchema(t, `$ref: '#/components/schemas/Pet'`), Options{})
	assert.Equal(t, "validate.Lazy(PetSchema)", result.Code)
	assert.Equal(t, []string{"Pet"}, result.Imports.Sorted())
}

func TestCompileReferenceSanitizesName(t *testing.T) {
	result := Compile(mustSchema(t, `$ref: '#/components/schemas/user-profile'`), Options{})
	assert.Equal(t, "validate.Lazy(UserProfileSchema)", result.Code)
	assert.Equal(t, []string{"UserProfile"}, result.Imports.Sorted())
}

func TestCompileTypeArrayNullable(t *testing.T) {
	nullable := Compile(mustSchema(t, "type: [string, \"null\"]\nminLength: 1"), Options{})
	plain := Compile(mustSchema(t, "type: string\nminLength: 1"), Options{})

	assert.Equal(t, "validate.Nullable("+plain.Code+")", nullable.Code)
	assert.Equal(t, plain.Imports.Sorted(), nullable.Imports.Sorted())
}

func TestCompileBothNullableFormsWrapOnce(t *testing.T) {
	code := compileCode(t, "type: [string, \"null\"]\nnullable: true")
	assert.Equal(t, "validate.Nullable(validate.String())", code)
}

func TestCompileTypeArrayUnion(t *testing.T) {
	code := compileCode(t, "type: [string, integer]")
	assert.Equal(t, "validate.Union(validate.String(), validate.Integer())", code)
}

func TestCompileTypeArrayUnionWithNull(t *testing.T) {
	code := compileCode(t, "type: [string, integer, \"null\"]")
	assert.Equal(t, "validate.Nullable(validate.Union(validate.String(), validate.Integer()))", code)
}

func TestCompileNullOnlyType(t *testing.T) {
	code := compileCode(t, "type: [\"null\"]")
	assert.Equal(t, "validate.Literal(nil)", code)

	// The scalar spelling is legal in 3.1 and compiles identically.
	assert.Equal(t, code, compileCode(t, "type: \"null\""))
}

func TestCompileEnum(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "single numeric value compiles to literal",
			doc:  "type: integer\nenum: [3]",
			want: "validate.Literal(3)",
		},
		{
			name: "multiple values compile to finite alternatives",
			doc:  "type: integer\nenum: [1, 2, 3]",
			want: "validate.Enum(1, 2, 3)",
		},
		{
			name: "enum with default",
			doc:  "type: integer\nenum: [1, 2]\ndefault: 1",
			want: "validate.WithDefault(validate.Enum(1, 2), 1)",
		},
		{
			name: "const is a single-element enum",
			doc:  "const: cat",
			want: "validate.Literal(\"cat\")",
		},
		{
			name: "untyped enum",
			doc:  "enum: [true, false]",
			want: "validate.Enum(true, false)",
		},
		{
			name: "string enum",
			doc:  "type: string\nenum: [a, b]",
			want: "validate.Enum(\"a\", \"b\")",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compileCode(t, tt.doc))
		})
	}
}

func TestCompileNullableFlag(t *testing.T) {
	code := compileCode(t, "type: string\nnullable: true")
	assert.Equal(t, "validate.Nullable(validate.String())", code)
}

func TestCompileNonStringEnumPreemptsNullableFlag(t *testing.T) {
	// Enum on a non-string type dispatches before the nullable flag, so the
	// closed value set is the whole constraint.
	code := compileCode(t, "type: integer\nenum: [1, 2]\nnullable: true")
	assert.Equal(t, "validate.Enum(1, 2)", code)
}

func TestCompileAllOf(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty list is unconstrained",
			doc:  "allOf: []",
			want: "validate.Any()",
		},
		{
			name: "single branch passes through",
			doc:  "allOf:\n  - type: string",
			want: "validate.String()",
		},
		{
			name: "branches fold pairwise",
			doc: `allOf:
  - $ref: '#/components/schemas/A'
  - $ref: '#/components/schemas/B'
  - $ref: '#/components/schemas/C'
`,
			want: "validate.Intersect(validate.Intersect(validate.Lazy(ASchema), validate.Lazy(BSchema)), validate.Lazy(CSchema))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compileCode(t, tt.doc))
		})
	}
}

func TestCompileAllOfMergesImports(t *testing.T) {
	result := Compile(mustSchema(t, `allOf:
  - $ref: '#/components/schemas/Base'
  - $ref: '#/components/schemas/Extension'
`), Options{})
	assert.Equal(t, []string{"Base", "Extension"}, result.Imports.Sorted())
}

func TestCompileAnyOfUnion(t *testing.T) {
	code := compileCode(t, `anyOf:
  - type: string
  - type: integer
`)
	assert.Equal(t, "validate.Union(validate.String(), validate.Integer())", code)
}

func TestCompileOneOfExactlyOne(t *testing.T) {
	code := compileCode(t, `oneOf:
  - type: string
  - type: integer
`)
	assert.Equal(t, "validate.ExactlyOne(validate.String(), validate.Integer())", code)
}

func TestCompileDiscriminatedWithMapping(t *testing.T) {
	result := Compile(mustSchema(t, `oneOf:
  - $ref: '#/components/schemas/Cat'
  - $ref: '#/components/schemas/Dog'
discriminator:
  propertyName: species
  mapping:
    cat: '#/components/schemas/Cat'
    dog: '#/components/schemas/Dog'
`), Options{})
	assert.Equal(t,
		`validate.Discriminated("species", map[string]validate.Validator{"cat": validate.Lazy(CatSchema), "dog": validate.Lazy(DogSchema)})`,
		result.Code)
	assert.Equal(t, []string{"Cat", "Dog"}, result.Imports.Sorted())
}

func TestCompileDiscriminatedPartialMappingKeepsAllBranches(t *testing.T) {
	// A mapping may override only some tags; the unmapped branches keep
	// their implicit component-name tags instead of being dropped.
	result := Compile(mustSchema(t, `oneOf:
  - $ref: '#/components/schemas/Cat'
  - $ref: '#/components/schemas/Dog'
  - $ref: '#/components/schemas/Bird'
discriminator:
  propertyName: species
  mapping:
    cat: '#/components/schemas/Cat'
`), Options{})
	assert.Equal(t,
		`validate.Discriminated("species", map[string]validate.Validator{"Bird": validate.Lazy(BirdSchema), "Dog": validate.Lazy(DogSchema), "cat": validate.Lazy(CatSchema)})`,
		result.Code)
	assert.Equal(t, []string{"Bird", "Cat", "Dog"}, result.Imports.Sorted())
}

func TestCompileDiscriminatedMappingAddsExtraTag(t *testing.T) {
	// A mapping entry may alias a component under a second tag without
	// displacing the branch-derived entries.
	result := Compile(mustSchema(t, `oneOf:
  - $ref: '#/components/schemas/Cat'
  - $ref: '#/components/schemas/Dog'
discriminator:
  propertyName: species
  mapping:
    lion: '#/components/schemas/Lion'
`), Options{})
	assert.Equal(t,
		`validate.Discriminated("species", map[string]validate.Validator{"Cat": validate.Lazy(CatSchema), "Dog": validate.Lazy(DogSchema), "lion": validate.Lazy(LionSchema)})`,
		result.Code)
	assert.Equal(t, []string{"Cat", "Dog", "Lion"}, result.Imports.Sorted())
}

func TestCompileDiscriminatedImplicitTags(t *testing.T) {
	// No mapping: reference branches are tagged by their component name.
	result := Compile(mustSchema(t, `anyOf:
  - $ref: '#/components/schemas/Cat'
  - $ref: '#/components/schemas/Dog'
discriminator:
  propertyName: species
`), Options{})
	assert.Equal(t,
		`validate.Discriminated("species", map[string]validate.Validator{"Cat": validate.Lazy(CatSchema), "Dog": validate.Lazy(DogSchema)})`,
		result.Code)
}

func TestCompileDiscriminatedInlineConstTags(t *testing.T) {
	code := compileCode(t, `oneOf:
  - type: object
    properties:
      species:
        const: cat
  - type: object
    properties:
      species:
        const: dog
discriminator:
  propertyName: species
`)
	assert.Contains(t, code, `validate.Discriminated("species", `)
	assert.Contains(t, code, `"cat": validate.Object().Field("species", validate.Literal("cat")).Loose()`)
	assert.Contains(t, code, `"dog": validate.Object().Field("species", validate.Literal("dog")).Loose()`)
}

func TestCompileDiscriminatorFallsBackWhenTagUnderivable(t *testing.T) {
	// Inline branches without a pinned discriminator value cannot be tagged;
	// oneOf falls back to the exactly-one shape.
	code := compileCode(t, `oneOf:
  - type: object
    properties:
      species:
        type: string
  - type: object
    properties:
      other:
        type: string
discriminator:
  propertyName: species
`)
	assert.Contains(t, code, "validate.ExactlyOne(")
}

func TestCompileStringConstraints(t *testing.T) {
	code := compileCode(t, "type: string\nminLength: 1\nmaxLength: 5\npattern: '^a+$'")
	assert.Equal(t, "validate.String().Min(1).Max(5).Pattern(`^a+$`)", code)
}

func TestCompileStringFormatOverridesPattern(t *testing.T) {
	code := compileCode(t, "type: string\nformat: email\npattern: '^a'\nminLength: 3")
	assert.Equal(t, "validate.Email()", code)
}

func TestCompileStringFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"email", "validate.Email()"},
		{"uuid", "validate.UUID()"},
		{"uri", "validate.URI()"},
		{"date", "validate.Date()"},
		{"date-time", "validate.DateTime()"},
		{"time", "validate.Time()"},
		{"duration", "validate.Duration()"},
		{"binary", "validate.Binary()"},
		{"byte", "validate.Base64()"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, compileCode(t, "type: string\nformat: "+tt.format))
		})
	}
}

func TestCompileUnknownFormatFallsBack(t *testing.T) {
	code := compileCode(t, "type: string\nformat: hostname\nmaxLength: 253")
	assert.Equal(t, "validate.String().Max(253)", code)
}

func TestCompileExtensibleEnum(t *testing.T) {
	code := compileCode(t, `type: string
x-extensible-enum: [A, B]
`)
	assert.Equal(t, `validate.ExtensibleEnum("A", "B")`, code)
}

func TestCompileExtensibleEnumBeatsRegularEnum(t *testing.T) {
	code := compileCode(t, `type: string
enum: [A, B]
x-extensible-enum: [A, B]
`)
	assert.Equal(t, `validate.ExtensibleEnum("A", "B")`, code)
}

func TestCompileStringEnumBeatsFormat(t *testing.T) {
	code := compileCode(t, "type: string\nformat: email\nenum: [a]")
	assert.Equal(t, `validate.Literal("a")`, code)
}

func TestCompileStringDefault(t *testing.T) {
	code := compileCode(t, "type: string\ndefault: hello")
	assert.Equal(t, `validate.WithDefault(validate.String(), "hello")`, code)
}

func TestCompileNumberBounds(t *testing.T) {
	code := compileCode(t, "type: integer\nminimum: 0\nexclusiveMaximum: 10")
	assert.Equal(t, "validate.Integer().Min(0).ExclusiveMax(10)", code)
}

func TestCompileNumberAllBounds(t *testing.T) {
	code := compileCode(t, "type: number\nminimum: 0.5\nmaximum: 9.5\nexclusiveMinimum: 0\nexclusiveMaximum: 10")
	assert.Equal(t, "validate.Number().Min(0.5).Max(9.5).ExclusiveMin(0).ExclusiveMax(10)", code)
}

func TestCompileBooleanDefault(t *testing.T) {
	assert.Equal(t, "validate.Boolean()", compileCode(t, "type: boolean"))
	assert.Equal(t, "validate.WithDefault(validate.Boolean(), true)",
		compileCode(t, "type: boolean\ndefault: true"))
}

func TestCompileArray(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "no items means unconstrained elements",
			doc:  "type: array",
			want: "validate.Array(validate.Any())",
		},
		{
			name: "item schema compiles recursively",
			doc:  "type: array\nitems:\n  type: string",
			want: "validate.Array(validate.String())",
		},
		{
			name: "item count bounds",
			doc:  "type: array\nitems:\n  type: string\nminItems: 1\nmaxItems: 5",
			want: "validate.Array(validate.String()).MinItems(1).MaxItems(5)",
		},
		{
			name: "uniqueItems is dropped",
			doc:  "type: array\nitems:\n  type: string\nuniqueItems: true",
			want: "validate.Array(validate.String())",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compileCode(t, tt.doc))
		})
	}
}

func TestCompileArrayOfReferences(t *testing.T) {
	result := Compile(mustSchema(t, "type: array\nitems:\n  $ref: '#/components/schemas/Pet'"), Options{})
	assert.Equal(t, "validate.Array(validate.Lazy(PetSchema))", result.Code)
	assert.Equal(t, []string{"Pet"}, result.Imports.Sorted())
}

func TestCompileObjectFieldOrder(t *testing.T) {
	code := compileCode(t, `type: object
properties:
  zz:
    type: string
  aa:
    type: integer
  mm:
    type: boolean
required: [zz, mm]
`)
	assert.Equal(t,
		`validate.Object().Field("zz", validate.String()).Field("aa", validate.Integer()).Field("mm", validate.Boolean()).Require("zz", "mm").Loose()`,
		code)
}

func TestCompileObjectStrictMode(t *testing.T) {
	node := mustSchema(t, `type: object
properties:
  id:
    type: string
required: [id]
`)
	strict := Compile(node, Options{StrictValidation: true})
	loose := Compile(node, Options{StrictValidation: false})
	assert.Equal(t, `validate.Object().Field("id", validate.String()).Require("id").Strict()`, strict.Code)
	assert.Equal(t, `validate.Object().Field("id", validate.String()).Require("id").Loose()`, loose.Code)
}

func TestCompileStrictModeThreadsIntoNestedObjects(t *testing.T) {
	result := Compile(mustSchema(t, `type: object
properties:
  nested:
    type: object
    properties:
      x:
        type: string
`), Options{StrictValidation: true})
	assert.Equal(t,
		`validate.Object().Field("nested", validate.Object().Field("x", validate.String()).Strict()).Strict()`,
		result.Code)
}

func TestCompileObjectDropsAdditionalPropertiesSchema(t *testing.T) {
	code := compileCode(t, `type: object
properties:
  id:
    type: string
additionalProperties:
  type: integer
`)
	assert.Equal(t, `validate.Object().Field("id", validate.String()).Loose()`, code)
}

func TestCompileSelfReferenceTerminates(t *testing.T) {
	// Pet references itself through a property; compilation must emit a
	// symbolic reference, not recurse into the cycle.
	result := Compile(mustSchema(t, `type: object
properties:
  name:
    type: string
  parent:
    $ref: '#/components/schemas/Pet'
required: [name]
`), Options{IsTopLevel: true})
	assert.Equal(t,
		`validate.Object().Field("name", validate.String()).Field("parent", validate.Lazy(PetSchema)).Require("name").Loose()`,
		result.Code)
	assert.Equal(t, []string{"Pet"}, result.Imports.Sorted())
}

func TestCompileFallback(t *testing.T) {
	assert.Equal(t, "validate.Any()", compileCode(t, "description: anything goes"))
	assert.Equal(t, "validate.Any()", Compile(nil, Options{}).Code)
}

func TestCompileUntypedObjectByFacets(t *testing.T) {
	code := compileCode(t, `properties:
  id:
    type: string
`)
	assert.Equal(t, `validate.Object().Field("id", validate.String()).Loose()`, code)
}

func TestCompileSharedImportAccumulator(t *testing.T) {
	imports := NewImportSet()
	Compile(mustSchema(t, `$ref: '#/components/schemas/A'`), Options{Imports: imports})
	Compile(mustSchema(t, `$ref: '#/components/schemas/B'`), Options{Imports: imports})
	assert.Equal(t, []string{"A", "B"}, imports.Sorted())
}
