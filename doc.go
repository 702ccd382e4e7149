// Package oasvalid turns OpenAPI Specification documents into a typed
// validation layer: runtime schema validators, typed client request
// functions, and typed server handler wrappers.
//
// The library is organized around a small pipeline:
//
//   - parser: parse OAS 2.0 / 3.0 / 3.1 documents from files, URLs, or readers
//   - normalize: upgrade any supported version to a single 3.1-shaped form
//   - compiler: compile schema nodes into validator-construction expressions
//   - extractor: derive per-operation metadata (names, parameters, bodies)
//   - generator: assemble compiled expressions into generated source files
//   - validate: the runtime validation DSL that generated code executes
//
// # Quick Start
//
// Generate a validation layer for a specification:
//
//	import "github.com/calquist/oasvalid/generator"
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithPackageName("petstore"),
//	    generator.WithClient(true),
//	    generator.WithServer(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := result.WriteFiles("./petstore"); err != nil {
//	    log.Fatal(err)
//	}
//
// Or use the CLI:
//
//	oasvalid generate --generate-client --generate-server -o ./petstore openapi.yaml
//
// Generated code depends only on the validate package of this module.
package oasvalid

// version is the current oasvalid release version.
const version = "0.3.1"

// Version returns the oasvalid version string.
func Version() string { return version }

// UserAgent returns the User-Agent header value used when fetching
// specifications over HTTP.
func UserAgent() string { return "oasvalid/" + version }
