// Package generator emits a typed validation layer from an OpenAPI
// specification. It parses and normalizes the input document, compiles every
// component schema and operation body into validate-DSL constructors, and
// assembles Go source files ready to drop into a consumer package.
//
// Generated artifacts:
//   - schemas.gen.go: one inferred Go type declaration and one constructor
//     per components.schemas entry, plus synthetic constructors for inline
//     request and response bodies when client or server generation is
//     enabled.
//   - client.gen.go: a typed HTTP client with one method per operation that
//     builds the URL from path parameters, marshals the request body, and
//     validates the decoded response against the per-status validator.
//   - server.gen.go: per-operation request validation for server handlers,
//     with strict query and path parameter checking and always-loose header
//     checking.
//
// Quick start:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithPackageName("petstore"),
//	    generator.WithClient(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := result.WriteFiles("./petstore"); err != nil {
//	    log.Fatal(err)
//	}
//
// WriteFiles fully replaces the generated content of the output directory:
// existing .gen.go files are removed before the new ones are written, so
// renamed or deleted operations never leave stale artifacts behind.
package generator
