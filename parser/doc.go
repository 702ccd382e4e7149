// Package parser provides parsing for OpenAPI Specification documents.
//
// The parser supports OAS 2.0, 3.0.x, and 3.1.x in YAML and JSON formats and
// can load specifications from local files, remote URLs (http:// or
// https://), or readers. Documents parse into a single unified model;
// version differences are erased later by the normalize package.
//
// # Quick Start
//
// Parse a file:
//
//	result, err := parser.New().Parse("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Version, result.Document.Info.Title)
//
// Unsupported versions (anything outside 2.0/3.0.x/3.1.x) fail with an
// error rather than parsing into a partially understood document.
package parser
