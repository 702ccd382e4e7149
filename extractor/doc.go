// Package extractor walks a normalized OpenAPI document and produces the
// per-operation metadata the code emitters consume: resolved operation ids
// (declared or derived from method and path, with deterministic collision
// numbering), merged parameter groups, and the content-type to schema
// mappings of request and response bodies.
//
// The extractor never compiles schemas itself. It hands schema nodes to the
// emitters, which invoke the compiler once per content-type mapping.
package extractor
