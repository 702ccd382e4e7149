// Package normalize upgrades parsed OpenAPI documents to a single 3.1-shaped
// representation, in place.
//
// OAS 2.0 documents get their host/basePath/schemes folded into servers,
// definitions moved to components.schemas (with $ref rewriting), body and
// formData parameters converted to a requestBody, and response schemas moved
// under content. OAS 3.0 documents keep their nullable flags (the compiler
// understands both nullability spellings) but have boolean exclusive bounds
// rewritten to the numeric 3.1 form. All documents get single-element type
// arrays collapsed to scalars.
//
// Lossy or best-effort rewrites are reported as issues with severities, not
// errors; only structurally unusable input fails.
package normalize
