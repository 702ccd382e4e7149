// Package compiler converts normalized OpenAPI schema nodes into
// validator-construction expressions in the validate package DSL.
//
// Compilation is a pure, synchronous recursion over inline schema structure.
// References are never inlined: a $ref compiles to a lazy symbolic reference
// (validate.Lazy(PetSchema)) and records the component dependency in the
// accumulated import set, which is what keeps cyclic reference graphs from
// recursing either here or in the generated constructors. The
// dispatcher applies a fixed precedence: references, then 3.1 type arrays,
// then enums on non-string types, then the 3.0 nullable flag, then
// composition keywords, then primitives, arrays, objects, and finally the
// unconstrained fallback.
//
// The compiler performs no I/O and reports no errors; structurally
// unusable schema entries are the generator's concern.
package compiler
