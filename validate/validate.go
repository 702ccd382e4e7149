// Package validate is a small structural validation library for decoded JSON
// values. It is the runtime target of the oasvalid compiler: generated code
// constructs validators from the combinators in this package and applies them
// to request and response payloads.
//
// Values are expected in decoded JSON form: string, bool, json.Number or
// float64 for numbers, []any for arrays, map[string]any for objects, and nil
// for null. Use DecodeJSON to produce values in this form with numeric
// precision preserved.
package validate

import (
	"fmt"
	"strings"
)

// Issue codes reported by validators.
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeUnknownKey           = "unknown_key"
	CodeTooSmall             = "too_small"
	CodeTooBig               = "too_big"
	CodeTooShort             = "too_short"
	CodeTooLong              = "too_long"
	CodePattern              = "pattern"
	CodeInvalidEnum          = "invalid_enum"
	CodeInvalidFormat        = "invalid_format"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeUnionNoMatch         = "union_no_match"
	CodeNotExactlyOne        = "not_exactly_one"
	CodeParseError           = "parse_error"
)

// Issue represents a single validation failure.
type Issue struct {
	// Path is a JSON Pointer to the offending value (e.g. "/items/2/price").
	Path string
	// Code is one of the Code* constants above.
	Code string
	// Message is a human-readable description.
	Message string
	// Cause optionally carries an underlying error.
	Cause error
}

// Issues is a collection of validation failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Validator checks a decoded JSON value rooted at the given JSON Pointer path.
// A nil or empty Issues return means the value is valid.
type Validator interface {
	Validate(path string, v any) Issues
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(path string, v any) Issues

// Validate implements Validator.
func (f ValidatorFunc) Validate(path string, v any) Issues { return f(path, v) }

// Any returns a validator that accepts every value, including null.
func Any() Validator {
	return ValidatorFunc(func(string, any) Issues { return nil })
}

// at normalizes a path for reporting: the document root is "/".
func at(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// child extends a path with one segment.
func child(path, seg string) string {
	return path + "/" + seg
}

// issue builds a single-entry Issues value.
func issue(path, code, message string) Issues {
	return Issues{{Path: at(path), Code: code, Message: message}}
}
