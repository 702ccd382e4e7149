// Package httputil provides HTTP-related validation utilities and constants.
package httputil

import "strings"

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// statusCodeLength is the standard length of HTTP status codes (e.g., "200").
const statusCodeLength = 3

// MethodOrder is the canonical iteration order for operations within a path
// item. Deterministic method order keeps derived operation ids and emitted
// artifacts stable across runs.
var MethodOrder = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// ValidateStatusCode checks if a status code string is valid according to the
// OpenAPI spec. Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" {
		return true
	}

	if strings.HasPrefix(code, "x-") {
		return true
	}

	if len(code) != statusCodeLength {
		return false
	}

	// Wildcard patterns (e.g., "2XX", "4XX")
	if code[1] == 'X' && code[2] == 'X' {
		return code[0] >= '1' && code[0] <= '5'
	}

	// Numeric codes 100-599
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return code[0] >= '1' && code[0] <= '5'
}
