package parser

import "strings"

// OASVersion enumerates the OpenAPI Specification versions this module
// understands. Patch releases within a minor series behave identically for
// our purposes, so the enum tracks series rather than exact versions.
type OASVersion int

const (
	// Unknown represents an unknown or invalid OAS version
	Unknown OASVersion = iota
	// OASVersion20 OpenAPI Specification Version 2.0 (Swagger)
	OASVersion20
	// OASVersion30 OpenAPI Specification Version 3.0.x
	OASVersion30
	// OASVersion31 OpenAPI Specification Version 3.1.x
	OASVersion31
)

func (v OASVersion) String() string {
	switch v {
	case OASVersion20:
		return "2.0"
	case OASVersion30:
		return "3.0"
	case OASVersion31:
		return "3.1"
	default:
		return "unknown"
	}
}

// IsValid returns true if this is a supported version
func (v OASVersion) IsValid() bool {
	switch v {
	case OASVersion20, OASVersion30, OASVersion31:
		return true
	default:
		return false
	}
}

// ParseVersion maps a raw version string from the document root (the value of
// the "swagger" or "openapi" field) to its OASVersion series. The second
// return value is false for versions outside the supported range, including
// 3.2+ and anything that is not a 2.0/3.0/3.1 release.
func ParseVersion(raw string) (OASVersion, bool) {
	switch {
	case raw == "2.0":
		return OASVersion20, true
	case raw == "3.0" || strings.HasPrefix(raw, "3.0."):
		return OASVersion30, true
	case raw == "3.1" || strings.HasPrefix(raw, "3.1."):
		return OASVersion31, true
	default:
		return Unknown, false
	}
}
