package validate

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// ISO 8601 duration. Go regexp has no lookahead, so "P" and "PT" alone
	// pass the pattern and are rejected separately below.
	durationPattern = regexp.MustCompile(`^P(\d+Y)?(\d+M)?(\d+W)?(\d+D)?(T(\d+H)?(\d+M)?(\d+(\.\d+)?S)?)?$`)
)

// formatValidator validates strings against a named format. Format validators
// replace, not augment, base string constraints: a schema with both a format
// and a pattern compiles to the format validator alone.
type formatValidator struct {
	name  string
	check func(s string) bool
}

// Validate implements Validator.
func (f formatValidator) Validate(path string, v any) Issues {
	s, ok := v.(string)
	if !ok {
		return issue(path, CodeInvalidType, "expected string")
	}
	if !f.check(s) {
		return issue(path, CodeInvalidFormat, fmt.Sprintf("invalid %s", f.name))
	}
	return nil
}

// Email returns a validator for RFC 5322 email addresses.
func Email() Validator {
	return formatValidator{name: "email", check: func(s string) bool {
		addr, err := mail.ParseAddress(s)
		// Reject the display-name form; OpenAPI email values are bare addresses.
		return err == nil && addr.Address == s
	}}
}

// UUID returns a validator for RFC 4122 UUID strings.
func UUID() Validator {
	return formatValidator{name: "uuid", check: uuidPattern.MatchString}
}

// URI returns a validator for absolute URIs.
func URI() Validator {
	return formatValidator{name: "uri", check: func(s string) bool {
		u, err := url.Parse(s)
		return err == nil && u.Scheme != ""
	}}
}

// Date returns a validator for RFC 3339 full-date strings (2006-01-02).
func Date() Validator {
	return formatValidator{name: "date", check: func(s string) bool {
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	}}
}

// DateTime returns a validator for RFC 3339 date-time strings.
func DateTime() Validator {
	return formatValidator{name: "date-time", check: func(s string) bool {
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	}}
}

// Time returns a validator for RFC 3339 partial-time strings (15:04:05).
func Time() Validator {
	return formatValidator{name: "time", check: func(s string) bool {
		if _, err := time.Parse("15:04:05", s); err == nil {
			return true
		}
		_, err := time.Parse("15:04:05.999999999", s)
		return err == nil
	}}
}

// Duration returns a validator for ISO 8601 duration strings.
func Duration() Validator {
	return formatValidator{name: "duration", check: func(s string) bool {
		if s == "P" || strings.HasSuffix(s, "T") {
			return false
		}
		return durationPattern.MatchString(s)
	}}
}

// Binary returns a validator for binary payloads carried as strings.
// Any string is accepted; the format only marks the field as opaque bytes.
func Binary() Validator {
	return formatValidator{name: "binary", check: func(string) bool { return true }}
}

// Base64 returns a validator for base64-encoded strings (format: byte).
func Base64() Validator {
	return formatValidator{name: "byte", check: func(s string) bool {
		_, err := base64.StdEncoding.DecodeString(s)
		return err == nil
	}}
}
