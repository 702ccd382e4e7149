package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
)

// StringValidator validates string values with optional length and pattern
// constraints.
type StringValidator struct {
	minLen  *int
	maxLen  *int
	pattern *regexp.Regexp
}

// String returns a validator that accepts any string.
func String() *StringValidator { return &StringValidator{} }

// Min sets the minimum length in runes.
func (s *StringValidator) Min(n int) *StringValidator {
	s.minLen = &n
	return s
}

// Max sets the maximum length in runes.
func (s *StringValidator) Max(n int) *StringValidator {
	s.maxLen = &n
	return s
}

// Pattern constrains values to match the given regular expression.
// The expression must be valid; generated code only ever embeds patterns
// carried verbatim from the source document.
func (s *StringValidator) Pattern(expr string) *StringValidator {
	s.pattern = regexp.MustCompile(expr)
	return s
}

// Validate implements Validator.
func (s *StringValidator) Validate(path string, v any) Issues {
	str, ok := v.(string)
	if !ok {
		return issue(path, CodeInvalidType, "expected string")
	}
	var iss Issues
	n := len([]rune(str))
	if s.minLen != nil && n < *s.minLen {
		iss = append(iss, Issue{Path: at(path), Code: CodeTooShort, Message: fmt.Sprintf("length %d is less than minimum %d", n, *s.minLen)})
	}
	if s.maxLen != nil && n > *s.maxLen {
		iss = append(iss, Issue{Path: at(path), Code: CodeTooLong, Message: fmt.Sprintf("length %d exceeds maximum %d", n, *s.maxLen)})
	}
	if s.pattern != nil && !s.pattern.MatchString(str) {
		iss = append(iss, Issue{Path: at(path), Code: CodePattern, Message: fmt.Sprintf("value does not match pattern %q", s.pattern.String())})
	}
	return iss
}

// NumberValidator validates numeric values with optional bounds. When
// integerOnly is set, fractional values are rejected.
type NumberValidator struct {
	integerOnly  bool
	min          *float64
	max          *float64
	exclusiveMin *float64
	exclusiveMax *float64
}

// Number returns a validator that accepts any JSON number.
func Number() *NumberValidator { return &NumberValidator{} }

// Integer returns a validator that accepts integral JSON numbers only.
func Integer() *NumberValidator { return &NumberValidator{integerOnly: true} }

// Min sets the inclusive lower bound.
func (n *NumberValidator) Min(f float64) *NumberValidator {
	n.min = &f
	return n
}

// Max sets the inclusive upper bound.
func (n *NumberValidator) Max(f float64) *NumberValidator {
	n.max = &f
	return n
}

// ExclusiveMin sets the exclusive lower bound.
func (n *NumberValidator) ExclusiveMin(f float64) *NumberValidator {
	n.exclusiveMin = &f
	return n
}

// ExclusiveMax sets the exclusive upper bound.
func (n *NumberValidator) ExclusiveMax(f float64) *NumberValidator {
	n.exclusiveMax = &f
	return n
}

// Validate implements Validator.
func (n *NumberValidator) Validate(path string, v any) Issues {
	f, integral, ok := numberValue(v)
	if !ok {
		if n.integerOnly {
			return issue(path, CodeInvalidType, "expected integer")
		}
		return issue(path, CodeInvalidType, "expected number")
	}
	var iss Issues
	if n.integerOnly && !integral {
		iss = append(iss, Issue{Path: at(path), Code: CodeInvalidType, Message: "expected integer, got fractional number"})
	}
	if n.min != nil && f < *n.min {
		iss = append(iss, Issue{Path: at(path), Code: CodeTooSmall, Message: fmt.Sprintf("%v is less than minimum %v", f, *n.min)})
	}
	if n.exclusiveMin != nil && f <= *n.exclusiveMin {
		iss = append(iss, Issue{Path: at(path), Code: CodeTooSmall, Message: fmt.Sprintf("%v is not greater than exclusive minimum %v", f, *n.exclusiveMin)})
	}
	if n.max != nil && f > *n.max {
		iss = append(iss, Issue{Path: at(path), Code: CodeTooBig, Message: fmt.Sprintf("%v exceeds maximum %v", f, *n.max)})
	}
	if n.exclusiveMax != nil && f >= *n.exclusiveMax {
		iss = append(iss, Issue{Path: at(path), Code: CodeTooBig, Message: fmt.Sprintf("%v is not less than exclusive maximum %v", f, *n.exclusiveMax)})
	}
	return iss
}

// Boolean returns a validator that accepts bool values.
func Boolean() Validator {
	return ValidatorFunc(func(path string, v any) Issues {
		if _, ok := v.(bool); !ok {
			return issue(path, CodeInvalidType, "expected boolean")
		}
		return nil
	})
}

// numberValue extracts a numeric value and reports whether it is integral.
// Accepts json.Number (the DecodeJSON form), float64 (encoding/json default),
// and Go integer types for convenience when validating literal values.
func numberValue(v any) (f float64, integral bool, ok bool) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return float64(i), true, true
		}
		g, err := t.Float64()
		if err != nil {
			return 0, false, false
		}
		return g, math.Trunc(g) == g, true
	case float64:
		return t, math.Trunc(t) == t, true
	case float32:
		g := float64(t)
		return g, math.Trunc(g) == g, true
	case int:
		return float64(t), true, true
	case int32:
		return float64(t), true, true
	case int64:
		return float64(t), true, true
	}
	return 0, false, false
}
