package validate

import (
	"fmt"
	"reflect"
)

// Literal returns a validator that accepts exactly one value.
func Literal(want any) Validator {
	return ValidatorFunc(func(path string, v any) Issues {
		if !literalEqual(want, v) {
			return issue(path, CodeInvalidEnum, fmt.Sprintf("expected %v", want))
		}
		return nil
	})
}

// Enum returns a validator that accepts any of the given values and nothing
// else.
func Enum(values ...any) Validator {
	return ValidatorFunc(func(path string, v any) Issues {
		for _, want := range values {
			if literalEqual(want, v) {
				return nil
			}
		}
		return issue(path, CodeInvalidEnum, fmt.Sprintf("value is not one of %v", values))
	})
}

// ExtensibleEnum returns a validator for open string enums: the suggested
// values document the expected inputs, but any other string is also accepted.
type ExtensibleEnumValidator struct {
	suggested []string
}

// ExtensibleEnum builds an open string enum with the given suggested values.
func ExtensibleEnum(suggested ...string) *ExtensibleEnumValidator {
	return &ExtensibleEnumValidator{suggested: suggested}
}

// Suggested returns the documented value list.
func (e *ExtensibleEnumValidator) Suggested() []string { return e.suggested }

// Validate implements Validator. Any string passes; the suggested list is
// documentation only.
func (e *ExtensibleEnumValidator) Validate(path string, v any) Issues {
	if _, ok := v.(string); !ok {
		return issue(path, CodeInvalidType, "expected string")
	}
	return nil
}

// DefaultValidator wraps a validator with a default value. Validation
// behaves exactly like the wrapped validator; a required field stays
// required even when defaulted. Apply substitutes the default for a nil
// input and is the caller's hook for filling absent values before use.
type DefaultValidator struct {
	inner Validator
	def   any
}

// WithDefault attaches a default value to a validator.
func WithDefault(inner Validator, def any) *DefaultValidator {
	return &DefaultValidator{inner: inner, def: def}
}

// Default returns the default value.
func (d *DefaultValidator) Default() any { return d.def }

// Apply returns the default when v is nil, otherwise v unchanged.
func (d *DefaultValidator) Apply(v any) any {
	if v == nil {
		return d.def
	}
	return v
}

// Validate implements Validator by delegating to the wrapped validator.
func (d *DefaultValidator) Validate(path string, v any) Issues {
	return d.inner.Validate(path, v)
}

// literalEqual compares a schema literal against a decoded JSON value.
// Numeric values compare numerically so json.Number input matches Go numeric
// literals embedded in generated code.
func literalEqual(want, got any) bool {
	if want == nil || got == nil {
		return want == nil && got == nil
	}
	wf, _, wok := numberValue(want)
	gf, _, gok := numberValue(got)
	if wok && gok {
		return wf == gf
	}
	return reflect.DeepEqual(want, got)
}
