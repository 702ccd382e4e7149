package validate

import "fmt"

// Nullable wraps a validator so that null is also accepted.
func Nullable(inner Validator) Validator {
	return ValidatorFunc(func(path string, v any) Issues {
		if v == nil {
			return nil
		}
		return inner.Validate(path, v)
	})
}

// Lazy defers construction of a validator until validation time. Generated
// code uses it for references between named schemas, so reference cycles
// (a schema whose properties point back at itself) terminate at construction
// and resolve lazily per validated value.
func Lazy(fn func() Validator) Validator {
	return ValidatorFunc(func(path string, v any) Issues {
		return fn().Validate(path, v)
	})
}

// Union returns a validator that accepts values satisfying at least one
// branch. Branches are tried in order; the first match wins. On failure the
// issues of every branch are reported so callers can see why each alternative
// was rejected.
func Union(branches ...Validator) Validator {
	return ValidatorFunc(func(path string, v any) Issues {
		var all Issues
		for _, b := range branches {
			iss := b.Validate(path, v)
			if len(iss) == 0 {
				return nil
			}
			all = append(all, iss...)
		}
		return append(Issues{{Path: at(path), Code: CodeUnionNoMatch, Message: fmt.Sprintf("value matches none of %d alternatives", len(branches))}}, all...)
	})
}

// ExactlyOne returns a validator implementing oneOf semantics: every branch
// is evaluated and the value must satisfy exactly one. Unlike Union, a value
// matching two or more branches is rejected. On failure the sub-errors of all
// failing branches are attached.
func ExactlyOne(branches ...Validator) Validator {
	return ValidatorFunc(func(path string, v any) Issues {
		matched := 0
		var failures Issues
		for _, b := range branches {
			iss := b.Validate(path, v)
			if len(iss) == 0 {
				matched++
				continue
			}
			failures = append(failures, iss...)
		}
		if matched == 1 {
			return nil
		}
		head := Issue{
			Path:    at(path),
			Code:    CodeNotExactlyOne,
			Message: fmt.Sprintf("value matches %d of %d alternatives, expected exactly one", matched, len(branches)),
		}
		return append(Issues{head}, failures...)
	})
}

// Discriminated returns a validator for tagged unions: the property named by
// discriminator selects the branch validator from mapping.
func Discriminated(discriminator string, mapping map[string]Validator) Validator {
	return ValidatorFunc(func(path string, v any) Issues {
		m, ok := v.(map[string]any)
		if !ok {
			return issue(path, CodeInvalidType, "expected object")
		}
		tag, _ := m[discriminator].(string)
		if tag == "" {
			return issue(child(path, discriminator), CodeDiscriminatorMissing, fmt.Sprintf("missing discriminator property %q", discriminator))
		}
		branch, ok := mapping[tag]
		if !ok {
			return issue(child(path, discriminator), CodeDiscriminatorUnknown, fmt.Sprintf("unknown variant %q", tag))
		}
		return branch.Validate(path, v)
	})
}

// Intersect returns a validator requiring the value to satisfy both schemas.
// allOf compositions fold pairwise onto this combinator.
func Intersect(a, b Validator) Validator {
	return ValidatorFunc(func(path string, v any) Issues {
		iss := a.Validate(path, v)
		return append(iss, b.Validate(path, v)...)
	})
}
