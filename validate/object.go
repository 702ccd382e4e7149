package validate

import (
	"fmt"
	"sort"
)

// ObjectValidator validates map[string]any values against a declared set of
// keyed fields. Field declaration order is preserved so reported issues are
// deterministic. Unknown keys are rejected in strict mode and passed through
// in loose mode.
type ObjectValidator struct {
	order    []string
	fields   map[string]Validator
	required map[string]struct{}
	strict   bool
}

// Object creates a new object validator. Unknown keys are accepted until
// Strict is called; the compiler always emits an explicit Strict or Loose.
func Object() *ObjectValidator {
	return &ObjectValidator{
		fields:   map[string]Validator{},
		required: map[string]struct{}{},
	}
}

// Field declares a property with its validator. Redeclaring a name replaces
// the validator but keeps the original position.
func (o *ObjectValidator) Field(name string, v Validator) *ObjectValidator {
	if _, exists := o.fields[name]; !exists {
		o.order = append(o.order, name)
	}
	o.fields[name] = v
	return o
}

// Require marks one or more declared fields as required.
func (o *ObjectValidator) Require(names ...string) *ObjectValidator {
	for _, n := range names {
		o.required[n] = struct{}{}
	}
	return o
}

// Strict rejects keys that are not declared fields.
func (o *ObjectValidator) Strict() *ObjectValidator {
	o.strict = true
	return o
}

// Loose accepts and passes through undeclared keys.
func (o *ObjectValidator) Loose() *ObjectValidator {
	o.strict = false
	return o
}

// Validate implements Validator.
func (o *ObjectValidator) Validate(path string, v any) Issues {
	m, ok := v.(map[string]any)
	if !ok {
		return issue(path, CodeInvalidType, "expected object")
	}

	var iss Issues
	for _, name := range o.order {
		fv, present := m[name]
		if !present {
			if _, req := o.required[name]; req {
				iss = append(iss, Issue{Path: child(path, name), Code: CodeRequired, Message: fmt.Sprintf("missing required property %q", name)})
			}
			continue
		}
		iss = append(iss, o.fields[name].Validate(child(path, name), fv)...)
	}

	if o.strict {
		var unknown []string
		for key := range m {
			if _, declared := o.fields[key]; !declared {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		for _, key := range unknown {
			iss = append(iss, Issue{Path: child(path, key), Code: CodeUnknownKey, Message: fmt.Sprintf("unknown property %q", key)})
		}
	}
	return iss
}
