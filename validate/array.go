package validate

import (
	"fmt"
	"strconv"
)

// ArrayValidator validates []any values, applying an element validator and
// optional item-count bounds.
type ArrayValidator struct {
	item     Validator
	minItems *int
	maxItems *int
}

// Array returns a validator for arrays whose elements satisfy item.
// Pass Any() for arrays without a declared item schema.
func Array(item Validator) *ArrayValidator {
	return &ArrayValidator{item: item}
}

// MinItems sets the minimum element count.
func (a *ArrayValidator) MinItems(n int) *ArrayValidator {
	a.minItems = &n
	return a
}

// MaxItems sets the maximum element count.
func (a *ArrayValidator) MaxItems(n int) *ArrayValidator {
	a.maxItems = &n
	return a
}

// Validate implements Validator.
func (a *ArrayValidator) Validate(path string, v any) Issues {
	arr, ok := v.([]any)
	if !ok {
		return issue(path, CodeInvalidType, "expected array")
	}
	var iss Issues
	if a.minItems != nil && len(arr) < *a.minItems {
		iss = append(iss, Issue{Path: at(path), Code: CodeTooShort, Message: fmt.Sprintf("%d items is less than minItems %d", len(arr), *a.minItems)})
	}
	if a.maxItems != nil && len(arr) > *a.maxItems {
		iss = append(iss, Issue{Path: at(path), Code: CodeTooLong, Message: fmt.Sprintf("%d items exceeds maxItems %d", len(arr), *a.maxItems)})
	}
	for i, el := range arr {
		iss = append(iss, a.item.Validate(child(path, strconv.Itoa(i)), el)...)
	}
	return iss
}
