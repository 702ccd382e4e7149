package compiler

import "sort"

// ImportSet accumulates the component-schema names a compiled expression
// symbolically depends on. Sub-compilers only ever add to the set; merging
// is a plain union so entries are never lost.
type ImportSet map[string]struct{}

// NewImportSet returns an empty import set.
func NewImportSet() ImportSet {
	return make(ImportSet)
}

// Add records a dependency on the named component schema.
func (s ImportSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether the named component is in the set.
func (s ImportSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Remove drops the named component from the set. The generator uses it to
// filter a component declaration's self-import.
func (s ImportSet) Remove(name string) {
	delete(s, name)
}

// Merge unions another set into this one.
func (s ImportSet) Merge(other ImportSet) {
	for name := range other {
		s[name] = struct{}{}
	}
}

// Sorted returns the component names in lexical order.
func (s ImportSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
