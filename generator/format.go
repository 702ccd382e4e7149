package generator

import (
	"fmt"

	"golang.org/x/tools/imports"
)

// formatSource runs generated source through goimports-style processing:
// gofmt formatting plus resolving the import block against what the emitted
// code actually references (pruning unused template imports, adding stdlib
// ones like time).
func formatSource(filename string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("generator: failed to format %s: %w", filename, err)
	}
	return formatted, nil
}
