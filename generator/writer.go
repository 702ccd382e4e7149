package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/calquist/oasvalid/internal/fileutil"
)

// generatedSuffix marks files this generator owns inside an output
// directory. WriteFiles removes every file carrying it before writing, so a
// run fully replaces earlier generated content.
const generatedSuffix = ".gen.go"

// WriteFiles writes the generated files to outputDir, creating it when
// missing. Pre-existing generated files are removed first; files without the
// generated suffix are left alone.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), generatedSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(outputDir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove stale file %s: %w", entry.Name(), err)
		}
	}

	for _, file := range r.Files {
		if filepath.Base(file.Name) != file.Name {
			return fmt.Errorf("invalid file name %q: must not contain path separators", file.Name)
		}
		path := filepath.Join(outputDir, file.Name)
		if err := os.WriteFile(path, file.Content, fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
	}
	return nil
}
