package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupGenerateFlags(t *testing.T) {
	fs, flags := SetupGenerateFlags()

	t.Run("default values", func(t *testing.T) {
		if flags.Output != "" {
			t.Errorf("expected Output to be empty by default, got '%s'", flags.Output)
		}
		if flags.PackageName != "api" {
			t.Errorf("expected PackageName 'api' by default, got '%s'", flags.PackageName)
		}
		if flags.Client {
			t.Error("expected Client to be false by default")
		}
		if flags.Server {
			t.Error("expected Server to be false by default")
		}
		if flags.Strict {
			t.Error("expected Strict to be false by default")
		}
		if flags.StrictSchemas {
			t.Error("expected StrictSchemas to be false by default")
		}
		if flags.NoWarnings {
			t.Error("expected NoWarnings to be false by default")
		}
		if flags.DumpNormalized {
			t.Error("expected DumpNormalized to be false by default")
		}
		if flags.Workers != 0 {
			t.Errorf("expected Workers 0 by default, got %d", flags.Workers)
		}
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-o", "./output", "-p", "myapi", "--generate-client", "--generate-server", "--strict", "--workers", "4", "spec.yaml"}
		if err := fs.Parse(args); err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}

		if flags.Output != "./output" {
			t.Errorf("expected Output './output', got '%s'", flags.Output)
		}
		if flags.PackageName != "myapi" {
			t.Errorf("expected PackageName 'myapi', got '%s'", flags.PackageName)
		}
		if !flags.Client {
			t.Error("expected Client to be true")
		}
		if !flags.Server {
			t.Error("expected Server to be true")
		}
		if !flags.Strict {
			t.Error("expected Strict to be true")
		}
		if flags.Workers != 4 {
			t.Errorf("expected Workers 4, got %d", flags.Workers)
		}
		if fs.Arg(0) != "spec.yaml" {
			t.Errorf("expected file arg 'spec.yaml', got '%s'", fs.Arg(0))
		}
	})
}

func TestHandleGenerate_NoArgs(t *testing.T) {
	err := HandleGenerate([]string{})
	if err == nil {
		t.Error("expected error when no file provided")
	}
}

func TestHandleGenerate_Help(t *testing.T) {
	err := HandleGenerate([]string{"--help"})
	if err != nil {
		t.Errorf("unexpected error for help: %v", err)
	}
}

func TestHandleGenerate_NoOutput(t *testing.T) {
	err := HandleGenerate([]string{"../../../testdata/petstore-3.0.yaml"})
	if err == nil {
		t.Error("expected error when no output directory provided")
	}
	if err != nil && !strings.Contains(err.Error(), "output directory") {
		t.Errorf("expected output directory error, got: %v", err)
	}
}

func TestHandleGenerate_MissingFile(t *testing.T) {
	err := HandleGenerate([]string{"-o", t.TempDir(), "no-such-spec.yaml"})
	if err == nil {
		t.Error("expected error for missing specification file")
	}
}

func TestHandleGenerate_WritesFiles(t *testing.T) {
	outDir := t.TempDir()
	err := HandleGenerate([]string{
		"-o", outDir,
		"-p", "petstore",
		"--generate-client",
		"--generate-server",
		"../../../testdata/petstore-3.0.yaml",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"schemas.gen.go", "client.gen.go", "server.gen.go"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
		if !strings.Contains(string(data), "package petstore") {
			t.Errorf("expected %s to declare package petstore", name)
		}
	}
}

func TestHandleGenerate_SchemasOnly(t *testing.T) {
	outDir := t.TempDir()
	err := HandleGenerate([]string{"-o", outDir, "../../../testdata/petstore-3.1.yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "schemas.gen.go")); err != nil {
		t.Errorf("expected schemas.gen.go to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "client.gen.go")); !os.IsNotExist(err) {
		t.Error("expected client.gen.go to be absent without --generate-client")
	}
	if _, err := os.Stat(filepath.Join(outDir, "server.gen.go")); !os.IsNotExist(err) {
		t.Error("expected server.gen.go to be absent without --generate-server")
	}
}

func TestHandleGenerate_OAS2(t *testing.T) {
	outDir := t.TempDir()
	err := HandleGenerate([]string{"-o", outDir, "--generate-client", "../../../testdata/petstore-2.0.yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "client.gen.go")); err != nil {
		t.Errorf("expected client.gen.go to exist: %v", err)
	}
}
