package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calquist/oasvalid/generator"
	"github.com/calquist/oasvalid/internal/cliutil"
	"github.com/calquist/oasvalid/normalize"
	"github.com/calquist/oasvalid/parser"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output         string
	PackageName    string
	Client         bool
	Server         bool
	Strict         bool
	StrictSchemas  bool
	NoWarnings     bool
	DumpNormalized bool
	Workers        int
}

// SetupGenerateFlags creates and configures a FlagSet for the generate
// command. Returns the FlagSet and a GenerateFlags struct with bound flag
// variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory for generated files (required)")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files (required)")
	fs.StringVar(&flags.PackageName, "p", "api", "Go package name for generated code")
	fs.StringVar(&flags.PackageName, "package", "api", "Go package name for generated code")
	fs.BoolVar(&flags.Client, "generate-client", false, "generate a typed HTTP client")
	fs.BoolVar(&flags.Server, "generate-server", false, "generate server request validation")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on any generation issues (even warnings)")
	fs.BoolVar(&flags.StrictSchemas, "strict-schemas", false, "compile component schemas in reject-unknown-keys mode")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning and info messages")
	fs.BoolVar(&flags.DumpNormalized, "dump-normalized", false, "print the normalized 3.1-shaped document to stdout and exit")
	fs.IntVar(&flags.Workers, "workers", 0, "maximum concurrent schema compilations (0 = one per CPU)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasvalid generate [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Generate a typed validation layer from an OpenAPI specification.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasvalid generate -o ./petstore openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasvalid generate --generate-client -o ./client openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasvalid generate --generate-server -o ./server -p myapi openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oasvalid generate --generate-client -o ./client -\n")
		cliutil.Writef(fs.Output(), "  oasvalid generate --dump-normalized swagger.yaml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Validator constructors are always generated; client and server code are opt-in\n")
		cliutil.Writef(fs.Output(), "  - Each run fully replaces the .gen.go files in the output directory\n")
		cliutil.Writef(fs.Output(), "  - Use '-' as the file path to read the specification from stdin\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path, URL, or '-' for stdin")
	}
	specPath := fs.Arg(0)

	parsed, err := parseSpec(specPath)
	if err != nil {
		return err
	}

	if flags.DumpNormalized {
		return dumpNormalized(parsed, flags.NoWarnings)
	}

	if flags.Output == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output)")
	}

	g := generator.New()
	g.PackageName = flags.PackageName
	g.GenerateClient = flags.Client
	g.GenerateServer = flags.Server
	g.StrictValidation = flags.StrictSchemas
	g.IncludeInfo = !flags.NoWarnings
	g.MaxWorkers = flags.Workers

	result, err := g.GenerateParsed(parsed)
	if err != nil {
		return err
	}

	printIssues(result.Issues, flags.NoWarnings)
	if result.HasCriticalIssues() {
		return fmt.Errorf("generation failed with %d critical issue(s)", result.CriticalCount)
	}
	if flags.Strict && result.HasWarnings() {
		return fmt.Errorf("generation produced %d warning(s) and --strict is set", result.WarningCount)
	}

	if err := result.WriteFiles(flags.Output); err != nil {
		return err
	}

	cliutil.Writef(os.Stdout, "Generated %d file(s) in %s (%d schemas, %d types, %d operations) in %v\n",
		len(result.Files), flags.Output, result.GeneratedSchemas, result.GeneratedTypes, result.GeneratedOperations, result.GenerateTime)
	return nil
}

func parseSpec(specPath string) (*parser.ParseResult, error) {
	p := parser.New()
	if specPath == StdinFilePath {
		parsed, err := p.ParseReader(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("parsing stdin: %w", err)
		}
		return parsed, nil
	}
	parsed, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", specPath, err)
	}
	return parsed, nil
}

// dumpNormalized upgrades the document to the 3.1 shape and prints it as
// YAML.
func dumpNormalized(parsed *parser.ParseResult, quiet bool) error {
	norm, err := normalize.Normalize(parsed)
	if err != nil {
		return err
	}
	printIssues(norm.Issues, quiet)
	if norm.HasCriticalIssues() {
		return fmt.Errorf("normalization failed with %d critical issue(s)", norm.CriticalCount)
	}

	out, err := yaml.Marshal(norm.Document)
	if err != nil {
		return fmt.Errorf("marshaling normalized document: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
