package generator

import (
	"fmt"
	"runtime"
	"time"

	"github.com/calquist/oasvalid/internal/issues"
	"github.com/calquist/oasvalid/internal/severity"
	"github.com/calquist/oasvalid/normalize"
	"github.com/calquist/oasvalid/parser"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates constraints that could not be expressed
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates validation errors
	SeverityError = severity.SeverityError
	// SeverityCritical indicates input that cannot be generated from
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "schemas.gen.go")
	Name string
	// Content is the generated Go source code
	Content []byte
}

// GenerateResult contains the results of generating a validation layer from
// an OpenAPI specification.
type GenerateResult struct {
	// Files contains all generated files
	Files []GeneratedFile
	// SourceVersion is the detected source OAS version string
	SourceVersion string
	// SourceOASVersion is the enumerated source OAS version
	SourceOASVersion parser.OASVersion
	// PackageName is the Go package name used in generation
	PackageName string
	// Issues contains all generation issues, normalization issues included
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// LoadTime is the time taken to load and parse the source document
	LoadTime time.Duration
	// GenerateTime is the time taken to normalize, compile, and emit
	GenerateTime time.Duration
	// GeneratedSchemas is the count of emitted validator constructors
	GeneratedSchemas int
	// GeneratedTypes is the count of emitted inferred type declarations
	GeneratedTypes int
	// GeneratedOperations is the count of operations covered
	GeneratedOperations int
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator drives validation-layer generation from OpenAPI specifications.
type Generator struct {
	// PackageName is the Go package name for generated code.
	// If empty, defaults to "api".
	PackageName string

	// GenerateClient enables typed HTTP client generation
	GenerateClient bool

	// GenerateServer enables server request-validation generation
	GenerateServer bool

	// StrictValidation compiles component schemas in reject-unknown-keys
	// mode. Server parameter schemas are strict regardless (headers
	// excepted); this flag widens strictness to all emitted validators.
	StrictValidation bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string

	// MaxWorkers caps concurrent schema compilations. Zero means one worker
	// per CPU.
	MaxWorkers int
}

// New creates a Generator with default settings.
func New() *Generator {
	return &Generator{
		PackageName: "api",
		IncludeInfo: true,
	}
}

// Generate parses the specification at specPath (a file path or URL) and
// generates the validation layer from it.
func (g *Generator) Generate(specPath string) (*GenerateResult, error) {
	p := parser.New()
	if g.UserAgent != "" {
		p.UserAgent = g.UserAgent
	}
	parsed, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse %s: %w", specPath, err)
	}
	return g.GenerateParsed(parsed)
}

// GenerateParsed generates the validation layer from an already-parsed
// specification.
func (g *Generator) GenerateParsed(parsed *parser.ParseResult) (*GenerateResult, error) {
	start := time.Now()

	result := &GenerateResult{
		PackageName: g.packageName(),
	}
	if parsed != nil {
		result.SourceVersion = parsed.Version
		result.SourceOASVersion = parsed.OASVersion
		result.LoadTime = parsed.LoadTime
	}

	normalizer := normalize.New()
	normalizer.IncludeInfo = g.IncludeInfo
	norm, err := normalizer.Normalize(parsed)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	result.Issues = append(result.Issues, norm.Issues...)

	if err := g.generate(norm.Document, result); err != nil {
		return nil, err
	}

	updateCounts(result)
	result.Success = result.CriticalCount == 0
	result.GenerateTime = time.Since(start)
	return result, nil
}

func (g *Generator) packageName() string {
	if g.PackageName == "" {
		return "api"
	}
	return g.PackageName
}

func (g *Generator) workers() int {
	if g.MaxWorkers > 0 {
		return g.MaxWorkers
	}
	return runtime.NumCPU()
}

// generate compiles the document and assembles the output files.
func (g *Generator) generate(doc *parser.Document, result *GenerateResult) error {
	components, err := g.buildComponentArtifacts(doc, result)
	if err != nil {
		return err
	}

	var ops []operationArtifacts
	if g.GenerateClient || g.GenerateServer {
		ops, err = g.buildOperationArtifacts(doc, result)
		if err != nil {
			return err
		}
	}

	if err := checkDuplicateArtifacts(components, ops); err != nil {
		return err
	}

	schemas, err := g.renderSchemasFile(doc, components, ops)
	if err != nil {
		return err
	}
	result.Files = append(result.Files, GeneratedFile{Name: schemasFileName, Content: schemas})

	if g.GenerateClient {
		content, err := g.renderClientFile(doc, ops)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, GeneratedFile{Name: clientFileName, Content: content})
	}
	if g.GenerateServer {
		content, err := g.renderServerFile(doc, ops)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, GeneratedFile{Name: serverFileName, Content: content})
	}

	result.GeneratedSchemas = len(components)
	for _, op := range ops {
		result.GeneratedSchemas += len(op.bodies)
	}
	for _, a := range components {
		if a.typeDecl != "" {
			result.GeneratedTypes++
		}
	}
	result.GeneratedOperations = len(ops)
	return nil
}

func addIssue(result *GenerateResult, path, message string, sev Severity) {
	result.Issues = append(result.Issues, GenerateIssue{
		Path:     path,
		Message:  message,
		Severity: sev,
	})
}

func updateCounts(result *GenerateResult) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.CriticalCount = 0
	for _, iss := range result.Issues {
		switch iss.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
}
