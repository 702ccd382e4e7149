package generator

import (
	"fmt"

	"github.com/calquist/oasvalid/parser"
)

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	packageName      string
	generateClient   bool
	generateServer   bool
	strictValidation bool
	includeInfo      bool
	userAgent        string
	maxWorkers       int
}

// WithFilePath sets the input specification path or URL.
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		if path == "" {
			return fmt.Errorf("file path must not be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithParsed uses an already-parsed specification as input.
func WithParsed(parsed *parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		if parsed == nil {
			return fmt.Errorf("parsed result must not be nil")
		}
		cfg.parsed = parsed
		return nil
	}
}

// WithPackageName sets the Go package name for generated code.
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if name != "" {
			cfg.packageName = name
		}
		return nil
	}
}

// WithClient enables or disables typed HTTP client generation.
func WithClient(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.generateClient = enabled
		return nil
	}
}

// WithServer enables or disables server request-validation generation.
func WithServer(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.generateServer = enabled
		return nil
	}
}

// WithStrictValidation compiles component schemas in reject-unknown-keys
// mode.
func WithStrictValidation(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictValidation = enabled
		return nil
	}
}

// WithIncludeInfo controls whether informational issues are reported.
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string used when fetching URL inputs.
func WithUserAgent(userAgent string) Option {
	return func(cfg *generateConfig) error {
		cfg.userAgent = userAgent
		return nil
	}
}

// WithMaxWorkers caps concurrent schema compilations.
func WithMaxWorkers(n int) Option {
	return func(cfg *generateConfig) error {
		if n < 0 {
			return fmt.Errorf("max workers must not be negative")
		}
		cfg.maxWorkers = n
		return nil
	}
}

// GenerateWithOptions generates a validation layer using functional options.
// Exactly one input source option (WithFilePath or WithParsed) must be given.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithPackageName("petstore"),
//	    generator.WithClient(true),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		PackageName:      cfg.packageName,
		GenerateClient:   cfg.generateClient,
		GenerateServer:   cfg.generateServer,
		StrictValidation: cfg.strictValidation,
		IncludeInfo:      cfg.includeInfo,
		UserAgent:        cfg.userAgent,
		MaxWorkers:       cfg.maxWorkers,
	}

	if cfg.filePath != nil {
		return g.Generate(*cfg.filePath)
	}
	return g.GenerateParsed(cfg.parsed)
}

func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		packageName: "api",
		includeInfo: true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.filePath == nil && cfg.parsed == nil {
		return nil, fmt.Errorf("an input source is required (WithFilePath or WithParsed)")
	}
	if cfg.filePath != nil && cfg.parsed != nil {
		return nil, fmt.Errorf("only one input source may be set")
	}
	return cfg, nil
}
