package normalize

import (
	"fmt"

	"github.com/calquist/oasvalid/internal/issues"
	"github.com/calquist/oasvalid/internal/severity"
	"github.com/calquist/oasvalid/parser"
)

// Severity indicates the severity level of a normalization issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about normalization choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy or best-effort rewrites
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates features that cannot be normalized
	SeverityCritical = severity.SeverityCritical
)

// Issue represents a single normalization issue or limitation
type Issue = issues.Issue

// Result contains the results of normalizing an OpenAPI document
type Result struct {
	// Document is the normalized 3.1-shaped document (the input, rewritten in place)
	Document *parser.Document
	// SourceVersion is the raw version string of the input document
	SourceVersion string
	// SourceOASVersion is the enumerated source version series
	SourceOASVersion parser.OASVersion
	// Issues contains all normalization issues
	Issues []Issue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if normalization completed without critical issues
	Success bool
}

// HasCriticalIssues returns true if there are any critical issues
func (r *Result) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// Normalizer rewrites parsed documents to the 3.1 shape
type Normalizer struct {
	// IncludeInfo determines whether to record informational messages
	IncludeInfo bool
}

// New creates a new Normalizer instance with default settings
func New() *Normalizer {
	return &Normalizer{IncludeInfo: true}
}

// Normalize is a convenience function that normalizes an already-parsed
// document with default settings.
func Normalize(parseResult *parser.ParseResult) (*Result, error) {
	return New().Normalize(parseResult)
}

// Normalize upgrades the parsed document to the 3.1 shape in place and
// returns the accounting of what was rewritten. The input ParseResult's
// Document is mutated.
func (n *Normalizer) Normalize(parseResult *parser.ParseResult) (*Result, error) {
	if parseResult == nil || parseResult.Document == nil {
		return nil, fmt.Errorf("normalize: nil parse result")
	}

	result := &Result{
		Document:         parseResult.Document,
		SourceVersion:    parseResult.Version,
		SourceOASVersion: parseResult.OASVersion,
	}

	doc := parseResult.Document
	switch parseResult.OASVersion {
	case parser.OASVersion20:
		n.upgradeOAS2(doc, result)
	case parser.OASVersion30, parser.OASVersion31:
		// Already 3.x shaped; only schema-level canonicalization applies.
	default:
		return nil, fmt.Errorf("normalize: unsupported OpenAPI version: %s", parseResult.Version)
	}

	// Schema-level canonicalization runs on every document, including ones
	// just upgraded from 2.0.
	forEachSchema(doc, func(path string, s *parser.Schema) {
		n.canonicalizeSchema(path, s, result)
	})

	doc.OpenAPI = "3.1.0"
	doc.Swagger = ""
	doc.OASVersion = parser.OASVersion31

	n.updateCounts(result)
	result.Success = result.CriticalCount == 0
	return result, nil
}

// addIssue records a normalization issue at the given document path
func (n *Normalizer) addIssue(result *Result, path, message string, sev Severity) {
	if sev == SeverityInfo && !n.IncludeInfo {
		return
	}
	result.Issues = append(result.Issues, Issue{
		Path:     path,
		Message:  message,
		Severity: sev,
	})
}

// updateCounts recomputes the per-severity counters from the issue list
func (n *Normalizer) updateCounts(result *Result) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.CriticalCount = 0
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
}

// canonicalizeSchema rewrites version quirks on a single schema node:
// boolean exclusive bounds become numeric bounds, and single-element type
// arrays collapse to scalars. Nullable flags and type arrays containing
// "null" are left alone; the compiler understands both spellings.
func (n *Normalizer) canonicalizeSchema(path string, s *parser.Schema, result *Result) {
	if b, ok := s.ExclusiveMaximum.(bool); ok {
		if b && s.Maximum != nil {
			s.ExclusiveMaximum = *s.Maximum
			s.Maximum = nil
		} else {
			if b {
				n.addIssue(result, path, "exclusiveMaximum: true without maximum has no effect, dropped", SeverityWarning)
			}
			s.ExclusiveMaximum = nil
		}
	}
	if b, ok := s.ExclusiveMinimum.(bool); ok {
		if b && s.Minimum != nil {
			s.ExclusiveMinimum = *s.Minimum
			s.Minimum = nil
		} else {
			if b {
				n.addIssue(result, path, "exclusiveMinimum: true without minimum has no effect, dropped", SeverityWarning)
			}
			s.ExclusiveMinimum = nil
		}
	}

	if types, ok := s.Type.([]any); ok && len(types) == 1 {
		if t, ok := types[0].(string); ok && t != "null" {
			s.Type = t
		}
	}
}
