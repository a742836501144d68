package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/golift/pkg/config"
	"github.com/yaklabco/golift/pkg/liftover"
	"github.com/yaklabco/golift/pkg/query"
	"github.com/yaklabco/golift/pkg/reporter"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "pairs.demo.blocks_ab").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if _, err := liftover.ParsePolicy(cfg.Policy); err != nil {
		result.addError("policy", cfg.Policy, "%v", err)
	}
	if _, err := query.ParseFormat(cfg.InputFormat); err != nil {
		result.addError("input_format", cfg.InputFormat, "%v", err)
	}
	if _, err := reporter.ParseFormat(cfg.Format); err != nil {
		result.addError("format", cfg.Format, "%v", err)
	}
	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Strict && cfg.AllowSplit {
		result.addWarning("policy", nil, "both --strict and --allow-split given; --strict wins")
	}

	validatePairs(cfg, result)
	validateCheck(cfg, result)

	return result
}

func validatePairs(cfg *config.Config, result *ValidationResult) {
	if cfg.DefaultPair != "" && !cfg.HasPair(cfg.DefaultPair) {
		result.addError("default_pair", cfg.DefaultPair, "unknown genome pair %q", cfg.DefaultPair)
	}

	for _, name := range cfg.PairNames() {
		pair := cfg.Pairs[name]
		if pair.BlocksAB == "" {
			result.addError("pairs."+name+".blocks_ab", "", "a genome pair needs an A→B block file")
		}
		if pair.BlocksBA == "" {
			result.addWarning("pairs."+name+".blocks_ba", "", "no B→A block file; round trips need --blocks-ba")
		}
	}
}

func validateCheck(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Check.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.addError(fmt.Sprintf("check.extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}
	for i, pattern := range cfg.Check.Ignore {
		// filepath.Match returns an error only for malformed patterns.
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("check.ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
