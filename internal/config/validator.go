package config

import (
	"fmt"
	"strings"

	"github.com/opmodel/kickstart/internal/features"
	"github.com/opmodel/kickstart/internal/project"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks every field of cfg and reports all problems at once.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.PackageManager != "" {
		if _, err := project.ParsePackageManager(cfg.PackageManager); err != nil {
			errs = append(errs, ValidationError{
				Field:   "packageManager",
				Message: fmt.Sprintf("must be one of pnpm, yarn, npm (got %q)", cfg.PackageManager),
			})
		}
	}

	for _, id := range cfg.Packages {
		if _, ok := features.Lookup(strings.TrimSpace(id)); !ok {
			errs = append(errs, ValidationError{
				Field:   "packages",
				Message: fmt.Sprintf("unknown package %q (valid: %s)", id, strings.Join(features.IDs(), ", ")),
			})
		}
	}

	if cfg.OutputDir != "" && strings.TrimSpace(cfg.OutputDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "outputDir",
			Message: "must not be empty or whitespace only",
		})
	}

	for i, p := range cfg.Install.RecoverablePatterns {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("install.recoverablePatterns[%d]", i),
				Message: "must not be empty",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile validates a configuration file at the given path.
func ValidateFile(path string) error {
	cfg, err := NewLoader().Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return Validate(cfg)
}
