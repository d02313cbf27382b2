package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "steps.lock.command")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Manifest.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "manifest.path",
			Value:   c.Manifest.Path,
			Message: "manifest path must not be empty",
		})
	}

	if c.Steps.Propagate.Command == "" {
		errs = append(errs, ValidationError{
			Field:   "steps.propagate.command",
			Value:   c.Steps.Propagate.Command,
			Message: "propagate command must not be empty",
		})
	}

	if c.Steps.Lock.Command == "" {
		errs = append(errs, ValidationError{
			Field:   "steps.lock.command",
			Value:   c.Steps.Lock.Command,
			Message: "lock command must not be empty",
		})
	}

	if len(c.Steps.Lock.Packages) == 0 {
		errs = append(errs, ValidationError{
			Field:   "steps.lock.packages",
			Value:   c.Steps.Lock.Packages,
			Message: "at least one package must be named for the scoped lock refresh",
		})
	}

	if c.Steps.Changelog.Command == "" {
		errs = append(errs, ValidationError{
			Field:   "steps.changelog.command",
			Value:   c.Steps.Changelog.Command,
			Message: "changelog command must not be empty",
		})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errs
}
