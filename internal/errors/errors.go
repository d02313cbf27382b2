// Package errors provides centralized error definitions and error handling
// utilities for relprep. It defines the sentinel errors shared across the
// pipeline, domain-specific error types with context builders, and
// classification helpers used when deciding what to show the operator.
//
// The package follows a two-layer taxonomy:
//
// Domain-specific errors wrap failures from a particular subsystem:
//   - StepError: a pipeline step's external tool exited non-zero
//   - ManifestError: the manifest could not be read or interpreted
//   - GitError: a git operation failed (staging, committing)
//
// Sentinel errors mark conditions callers branch on with errors.Is:
//
//	if errors.Is(err, errors.ErrNoVersionLine) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience so callers can import
// only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Pipeline sentinel errors
var (
	// ErrStepFailed indicates that a pipeline step's external tool exited non-zero.
	ErrStepFailed = New("step failed")
	// ErrNothingToCommit indicates that the commit step found no staged changes.
	ErrNothingToCommit = New("nothing to commit")
	// ErrCanceled indicates that the run was interrupted before its steps
	// finished.
	ErrCanceled = New("pipeline canceled")
)

// Manifest sentinel errors
var (
	// ErrNoVersionLine indicates that no line of the manifest matched the
	// version pattern. Recovery requires a human to fix the manifest's shape.
	ErrNoVersionLine = New(`manifest contains no version = "..." line`)
	// ErrInvalidVersion indicates that a supplied release version failed
	// semver validation.
	ErrInvalidVersion = New("invalid release version")
)

// Git sentinel errors
var (
	// ErrNotGitRepository indicates that the directory is not a git repository.
	ErrNotGitRepository = New("not a git repository")
)

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// IsUserFacing returns whether the error is safe to show the operator as-is.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// StepError represents a pipeline step whose external collaborator failed.
// The captured tool output is the user-visible diagnostic; the pipeline never
// wraps it in further interpretation.
//
// Example:
//
//	err := errors.NewStepError("refresh lock", errors.ErrStepFailed).
//		WithTool("cargo").WithOutput(string(out))
type StepError struct {
	baseError
	Step   string
	Tool   string
	Output string
}

// NewStepError creates a new StepError for the named step.
func NewStepError(step string, cause error) *StepError {
	return &StepError{
		baseError: baseError{
			message:    "step failed",
			cause:      cause,
			userFacing: true,
		},
		Step: step,
	}
}

// WithTool records the external command that failed.
func (e *StepError) WithTool(tool string) *StepError {
	e.Tool = tool
	return e
}

// WithOutput records the tool's combined output.
func (e *StepError) WithOutput(output string) *StepError {
	e.Output = output
	return e
}

// Error returns the formatted error message.
func (e *StepError) Error() string {
	var parts []string
	if e.Step != "" {
		parts = append(parts, fmt.Sprintf("step=%s", e.Step))
	}
	if e.Tool != "" {
		parts = append(parts, fmt.Sprintf("tool=%s", e.Tool))
	}

	prefix := "release error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("release error [%s]", strings.Join(parts, ", "))
	}

	msg := e.message
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s\ntool output: %s", msg, strings.TrimRight(e.Output, "\n"))
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

// Is checks if this error matches the target.
func (e *StepError) Is(target error) bool {
	if _, ok := target.(*StepError); ok {
		return true
	}
	if errors.Is(target, ErrStepFailed) {
		return true
	}
	return e.baseError.Is(target)
}

// ManifestError represents a failure to read or interpret the manifest.
//
// Example:
//
//	err := errors.NewManifestError("version extraction failed", errors.ErrNoVersionLine).
//		WithPath("Cargo.toml")
type ManifestError struct {
	baseError
	Path string
}

// NewManifestError creates a new ManifestError.
func NewManifestError(message string, cause error) *ManifestError {
	return &ManifestError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			userFacing: true,
		},
	}
}

// WithPath records the manifest path.
func (e *ManifestError) WithPath(path string) *ManifestError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *ManifestError) Error() string {
	prefix := "manifest error"
	if e.Path != "" {
		prefix = fmt.Sprintf("manifest error [path=%s]", e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ManifestError) Is(target error) bool {
	if _, ok := target.(*ManifestError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// GitError represents errors from git operations.
//
// Example:
//
//	err := errors.NewGitError("failed to stage changes", err).
//		WithRepository(dir).WithGitOutput(string(out))
type GitError struct {
	baseError
	Repository string
	GitOutput  string
}

// NewGitError creates a new GitError.
func NewGitError(message string, cause error) *GitError {
	return &GitError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			userFacing: true,
		},
	}
}

// WithRepository adds a repository path to the error context.
func (e *GitError) WithRepository(path string) *GitError {
	e.Repository = path
	return e
}

// WithGitOutput adds git command output to the error context.
func (e *GitError) WithGitOutput(output string) *GitError {
	e.GitOutput = output
	return e
}

// Error returns the formatted error message.
func (e *GitError) Error() string {
	prefix := "git error"
	if e.Repository != "" {
		prefix = fmt.Sprintf("git error [repo=%s]", e.Repository)
	}

	msg := e.message
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	if e.GitOutput != "" {
		msg = fmt.Sprintf("%s\ngit output: %s", msg, strings.TrimRight(e.GitOutput, "\n"))
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

// Is checks if this error matches the target.
func (e *GitError) Is(target error) bool {
	if _, ok := target.(*GitError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or configuration.
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// IsUserFacing returns true if the error message is safe to display to the
// operator without an "internal error" preamble.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var uf interface{ IsUserFacing() bool }
	if As(err, &uf) {
		return uf.IsUserFacing()
	}
	return false
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

