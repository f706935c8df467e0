package reporter

import (
	"errors"
	"fmt"

	"github.com/testrelay/suite-reporter/reporting"
)

// RuntimeError represents an operational error that should lead to exit code 2
// Examples include configuration errors, file not found, etc.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// ReportError represents a failure to render, write or publish the artifact
// of one format (exit code 1). Formats already written are unaffected.
type ReportError struct {
	Format reporting.Format
	Err    error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report failure (%s): %v", e.Format, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError for the given format
func NewReportError(format reporting.Format, err error) *ReportError {
	return &ReportError{Format: format, Err: err}
}

// IsReportError checks if the error is or wraps a ReportError
func IsReportError(err error) bool {
	var reportErr *ReportError
	return err != nil && errors.As(err, &reportErr)
}
