package types

import (
	"fmt"
	"strings"
)

// Status represents the possible outcomes of a single test execution
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
	StatusIgnored Status = "ignored"
	StatusPending Status = "pending"
)

// Ran reports whether an event with this status actually executed. Skipped
// and ignored tests carry no setup overhead share.
func (s Status) Ran() bool {
	return s != StatusSkipped && s != StatusIgnored
}

// Text returns the uppercased status text used in result records.
func (s Status) Text() string {
	return strings.ToUpper(string(s))
}

// DurationUnknown is the sentinel for events whose duration was not reported.
const DurationUnknown int64 = -1

// SelectorKind classifies the identity attached to an event
type SelectorKind string

const (
	SelectorTest    SelectorKind = "test"
	SelectorNested  SelectorKind = "nested"
	SelectorSuite   SelectorKind = "suite"
	SelectorUnknown SelectorKind = "unknown"
)

// SuiteFailureName is the test name reported for suite-level failures.
const SuiteFailureName = "(suite level failure)"

// Selector identifies the test (or suite) an event belongs to
type Selector struct {
	Kind SelectorKind
	Name string // test name for test and nested selectors
	Raw  string // textual form, used for the unknown-kind fallback
}

// DisplayName resolves the selector to a human-readable test name.
func (s Selector) DisplayName() string {
	switch s.Kind {
	case SelectorTest, SelectorNested:
		return s.Name
	case SelectorSuite:
		return SuiteFailureName
	default:
		return fmt.Sprintf("unknown selector [%s]", s.Raw)
	}
}

// FailureDetail carries the message and stack trace of a failed test or a
// throwable that escaped suite execution.
type FailureDetail struct {
	Kind       string // failure type name, used when the message is empty
	Message    string
	StackTrace string
}

// FirstLine returns the first line of the failure message, falling back to
// the failure kind when no message is present.
func (f *FailureDetail) FirstLine() string {
	if f == nil {
		return ""
	}
	if f.Message == "" {
		return f.Kind
	}
	line, _, _ := strings.Cut(f.Message, "\n")
	return line
}

// RawEvent is one test outcome as reported by the host runner
type RawEvent struct {
	Status         Status
	DurationMillis int64 // DurationUnknown when the host could not measure
	Selector       Selector
	Failure        *FailureDetail // nil unless the test failed or errored
	SuiteName      string
}
