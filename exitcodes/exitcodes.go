// Package exitcodes defines the standard exit codes used by suite-reporter.
package exitcodes

// Exit code constants used by suite-reporter
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): Used when all report artifacts were written
// * ReportFailure (1): Used when writing or publishing an artifact failed
// * RuntimeErr (2): Used for runtime errors such as bad configuration or a malformed event stream
const (
	Success       = 0 // All artifacts written
	ReportFailure = 1 // Artifact write or publish failures
	RuntimeErr    = 2 // Runtime errors
)
