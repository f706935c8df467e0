package types

import "time"

// ResultRecord is the normalized, immutable form of one test outcome.
// AttributedSeconds includes the test's amortized share of suite
// setup/teardown overhead; RawSeconds is the reported duration alone.
type ResultRecord struct {
	RunStarted        time.Time
	Status            string // uppercased status text
	AttributedSeconds float64
	RawSeconds        float64
	SuiteName         string
	TestName          string
	CreatedAt         time.Time
	ErrorMessage      string // first line of the failure message, empty if none
	StackTrace        string // full stack trace text, empty if none
}
