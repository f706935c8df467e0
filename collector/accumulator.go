package collector

import (
	"time"

	"github.com/testrelay/suite-reporter/types"
)

// SuiteAccumulator collects the raw events of one suite execution and, on
// Finalize, converts them into result records with attributed durations.
//
// An accumulator belongs to a single suite execution context. The host calls
// AddEvent sequentially within that context, so no internal locking is
// needed; only the run-wide ResultStore is shared between contexts.
type SuiteAccumulator struct {
	suiteName  string
	runStarted time.Time
	started    time.Time
	events     []types.RawEvent

	now func() time.Time // swappable for tests
}

// NewSuiteAccumulator starts timing a suite execution.
func NewSuiteAccumulator(suiteName string, runStarted time.Time) *SuiteAccumulator {
	return &SuiteAccumulator{
		suiteName:  suiteName,
		runStarted: runStarted,
		started:    time.Now(),
		events:     make([]types.RawEvent, 0),
		now:        time.Now,
	}
}

// SuiteName returns the fully-qualified suite name this accumulator is bound to.
func (a *SuiteAccumulator) SuiteName() string {
	return a.suiteName
}

// AddEvent appends one raw event. Any status and duration is accepted.
func (a *SuiteAccumulator) AddEvent(ev types.RawEvent) {
	a.events = append(a.events, ev)
}

// Finalize stops timing and yields one result record per collected event, in
// collection order. The suite's setup/teardown overhead (wall-clock span
// minus the sum of reported durations) is split evenly across the events
// that ran; skipped and ignored events carry no share. The overhead is not
// clamped: if reported durations exceed the measured span the share goes
// negative and attributed durations fall below raw durations.
//
// Finalize must be called exactly once; the accumulator is discarded after.
func (a *SuiteAccumulator) Finalize() []types.ResultRecord {
	finished := a.now()
	elapsed := finished.Sub(a.started).Seconds()

	var sumRaw float64
	ranCount := 0
	for _, ev := range a.events {
		sumRaw += rawSeconds(ev.DurationMillis)
		if ev.Status.Ran() {
			ranCount++
		}
	}

	var perTestShare float64
	if ranCount > 0 {
		perTestShare = (elapsed - sumRaw) / float64(ranCount)
	}

	records := make([]types.ResultRecord, 0, len(a.events))
	for _, ev := range a.events {
		raw := rawSeconds(ev.DurationMillis)
		attributed := raw
		if ev.Status.Ran() {
			attributed += perTestShare
		}
		records = append(records, types.ResultRecord{
			RunStarted:        a.runStarted,
			Status:            ev.Status.Text(),
			AttributedSeconds: attributed,
			RawSeconds:        raw,
			SuiteName:         a.suiteName,
			TestName:          ev.Selector.DisplayName(),
			CreatedAt:         finished,
			ErrorMessage:      ev.Failure.FirstLine(),
			StackTrace:        stackTrace(ev.Failure),
		})
	}
	return records
}

// rawSeconds converts a reported millisecond duration to seconds, treating
// negative values (including the unavailable sentinel) as zero.
func rawSeconds(millis int64) float64 {
	if millis < 0 {
		return 0
	}
	return float64(millis) / 1000.0
}

func stackTrace(f *types.FailureDetail) string {
	if f == nil {
		return ""
	}
	return f.StackTrace
}
