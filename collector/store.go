package collector

import (
	"sync"
	"time"

	"github.com/testrelay/suite-reporter/types"
)

// ResultStore is the run-wide, append-only sequence of result records. It is
// the single mutable resource shared between suite execution contexts, so
// every append takes the store lock; insertion order is completion order.
type ResultStore struct {
	mu         sync.Mutex
	runStarted time.Time
	records    []types.ResultRecord
}

// NewResultStore creates an empty store for a run that started at runStarted.
func NewResultStore(runStarted time.Time) *ResultStore {
	return &ResultStore{
		runStarted: runStarted,
		records:    make([]types.ResultRecord, 0),
	}
}

// RunStarted returns the run start timestamp the store was created with.
func (s *ResultStore) RunStarted() time.Time {
	return s.runStarted
}

// Append atomically appends one suite's batch of records.
func (s *ResultStore) Append(records []types.ResultRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// AppendFailure atomically appends the single synthetic ERROR record for a
// throwable that escaped suite execution before normal completion.
func (s *ResultStore) AppendFailure(suiteName string, failure *types.FailureDetail) {
	record := types.ResultRecord{
		RunStarted:        s.runStarted,
		Status:            types.StatusError.Text(),
		AttributedSeconds: 0,
		RawSeconds:        0,
		SuiteName:         suiteName,
		TestName:          types.SuiteFailureName,
		CreatedAt:         time.Now(),
		ErrorMessage:      failure.FirstLine(),
		StackTrace:        stackTrace(failure),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// Snapshot returns a copy of the full record sequence at call time. The host
// only reads it after all suite completions, so a copy taken under the lock
// is a consistent view of the run.
func (s *ResultStore) Snapshot() []types.ResultRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ResultRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records appended so far.
func (s *ResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
