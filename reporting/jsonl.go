package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/testrelay/suite-reporter/types"
)

// recordJSON is the wire shape of one record in the JSON-lines artifact.
type recordJSON struct {
	Timestamp         time.Time `json:"timestamp"`
	Status            string    `json:"status"`
	AttributedSeconds float64   `json:"attributedDurationSeconds"`
	RawSeconds        float64   `json:"rawDurationSeconds"`
	SuiteName         string    `json:"suiteName"`
	TestName          string    `json:"testName"`
	CreationTimestamp time.Time `json:"creationTimestamp"`
	ErrorMessage      string    `json:"errorMessage"`
	StackTrace        string    `json:"stackTrace"`
}

// renderJSONL emits one JSON object per record per line, with a trailing
// newline after the last record.
func renderJSONL(records []types.ResultRecord) ([]byte, error) {
	var buf bytes.Buffer
	for _, rec := range records {
		line, err := json.Marshal(recordJSON{
			Timestamp:         rec.RunStarted,
			Status:            rec.Status,
			AttributedSeconds: rec.AttributedSeconds,
			RawSeconds:        rec.RawSeconds,
			SuiteName:         rec.SuiteName,
			TestName:          rec.TestName,
			CreationTimestamp: rec.CreatedAt,
			ErrorMessage:      rec.ErrorMessage,
			StackTrace:        rec.StackTrace,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result record: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
