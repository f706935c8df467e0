package reporting

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"

	"github.com/testrelay/suite-reporter/types"
)

// renderText emits one space-delimited line per record in the fixed column
// order: status, attributed duration, raw duration, suite name, test name,
// error message first line, stack trace. Internal whitespace is substituted
// so every record stays on a single line.
func renderText(records []types.ResultRecord) []byte {
	var buf bytes.Buffer
	for _, rec := range records {
		fields := []string{
			rec.Status,
			formatSeconds(rec.AttributedSeconds),
			formatSeconds(rec.RawSeconds),
			sanitizeField(rec.SuiteName),
			sanitizeField(rec.TestName),
			sanitizeField(rec.ErrorMessage),
			sanitizeField(rec.StackTrace),
		}
		buf.WriteString(strings.Join(fields, " "))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}

// sanitizeField strips ANSI escapes and collapses every run of whitespace
// (including newlines in stack traces) to a single underscore, keeping the
// one-line-per-record invariant and the space-delimited column layout.
func sanitizeField(s string) string {
	s = stripansi.Strip(s)
	return strings.Join(strings.Fields(s), "_")
}
