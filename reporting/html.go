package reporting

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/acarl005/stripansi"

	"github.com/testrelay/suite-reporter/types"
)

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Test Results</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
th { background: #f0f0f0; }
tr.status-error td, tr.status-failure td { background: #fdecea; }
tr.status-skipped td, tr.status-ignored td { color: #888; }
td.duration { text-align: right; font-variant-numeric: tabular-nums; }
pre { margin: 0; white-space: pre-wrap; font-size: 0.85em; }
</style>
</head>
<body>
<h1>Test Results</h1>
<p>Run started {{formatTime .RunStarted}} &mdash; {{len .Records}} record(s)</p>
<table>
<thead>
<tr><th>Status</th><th>Attributed (s)</th><th>Raw (s)</th><th>Suite</th><th>Test</th><th>Error</th><th>Stack Trace</th></tr>
</thead>
<tbody>
{{- range .Records}}
<tr class="status-{{statusClass .Status}}">
<td>{{.Status}}</td>
<td class="duration">{{formatSeconds .AttributedSeconds}}</td>
<td class="duration">{{formatSeconds .RawSeconds}}</td>
<td>{{.SuiteName}}</td>
<td>{{.TestName}}</td>
<td>{{clean .ErrorMessage}}</td>
<td><pre>{{clean .StackTrace}}</pre></td>
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("results").Funcs(template.FuncMap{
	"formatSeconds": formatSeconds,
	"formatTime": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
	"statusClass": strings.ToLower,
	"clean": stripansi.Strip,
}).Parse(htmlReportTemplate))

type htmlReportData struct {
	RunStarted time.Time
	Records    []types.ResultRecord
}

// renderHTML produces a well-formed HTML document with one table row per
// record.
func renderHTML(records []types.ResultRecord) ([]byte, error) {
	data := htmlReportData{Records: records}
	if len(records) > 0 {
		data.RunStarted = records[0].RunStarted
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}
