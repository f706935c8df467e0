package reporting

import (
	"fmt"

	"github.com/testrelay/suite-reporter/types"
)

// Format identifies a report output format. The set is closed; consumers
// locate artifacts by the fixed extension of each format.
type Format string

const (
	FormatText  Format = "text"
	FormatHTML  Format = "html"
	FormatJSONL Format = "jsonl"
)

// AllFormats lists every supported format in rendering order.
var AllFormats = []Format{FormatText, FormatHTML, FormatJSONL}

// ParseFormat resolves a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatHTML, FormatJSONL:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown report format %q (expected one of text, html, jsonl)", s)
}

// Extension returns the artifact file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatHTML:
		return "html"
	case FormatJSONL:
		return "jsonl"
	}
	return string(f)
}

// Render maps the ordered record sequence to the serialized artifact for
// this format. Renderers are pure: the input is never mutated and the same
// sequence always renders to identical bytes.
func (f Format) Render(records []types.ResultRecord) ([]byte, error) {
	switch f {
	case FormatText:
		return renderText(records), nil
	case FormatHTML:
		return renderHTML(records)
	case FormatJSONL:
		return renderJSONL(records)
	}
	return nil, fmt.Errorf("unknown report format %q", f)
}
