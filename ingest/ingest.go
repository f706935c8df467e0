// Package ingest replays a JSON-lines lifecycle event stream against the
// reporter, standing in for a live host test runner.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"

	reporter "github.com/testrelay/suite-reporter"
	"github.com/testrelay/suite-reporter/collector"
	"github.com/testrelay/suite-reporter/types"
)

// Stream actions understood by the replayer.
const (
	ActionSuiteStart = "suiteStart"
	ActionEvent      = "event"
	ActionSuiteError = "suiteError"
	ActionSuiteEnd   = "suiteEnd"
)

// streamEvent is the wire shape of one line in the event stream.
type streamEvent struct {
	Action     string `json:"action"`
	Suite      string `json:"suite"`
	Test       string `json:"test,omitempty"`
	Selector   string `json:"selector,omitempty"` // test, nested, suite or unknown; defaults to test
	Status     string `json:"status,omitempty"`
	DurationMS *int64 `json:"durationMs,omitempty"` // absent means unavailable
	ErrorKind  string `json:"errorKind,omitempty"`
	Message    string `json:"message,omitempty"`
	Stack      string `json:"stack,omitempty"`
}

// Replay reads lifecycle events line by line and drives the reporter,
// holding one accumulator handle per open suite. Interleaved events from
// concurrently-running suites are supported; a malformed line aborts the
// replay.
func Replay(r *reporter.Reporter, input io.Reader, logger log.Logger) error {
	open := make(map[string]*collector.SuiteAccumulator)

	scanner := bufio.NewScanner(input)
	// Stack traces can make lines long.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var ev streamEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return fmt.Errorf("malformed event at line %d: %w", lineNo, err)
		}
		if ev.Suite == "" {
			return fmt.Errorf("event at line %d has no suite", lineNo)
		}

		switch ev.Action {
		case ActionSuiteStart:
			if _, ok := open[ev.Suite]; ok {
				return fmt.Errorf("line %d: suite %s started twice", lineNo, ev.Suite)
			}
			open[ev.Suite] = r.OnSuiteStart(ev.Suite)

		case ActionEvent:
			acc, ok := open[ev.Suite]
			if !ok {
				return fmt.Errorf("line %d: event for suite %s before suiteStart", lineNo, ev.Suite)
			}
			r.OnEvent(acc, rawEvent(ev))

		case ActionSuiteError:
			r.OnSuiteError(ev.Suite, &types.FailureDetail{
				Kind:       ev.ErrorKind,
				Message:    ev.Message,
				StackTrace: ev.Stack,
			})
			delete(open, ev.Suite)

		case ActionSuiteEnd:
			acc, ok := open[ev.Suite]
			if !ok {
				return fmt.Errorf("line %d: suiteEnd for suite %s before suiteStart", lineNo, ev.Suite)
			}
			r.OnSuiteEnd(acc)
			delete(open, ev.Suite)

		default:
			logger.Warn("skipping unknown stream action", "action", ev.Action, "line", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read event stream: %w", err)
	}

	// Suites left open at end of stream were aborted by the host; finalize
	// them so their events still reach the store.
	for suiteName, acc := range open {
		logger.Warn("suite never ended, finalizing at end of stream", "suite", suiteName)
		r.OnSuiteEnd(acc)
	}
	return nil
}

func rawEvent(ev streamEvent) types.RawEvent {
	duration := types.DurationUnknown
	if ev.DurationMS != nil {
		duration = *ev.DurationMS
	}

	var failure *types.FailureDetail
	if ev.ErrorKind != "" || ev.Message != "" || ev.Stack != "" {
		failure = &types.FailureDetail{
			Kind:       ev.ErrorKind,
			Message:    ev.Message,
			StackTrace: ev.Stack,
		}
	}

	return types.RawEvent{
		Status:         types.Status(ev.Status),
		DurationMillis: duration,
		Selector:       selector(ev),
		Failure:        failure,
		SuiteName:      ev.Suite,
	}
}

func selector(ev streamEvent) types.Selector {
	switch ev.Selector {
	case "", string(types.SelectorTest):
		return types.Selector{Kind: types.SelectorTest, Name: ev.Test}
	case string(types.SelectorNested):
		return types.Selector{Kind: types.SelectorNested, Name: ev.Test}
	case string(types.SelectorSuite):
		return types.Selector{Kind: types.SelectorSuite, Name: ev.Test}
	default:
		return types.Selector{Kind: types.SelectorUnknown, Raw: ev.Selector + ":" + ev.Test}
	}
}
