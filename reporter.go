// Package reporter aggregates test-execution events from a host test runner
// into per-suite result records and renders them into persisted report
// artifacts at the end of the run.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ethereum/go-ethereum/log"

	"github.com/testrelay/suite-reporter/collector"
	"github.com/testrelay/suite-reporter/metrics"
	"github.com/testrelay/suite-reporter/publish"
	"github.com/testrelay/suite-reporter/reporting"
	"github.com/testrelay/suite-reporter/types"
)

const (
	artifactPrefix     = "test-results"
	latestBasename     = "test-results-latest"
	runTimestampFormat = "20060102-150405"
)

// Reporter is the host-facing lifecycle core. The host calls OnSuiteStart
// once per suite, feeds events through the returned accumulator handle, and
// calls OnRunComplete once after every suite has finished. Suites may run
// concurrently on separate contexts; the shared result store serializes
// their completions.
type Reporter struct {
	cfg    *Config
	log    log.Logger
	runID  string
	store  *collector.ResultStore
	tracer trace.Tracer
}

// New creates a Reporter for a single run, starting the run clock.
func New(cfg *Config) (*Reporter, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	logger := cfg.Log
	if logger == nil {
		logger = log.Root()
	}

	r := &Reporter{
		cfg:    cfg,
		log:    logger,
		runID:  uuid.New().String(),
		store:  collector.NewResultStore(time.Now()),
		tracer: otel.Tracer("suite-reporter"),
	}
	r.log.Debug("created reporter", "run_id", r.runID, "outdir", cfg.OutputDir, "formats", cfg.Formats)
	return r, nil
}

// RunID returns the identifier minted for this run.
func (r *Reporter) RunID() string {
	return r.runID
}

// OnInit ensures the output directory exists. Safe to call more than once.
func (r *Reporter) OnInit() error {
	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return NewRuntimeError(fmt.Errorf("failed to create output directory %s: %w", r.cfg.OutputDir, err))
	}
	return nil
}

// OnSuiteStart begins collecting events for one suite execution. The
// returned handle must be passed to every OnEvent and OnSuiteEnd call for
// that suite; there is no hidden per-context state.
func (r *Reporter) OnSuiteStart(suiteName string) *collector.SuiteAccumulator {
	r.log.Debug("suite started", "run_id", r.runID, "suite", suiteName)
	return collector.NewSuiteAccumulator(suiteName, r.store.RunStarted())
}

// OnEvent forwards one raw event to the suite's accumulator.
func (r *Reporter) OnEvent(acc *collector.SuiteAccumulator, ev types.RawEvent) {
	acc.AddEvent(ev)
}

// OnSuiteError records a throwable that escaped suite execution as a single
// synthetic ERROR record and surfaces it to the diagnostic stream
// immediately, so operators see it even if reports are consumed later.
func (r *Reporter) OnSuiteError(suiteName string, failure *types.FailureDetail) {
	r.log.Error("suite-level failure",
		"run_id", r.runID,
		"suite", suiteName,
		"err", failure.FirstLine(),
		"stack", failure.StackTrace)
	metrics.RecordSuiteFailure(r.runID, suiteName)
	r.store.AppendFailure(suiteName, failure)
}

// OnSuiteEnd finalizes the suite's accumulator and appends its records to
// the run-wide store. The (possibly slow) attribution computation happens
// outside the store lock; only the batch append is serialized.
func (r *Reporter) OnSuiteEnd(acc *collector.SuiteAccumulator) {
	records := acc.Finalize()
	r.store.Append(records)
	for _, rec := range records {
		metrics.RecordResult(r.runID, rec.Status)
	}
	r.log.Debug("suite finished", "run_id", r.runID, "suite", acc.SuiteName(), "records", len(records))
}

// OutputForTest reports captured per-test content. This core does not
// collect any.
func (r *Reporter) OutputForTest(suiteName, testName string) string {
	return "none available"
}

// OnRunComplete renders the full record sequence once per configured format,
// writes each artifact under the output directory and publishes the stable
// "latest" path for it. Each format's write is independent: a failure
// surfaces for that format but artifacts already written stay in place.
func (r *Reporter) OnRunComplete(ctx context.Context) error {
	records := r.store.Snapshot()
	metrics.RecordRunRecords(r.runID, len(records))

	stamp := r.store.RunStarted().Format(runTimestampFormat)

	var errs []error
	for _, format := range r.cfg.Formats {
		if err := r.writeReport(ctx, format, records, stamp); err != nil {
			metrics.RecordReportWriteFailure(r.runID, string(format))
			r.log.Error("failed to write report artifact", "run_id", r.runID, "format", format, "err", err)
			errs = append(errs, NewReportError(format, err))
			continue
		}
		metrics.RecordReportWritten(r.runID, string(format))
	}

	r.printSummary(records)
	return errors.Join(errs...)
}

func (r *Reporter) writeReport(ctx context.Context, format reporting.Format, records []types.ResultRecord, stamp string) error {
	_, span := r.tracer.Start(ctx, "report.write",
		trace.WithAttributes(
			attribute.String("report.format", string(format)),
			attribute.Int("report.records", len(records)),
		))
	defer span.End()

	content, err := format.Render(records)
	if err != nil {
		return err
	}

	artifact := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("%s-%s.%s", artifactPrefix, stamp, format.Extension()))
	if err := os.WriteFile(artifact, content, 0644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", artifact, err)
	}

	latest := filepath.Join(r.cfg.OutputDir, latestBasename+"."+format.Extension())
	if err := publish.Publish(artifact, latest, r.cfg.LatestMode); err != nil {
		return err
	}

	r.log.Info("report artifact written", "run_id", r.runID, "format", format, "path", artifact)
	return nil
}

// suiteSummary aggregates one suite's records for the console table.
type suiteSummary struct {
	name              string
	records           int
	failed            int
	errored           int
	skipped           int
	attributedSeconds float64
}

// printSummary prints a per-suite results table to stdout.
func (r *Reporter) printSummary(records []types.ResultRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Test Results (run %s)", r.runID)
	t.AppendHeader(table.Row{"Suite", "Records", "Failed", "Errored", "Skipped", "Attributed (s)"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Suite", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Records", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Errored", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
		{Name: "Attributed (s)", Align: text.AlignRight},
	})

	order := make([]string, 0)
	summaries := make(map[string]*suiteSummary)
	for _, rec := range records {
		s, ok := summaries[rec.SuiteName]
		if !ok {
			s = &suiteSummary{name: rec.SuiteName}
			summaries[rec.SuiteName] = s
			order = append(order, rec.SuiteName)
		}
		s.records++
		s.attributedSeconds += rec.AttributedSeconds
		switch rec.Status {
		case types.StatusFailure.Text():
			s.failed++
		case types.StatusError.Text():
			s.errored++
		case types.StatusSkipped.Text(), types.StatusIgnored.Text():
			s.skipped++
		}
	}

	for _, name := range order {
		s := summaries[name]
		t.AppendRow(table.Row{
			s.name, s.records, s.failed, s.errored, s.skipped,
			fmt.Sprintf("%.3f", s.attributedSeconds),
		})
	}
	t.AppendFooter(table.Row{"Total", len(records), "", "", "", ""})
	t.Render()
}
