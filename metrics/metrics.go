package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricsNamespace = "suite_reporter"
)

var (
	Debug                bool = true
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	recordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "records_total",
		Help:      "Count of result records by status",
	}, []string{
		"run_id",
		"status",
	})

	suiteFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_failures_total",
		Help:      "Count of suite-level failures",
	}, []string{
		"run_id",
		"suite",
	})

	reportsWrittenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "reports_written_total",
		Help:      "Count of report artifacts written",
	}, []string{
		"run_id",
		"format",
	})

	reportWriteFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "report_write_failures_total",
		Help:      "Count of report artifact write failures",
	}, []string{
		"run_id",
		"format",
	})

	runRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_records",
		Help:      "Number of result records in the last completed run",
	}, []string{
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

func RecordResult(runID string, status string) {
	if Debug {
		log.Debug("metric inc",
			"m", "records_total",
			"run_id", runID,
			"status", status)
	}
	recordsTotal.WithLabelValues(runID, status).Inc()
}

func RecordSuiteFailure(runID string, suite string) {
	if Debug {
		log.Debug("metric inc",
			"m", "suite_failures_total",
			"run_id", runID,
			"suite", suite)
	}
	suiteFailuresTotal.WithLabelValues(runID, suite).Inc()
}

func RecordReportWritten(runID string, format string) {
	reportsWrittenTotal.WithLabelValues(runID, format).Inc()
}

func RecordReportWriteFailure(runID string, format string) {
	reportWriteFailuresTotal.WithLabelValues(runID, format).Inc()
}

func RecordRunRecords(runID string, count int) {
	runRecords.WithLabelValues(runID).Set(float64(count))
}
