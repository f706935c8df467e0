package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reporter "github.com/testrelay/suite-reporter"
	"github.com/testrelay/suite-reporter/publish"
	"github.com/testrelay/suite-reporter/reporting"
)

func newReplayReporter(t *testing.T) (*reporter.Reporter, string) {
	t.Helper()
	outDir := t.TempDir()
	cfg := &reporter.Config{
		OutputDir:  outDir,
		Formats:    []reporting.Format{reporting.FormatJSONL},
		LatestMode: publish.ModeCopy,
		Log:        log.New(),
	}
	r, err := reporter.New(cfg)
	require.NoError(t, err)
	require.NoError(t, r.OnInit())
	return r, outDir
}

func latestLines(t *testing.T, outputDir string) []string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(outputDir, "test-results-latest.jsonl"))
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func TestReplaySingleSuite(t *testing.T) {
	stream := strings.Join([]string{
		`{"action":"suiteStart","suite":"com.example.AccountTest"}`,
		`{"action":"event","suite":"com.example.AccountTest","test":"testTransfer","status":"success","durationMs":100}`,
		`{"action":"event","suite":"com.example.AccountTest","test":"testOverdraft","status":"failure","durationMs":50,"errorKind":"AssertionError","message":"balance mismatch\ndetails","stack":"at AccountTest.testOverdraft(AccountTest.kt:42)"}`,
		`{"action":"suiteEnd","suite":"com.example.AccountTest"}`,
	}, "\n")

	r, outDir := newReplayReporter(t)
	require.NoError(t, Replay(r, strings.NewReader(stream), log.New()))
	require.NoError(t, r.OnRunComplete(context.Background()))

	lines := latestLines(t, outDir)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"status":"SUCCESS"`)
	assert.Contains(t, lines[1], `"errorMessage":"balance mismatch"`)
}

func TestReplayInterleavedSuites(t *testing.T) {
	stream := strings.Join([]string{
		`{"action":"suiteStart","suite":"com.example.A"}`,
		`{"action":"suiteStart","suite":"com.example.B"}`,
		`{"action":"event","suite":"com.example.B","test":"testB1","status":"success","durationMs":1}`,
		`{"action":"event","suite":"com.example.A","test":"testA1","status":"success","durationMs":1}`,
		`{"action":"suiteEnd","suite":"com.example.B"}`,
		`{"action":"event","suite":"com.example.A","test":"testA2","status":"skipped"}`,
		`{"action":"suiteEnd","suite":"com.example.A"}`,
	}, "\n")

	r, outDir := newReplayReporter(t)
	require.NoError(t, Replay(r, strings.NewReader(stream), log.New()))
	require.NoError(t, r.OnRunComplete(context.Background()))

	assert.Len(t, latestLines(t, outDir), 3)
}

func TestReplaySuiteError(t *testing.T) {
	stream := strings.Join([]string{
		`{"action":"suiteStart","suite":"com.example.Broken"}`,
		`{"action":"suiteError","suite":"com.example.Broken","errorKind":"ExceptionInInitializerError","message":"boom\ndetails"}`,
	}, "\n")

	r, outDir := newReplayReporter(t)
	require.NoError(t, Replay(r, strings.NewReader(stream), log.New()))
	require.NoError(t, r.OnRunComplete(context.Background()))

	lines := latestLines(t, outDir)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"testName":"(suite level failure)"`)
	assert.Contains(t, lines[0], `"errorMessage":"boom"`)
}

func TestReplayMalformedLine(t *testing.T) {
	r, _ := newReplayReporter(t)
	err := Replay(r, strings.NewReader("{not json}\n"), log.New())
	assert.Error(t, err)
}

func TestReplayEventBeforeStart(t *testing.T) {
	r, _ := newReplayReporter(t)
	stream := `{"action":"event","suite":"com.example.A","test":"testA1","status":"success"}`
	err := Replay(r, strings.NewReader(stream), log.New())
	assert.Error(t, err)
}

func TestReplayUnknownActionIsSkipped(t *testing.T) {
	stream := strings.Join([]string{
		`{"action":"suiteStart","suite":"com.example.A"}`,
		`{"action":"heartbeat","suite":"com.example.A"}`,
		`{"action":"suiteEnd","suite":"com.example.A"}`,
	}, "\n")

	r, _ := newReplayReporter(t)
	assert.NoError(t, Replay(r, strings.NewReader(stream), log.New()))
}

func TestReplayFinalizesOpenSuites(t *testing.T) {
	stream := strings.Join([]string{
		`{"action":"suiteStart","suite":"com.example.Aborted"}`,
		`{"action":"event","suite":"com.example.Aborted","test":"testA1","status":"success","durationMs":1}`,
	}, "\n")

	r, outDir := newReplayReporter(t)
	require.NoError(t, Replay(r, strings.NewReader(stream), log.New()))
	require.NoError(t, r.OnRunComplete(context.Background()))

	assert.Len(t, latestLines(t, outDir), 1)
}
