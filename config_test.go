package reporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/testrelay/suite-reporter/flags"
	"github.com/testrelay/suite-reporter/publish"
	"github.com/testrelay/suite-reporter/reporting"
)

// buildConfig runs a throwaway cli app so NewConfig sees a real flag context.
func buildConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()

	var cfg *Config
	var cfgErr error
	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Action = func(ctx *cli.Context) error {
		cfg, cfgErr = NewConfig(ctx, log.New())
		return nil
	}

	if err := app.Run(append([]string{"suite-reporter"}, args...)); err != nil {
		return nil, err
	}
	return cfg, cfgErr
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := buildConfig(t, "--events", "events.jsonl")
	require.NoError(t, err)

	assert.Equal(t, "events.jsonl", cfg.EventsFile)
	assert.True(t, filepath.IsAbs(cfg.OutputDir))
	assert.Equal(t, reporting.AllFormats, cfg.Formats)
	assert.Equal(t, publish.ModeSymlink, cfg.LatestMode)
	assert.False(t, cfg.Serve)
}

func TestNewConfigRequiresEvents(t *testing.T) {
	_, err := buildConfig(t)
	assert.Error(t, err)
}

func TestNewConfigExplicitFormats(t *testing.T) {
	cfg, err := buildConfig(t, "--events", "e.jsonl", "--format", "jsonl", "--format", "text", "--format", "jsonl")
	require.NoError(t, err)
	// Duplicates collapse, order of first occurrence kept.
	assert.Equal(t, []reporting.Format{reporting.FormatJSONL, reporting.FormatText}, cfg.Formats)
}

func TestNewConfigRejectsUnknownFormat(t *testing.T) {
	_, err := buildConfig(t, "--events", "e.jsonl", "--format", "xml")
	assert.Error(t, err)
}

func TestNewConfigRejectsUnknownLatestMode(t *testing.T) {
	_, err := buildConfig(t, "--events", "e.jsonl", "--latest-mode", "hardlink")
	assert.Error(t, err)
}

func TestNewConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(
		"outputDir: "+filepath.Join(dir, "reports")+"\n"+
			"formats: [jsonl]\n"+
			"latestMode: copy\n"+
			"serve: true\n"), 0644))

	cfg, err := buildConfig(t, "--events", "e.jsonl", "--config", configFile)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "reports"), cfg.OutputDir)
	assert.Equal(t, []reporting.Format{reporting.FormatJSONL}, cfg.Formats)
	assert.Equal(t, publish.ModeCopy, cfg.LatestMode)
	assert.True(t, cfg.Serve)
}

func TestNewConfigFlagsBeatFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("latestMode: copy\nformats: [jsonl]\n"), 0644))

	cfg, err := buildConfig(t, "--events", "e.jsonl", "--config", configFile,
		"--latest-mode", "skip", "--format", "text")
	require.NoError(t, err)

	assert.Equal(t, publish.ModeSkip, cfg.LatestMode)
	assert.Equal(t, []reporting.Format{reporting.FormatText}, cfg.Formats)
}
