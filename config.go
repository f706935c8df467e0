package reporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/testrelay/suite-reporter/flags"
	"github.com/testrelay/suite-reporter/publish"
	"github.com/testrelay/suite-reporter/reporting"
)

// Config holds the application configuration
type Config struct {
	EventsFile string             // Path to the lifecycle event stream, "-" for stdin
	OutputDir  string             // Directory report artifacts are written into
	Formats    []reporting.Format // Formats to render at end of run
	LatestMode publish.Mode       // How the latest path tracks the newest artifact
	Serve      bool               // Whether to run the healthz/metrics servers
	Log        log.Logger
}

// fileConfig is the YAML shape of the optional config file. Flags that are
// explicitly set take precedence over values from the file.
type fileConfig struct {
	OutputDir  string   `yaml:"outputDir"`
	Formats    []string `yaml:"formats"`
	LatestMode string   `yaml:"latestMode"`
	Serve      bool     `yaml:"serve"`
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	outputDir := ctx.String(flags.OutputDir.Name)
	formatNames := ctx.StringSlice(flags.Formats.Name)
	latestMode := ctx.String(flags.LatestMode.Name)
	serve := ctx.Bool(flags.Serve.Name)

	if configFile := ctx.String(flags.ConfigFile.Name); configFile != "" {
		fc, err := loadFileConfig(configFile)
		if err != nil {
			return nil, err
		}
		if !ctx.IsSet(flags.OutputDir.Name) && fc.OutputDir != "" {
			outputDir = fc.OutputDir
		}
		if !ctx.IsSet(flags.Formats.Name) && len(fc.Formats) > 0 {
			formatNames = fc.Formats
		}
		if !ctx.IsSet(flags.LatestMode.Name) && fc.LatestMode != "" {
			latestMode = fc.LatestMode
		}
		if !ctx.IsSet(flags.Serve.Name) {
			serve = fc.Serve
		}
	}

	formats, err := parseFormats(formatNames)
	if err != nil {
		return nil, err
	}

	mode, err := publish.ParseMode(latestMode)
	if err != nil {
		return nil, err
	}

	absOutputDir, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for output directory '%s': %w", outputDir, err)
	}

	return &Config{
		EventsFile: ctx.String(flags.EventsFile.Name),
		OutputDir:  absOutputDir,
		Formats:    formats,
		LatestMode: mode,
		Serve:      serve,
		Log:        logger,
	}, nil
}

// parseFormats resolves the configured format names, defaulting to every
// supported format when none are requested.
func parseFormats(names []string) ([]reporting.Format, error) {
	if len(names) == 0 {
		return append([]reporting.Format(nil), reporting.AllFormats...), nil
	}

	seen := make(map[reporting.Format]struct{}, len(names))
	formats := make([]reporting.Format, 0, len(names))
	for _, name := range names {
		format, err := reporting.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[format]; ok {
			continue
		}
		seen[format] = struct{}{}
		formats = append(formats, format)
	}
	return formats, nil
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return &fc, nil
}
