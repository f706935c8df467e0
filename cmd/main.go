package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	reporter "github.com/testrelay/suite-reporter"
	"github.com/testrelay/suite-reporter/exitcodes"
	"github.com/testrelay/suite-reporter/flags"
	"github.com/testrelay/suite-reporter/ingest"
	"github.com/testrelay/suite-reporter/service"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "suite-reporter"
	app.Usage = "Test suite result aggregation and reporting"
	app.Description = "suite-reporter aggregates test lifecycle events into per-suite result records and writes multi-format report artifacts"
	app.Flags = flags.Flags
	app.Action = run

	// Start telemetry
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}
	defer otelShutdown()

	if err := app.Run(os.Args); err != nil {
		code := exitcodes.ReportFailure
		if reporter.IsRuntimeError(err) {
			code = exitcodes.RuntimeErr
		}
		cli.HandleExitCoder(cli.Exit(err.Error(), code))
	}
}

func run(ctx *cli.Context) error {
	logger := newLogger(ctx.String(flags.LogLevel.Name))
	log.SetDefault(logger)

	cfg, err := reporter.NewConfig(ctx, logger)
	if err != nil {
		return reporter.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	if cfg.Serve {
		svc := service.New()
		svc.Start(ctx.Context)
		defer svc.Shutdown()
	}

	input, cleanup, err := openEvents(cfg.EventsFile)
	if err != nil {
		return reporter.NewRuntimeError(err)
	}
	defer cleanup()

	r, err := reporter.New(cfg)
	if err != nil {
		return reporter.NewRuntimeError(err)
	}
	if err := r.OnInit(); err != nil {
		return err
	}

	logger.Info("replaying event stream", "run_id", r.RunID(), "events", cfg.EventsFile)
	if err := ingest.Replay(r, input, logger); err != nil {
		return reporter.NewRuntimeError(err)
	}

	return r.OnRunComplete(ctx.Context)
}

func newLogger(level string) log.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true))
}

func openEvents(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open event stream %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
