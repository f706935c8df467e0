package flags

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "SUITE_REPORTER"

// prefixEnvVars adds the application prefix to an env var name.
func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + strings.ToUpper(name)}
}

var (
	EventsFile = &cli.StringFlag{
		Name:     "events",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVars("EVENTS"),
		Usage:    "Path to the lifecycle event stream file (JSON lines), '-' for stdin",
	}
	OutputDir = &cli.StringFlag{
		Name:    "outdir",
		Value:   "test-results",
		EnvVars: prefixEnvVars("OUTDIR"),
		Usage:   "Directory to write report artifacts into",
	}
	Formats = &cli.StringSliceFlag{
		Name:    "format",
		EnvVars: prefixEnvVars("FORMAT"),
		Usage:   "Report format to write (repeatable; one of 'text', 'html', 'jsonl'). All formats when omitted.",
	}
	LatestMode = &cli.StringFlag{
		Name:    "latest-mode",
		Value:   "symlink",
		EnvVars: prefixEnvVars("LATEST_MODE"),
		Usage:   "How the 'latest' path tracks the newest artifact: 'symlink', 'copy' or 'skip'",
	}
	ConfigFile = &cli.StringFlag{
		Name:    "config",
		Value:   "",
		EnvVars: prefixEnvVars("CONFIG"),
		Usage:   "Path to an optional YAML config file (flags take precedence)",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level: 'debug', 'info', 'warn' or 'error'",
	}
	Serve = &cli.BoolFlag{
		Name:    "serve",
		Value:   false,
		EnvVars: prefixEnvVars("SERVE"),
		Usage:   "Start the healthz and metrics HTTP servers for the duration of the run",
	}
)

var requiredFlags = []cli.Flag{
	EventsFile,
}

var optionalFlags = []cli.Flag{
	OutputDir,
	Formats,
	LatestMode,
	ConfigFile,
	LogLevel,
	Serve,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

// CheckRequired verifies that all required flags are set.
func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
