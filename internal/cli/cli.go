package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vk/harnessgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("harnessgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
HarnessGo - computes dynamic library search paths for compiled test binaries.

Usage:
  harnessgo [options] SUMMARY_PATH

Arguments:
  SUMMARY_PATH
    Path to a build metadata summary .json file, or a directory searched
    recursively for summary files.

Options:
`)
		flagSet.PrintDefaults()
	}

	profileFlag := flagSet.String("profile", "", "Path to an HCL reuse-build profile.")
	envFileFlag := flagSet.String("env-file", "", "Path to a .env file with HARNESSGO_* defaults.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	outputFlag := flagSet.String("output", "", "Result format. Options: 'lines' or 'env'.")
	reencodeFlag := flagSet.Bool("reencode", false, "Rewrite each summary in canonical form next to its input.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// An explicit env file must load; an implicit ./.env is best-effort.
	if *envFileFlag != "" {
		if err := godotenv.Load(*envFileFlag); err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("failed to load env file %s: %v", *envFileFlag, err)}
		}
	} else {
		_ = godotenv.Load()
	}

	path := ""
	if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Summary path determined.", "path", path)

	if path == "" {
		slog.Debug("No summary path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(fallback(*logFormatFlag, os.Getenv("HARNESSGO_LOG_FORMAT"), "text"))
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(fallback(*logLevelFlag, os.Getenv("HARNESSGO_LOG_LEVEL"), "info"))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	outputMode := strings.ToLower(fallback(*outputFlag, os.Getenv("HARNESSGO_OUTPUT"), app.OutputLines))
	if outputMode != app.OutputLines && outputMode != app.OutputEnv {
		return nil, false, &ExitError{Code: 2, Message: "invalid output: must be 'lines' or 'env'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SummaryPath: path,
		ProfilePath: fallback(*profileFlag, os.Getenv("HARNESSGO_PROFILE")),
		EnvFile:     *envFileFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Output:      outputMode,
		Reencode:    *reencodeFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// fallback returns the first non-empty value.
func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
