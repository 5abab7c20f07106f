package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/erpindex/internal/app"
	"github.com/specialistvlad/erpindex/internal/config"
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

// Parse processes command-line arguments. environ is the process environment
// in os.Environ form. It returns a populated Config, a boolean indicating if
// the program should exit cleanly, or an ExitError.
func Parse(args []string, environ []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("erpindex", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
erpindex - Load student records, index grades by course and query them.

Usage:
  erpindex [options] [SOURCE]

Arguments:
  SOURCE
    Path to a single .csv file or a directory containing .csv files.

Environment:
  ERP_SOURCE, ERP_LOG_LEVEL, ERP_LOG_FORMAT override the settings file.
  A .env file is read first when present.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL settings file.")
	envFileFlag := flagSet.String("env-file", config.DefaultEnvFile, "Path to a .env file. Missing files are ignored.")
	sourceFlag := flagSet.String("source", "", "Path to the student records file or directory.")
	sFlag := flagSet.String("s", "", "Path to the student records file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'. (default \"text\")")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. (default \"info\")")
	courseFlag := flagSet.String("course", "", "Answer one query for this course and exit instead of opening the menu.")
	thresholdFlag := flagSet.Int("threshold", 0, "Minimum grade for --course. Defaults to the configured default threshold.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	env, err := config.LoadEnvironment(*envFileFlag, environ)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	settings := config.Defaults()
	if *configFlag != "" {
		settings, err = config.LoadFile(context.Background(), *configFlag, settings, env)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}
	env.Apply(&settings)

	if *sourceFlag != "" {
		settings.Source.Path = *sourceFlag
	} else if *sFlag != "" {
		settings.Source.Path = *sFlag
	} else if flagSet.NArg() > 0 {
		settings.Source.Path = flagSet.Arg(0)
	}
	if set["log-format"] {
		settings.Log.Format = strings.ToLower(*logFormatFlag)
	}
	if set["log-level"] {
		settings.Log.Level = strings.ToLower(*logLevelFlag)
	}
	slog.Debug("Source path determined.", "path", settings.Source.Path)

	if settings.Source.Path == "" {
		slog.Debug("No source path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if err := settings.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	course := strings.TrimSpace(*courseFlag)
	if set["course"] && course == "" {
		return nil, false, &ExitError{Code: 2, Message: "--course must not be blank"}
	}
	threshold := settings.Query.DefaultThreshold
	if set["threshold"] {
		threshold = *thresholdFlag
	}
	if set["threshold"] && course == "" {
		return nil, false, &ExitError{Code: 2, Message: "--threshold requires --course"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		SourcePath:       settings.Source.Path,
		Ingest:           settings.IngestOptions(),
		DefaultThreshold: settings.Query.DefaultThreshold,
		LogFormat:        settings.Log.Format,
		LogLevel:         settings.Log.Level,
		Course:           course,
		Threshold:        threshold,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
