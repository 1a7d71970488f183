package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/fungeLang/funge/pkg/config"
)

// Exit codes
const (
	ExitOK      = 0
	ExitRuntime = 1
	ExitUsage   = 2
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns the profile to run, a
// boolean telling the caller to exit cleanly (help was requested), or an
// *ExitError.
func Parse(args []string, output io.Writer) (*config.Profile, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("funge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
funge - a Befunge-93 interpreter.

Usage:
  funge [options] SOURCE

Arguments:
  SOURCE
    Path to the program to run.

Options:
`)
		flagSet.PrintDefaults()
	}

	var (
		outPath             string
		width, height       int
		seed                int64
		help                bool
		configPath          string
		errorsMode          string
		maxSteps            int
		logLevel, logFormat string
		trace, debug        bool
	)
	flagSet.StringVar(&outPath, "o", "", "Output file (shorthand).")
	flagSet.StringVar(&outPath, "output", "", "Output file. Defaults to standard output.")
	flagSet.IntVar(&width, "W", 0, "Playfield width (shorthand).")
	flagSet.IntVar(&width, "width", 0, "Playfield width. Defaults to 80.")
	flagSet.IntVar(&height, "H", 0, "Playfield height (shorthand).")
	flagSet.IntVar(&height, "height", 0, "Playfield height. Defaults to 25.")
	flagSet.BoolVar(&help, "?", false, "Display this message and exit.")
	flagSet.StringVar(&configPath, "config", "", "YAML run profile. Flags override its values.")
	flagSet.StringVar(&errorsMode, "errors", "strict", "Handling of unknown characters: 'strict' or 'permissive'.")
	flagSet.Int64Var(&seed, "seed", 0, "Seed for the random-direction instruction. Defaults to the current time.")
	flagSet.IntVar(&maxSteps, "max-steps", 0, "Abort after this many steps. 0 is unlimited.")
	flagSet.StringVar(&logLevel, "log-level", "info", "Logging level: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&logFormat, "log-format", "text", "Log output format: 'text' or 'json'.")
	flagSet.BoolVar(&trace, "trace", false, "Log every executed instruction at debug level.")
	flagSet.BoolVar(&debug, "debug", false, "Start the interactive debugger instead of running.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	if help {
		flagSet.Usage()
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return nil, false, usageError("expected exactly one SOURCE argument, got %d", flagSet.NArg())
	}

	profile := config.Default()
	if configPath != "" {
		p, err := config.Load(configPath)
		if err != nil {
			return nil, false, usageError("%s", err.Error())
		}
		profile = p
		slog.Debug("Profile loaded.", "path", configPath)
	}

	// Only flags given on the command line override the profile.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o", "output":
			profile.Output = outPath
		case "W", "width":
			profile.Width = width
		case "H", "height":
			profile.Height = height
		case "errors":
			profile.Errors = errorsMode
		case "seed":
			s := seed
			profile.Seed = &s
		case "max-steps":
			profile.MaxSteps = maxSteps
		case "log-level":
			profile.LogLevel = logLevel
		case "log-format":
			profile.LogFormat = logFormat
		case "trace":
			profile.Trace = trace
		}
	})
	profile.Source = flagSet.Arg(0)
	profile.Debug = debug

	if err := profile.Validate(); err != nil {
		return nil, false, usageError("invalid arguments: %s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "source", profile.Source)
	return &profile, false, nil
}
