// Command funge runs Befunge-93 programs.
//
// Usage:
//
//	funge [options] SOURCE
//
// Run with -h for the list of options.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fungeLang/funge/pkg/cli"
	"github.com/fungeLang/funge/pkg/ctxlog"
	"github.com/fungeLang/funge/pkg/runner"
)

func main() {
	// Use a minimal logger until the profile has been read.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitRuntime)
	}
}

// run parses args and either runs the program or starts the debugger.
func run(stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	profile, shouldExit, err := cli.Parse(args, stderr)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := runner.NewLogger(profile.LogLevel, profile.LogFormat, stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	if profile.Debug {
		return debug(ctx, profile, stdout)
	}
	return runner.Run(ctx, profile, stdin, stdout)
}
