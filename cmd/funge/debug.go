package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/fungeLang/funge/pkg/config"
	"github.com/fungeLang/funge/pkg/ctxlog"
	"github.com/fungeLang/funge/pkg/debugger"
	"github.com/fungeLang/funge/pkg/runner"
)

const (
	historyFile = ".funge_history"
	promptMain  = "funge> "
	promptInput = "input> "
)

// promptFunc reads one line after printing a prompt. It returns io.EOF when
// the user ends the session.
type promptFunc func(prompt string) (string, error)

// promptInputReader feeds the program's input instructions from the same
// line editor the debugger commands come from.
type promptInputReader struct {
	prompt promptFunc
}

func (r promptInputReader) ReadLine() (string, error) {
	return r.prompt(promptInput)
}

// debug loads the program and drives it from an interactive prompt.
func debug(ctx context.Context, p *config.Profile, stdout io.Writer) (err error) {
	in, closeOut, err := runner.Load(ctx, p, os.Stdin, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	prompt := func(s string) (string, error) {
		line, err := ln.Prompt(s)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		if err == nil && s == promptMain && strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		return line, err
	}
	in.Input = promptInputReader{prompt: prompt}

	ctxlog.FromContext(ctx).Debug("Debugger started.", "path", p.Source)
	return repl(debugger.New(in, stdout), prompt, stdout)
}

// repl executes commands until quit or end of input. Command errors are
// printed and the loop carries on.
func repl(s *debugger.Session, prompt promptFunc, out io.Writer) error {
	fmt.Fprintln(out, "Type 'help' for the list of commands.")
	for {
		line, err := prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}
		if err := s.Exec(line); err != nil {
			if errors.Is(err, debugger.ErrQuit) {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}
