package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/fungeLang/funge/pkg/config"
	"github.com/fungeLang/funge/pkg/ctxlog"
	"github.com/fungeLang/funge/pkg/interpreter"
)

// Load reads the program named by p.Source and returns an interpreter ready
// to run it. The returned close function flushes and closes the output file,
// if one was opened, and must be called when the run is over.
func Load(ctx context.Context, p *config.Profile, stdin io.Reader, stdout io.Writer) (*interpreter.Interpreter, func() error, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(p.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", p.Source, err)
	}
	logger.Debug("Program loaded.", "path", p.Source, "bytes", len(src))

	mode, err := interpreter.ParseErrorMode(p.Errors)
	if err != nil {
		return nil, nil, err
	}

	seed := time.Now().UnixNano()
	if p.Seed != nil {
		seed = *p.Seed
	}
	logger.Debug("Random source seeded.", "seed", seed)

	out, closeOut, err := openOutput(p.Output, stdout)
	if err != nil {
		return nil, nil, err
	}

	in, err := interpreter.New(string(src), interpreter.Options{
		Width:    p.Width,
		Height:   p.Height,
		Mode:     mode,
		Output:   out,
		Input:    interpreter.NewLineReader(stdin),
		Rand:     rand.New(rand.NewSource(seed)),
		Logger:   logger,
		MaxSteps: p.MaxSteps,
		Trace:    p.Trace,
	})
	if err != nil {
		_ = closeOut()
		return nil, nil, fmt.Errorf("loading %s: %w", p.Source, err)
	}
	return in, closeOut, nil
}

// openOutput returns stdout when path is empty, otherwise a buffered writer
// over a newly created file.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	return w, func() error {
		if err := w.Flush(); err != nil {
			f.Close()
			return fmt.Errorf("writing output %s: %w", path, err)
		}
		return f.Close()
	}, nil
}

// Run loads p.Source and runs it to completion.
func Run(ctx context.Context, p *config.Profile, stdin io.Reader, stdout io.Writer) (err error) {
	logger := ctxlog.FromContext(ctx)

	in, closeOut, err := Load(ctx, p, stdin, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	logger.Debug("Starting run.", "path", p.Source, "width", p.Width, "height", p.Height, "errors", p.Errors)
	if err := in.Run(); err != nil {
		return fmt.Errorf("running %s: %w", p.Source, err)
	}
	logger.Debug("Program halted.", "steps", in.Steps)
	return nil
}
