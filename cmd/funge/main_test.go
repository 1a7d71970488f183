package main

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fungeLang/funge/pkg/cli"
	"github.com/fungeLang/funge/pkg/debugger"
	"github.com/fungeLang/funge/pkg/interpreter"
	"github.com/fungeLang/funge/pkg/types"
)

func writeProgram(t *testing.T, code string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.bf")
	require.NoError(t, os.WriteFile(path, []byte(code), 0o644))
	return path
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(strings.NewReader(""), &stdout, &stderr, []string{"-h"})
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "Usage:")
	assert.Empty(t, stdout.String())
}

func TestRunUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(strings.NewReader(""), &stdout, &stderr, nil)
	require.Error(t, err)

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, cli.ExitUsage, exitErr.Code)
}

func TestRunProgram(t *testing.T) {
	path := writeProgram(t, `"olleH",,,,,@`)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(strings.NewReader(""), &stdout, &stderr, []string{path}))
	assert.Equal(t, "Hello", stdout.String())
}

func TestRunReadsStdin(t *testing.T) {
	path := writeProgram(t, "&2*.@")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(strings.NewReader("21\n"), &stdout, &stderr, []string{path}))
	assert.Equal(t, "42 ", stdout.String())
}

func TestRunOutputFile(t *testing.T) {
	path := writeProgram(t, "9.@")
	outPath := filepath.Join(t.TempDir(), "out.txt")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(strings.NewReader(""), &stdout, &stderr, []string{"-o", outPath, path}))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "9 ", string(data))
}

func TestRunFault(t *testing.T) {
	path := writeProgram(t, "+@")

	var stdout, stderr bytes.Buffer
	err := run(strings.NewReader(""), &stdout, &stderr, []string{path})
	require.Error(t, err)
	assert.Equal(t, types.ErrStackUnderflow, types.FaultCode(err))

	var exitErr *cli.ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestRunStepLimit(t *testing.T) {
	path := writeProgram(t, ">v\n^<")

	var stdout, stderr bytes.Buffer
	err := run(strings.NewReader(""), &stdout, &stderr, []string{"-max-steps", "100", path})
	require.Error(t, err)
	assert.Equal(t, types.ErrStepLimit, types.FaultCode(err))
}

// scriptedPrompt answers prompts from a fixed list, then reports io.EOF.
func scriptedPrompt(lines ...string) promptFunc {
	return func(string) (string, error) {
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}
}

func newDebugSession(t *testing.T, code string, out io.Writer) *debugger.Session {
	t.Helper()
	in, err := interpreter.New(code, interpreter.Options{
		Output: out,
		Input:  interpreter.NewScriptedInput(),
		Rand:   rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	return debugger.New(in, out)
}

func TestREPL(t *testing.T) {
	var out bytes.Buffer
	s := newDebugSession(t, "12+.@", &out)

	err := repl(s, scriptedPrompt("step", "bogus", "stack", "continue"), &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "error: bad command")
	assert.Contains(t, got, "[ 1 ]")
	assert.Contains(t, got, "3 Program halted after 4 steps.")
}

func TestREPLQuit(t *testing.T) {
	var out bytes.Buffer
	s := newDebugSession(t, "12+.@", &out)

	require.NoError(t, repl(s, scriptedPrompt("quit", "step"), &out))
	assert.Equal(t, 0, s.Interpreter().Steps)
}

func TestREPLProgramInput(t *testing.T) {
	var out bytes.Buffer
	s := newDebugSession(t, "&.@", &out)
	prompt := scriptedPrompt("continue", "7")
	s.Interpreter().Input = promptInputReader{prompt: prompt}

	require.NoError(t, repl(s, prompt, &out))
	assert.Contains(t, out.String(), "7 ")
	assert.True(t, s.Interpreter().Halted)
}
