package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fungeLang/funge/pkg/config"
	"github.com/fungeLang/funge/pkg/ctxlog"
	"github.com/fungeLang/funge/pkg/types"
)

func writeProgram(t *testing.T, code string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.bf")
	require.NoError(t, os.WriteFile(path, []byte(code), 0600))
	return path
}

func testContext(logs *bytes.Buffer) context.Context {
	return ctxlog.WithLogger(context.Background(), NewLogger("debug", "text", logs))
}

func TestRun_Stdout(t *testing.T) {
	p := config.Default()
	p.Source = writeProgram(t, "&:*.@")

	var out, logs bytes.Buffer
	err := Run(testContext(&logs), &p, strings.NewReader("12\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, "144 ", out.String())
	assert.Contains(t, logs.String(), "Program halted.")
}

func TestRun_OutputFile(t *testing.T) {
	p := config.Default()
	p.Source = writeProgram(t, `"ih",,@`)
	p.Output = filepath.Join(t.TempDir(), "out.txt")

	var out, logs bytes.Buffer
	require.NoError(t, Run(testContext(&logs), &p, strings.NewReader(""), &out))

	data, err := os.ReadFile(p.Output)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
	assert.Empty(t, out.String())
}

func TestRun_Fault(t *testing.T) {
	p := config.Default()
	p.Source = writeProgram(t, "1+")

	var out, logs bytes.Buffer
	err := Run(testContext(&logs), &p, strings.NewReader(""), &out)
	require.Error(t, err)
	assert.Equal(t, types.ErrStackUnderflow, types.FaultCode(err))
	assert.Contains(t, err.Error(), "running ")
}

func TestRun_Permissive(t *testing.T) {
	p := config.Default()
	p.Source = writeProgram(t, "7x.@")
	p.Errors = "permissive"

	var out, logs bytes.Buffer
	require.NoError(t, Run(testContext(&logs), &p, strings.NewReader(""), &out))
	assert.Equal(t, "7 ", out.String())
}

func TestRun_SeedIsReproducible(t *testing.T) {
	// prints a random walk of digits until it hits an @
	code := strings.Join([]string{
		"v   @",
		">?1.v",
		" 2   ",
		" .   ",
		" >  ^",
	}, "\n")
	seed := int64(3)

	run := func() string {
		p := config.Default()
		p.Source = writeProgram(t, code)
		p.Seed = &seed
		p.MaxSteps = 10000
		var out, logs bytes.Buffer
		_ = Run(testContext(&logs), &p, strings.NewReader(""), &out)
		return out.String()
	}
	assert.Equal(t, run(), run())
}

func TestRun_MissingSource(t *testing.T) {
	p := config.Default()
	p.Source = filepath.Join(t.TempDir(), "nope.bf")

	var out, logs bytes.Buffer
	err := Run(testContext(&logs), &p, strings.NewReader(""), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading ")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("warn", "json", &buf).Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger("warn", "json", &buf).Warn("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
