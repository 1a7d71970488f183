package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	p, err := Parse([]byte(`
width: 40
errors: permissive
seed: 7
`))
	require.NoError(t, err)

	assert.Equal(t, 40, p.Width)
	assert.Equal(t, 25, p.Height)
	assert.Equal(t, "permissive", p.Errors)
	require.NotNil(t, p.Seed)
	assert.Equal(t, int64(7), *p.Seed)
	assert.Equal(t, "info", p.LogLevel)
}

func TestParseEmpty(t *testing.T) {
	p, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse([]byte("widht: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("height: 10\nmax_steps: 500\n"), 0600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Height)
	assert.Equal(t, 500, p.MaxSteps)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading profile")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
		errMsg string
	}{
		{"zero width", func(p *Profile) { p.Width = 0 }, "width must be positive"},
		{"negative height", func(p *Profile) { p.Height = -2 }, "height must be positive"},
		{"bad errors", func(p *Profile) { p.Errors = "loose" }, "errors must be"},
		{"negative steps", func(p *Profile) { p.MaxSteps = -1 }, "max_steps"},
		{"bad level", func(p *Profile) { p.LogLevel = "loud" }, "log_level"},
		{"bad format", func(p *Profile) { p.LogFormat = "xml" }, "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	p := Default()
	p.Width = 0
	p.Height = 0
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width")
	assert.Contains(t, err.Error(), "height")
}
