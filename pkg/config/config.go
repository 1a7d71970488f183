package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile holds everything needed to run one program.
type Profile struct {
	Source string `yaml:"-"`
	Output string `yaml:"output,omitempty"`

	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Errors   string `yaml:"errors"`
	Seed     *int64 `yaml:"seed,omitempty"`
	MaxSteps int    `yaml:"max_steps"`
	Trace    bool   `yaml:"trace"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Debug bool `yaml:"-"`
}

// Default returns the built-in profile: an 80x25 strict playfield with
// unlimited steps and text logs at info level.
func Default() Profile {
	return Profile{
		Width:     80,
		Height:    25,
		Errors:    "strict",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads a YAML profile from path. Keys missing from the file keep their
// default values; unknown keys are an error.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a YAML profile on top of Default.
func Parse(data []byte) (Profile, error) {
	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, err
	}
	return p, nil
}

// Validate reports every problem with the profile at once.
func (p Profile) Validate() error {
	var errs []error
	if p.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %d", p.Width))
	}
	if p.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got %d", p.Height))
	}
	switch p.Errors {
	case "strict", "permissive":
	default:
		errs = append(errs, fmt.Errorf("errors must be 'strict' or 'permissive', got %q", p.Errors))
	}
	if p.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("max_steps must not be negative, got %d", p.MaxSteps))
	}
	switch strings.ToLower(p.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %q", p.LogLevel))
	}
	switch strings.ToLower(p.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be 'text' or 'json', got %q", p.LogFormat))
	}
	return errors.Join(errs...)
}
