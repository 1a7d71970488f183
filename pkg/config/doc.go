// Package config defines the run profile: playfield size, error mode,
// random seed, step budget and logging options. A profile starts from
// Default, may be loaded from a YAML file, and is checked by Validate before
// use. Command-line flags are applied on top by package cli.
package config
