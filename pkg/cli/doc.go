// Package cli turns command-line arguments into a validated run profile and
// maps argument problems to process exit codes.
package cli
