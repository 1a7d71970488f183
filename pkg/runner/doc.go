// Package runner connects a run profile to the interpreter: it reads the
// program file, opens the output sink, seeds the random source, builds the
// logger and runs the program.
package runner
