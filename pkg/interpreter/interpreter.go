// Package interpreter provides the funge execution engine.
// It owns the playfield, the data stack, the instruction pointer and the
// string-mode and skip flags, and runs the fetch-dispatch-move loop.
package interpreter

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/fungeLang/funge/pkg/grid"
	"github.com/fungeLang/funge/pkg/stack"
	"github.com/fungeLang/funge/pkg/types"
)

// Default playfield size
const (
	DefaultWidth  = 80
	DefaultHeight = 25
)

// ErrorMode selects what happens on characters outside the instruction set.
type ErrorMode int

const (
	// Strict faults with ErrIllegalInstruction.
	Strict ErrorMode = iota
	// Permissive treats unknown characters as no-ops.
	Permissive
)

func (m ErrorMode) String() string {
	if m == Permissive {
		return "permissive"
	}
	return "strict"
}

// ParseErrorMode parses "strict" or "permissive"
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "strict", "":
		return Strict, nil
	case "permissive":
		return Permissive, nil
	}
	return Strict, fmt.Errorf("unknown error mode %q: must be 'strict' or 'permissive'", s)
}

// Rand is the source for the random-direction instruction. *rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}

// Options configures an Interpreter. Zero fields take defaults.
type Options struct {
	Width, Height int
	Mode          ErrorMode

	Output io.Writer   // default: os.Stdout
	Input  InputReader // default: lines from os.Stdin
	Rand   Rand        // default: time-seeded math/rand

	Logger *slog.Logger // default: discard

	// MaxSteps bounds the number of steps (0 = unlimited).
	MaxSteps int
	// Trace logs every executed instruction at debug level.
	Trace bool
}

// Interpreter is the funge execution engine
type Interpreter struct {
	Grid  *grid.Grid
	Stack *stack.Stack

	// Pos is the cell the next step executes
	Pos types.Position
	Dir types.Direction

	StringMode bool
	SkipNext   bool
	Halted     bool

	// Steps counts completed steps
	Steps    int
	MaxSteps int
	Trace    bool
	Mode     ErrorMode

	Output io.Writer
	Input  InputReader
	Rand   Rand
	Logger *slog.Logger

	source        string
	width, height int
}

// New creates an Interpreter with source loaded into the playfield
func New(source string, opts Options) (*Interpreter, error) {
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = NewLineReader(os.Stdin)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	in := &Interpreter{
		Stack:    stack.New(),
		MaxSteps: opts.MaxSteps,
		Trace:    opts.Trace,
		Mode:     opts.Mode,
		Output:   opts.Output,
		Input:    opts.Input,
		Rand:     opts.Rand,
		Logger:   opts.Logger,
		source:   source,
		width:    opts.Width,
		height:   opts.Height,
	}
	if err := in.Reset(); err != nil {
		return nil, err
	}
	return in, nil
}

// Reset reloads the original source and returns the interpreter to its
// initial state. Input, output and the random source are kept.
func (in *Interpreter) Reset() error {
	g, err := grid.New(in.source, in.width, in.height)
	if err != nil {
		return err
	}
	in.Grid = g
	in.Stack.Reset()
	in.Pos = types.Position{}
	in.Dir = types.Right
	in.StringMode = false
	in.SkipNext = false
	in.Halted = false
	in.Steps = 0
	in.CheckHalt()
	return nil
}

// Current returns the character at the instruction pointer
func (in *Interpreter) Current() rune {
	return in.Grid.At(in.Pos.X, in.Pos.Y)
}

// Step executes the current cell, moves the instruction pointer and checks
// the new cell for termination. It does nothing once halted.
func (in *Interpreter) Step() error {
	if in.Halted {
		return nil
	}
	if in.MaxSteps > 0 && in.Steps >= in.MaxSteps {
		return in.fault(types.ErrStepLimit, 0, nil)
	}

	c := in.Current()
	in.Steps++

	if in.Trace {
		in.Logger.Debug("step",
			"n", in.Steps,
			"pos", in.Pos.String(),
			"char", string(c),
			"op", in.opName(c),
			"stack", in.Stack.String(),
		)
	}

	if in.SkipNext {
		in.SkipNext = false
	} else if err := in.dispatch(c); err != nil {
		return err
	}

	in.Pos.X, in.Pos.Y = in.Grid.Wrap(in.Pos.X+in.Dir.DX, in.Pos.Y+in.Dir.DY)
	in.CheckHalt()
	return nil
}

func (in *Interpreter) dispatch(c rune) error {
	if in.StringMode {
		if c == '"' {
			in.StringMode = false
		} else {
			in.Stack.Push(int(c))
		}
		return nil
	}
	return handlers[Decode(c)](in, c)
}

// CheckHalt sets Halted from the cell under the instruction pointer: the
// program is halted exactly when that cell is @ outside string mode. The @
// itself is never executed. Call it after editing the cell at Pos.
func (in *Interpreter) CheckHalt() {
	in.Halted = !in.StringMode && in.Current() == '@'
}

func (in *Interpreter) opName(c rune) string {
	switch {
	case in.SkipNext:
		return "skip"
	case in.StringMode:
		return "literal"
	}
	return OpName(Decode(c))
}

// Run steps until the program halts or faults
func (in *Interpreter) Run() error {
	in.Logger.Debug("Run started.", "width", in.width, "height", in.height, "mode", in.Mode.String())
	for !in.Halted {
		if err := in.Step(); err != nil {
			in.Logger.Debug("Run aborted.", "steps", in.Steps, "error", err)
			return err
		}
	}
	in.Logger.Debug("Run finished.", "steps", in.Steps)
	return nil
}

// pop pops a value, turning underflow into a fault
func (in *Interpreter) pop(c rune) (int, error) {
	v, err := in.Stack.Pop()
	if err != nil {
		return 0, in.fault(types.ErrStackUnderflow, c, nil)
	}
	return v, nil
}

func (in *Interpreter) fault(code int, c rune, cause error) error {
	return &types.Fault{Code: code, Pos: in.Pos, Char: c, Err: cause}
}

// StackString returns a string representation of the stack
func (in *Interpreter) StackString() string {
	return in.Stack.String()
}

// StateString summarizes the instruction pointer and flags
func (in *Interpreter) StateString() string {
	return fmt.Sprintf("pos=%s dir=%s cell=%q string=%t skip=%t halted=%t steps=%d",
		in.Pos, in.Dir, in.Current(), in.StringMode, in.SkipNext, in.Halted, in.Steps)
}
