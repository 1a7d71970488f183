// Package debugger drives an interpreter one command at a time: single
// stepping, breakpoints, and inspection or patching of the playfield.
package debugger

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fungeLang/funge/pkg/interpreter"
	"github.com/fungeLang/funge/pkg/parser"
	"github.com/fungeLang/funge/pkg/types"
)

// ErrQuit is returned by Exec when the user asks to leave.
var ErrQuit = errors.New("quit")

// Session is an interactive debugging session over one interpreter
type Session struct {
	interp      *interpreter.Interpreter
	out         io.Writer
	breakpoints map[types.Position]bool

	// fault is the error that aborted the run, cleared by reset
	fault error
}

// New creates a Session writing its reports to out
func New(interp *interpreter.Interpreter, out io.Writer) *Session {
	return &Session{
		interp:      interp,
		out:         out,
		breakpoints: make(map[types.Position]bool),
	}
}

// Interpreter returns the interpreter being debugged
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Breakpoints returns the breakpoint positions in row-major order
func (s *Session) Breakpoints() []types.Position {
	out := make([]types.Position, 0, len(s.breakpoints))
	for p := range s.breakpoints {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Exec parses and executes one command line. Blank lines do nothing.
// A runtime fault is reported and returned; the session stays usable but
// refuses to step until reset.
func (s *Session) Exec(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	cmd, err := parser.Parse(line)
	if err != nil {
		return fmt.Errorf("bad command: %w", err)
	}

	switch {
	case cmd.Quit:
		return ErrQuit
	case cmd.Help:
		s.printHelp()
	case cmd.Step != nil:
		return s.step(cmd.Step.StepCount())
	case cmd.Continue:
		return s.cont()
	case cmd.Break != nil:
		p := s.wrap(*cmd.Break)
		s.breakpoints[p] = true
		fmt.Fprintf(s.out, "Breakpoint set at %s\n", p)
	case cmd.Delete != nil:
		p := s.wrap(*cmd.Delete)
		if !s.breakpoints[p] {
			fmt.Fprintf(s.out, "No breakpoint at %s\n", p)
			return nil
		}
		delete(s.breakpoints, p)
		fmt.Fprintf(s.out, "Breakpoint deleted at %s\n", p)
	case cmd.Peek != nil:
		p := s.wrap(*cmd.Peek)
		c := s.interp.Grid.At(p.X, p.Y)
		fmt.Fprintf(s.out, "%s = %q (%d)\n", p, c, c)
	case cmd.Poke != nil:
		p := s.wrap(parser.Point{X: cmd.Poke.X, Y: cmd.Poke.Y})
		s.interp.Grid.Set(p.X, p.Y, interpreter.CellRune(cmd.Poke.Value()))
		if p == s.interp.Pos {
			s.interp.CheckHalt()
		}
		fmt.Fprintf(s.out, "%s = %q\n", p, s.interp.Grid.At(p.X, p.Y))
	case cmd.Stack:
		fmt.Fprintln(s.out, s.interp.StackString())
	case cmd.Grid:
		s.printGrid()
	case cmd.Pos:
		fmt.Fprintln(s.out, s.interp.StateString())
	case cmd.Reset:
		if err := s.interp.Reset(); err != nil {
			return err
		}
		s.fault = nil
		fmt.Fprintln(s.out, "Program reset.")
	}
	return nil
}

func (s *Session) wrap(p parser.Point) types.Position {
	x, y := s.interp.Grid.Wrap(p.X, p.Y)
	return types.Position{X: x, Y: y}
}

// runnable reports whether stepping may continue
func (s *Session) runnable() (bool, error) {
	if s.fault != nil {
		return false, fmt.Errorf("program faulted (%v); use reset", s.fault)
	}
	if s.interp.Halted {
		s.report()
		return false, nil
	}
	return true, nil
}

func (s *Session) step(n int) error {
	if ok, err := s.runnable(); !ok {
		return err
	}
	for i := 0; i < n && !s.interp.Halted; i++ {
		if err := s.interp.Step(); err != nil {
			s.fault = err
			return err
		}
	}
	s.report()
	return nil
}

// cont runs until the program halts, faults, or reaches a breakpoint. The
// first step always executes so continuing from a breakpoint makes progress.
func (s *Session) cont() error {
	if ok, err := s.runnable(); !ok {
		return err
	}
	for first := true; !s.interp.Halted; first = false {
		if !first && s.breakpoints[s.interp.Pos] {
			fmt.Fprintf(s.out, "Breakpoint at %s\n", s.interp.Pos)
			break
		}
		if err := s.interp.Step(); err != nil {
			s.fault = err
			return err
		}
	}
	s.report()
	return nil
}

func (s *Session) report() {
	if s.interp.Halted {
		fmt.Fprintf(s.out, "Program halted after %d steps.\n", s.interp.Steps)
		return
	}
	fmt.Fprintln(s.out, s.interp.StateString())
}

// printGrid prints the non-blank part of the playfield with the pointer
// marked by a caret under its column.
func (s *Session) printGrid() {
	g := s.interp.Grid
	rows := strings.Split(g.String(), "\n")
	for len(rows) <= s.interp.Pos.Y {
		rows = append(rows, "")
	}
	for y, row := range rows {
		fmt.Fprintf(s.out, "%3d | %s\n", y, row)
		if y == s.interp.Pos.Y {
			fmt.Fprintf(s.out, "    | %s^\n", strings.Repeat(" ", s.interp.Pos.X))
		}
	}
}

func (s *Session) printHelp() {
	fmt.Fprint(s.out, `
Debugger commands:
  step [N], s [N]     Execute N steps (default 1)
  continue, c         Run until halt, fault or breakpoint
  break X Y, b X Y    Set a breakpoint
  delete X Y, d X Y   Remove a breakpoint
  peek X Y            Show a playfield cell
  poke X Y N|'c'      Overwrite a playfield cell
  stack               Show the stack
  grid, show          Show the playfield
  pos, state          Show pointer, direction and flags
  reset               Reload the program
  help, h             Show this help
  quit, q             Leave the debugger
`)
}
