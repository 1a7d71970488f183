// Package types defines the small value types shared by the funge packages:
// grid positions, instruction pointer directions and runtime faults.
package types

import (
	"errors"
	"fmt"
)

// Position is an (x, y) cell on the grid.
type Position struct {
	X, Y int
}

func (p Position) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Direction is the unit vector the instruction pointer advances by.
type Direction struct {
	DX, DY int
}

var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

// Directions lists the four directions in the order the random
// instruction draws from.
var Directions = [4]Direction{Up, Left, Down, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d, %d)", d.DX, d.DY)
}

// Fault codes
const (
	ErrNone               = 0
	ErrIllegalInstruction = 1
	ErrStackUnderflow     = 2
	ErrArithmetic         = 3
	ErrInputExhausted     = 4
	ErrInvalidInput       = 5
	ErrStepLimit          = 6
)

// ErrorMessage returns a human-readable message for a fault code
func ErrorMessage(code int) string {
	switch code {
	case ErrNone:
		return "no error"
	case ErrIllegalInstruction:
		return "illegal instruction"
	case ErrStackUnderflow:
		return "stack underflow"
	case ErrArithmetic:
		return "division by zero"
	case ErrInputExhausted:
		return "input exhausted"
	case ErrInvalidInput:
		return "invalid input"
	case ErrStepLimit:
		return "step limit exceeded"
	default:
		return fmt.Sprintf("unknown error %d", code)
	}
}

// Fault is a fatal runtime error. It records where the instruction pointer
// was and which character it was executing.
type Fault struct {
	Code int
	Pos  Position
	Char rune
	Err  error // underlying cause, if any
}

func (f *Fault) Error() string {
	msg := fmt.Sprintf("%s at %s", ErrorMessage(f.Code), f.Pos)
	if f.Code == ErrIllegalInstruction {
		msg = fmt.Sprintf("illegal character U+%04X %q at %s", f.Char, f.Char, f.Pos)
	} else if f.Char != 0 {
		msg = fmt.Sprintf("%s (executing %q)", msg, f.Char)
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Fault) Unwrap() error { return f.Err }

// FaultCode returns the fault code carried by err, or ErrNone if err is not
// a *Fault.
func FaultCode(err error) int {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code
	}
	return ErrNone
}
