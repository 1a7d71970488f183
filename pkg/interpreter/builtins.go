package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fungeLang/funge/pkg/grid"
	"github.com/fungeLang/funge/pkg/types"
)

type handler func(in *Interpreter, c rune) error

// handlers is indexed by Op; every Op below numOps must have an entry.
var handlers = [numOps]handler{
	OpNop:       nop,
	OpEnd:       nop,
	OpDigit:     pushDigit,
	OpAdd:       binary(func(b, a int) (int, bool) { return b + a, true }),
	OpSub:       binary(func(b, a int) (int, bool) { return b - a, true }),
	OpMul:       binary(func(b, a int) (int, bool) { return b * a, true }),
	OpDiv:       binary(floorDiv),
	OpMod:       binary(floorMod),
	OpGreater:   binary(func(b, a int) (int, bool) { return boolInt(b > a), true }),
	OpNot:       not,
	OpHorizIf:   branch(types.Left, types.Right),
	OpVertIf:    branch(types.Up, types.Down),
	OpBridge:    bridge,
	OpDup:       dup,
	OpDrop:      drop,
	OpSwap:      swap,
	OpPrintNum:  printNum,
	OpPrintChar: printChar,
	OpInputNum:  inputNum,
	OpInputChar: inputChar,
	OpRandom:    random,
	OpGet:       get,
	OpPut:       put,
	OpString:    stringMode,
	OpLeft:      turn(types.Left),
	OpUp:        turn(types.Up),
	OpRight:     turn(types.Right),
	OpDown:      turn(types.Down),
	OpIllegal:   illegal,
}

func nop(*Interpreter, rune) error { return nil }

func pushDigit(in *Interpreter, c rune) error {
	in.Stack.Push(int(c - '0'))
	return nil
}

// binary pops a then b and pushes fn(b, a). fn reports false when the
// operation is undefined for its operands.
func binary(fn func(b, a int) (int, bool)) handler {
	return func(in *Interpreter, c rune) error {
		a, err := in.pop(c)
		if err != nil {
			return err
		}
		b, err := in.pop(c)
		if err != nil {
			return err
		}
		v, ok := fn(b, a)
		if !ok {
			return in.fault(types.ErrArithmetic, c, nil)
		}
		in.Stack.Push(v)
		return nil
	}
}

// floorDiv rounds toward negative infinity.
func floorDiv(b, a int) (int, bool) {
	if a == 0 {
		return 0, false
	}
	q := b / a
	if b%a != 0 && (b < 0) != (a < 0) {
		q--
	}
	return q, true
}

// floorMod takes the sign of the divisor.
func floorMod(b, a int) (int, bool) {
	if a == 0 {
		return 0, false
	}
	m := b % a
	if m != 0 && (m < 0) != (a < 0) {
		m += a
	}
	return m, true
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func not(in *Interpreter, c rune) error {
	v, err := in.pop(c)
	if err != nil {
		return err
	}
	in.Stack.Push(boolInt(v == 0))
	return nil
}

func branch(nonzero, zero types.Direction) handler {
	return func(in *Interpreter, c rune) error {
		v, err := in.pop(c)
		if err != nil {
			return err
		}
		if v != 0 {
			in.Dir = nonzero
		} else {
			in.Dir = zero
		}
		return nil
	}
}

func turn(d types.Direction) handler {
	return func(in *Interpreter, _ rune) error {
		in.Dir = d
		return nil
	}
}

func bridge(in *Interpreter, _ rune) error {
	in.SkipNext = true
	return nil
}

func dup(in *Interpreter, _ rune) error {
	if in.Stack.Len() == 0 {
		in.Stack.Push(0)
	}
	in.Stack.Push(in.Stack.PeekOr(0))
	return nil
}

func drop(in *Interpreter, c rune) error {
	_, err := in.pop(c)
	return err
}

func swap(in *Interpreter, _ rune) error {
	v := in.Stack.PopNOr(0, 0)
	in.Stack.Push(v[0])
	in.Stack.Push(v[1])
	return nil
}

func printNum(in *Interpreter, c rune) error {
	v, err := in.pop(c)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(in.Output, "%d ", v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func printChar(in *Interpreter, c rune) error {
	v, err := in.pop(c)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(in.Output, "%c", CellRune(v)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// CellRune converts a stack value to a playfield character. Values that are not valid
// code points become U+FFFD.
func CellRune(v int) rune {
	if v < 0 || v > utf8.MaxRune || !utf8.ValidRune(rune(v)) {
		return utf8.RuneError
	}
	return rune(v)
}

func (in *Interpreter) readLine(c rune) (string, error) {
	if in.Input == nil {
		return "", in.fault(types.ErrInputExhausted, c, nil)
	}
	line, err := in.Input.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", in.fault(types.ErrInputExhausted, c, nil)
		}
		return "", in.fault(types.ErrInputExhausted, c, err)
	}
	return line, nil
}

func inputNum(in *Interpreter, c rune) error {
	line, err := in.readLine(c)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return in.fault(types.ErrInvalidInput, c, err)
	}
	in.Stack.Push(n)
	return nil
}

func inputChar(in *Interpreter, c rune) error {
	line, err := in.readLine(c)
	if err != nil {
		return err
	}
	if line == "" {
		in.Stack.Push('\n')
		return nil
	}
	r, _ := utf8.DecodeRuneInString(line)
	in.Stack.Push(int(r))
	return nil
}

func random(in *Interpreter, _ rune) error {
	in.Dir = types.Directions[in.Rand.Intn(len(types.Directions))]
	return nil
}

// get and put consume a short stack but then use (0, 0) and a blank
// for every operand.
func get(in *Interpreter, _ rune) error {
	v := in.Stack.PopAllOr(0, 0)
	x, y := in.Grid.Wrap(v[1], v[0])
	in.Stack.Push(int(in.Grid.At(x, y)))
	return nil
}

func put(in *Interpreter, _ rune) error {
	v := in.Stack.PopAllOr(0, 0, grid.Blank)
	x, y := in.Grid.Wrap(v[1], v[0])
	in.Grid.Set(x, y, CellRune(v[2]))
	return nil
}

func stringMode(in *Interpreter, _ rune) error {
	in.StringMode = true
	return nil
}

func illegal(in *Interpreter, c rune) error {
	if in.Mode == Strict {
		return in.fault(types.ErrIllegalInstruction, c, nil)
	}
	in.Logger.Debug("Ignoring unknown instruction.", "pos", in.Pos.String(), "char", string(c))
	return nil
}
