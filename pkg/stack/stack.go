// Package stack provides the integer data stack used by the interpreter.
package stack

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnderflow is returned by Pop on an empty stack.
var ErrUnderflow = errors.New("stack underflow")

// Stack is an unbounded LIFO of ints. The zero value is an empty stack.
type Stack struct {
	items []int
}

// New creates an empty stack
func New() *Stack {
	return &Stack{items: make([]int, 0, 64)}
}

// Push pushes v onto the stack
func (s *Stack) Push(v int) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top value
func (s *Stack) Pop() (int, error) {
	if len(s.items) == 0 {
		return 0, ErrUnderflow
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// PeekOr returns the top value, or def if the stack is empty.
func (s *Stack) PeekOr(def int) int {
	if len(s.items) == 0 {
		return def
	}
	return s.items[len(s.items)-1]
}

// PopNOr pops up to len(defaults) values and returns them in pop order.
// When the stack runs out, the remaining positions take the value of
// defaults at the same index. It never fails.
func (s *Stack) PopNOr(defaults ...int) []int {
	out := make([]int, len(defaults))
	for i, def := range defaults {
		if len(s.items) == 0 {
			out[i] = def
			continue
		}
		out[i], _ = s.Pop()
	}
	return out
}

// PopAllOr pops len(defaults) values in pop order. If fewer are available,
// they are still consumed and defaults is returned whole.
func (s *Stack) PopAllOr(defaults ...int) []int {
	if len(s.items) < len(defaults) {
		s.items = s.items[:0]
		return append([]int(nil), defaults...)
	}
	return s.PopNOr(defaults...)
}

// Len returns the number of values on the stack
func (s *Stack) Len() int { return len(s.items) }

// Values returns a copy of the stack contents, bottom first.
func (s *Stack) Values() []int {
	out := make([]int, len(s.items))
	copy(out, s.items)
	return out
}

// Reset empties the stack
func (s *Stack) Reset() {
	s.items = s.items[:0]
}

func (s *Stack) String() string {
	if len(s.items) == 0 {
		return "[]"
	}
	parts := make([]string, len(s.items))
	for i, v := range s.items {
		parts[i] = strconv.Itoa(v)
	}
	return "[ " + strings.Join(parts, " ") + " ]"
}
