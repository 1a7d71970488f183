// Package grid implements the fixed-size toroidal playfield.
// The playfield is both program and data: instructions are read from it and
// the program may rewrite it while running.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Blank is the fill character for cells not covered by the source.
const Blank = ' '

// ErrInvalidDimensions is returned when a grid is built with a non-positive
// width or height.
var ErrInvalidDimensions = errors.New("grid: width and height must be positive")

// Grid is a width×height buffer of runes stored row-major.
type Grid struct {
	width, height int
	cells         []rune
}

// New loads source into a width×height grid. Lines are padded with blanks
// or truncated to width; missing rows are blank and extra rows are dropped.
func New(source string, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]rune, width*height),
	}
	for i := range g.cells {
		g.cells[i] = Blank
	}

	for y, line := range splitLines(source) {
		if y >= height {
			break
		}
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			g.cells[g.idx(x, y)] = r
			x++
		}
	}

	return g, nil
}

// splitLines splits on \n, \r\n and lone \r. A trailing line break does not
// start a new line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func (g *Grid) idx(x, y int) int {
	return y*g.width + x
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// At returns the cell at (x, y). The caller must pass wrapped coordinates.
func (g *Grid) At(x, y int) rune {
	return g.cells[g.idx(x, y)]
}

// Set overwrites the cell at (x, y). The caller must pass wrapped coordinates.
func (g *Grid) Set(x, y int, r rune) {
	g.cells[g.idx(x, y)] = r
}

// Wrap reduces (x, y) onto the torus.
func (g *Grid) Wrap(x, y int) (int, int) {
	return mod(x, g.width), mod(y, g.height)
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Row returns row y as a string, including trailing blanks.
func (g *Grid) Row(y int) string {
	start := g.idx(0, y)
	return string(g.cells[start : start+g.width])
}

// String renders the grid with trailing blanks trimmed from each row and
// trailing blank rows removed.
func (g *Grid) String() string {
	rows := make([]string, g.height)
	for y := range rows {
		rows[y] = strings.TrimRight(g.Row(y), string(Blank))
	}
	last := len(rows)
	for last > 0 && rows[last-1] == "" {
		last--
	}
	return strings.Join(rows[:last], "\n")
}
