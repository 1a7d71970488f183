// Package parser parses debugger command lines using Participle v2.
// Grammar is defined as Go structs with tags.
package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Command is one debugger command line. Exactly one field is set.
type Command struct {
	Step     *Step  `  @@`
	Continue bool   `| @("continue" | "cont" | "c")`
	Break    *Point `| ("break" | "b") @@`
	Delete   *Point `| ("delete" | "d") @@`
	Peek     *Point `| "peek" @@`
	Poke     *Poke  `| "poke" @@`
	Stack    bool   `| @"stack"`
	Grid     bool   `| @("grid" | "show")`
	Pos      bool   `| @("pos" | "state")`
	Reset    bool   `| @"reset"`
	Help     bool   `| @("help" | "h")`
	Quit     bool   `| @("quit" | "q" | "exit")`
}

// Step: step [N]
type Step struct {
	Keyword string `@("step" | "s")`
	Count   *int   `@Int?`
}

// Point is an (x, y) argument pair
type Point struct {
	X int `@Int`
	Y int `@Int`
}

// Poke: poke X Y (N | 'c')
type Poke struct {
	X    int     `@Int`
	Y    int     `@Int`
	Int  *int    `( @Int`
	Char *string `| @Char )`
}

var commandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Char", Pattern: `'.'`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z]+`},
})

// Parser is the debugger command parser
var Parser = participle.MustBuild[Command](
	participle.Lexer(commandLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Ident"),
)

// Parse parses a single command line
func Parse(line string) (*Command, error) {
	return Parser.ParseString("", strings.TrimSpace(line))
}

// Value returns the cell value a poke writes
func (p *Poke) Value() int {
	if p.Int != nil {
		return *p.Int
	}
	s := strings.TrimSuffix(strings.TrimPrefix(*p.Char, "'"), "'")
	for _, r := range s {
		return int(r)
	}
	return int('\'')
}

// StepCount returns the number of steps requested (default 1)
func (s *Step) StepCount() int {
	if s.Count == nil {
		return 1
	}
	return *s.Count
}
