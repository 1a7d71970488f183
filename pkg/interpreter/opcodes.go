package interpreter

// Op identifies an instruction. Every playfield character decodes to exactly
// one Op; characters outside the instruction set decode to OpIllegal.
type Op byte

const (
	OpNop       Op = iota // space
	OpEnd                 // @ (handled by the loop)
	OpDigit               // 0-9 push digit value
	OpAdd                 // b a -- (b+a)
	OpSub                 // b a -- (b-a)
	OpMul                 // b a -- (b*a)
	OpDiv                 // b a -- floor(b/a)
	OpMod                 // b a -- (b mod a)
	OpGreater             // b a -- (b>a)
	OpNot                 // c -- (c==0)
	OpHorizIf             // x -- ; left if x else right
	OpVertIf              // x -- ; up if x else down
	OpBridge              // skip next cell
	OpDup                 // a -- a a
	OpDrop                // a --
	OpSwap                // b a -- a b
	OpPrintNum            // a -- ; print decimal
	OpPrintChar           // a -- ; print character
	OpInputNum            // -- n ; read integer line
	OpInputChar           // -- c ; read character
	OpRandom              // random direction
	OpGet                 // x y -- c
	OpPut                 // v x y --
	OpString              // enter string mode
	OpLeft                // <
	OpUp                  // ^
	OpRight               // >
	OpDown                // v
	OpIllegal             // not an instruction

	numOps
)

// Decode maps a playfield character to its opcode.
func Decode(c rune) Op {
	switch c {
	case ' ':
		return OpNop
	case '@':
		return OpEnd
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return OpDigit
	case '+':
		return OpAdd
	case '-':
		return OpSub
	case '*':
		return OpMul
	case '/':
		return OpDiv
	case '%':
		return OpMod
	case '`':
		return OpGreater
	case '!':
		return OpNot
	case '_':
		return OpHorizIf
	case '|':
		return OpVertIf
	case '#':
		return OpBridge
	case ':':
		return OpDup
	case '$':
		return OpDrop
	case '\\':
		return OpSwap
	case '.':
		return OpPrintNum
	case ',':
		return OpPrintChar
	case '&':
		return OpInputNum
	case '~':
		return OpInputChar
	case '?':
		return OpRandom
	case 'g':
		return OpGet
	case 'p':
		return OpPut
	case '"':
		return OpString
	case '<':
		return OpLeft
	case '^':
		return OpUp
	case '>':
		return OpRight
	case 'v':
		return OpDown
	}
	return OpIllegal
}

var opNames = [numOps]string{
	OpNop:       "nop",
	OpEnd:       "end",
	OpDigit:     "digit",
	OpAdd:       "add",
	OpSub:       "sub",
	OpMul:       "mul",
	OpDiv:       "div",
	OpMod:       "mod",
	OpGreater:   "greater",
	OpNot:       "not",
	OpHorizIf:   "if-h",
	OpVertIf:    "if-v",
	OpBridge:    "bridge",
	OpDup:       "dup",
	OpDrop:      "drop",
	OpSwap:      "swap",
	OpPrintNum:  "print.n",
	OpPrintChar: "print.c",
	OpInputNum:  "input.n",
	OpInputChar: "input.c",
	OpRandom:    "random",
	OpGet:       "get",
	OpPut:       "put",
	OpString:    "string",
	OpLeft:      "left",
	OpUp:        "up",
	OpRight:     "right",
	OpDown:      "down",
	OpIllegal:   "illegal",
}

// OpName returns the name of an opcode for tracing
func OpName(op Op) string {
	if op >= numOps {
		return "?"
	}
	return opNames[op]
}
