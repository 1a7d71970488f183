package interpreter

import (
	"bufio"
	"io"
	"strings"
)

// InputReader supplies lines to the input instructions. ReadLine returns
// io.EOF once no more input is available.
type InputReader interface {
	ReadLine() (string, error)
}

// LineReader reads newline-terminated lines from an io.Reader.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader wraps r for line-at-a-time reads
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its line terminator. A final line
// without a trailing newline is still returned.
func (l *LineReader) ReadLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ScriptedInput replays a fixed list of lines, then reports io.EOF.
type ScriptedInput struct {
	lines []string
}

// NewScriptedInput creates an input that yields lines in order
func NewScriptedInput(lines ...string) *ScriptedInput {
	return &ScriptedInput{lines: lines}
}

func (s *ScriptedInput) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}
