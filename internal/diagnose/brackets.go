package diagnose

import (
	"fmt"

	"github.com/creachadair/mds/stack"

	"github.com/jsonstudio/jsonstudio/internal/models"
)

// openDelim records a currently-open brace or bracket and where it was
// opened. Positions are 1-based.
type openDelim struct {
	ch   byte
	line int
	col  int
}

func delimName(closer byte) string {
	if closer == '}' {
		return "brace"
	}
	return "bracket"
}

func closerFor(opener byte) byte {
	if opener == '{' {
		return '}'
	}
	return ']'
}

// TrackBrackets makes a single left-to-right pass over the whole document,
// pairing braces and brackets on a stack. Quote and escape state are carried
// as locals so characters inside string literals are inert. It reports the
// first unexpected closer, the first mismatched pair, or the innermost
// delimiter left unclosed at end of input; a zero Diagnosis means delimiter
// balance holds.
func TrackBrackets(input string) models.Diagnosis {
	open := stack.New[openDelim]()
	inString := false
	escaped := false
	line, col := 1, 0

	for i := 0; i < len(input); i++ {
		c := input[i]
		if c == '\n' {
			line++
			col = 0
			escaped = false
			continue
		}
		col++

		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// string contents are inert
		case c == '{' || c == '[':
			open.Push(openDelim{ch: c, line: line, col: col})
		case c == '}' || c == ']':
			top, ok := open.Pop()
			if !ok {
				return models.Diagnosis{
					Line:   line,
					Column: col,
					Suggestion: fmt.Sprintf(
						"Unexpected closing %s '%c': there is no matching opening %s",
						delimName(c), c, delimName(c)),
				}
			}
			if closerFor(top.ch) != c {
				return models.Diagnosis{
					Line:   line,
					Column: col,
					Suggestion: fmt.Sprintf(
						"Mismatched bracket: expected '%c' but found '%c'. Opening '%c' was at line %d",
						closerFor(top.ch), c, top.ch, top.line),
				}
			}
		}
	}

	if top, ok := open.Pop(); ok {
		return models.Diagnosis{
			Line:   top.line,
			Column: top.col,
			Suggestion: fmt.Sprintf(
				"Unclosed %s: add a closing '%c'",
				delimName(closerFor(top.ch)), closerFor(top.ch)),
		}
	}
	return models.Diagnosis{}
}
