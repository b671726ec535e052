// Package synerr defines the syntax-error taxonomy of spec.md §7, kept in
// its own leaf package so both internal/parser (which raises these) and
// the root polish package (which re-exports the type for callers) can
// import it without a cycle.
package synerr

import (
	"fmt"
	"strings"
)

// Kind is one of the four error kinds spec.md §7 defines.
type Kind int

const (
	// ParsingFailed: the top-level statement could not be matched, or
	// the input was not fully consumed.
	ParsingFailed Kind = iota
	// InvalidStatement: an opening brace matched but the enclosed
	// statement failed to parse.
	InvalidStatement
	// UnmatchedBraces: a statement inside an opening brace parsed but
	// the closing brace is missing.
	UnmatchedBraces
	// InvalidVariableName: parse_variable received input that is not
	// exactly one identifier, or that collides with a known operator
	// name.
	InvalidVariableName
)

func (k Kind) String() string {
	switch k {
	case ParsingFailed:
		return "parsing failed"
	case InvalidStatement:
		return "invalid statement"
	case UnmatchedBraces:
		return "unmatched braces"
	case InvalidVariableName:
		return "invalid variable name"
	default:
		return "syntax error"
	}
}

// SyntaxError is the single exported error type all four kinds of
// spec.md §7 are modeled as (SPEC_FULL.md §7). Offset is a 0-based byte
// offset into Input where the failure was detected.
type SyntaxError struct {
	Kind       Kind
	Offset     int
	Message    string
	Suggestion string
	Input      string
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	if snippet := e.snippet(); snippet != "" {
		msg += "\n" + snippet
	}
	return msg
}

// Is lets callers use errors.Is(err, synerr.Sentinel(kind)) instead of a
// type assertion plus a manual Kind comparison.
func (e *SyntaxError) Is(target error) bool {
	t, ok := target.(*SyntaxError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel returns a SyntaxError whose only meaningful field is Kind, for
// use with errors.Is(err, synerr.Sentinel(synerr.UnmatchedBraces)).
func Sentinel(kind Kind) *SyntaxError {
	return &SyntaxError{Kind: kind}
}

// snippet renders a Rust/Clang-style caret pointer at Offset, in the same
// register as the teacher's ParseError.createCodeSnippet.
func (e *SyntaxError) snippet() string {
	if e.Input == "" {
		return ""
	}
	line, column := lineColumn(e.Input, e.Offset)
	lines := strings.Split(e.Input, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	content := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "  --> %d:%d\n", line, column)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s\n", line, content)
	b.WriteString("   | ")
	if column > 0 && column <= len(content)+1 {
		b.WriteString(strings.Repeat(" ", column-1) + "^")
	}
	return b.String()
}

// lineColumn converts a byte offset into 1-based line/column numbers.
func lineColumn(input string, offset int) (line, column int) {
	line, column = 1, 1
	for i, r := range input {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
