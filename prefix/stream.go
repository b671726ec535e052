// Package prefix implements the tokenise/emit exchange pair spec.md §1
// scopes as a near-trivial collaborator rather than part of the core
// parser (SPEC_FULL.md §4.10): a flat preorder Item stream, its canonical
// "op#arg#arg" text rendering, and the inverse parse of that text back
// into a Stream.
package prefix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aledsdavies/polishc/internal/ast"
	"github.com/aledsdavies/polishc/internal/catalogue"
)

// Kind mirrors ast.Kind without exposing internal/ast to callers of this
// package — a Stream is meant to outlive and travel independently of any
// parse that produced it.
type Kind int

const (
	Number Kind = iota
	Variable
	Operator
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Variable:
		return "variable"
	case Operator:
		return "operator"
	default:
		return "unknown"
	}
}

// Item is one entry of a Stream. Text carries the number lexeme, the
// variable name, or the operator name depending on Kind. Priority and
// Prefix are meaningful only when Kind is Operator.
type Item struct {
	Kind     Kind
	Offset   int
	Text     string
	Priority int
	Prefix   bool
}

// Stream is the flat preorder sequence linearize.Preorder produces,
// copied into values independent of the arena that built them.
type Stream []Item

// FromAST copies a linearize.Preorder result into an exchange Stream.
func FromAST(items []ast.Item) Stream {
	if items == nil {
		return nil
	}
	out := make(Stream, len(items))
	for i, it := range items {
		switch it.Kind {
		case ast.KindNumber:
			out[i] = Item{Kind: Number, Offset: it.Offset, Text: it.Lexeme}
		case ast.KindVariable:
			out[i] = Item{Kind: Variable, Offset: it.Offset, Text: it.Variable}
		case ast.KindOperator:
			out[i] = Item{Kind: Operator, Offset: it.Offset, Text: it.Op.Name, Priority: it.Op.Priority, Prefix: it.Op.Prefix}
		}
	}
	return out
}

// ErrMalformed is returned by Canonical and Parse when a stream's
// structure is inconsistent with the arity its operators imply: either
// too few operands were available, or tokens remained unconsumed after
// the root was fully rendered.
var ErrMalformed = errors.New("prefix: malformed stream")

// String renders the canonical "op#arg#arg" text form, or "" if s is not
// well-formed. Callers that need to distinguish a malformed stream from a
// genuinely empty one should call Canonical instead.
func (s Stream) String() string {
	text, err := s.Canonical()
	if err != nil {
		return ""
	}
	return text
}

// Canonical renders s into its canonical exchange text, recursively
// consuming each operator's operands (one for prefix, two for infix) from
// the front of the remaining stream. It fails if the stream under- or
// over-supplies tokens relative to what its operators' arities demand.
func (s Stream) Canonical() (string, error) {
	i := 0
	text, err := render(s, &i)
	if err != nil {
		return "", err
	}
	if i != len(s) {
		return "", fmt.Errorf("%w: %d unconsumed token(s) after root", ErrMalformed, len(s)-i)
	}
	return text, nil
}

func render(items Stream, i *int) (string, error) {
	if *i >= len(items) {
		return "", fmt.Errorf("%w: expected an operand, found end of stream", ErrMalformed)
	}
	it := items[*i]
	*i++

	if it.Kind != Operator {
		return it.Text, nil
	}

	var left string
	if !it.Prefix {
		l, err := render(items, i)
		if err != nil {
			return "", err
		}
		left = l
	}
	right, err := render(items, i)
	if err != nil {
		return "", err
	}
	if it.Prefix {
		return it.Text + "#" + right, nil
	}
	return it.Text + "#" + left + "#" + right, nil
}

// Parse reconstructs a Stream from canonical text, resolving each token's
// kind and, for operators, arity against cat. A token is an operator if
// cat knows it in either category; the category determines whether one
// or two trailing tokens are consumed as its operands. A name known in
// both categories is always read as a prefix operator, so Canonical text
// of an infix use of such a name (e.g. "-#a#b" for a-b) does not parse
// back; for streams without such names Parse is the inverse of Canonical.
// Anything else is a number if it parses as one, otherwise a variable.
func Parse(canonical string, cat *catalogue.Catalogue) (Stream, error) {
	if canonical == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	tokens := strings.Split(canonical, "#")
	var out Stream
	i := 0
	if err := parseToken(tokens, &i, cat, &out); err != nil {
		return nil, err
	}
	if i != len(tokens) {
		return nil, fmt.Errorf("%w: %d unconsumed token(s) after root", ErrMalformed, len(tokens)-i)
	}
	return out, nil
}

func parseToken(tokens []string, i *int, cat *catalogue.Catalogue, out *Stream) error {
	if *i >= len(tokens) {
		return fmt.Errorf("%w: expected a token, found end of stream", ErrMalformed)
	}
	text := tokens[*i]
	*i++

	if info, ok := cat.Find(text, catalogue.Prefix); ok {
		offset := len(*out)
		*out = append(*out, Item{Kind: Operator, Offset: offset, Text: text, Priority: info.Priority, Prefix: true})
		return parseToken(tokens, i, cat, out)
	}
	if info, ok := cat.Find(text, catalogue.Infix); ok {
		offset := len(*out)
		*out = append(*out, Item{Kind: Operator, Offset: offset, Text: text, Priority: info.Priority, Prefix: false})
		if err := parseToken(tokens, i, cat, out); err != nil {
			return err
		}
		return parseToken(tokens, i, cat, out)
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		*out = append(*out, Item{Kind: Number, Offset: len(*out), Text: text})
		return nil
	}
	*out = append(*out, Item{Kind: Variable, Offset: len(*out), Text: text})
	return nil
}
