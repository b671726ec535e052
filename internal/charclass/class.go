// Package charclass precomputes a per-rune classification table over an
// input string so the scanner's inner loops consult it in O(1) instead of
// re-deriving whitespace/letter/digit/symbol on every character.
package charclass

import (
	"unicode"
)

// Class is one of the four categories spec.md §4.2 defines.
type Class int

const (
	Whitespace Class = iota
	Letter
	Digit
	Symbol
)

func (c Class) String() string {
	switch c {
	case Whitespace:
		return "whitespace"
	case Letter:
		return "letter"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Table holds one Class per rune of an input string, alongside the byte
// offset of each rune and the input's byte length, so the scanner can
// advance a byte cursor by rune rather than by a fixed width. Classification follows spec.md §6:
// the input is a sequence of Unicode code points, and whitespace/letter/
// digit use the Unicode categories (underscore counts as a letter).
type Table struct {
	runes   []rune
	classes []Class
	offsets []int // byte offset of runes[i] in the original string
	size    int   // byte length of the original string
}

// Build classifies every rune of input once, up front. Mirrors the
// teacher's ASCII lookup-table precompute (runtime/lexer/lexer.go's
// init()), generalised from a fixed 128-entry array to a full Unicode
// sweep because spec.md §6 requires Unicode categories, not just ASCII.
func Build(input string) *Table {
	t := &Table{
		runes:   make([]rune, 0, len(input)),
		classes: make([]Class, 0, len(input)),
		offsets: make([]int, 0, len(input)),
		size:    len(input),
	}
	for i, r := range input {
		t.runes = append(t.runes, r)
		t.offsets = append(t.offsets, i)
		t.classes = append(t.classes, classify(r))
	}
	return t
}

func classify(r rune) Class {
	switch {
	case unicode.IsSpace(r):
		return Whitespace
	case unicode.IsLetter(r) || r == '_':
		return Letter
	case unicode.IsDigit(r):
		return Digit
	default:
		return Symbol
	}
}

// Len returns the number of runes classified.
func (t *Table) Len() int { return len(t.runes) }

// At returns the class of the i-th rune, or Symbol (never matches anything
// a scanner primitive looks for) once i is past the end — callers are
// expected to check against Len() themselves when the distinction matters,
// but primitives that merely "peek past EOF" should see a harmless symbol
// rather than panicking.
func (t *Table) At(i int) Class {
	if i < 0 || i >= len(t.classes) {
		return Symbol
	}
	return t.classes[i]
}

// Rune returns the i-th rune.
func (t *Table) Rune(i int) rune {
	if i < 0 || i >= len(t.runes) {
		return 0
	}
	return t.runes[i]
}

// ByteOffset returns the byte offset of the i-th rune in the original
// input, or the input's byte length if i == Len() (one past the end).
func (t *Table) ByteOffset(i int) int {
	if i >= len(t.offsets) {
		return t.size
	}
	if i < 0 {
		return 0
	}
	return t.offsets[i]
}
