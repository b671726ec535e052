// Package scanner implements the character-level scanner primitives of
// spec.md §4.3: a mutable cursor over a classified input string, where
// every primitive advances on success and restores the cursor on failure,
// and whitespace is implicitly skipped before an attempt and (on success)
// again after.
package scanner

import (
	"strings"

	"github.com/aledsdavies/polishc/internal/catalogue"
	"github.com/aledsdavies/polishc/internal/charclass"
)

// DecimalSeparator is the single code point match_number treats as a
// decimal separator. spec.md §9 leaves locale-sensitivity as an open
// question and recommends fixing it to '.' for determinism; this module
// takes that recommendation rather than exposing a configuration knob
// (see DESIGN.md, Open Question 2).
const DecimalSeparator = '.'

// Scanner is the per-call cursor the parser drives. It is never shared
// across parses (spec.md §5): each Parser.Parse call builds a fresh one.
type Scanner struct {
	input string
	tbl   *charclass.Table
	cat   *catalogue.Catalogue
	at    int // rune index
}

// New builds a Scanner over input, classified once up front.
func New(input string, cat *catalogue.Catalogue) *Scanner {
	return &Scanner{input: input, tbl: charclass.Build(input), cat: cat}
}

// Mark snapshots the cursor so the caller can restore it if a grammar
// alternative fails (spec.md §4.3 contract 1 assigns this responsibility
// to the *caller*, not to individual primitives, for anything beyond a
// primitive's own local failure).
func (s *Scanner) Mark() int { return s.at }

// Reset restores the cursor to a previously marked position.
func (s *Scanner) Reset(pos int) { s.at = pos }

// AtEnd reports whether the cursor has reached end-of-input.
func (s *Scanner) AtEnd() bool { return s.at >= s.tbl.Len() }

// Offset returns the byte offset of the cursor's current rune position in
// the original input — this is what gets recorded on emitted items
// (spec.md §6, source-offset preservation).
func (s *Scanner) Offset() int { return s.tbl.ByteOffset(s.at) }

// OffsetAt returns the byte offset of an arbitrary rune position, for
// callers that captured a position with Mark and need to report it later.
func (s *Scanner) OffsetAt(pos int) int { return s.tbl.ByteOffset(pos) }

// SkipWhitespace advances the cursor over a maximal run of whitespace.
func (s *Scanner) SkipWhitespace() {
	for !s.AtEnd() && s.tbl.At(s.at) == charclass.Whitespace {
		s.at++
	}
}

// MatchWord implements match_word: requires the cursor to sit on a letter,
// consumes a maximal run of {letter, digit}, and reports whether anything
// was consumed. Leading whitespace is skipped first; on failure the
// cursor is restored to where it stood before that whitespace skip.
func (s *Scanner) MatchWord() (word string, ok bool) {
	entry := s.at
	s.SkipWhitespace()
	if s.AtEnd() || s.tbl.At(s.at) != charclass.Letter {
		s.at = entry
		return "", false
	}
	start := s.at
	for !s.AtEnd() && (s.tbl.At(s.at) == charclass.Letter || s.tbl.At(s.at) == charclass.Digit) {
		s.at++
	}
	word = s.sliceRunes(start, s.at)
	s.SkipWhitespace()
	return word, true
}

// MatchOpeningBrace implements match_opening_brace: consumes a single '('
// with surrounding whitespace.
func (s *Scanner) MatchOpeningBrace() bool {
	return s.matchRune('(')
}

// MatchClosingBrace implements match_closing_brace: consumes a single ')'
// with surrounding whitespace.
func (s *Scanner) MatchClosingBrace() bool {
	return s.matchRune(')')
}

func (s *Scanner) matchRune(r rune) bool {
	entry := s.at
	s.SkipWhitespace()
	if s.AtEnd() || s.tbl.Rune(s.at) != r {
		s.at = entry
		return false
	}
	s.at++
	s.SkipWhitespace()
	return true
}

// NumberResult is the lexeme and source offset match_number produces,
// kept free of internal/ast so scanner has no dependency on the tree
// layer — the parser is the one that turns this into an ast.Node.
type NumberResult struct {
	Lexeme string
	Offset int
}

// MatchNumber implements match_number: requires a digit at the cursor,
// consumes a maximal run of digits that may contain at most one
// DecimalSeparator, and reports the consumed lexeme.
func (s *Scanner) MatchNumber() (NumberResult, bool) {
	entry := s.at
	s.SkipWhitespace()
	if s.AtEnd() || s.tbl.At(s.at) != charclass.Digit {
		s.at = entry
		return NumberResult{}, false
	}
	start := s.at
	offset := s.Offset()
	seenSeparator := false
	for !s.AtEnd() {
		if s.tbl.At(s.at) == charclass.Digit {
			s.at++
			continue
		}
		if s.tbl.Rune(s.at) == DecimalSeparator && !seenSeparator {
			seenSeparator = true
			s.at++
			continue
		}
		break
	}
	lexeme := s.sliceRunes(start, s.at)
	s.SkipWhitespace()
	return NumberResult{Lexeme: lexeme, Offset: offset}, true
}

// VariableResult mirrors NumberResult for match_variable_name.
type VariableResult struct {
	Name   string
	Offset int
}

// MatchVariableName implements match_variable_name: consumes a word and
// rejects (restoring the cursor) if it matches any known operator name —
// spec.md §3's invariant that a variable name must not coincide with a
// known word-form operator name.
func (s *Scanner) MatchVariableName() (VariableResult, bool) {
	entry := s.at
	s.SkipWhitespace()
	offset := s.Offset()
	word, ok := s.MatchWord()
	if !ok {
		s.at = entry
		return VariableResult{}, false
	}
	if s.cat.IsKnown(word) {
		s.at = entry
		return VariableResult{}, false
	}
	return VariableResult{Name: word, Offset: offset}, true
}

// OperatorResult is what match_operator produces before the parser wraps
// it into an ast.Node.
type OperatorResult struct {
	Info   catalogue.Info
	Offset int
}

// MatchOperator implements match_operator(category) per spec.md §4.3's two
// cases.
//
// Word form (cursor sits on a letter): the word is tentatively consumed
// and looked up. On a miss, spec.md §9's first open question applies: the
// source behaviour leaves the cursor past the consumed word with no node
// produced, and this implementation preserves that bug-compatible
// behaviour rather than silently restoring the cursor (DESIGN.md, Open
// Question 1) — callers relying on backtracking to a *different*
// alternative after a word-form miss inherit that same surprise the
// reference implementation has.
//
// Symbolic form (anything else): longest-match among symbolic entries of
// category, trying lengths from min(remaining, longest_symbolic(category))
// down to 1, first hit wins.
func (s *Scanner) MatchOperator(category catalogue.Category) (OperatorResult, bool) {
	entry := s.at
	s.SkipWhitespace()
	if s.AtEnd() {
		s.at = entry
		return OperatorResult{}, false
	}
	offset := s.Offset()

	if s.tbl.At(s.at) == charclass.Letter {
		word, ok := s.MatchWord()
		if !ok {
			return OperatorResult{}, false
		}
		info, found := s.cat.Find(word, category)
		if !found {
			// Bug-compatible: cursor stays past the word (see doc comment).
			return OperatorResult{}, false
		}
		s.SkipWhitespace()
		return OperatorResult{Info: info, Offset: offset}, true
	}

	maxLen := s.cat.LongestSymbolic(category)
	remaining := s.tbl.Len() - s.at
	if remaining < maxLen {
		maxLen = remaining
	}
	for length := maxLen; length >= 1; length-- {
		candidate := s.sliceRunes(s.at, s.at+length)
		if info, found := s.cat.Find(candidate, category); found {
			s.at += length
			s.SkipWhitespace()
			return OperatorResult{Info: info, Offset: offset}, true
		}
	}
	s.at = entry
	return OperatorResult{}, false
}

// PeekToken returns, without moving the cursor, the token match_operator
// or match_variable_name would next attempt to consume: the full word if
// the cursor sits on a letter, otherwise up to the longest known symbolic
// operator length (across both categories) of runes. Returns "" at
// end-of-input. Used only to build a fuzzy-suggestion candidate when a
// grammar alternative is about to report failure (SPEC_FULL.md §4.9) —
// never consulted by the grammar itself.
func (s *Scanner) PeekToken() string {
	entry := s.at
	defer func() { s.at = entry }()

	s.SkipWhitespace()
	if s.AtEnd() {
		return ""
	}
	if s.tbl.At(s.at) == charclass.Letter {
		word, _ := s.MatchWord()
		return word
	}

	maxLen := s.cat.LongestSymbolic(catalogue.Prefix)
	if infixLen := s.cat.LongestSymbolic(catalogue.Infix); infixLen > maxLen {
		maxLen = infixLen
	}
	if maxLen < 1 {
		maxLen = 1
	}
	if remaining := s.tbl.Len() - s.at; remaining < maxLen {
		maxLen = remaining
	}
	return s.sliceRunes(s.at, s.at+maxLen)
}

func (s *Scanner) sliceRunes(start, end int) string {
	startByte := s.tbl.ByteOffset(start)
	endByte := s.tbl.ByteOffset(end)
	return s.input[startByte:endByte]
}

// Remainder returns the unconsumed suffix of the input from the cursor,
// used in the top-level ParsingFailed message. The parser rewinds to the
// start of the input before reporting that error, so there it is the
// whole (trimmed) input.
func (s *Scanner) Remainder() string {
	if s.AtEnd() {
		return ""
	}
	return strings.TrimSpace(s.input[s.Offset():])
}
