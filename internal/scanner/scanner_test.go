package scanner

import (
	"testing"

	"github.com/aledsdavies/polishc/internal/catalogue"
	"github.com/stretchr/testify/require"
)

func TestMatchWordAdvancesOnSuccess(t *testing.T) {
	s := New("abc123 +", catalogue.Default())
	word, ok := s.MatchWord()
	require.True(t, ok)
	require.Equal(t, "abc123", word)
	require.Equal(t, byte('+'), s.input[s.Offset()])
}

func TestMatchWordFailsAndRewindsOnDigitStart(t *testing.T) {
	s := New("123abc", catalogue.Default())
	mark := s.Mark()
	_, ok := s.MatchWord()
	require.False(t, ok)
	require.Equal(t, mark, s.Mark())
}

func TestMatchNumberSingleSeparator(t *testing.T) {
	s := New("0.1", catalogue.Default())
	res, ok := s.MatchNumber()
	require.True(t, ok)
	require.Equal(t, "0.1", res.Lexeme)
	require.Equal(t, 0, res.Offset)
}

func TestMatchNumberStopsAtSecondSeparator(t *testing.T) {
	s := New("5.0.1", catalogue.Default())
	res, ok := s.MatchNumber()
	require.True(t, ok)
	require.Equal(t, "5.0", res.Lexeme)
	require.False(t, s.AtEnd())
}

func TestMatchVariableNameRejectsKnownOperator(t *testing.T) {
	s := New("mod", catalogue.Default())
	mark := s.Mark()
	_, ok := s.MatchVariableName()
	require.False(t, ok)
	require.Equal(t, mark, s.Mark())
}

func TestMatchVariableNameAcceptsOrdinaryIdentifier(t *testing.T) {
	s := New("total", catalogue.Default())
	res, ok := s.MatchVariableName()
	require.True(t, ok)
	require.Equal(t, "total", res.Name)
}

func TestMatchOperatorSymbolicLongestMatch(t *testing.T) {
	cat := catalogue.Build([]catalogue.Info{
		{Name: "=", Category: catalogue.Infix, Priority: 1},
		{Name: "==", Category: catalogue.Infix, Priority: 1},
	})
	s := New("==x", cat)
	res, ok := s.MatchOperator(catalogue.Infix)
	require.True(t, ok)
	require.Equal(t, "==", res.Info.Name)
}

func TestMatchOperatorWordMissLeavesCursorPastWord(t *testing.T) {
	cat := catalogue.Build([]catalogue.Info{
		{Name: "mod", Category: catalogue.Infix, Priority: 2},
	})
	s := New("notanop rest", cat)
	_, ok := s.MatchOperator(catalogue.Infix)
	require.False(t, ok)
	// DESIGN.md Open Question 1: cursor stays past the consumed word.
	require.Equal(t, "rest", s.Remainder())
}

func TestPeekTokenDoesNotConsumeWord(t *testing.T) {
	s := New("mdo rest", catalogue.Default())
	mark := s.Mark()
	require.Equal(t, "mdo", s.PeekToken())
	require.Equal(t, mark, s.Mark())
}

func TestPeekTokenDoesNotConsumeSymbol(t *testing.T) {
	s := New("*rest", catalogue.Default())
	mark := s.Mark()
	require.Equal(t, "*", s.PeekToken())
	require.Equal(t, mark, s.Mark())
}

func TestPeekTokenEmptyAtEndOfInput(t *testing.T) {
	s := New("", catalogue.Default())
	require.Equal(t, "", s.PeekToken())
}

func TestMatchOpeningAndClosingBrace(t *testing.T) {
	s := New("( a )", catalogue.Default())
	require.True(t, s.MatchOpeningBrace())
	_, ok := s.MatchVariableName()
	require.True(t, ok)
	require.True(t, s.MatchClosingBrace())
	require.True(t, s.AtEnd())
}
