package charclass

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildClassifiesEachCategory(t *testing.T) {
	tbl := Build("a1 +_")
	require.Equal(t, 5, tbl.Len())
	require.Equal(t, Letter, tbl.At(0))    // a
	require.Equal(t, Digit, tbl.At(1))     // 1
	require.Equal(t, Whitespace, tbl.At(2))
	require.Equal(t, Symbol, tbl.At(3))    // +
	require.Equal(t, Letter, tbl.At(4))    // _
}

func TestAtPastEndIsSymbol(t *testing.T) {
	tbl := Build("ab")
	require.Equal(t, Symbol, tbl.At(2))
	require.Equal(t, Symbol, tbl.At(-1))
}

func TestByteOffsetTracksMultiByteRunes(t *testing.T) {
	tbl := Build("aé1")
	require.Equal(t, 0, tbl.ByteOffset(0))
	require.Equal(t, 1, tbl.ByteOffset(1))
	// 'é' is 2 bytes in UTF-8.
	require.Equal(t, 3, tbl.ByteOffset(2))
	require.Equal(t, 4, tbl.ByteOffset(3))
}
