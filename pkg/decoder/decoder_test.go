/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: decoder_test.go
Description: Tests for the decoder. Covers delimited and fixed-width decoding,
header detection, column type inference, structural failure, and the
encoding-aware read path.
*/

package decoder_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/akaylee-datconv/pkg/core"
	"github.com/kleascm/akaylee-datconv/pkg/decoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture writes raw bytes to a temp file and returns its path.
func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// delimitedGuess builds a delimited format guess for tests.
func delimitedGuess(delim rune) *core.FormatGuess {
	return &core.FormatGuess{
		Encoding:  core.EncodingUTF8,
		Structure: core.StructureDelimited,
		Delimiter: delim,
	}
}

// TestDecodeDelimitedOrder tests that string rows come back with the
// expected field count and in original line order
func TestDecodeDelimitedOrder(t *testing.T) {
	path := writeFixture(t, "order.dat", []byte("x|y|z\nq|w|e\nr|t|u\n"))

	table, err := decoder.NewDecoder().Decode(path, delimitedGuess('|'))
	require.NoError(t, err)
	assert.False(t, table.HasHeader())
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "x", table.Rows[0][0].Render())
	assert.Equal(t, "w", table.Rows[1][1].Render())
	assert.Equal(t, "u", table.Rows[2][2].Render())
	for _, row := range table.Rows {
		assert.Len(t, row, 3)
	}
}

// TestDecodeHeaderDetection tests the header heuristic on the canonical
// a,b,c over numeric data example
func TestDecodeHeaderDetection(t *testing.T) {
	path := writeFixture(t, "header.dat", []byte("a,b,c\n1,2,3\n4,5,6\n"))

	table, err := decoder.NewDecoder().Decode(path, delimitedGuess(','))
	require.NoError(t, err)
	require.True(t, table.HasHeader())
	assert.Equal(t, "a", table.Header[0].Render())
	assert.Equal(t, "b", table.Header[1].Render())
	assert.Equal(t, "c", table.Header[2].Render())

	require.Len(t, table.Rows, 2)
	assert.Equal(t, core.KindNumber, table.Rows[0][0].Kind)
	assert.Equal(t, float64(1), table.Rows[0][0].Num)
	assert.Equal(t, float64(6), table.Rows[1][2].Num)
}

// TestDecodeNoHeaderForAllStrings tests that text-only data keeps its
// first row as data
func TestDecodeNoHeaderForAllStrings(t *testing.T) {
	path := writeFixture(t, "strings.dat", []byte("name,city\nann,nyc\nbob,sfo\n"))

	table, err := decoder.NewDecoder().Decode(path, delimitedGuess(','))
	require.NoError(t, err)
	assert.False(t, table.HasHeader())
	assert.Len(t, table.Rows, 3)
}

// TestDecodeMalformedRow tests that a field count mismatch aborts the whole
// decode with MalformedRowError
func TestDecodeMalformedRow(t *testing.T) {
	path := writeFixture(t, "bad.dat", []byte("a,b,c\n1,2\n4,5,6\n"))

	_, err := decoder.NewDecoder().Decode(path, delimitedGuess(','))
	require.Error(t, err)
	var malformed *core.MalformedRowError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
	assert.Equal(t, 3, malformed.Expected)
	assert.Equal(t, 2, malformed.Got)
}

// TestDecodeFixedWidth tests slicing at boundary offsets with per-field
// whitespace trimming
func TestDecodeFixedWidth(t *testing.T) {
	path := writeFixture(t, "fixed.dat", []byte("JOHN  1234 NY\nMARY  5678 LA\n"))
	guess := &core.FormatGuess{
		Encoding:   core.EncodingUTF8,
		Structure:  core.StructureFixedWidth,
		Boundaries: []int{0, 6, 11},
	}

	table, err := decoder.NewDecoder().Decode(path, guess)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "JOHN", table.Rows[0][0].Render())
	assert.Equal(t, core.KindNumber, table.Rows[0][1].Kind)
	assert.Equal(t, float64(1234), table.Rows[0][1].Num)
	assert.Equal(t, "LA", table.Rows[1][2].Render())
}

// TestDecodeFixedWidthShortLine tests that a line too short for the column
// layout aborts with MalformedRowError
func TestDecodeFixedWidthShortLine(t *testing.T) {
	path := writeFixture(t, "short.dat", []byte("JOHN  1234 NY\nMARY\n"))
	guess := &core.FormatGuess{
		Encoding:   core.EncodingUTF8,
		Structure:  core.StructureFixedWidth,
		Boundaries: []int{0, 6, 11},
	}

	_, err := decoder.NewDecoder().Decode(path, guess)
	require.Error(t, err)
	var malformed *core.MalformedRowError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
}

// TestDecodeTypeInference tests that a majority-numeric column converts its
// parseable values once while outliers stay strings
func TestDecodeTypeInference(t *testing.T) {
	path := writeFixture(t, "mixed.dat", []byte("10,ann\n20,bob\nn/a,cat\n"))

	table, err := decoder.NewDecoder().Decode(path, delimitedGuess(','))
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, core.KindNumber, table.Rows[0][0].Kind)
	assert.Equal(t, core.KindNumber, table.Rows[1][0].Kind)
	assert.Equal(t, core.KindString, table.Rows[2][0].Kind)
	assert.Equal(t, "n/a", table.Rows[2][0].Render())
	assert.Equal(t, core.KindString, table.Rows[0][1].Kind)
}

// TestDecodeQuoteEscapedField tests that a CSV quote-escaped field decodes
// back to its original value instead of keeping the escape syntax
func TestDecodeQuoteEscapedField(t *testing.T) {
	path := writeFixture(t, "quoted.dat", []byte("id,desc\n1,\"5\"\" pipe\"\n2,plain\n"))

	table, err := decoder.NewDecoder().Decode(path, delimitedGuess(','))
	require.NoError(t, err)
	require.True(t, table.HasHeader())
	require.Len(t, table.Rows, 2)
	assert.Equal(t, `5" pipe`, table.Rows[0][1].Render())
	assert.Equal(t, "plain", table.Rows[1][1].Render())
}

// TestDecodeBareQuoteInField tests that legacy exports with an unescaped
// quote inside an unquoted field still decode, keeping the quote literally
func TestDecodeBareQuoteInField(t *testing.T) {
	path := writeFixture(t, "bare.dat", []byte("a,b\n1,5\" pipe\n2,x\n"))

	table, err := decoder.NewDecoder().Decode(path, delimitedGuess(','))
	require.NoError(t, err)
	require.True(t, table.HasHeader())
	require.Len(t, table.Rows, 2)
	assert.Equal(t, `5" pipe`, table.Rows[0][1].Render())
}

// TestDecodeLatin1 tests the encoding-aware read path
func TestDecodeLatin1(t *testing.T) {
	path := writeFixture(t, "latin1.dat", []byte("caf\xe9,1\nth\xe9,2\n"))
	guess := &core.FormatGuess{
		Encoding:  core.EncodingLatin1,
		Structure: core.StructureDelimited,
		Delimiter: ',',
	}

	table, err := decoder.NewDecoder().Decode(path, guess)
	require.NoError(t, err)
	assert.Equal(t, "café", table.Rows[0][0].Render())
	assert.Equal(t, "thé", table.Rows[1][0].Render())
}

// TestDecodeEmptyFile tests that an empty file fails with
// UnreadableFileError
func TestDecodeEmptyFile(t *testing.T) {
	path := writeFixture(t, "empty.dat", nil)

	_, err := decoder.NewDecoder().Decode(path, delimitedGuess(','))
	require.Error(t, err)
	var unreadable *core.UnreadableFileError
	assert.ErrorAs(t, err, &unreadable)
}
