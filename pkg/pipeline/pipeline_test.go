/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: pipeline_test.go
Description: End-to-end tests for the conversion pipeline. Drives real
sniffer, decoder, and emitter stages over fixture files and checks the
produced CSV and XLSX outputs, the round-trip property, and user overrides.
*/

package pipeline_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kleascm/akaylee-datconv/pkg/core"
	"github.com/kleascm/akaylee-datconv/pkg/decoder"
	"github.com/kleascm/akaylee-datconv/pkg/emitter"
	"github.com/kleascm/akaylee-datconv/pkg/pipeline"
	"github.com/kleascm/akaylee-datconv/pkg/sniffer"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newConverter wires real stages with a quiet logger.
func newConverter(t *testing.T, emitterConfig *emitter.Config) *pipeline.Converter {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	emt, err := emitter.NewEmitter(emitterConfig)
	require.NoError(t, err)

	converter := pipeline.NewConverter(logger)
	converter.SetSniffer(sniffer.NewSniffer())
	converter.SetDecoder(decoder.NewDecoder())
	converter.SetEmitter(emt)
	return converter
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestRunCommaToXLSX tests the whole pipeline on a small comma-delimited
// file ending in a readable workbook
func TestRunCommaToXLSX(t *testing.T) {
	input := writeFixture(t, "small.dat", "a,b,c\n1,2,3\n4,5,6\n")
	converter := newConverter(t, nil)

	result, err := converter.Run(input, "")
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.RowCount)
	assert.Equal(t, 3, result.FieldCount)
	assert.True(t, result.HasHeader)

	expected := input[:len(input)-len(filepath.Ext(input))] + ".xlsx"
	assert.Equal(t, expected, result.WrittenPath)

	f, err := excelize.OpenFile(result.WrittenPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, rows[1])
	assert.Equal(t, []string{"4", "5", "6"}, rows[2])
}

// TestRunCSVRoundTrip tests that converting a file to CSV and converting
// that CSV again yields an identical table. The last row carries a double
// quote, which the CSV write escapes and the re-decode must unescape.
func TestRunCSVRoundTrip(t *testing.T) {
	input := writeFixture(t, "orig.dat",
		"id,name,qty\n1,ann,5\n2,bob,7\n3,cat,11\n4,5\" pipe,13\n")
	csvConfig := &emitter.Config{
		RowThreshold: emitter.DefaultRowThreshold,
		ForceFormat:  emitter.FormatCSV,
	}
	converter := newConverter(t, csvConfig)

	first, err := converter.Run(input, "")
	require.NoError(t, err)

	second, err := converter.Run(first.WrittenPath, filepath.Join(t.TempDir(), "again"))
	require.NoError(t, err)

	firstTable := decodeFile(t, input)
	secondTable := decodeFile(t, second.WrittenPath)

	require.Equal(t, firstTable.HasHeader(), secondTable.HasHeader())
	require.Equal(t, len(firstTable.Rows), len(secondTable.Rows))
	for i := range firstTable.Header {
		assert.True(t, firstTable.Header[i].Equal(secondTable.Header[i]))
	}
	for i := range firstTable.Rows {
		require.Len(t, secondTable.Rows[i], len(firstTable.Rows[i]))
		for j := range firstTable.Rows[i] {
			assert.True(t, firstTable.Rows[i][j].Equal(secondTable.Rows[i][j]),
				"row %d field %d differs", i, j)
		}
	}
	assert.Equal(t, `5" pipe`, secondTable.Rows[3][1].Render())
}

// decodeFile sniffs and decodes one file for table comparison.
func decodeFile(t *testing.T, path string) *core.Table {
	t.Helper()
	guess, err := sniffer.NewSniffer().Sniff(path)
	require.NoError(t, err)
	table, err := decoder.NewDecoder().Decode(path, guess)
	require.NoError(t, err)
	return table
}

// TestRunOverridesRescueAmbiguousFile tests that complete overrides carry a
// file the sniffer rejects as too short
func TestRunOverridesRescueAmbiguousFile(t *testing.T) {
	input := writeFixture(t, "single.dat", "10001|WIDGET|25\n")
	csvConfig := &emitter.Config{
		RowThreshold: emitter.DefaultRowThreshold,
		ForceFormat:  emitter.FormatCSV,
	}
	converter := newConverter(t, csvConfig)
	converter.SetOverrides(&pipeline.Overrides{
		Encoding:  core.EncodingUTF8,
		Delimiter: '|',
	})

	result, err := converter.Run(input, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
	assert.Equal(t, 3, result.FieldCount)

	data, err := os.ReadFile(result.WrittenPath)
	require.NoError(t, err)
	assert.Equal(t, "10001,WIDGET,25\n", string(data))
}

// TestRunPartialOverridesDoNotRescue tests that an override without an
// encoding still surfaces the sniffing failure
func TestRunPartialOverridesDoNotRescue(t *testing.T) {
	input := writeFixture(t, "single.dat", "10001|WIDGET|25\n")
	converter := newConverter(t, nil)
	converter.SetOverrides(&pipeline.Overrides{Delimiter: '|'})

	_, err := converter.Run(input, "")
	require.Error(t, err)
	var unreadable *core.UnreadableFileError
	assert.ErrorAs(t, err, &unreadable)
}

// TestRunForcedWidths tests that width overrides replace a delimited guess
func TestRunForcedWidths(t *testing.T) {
	input := writeFixture(t, "fixed.dat", "JOHN  1234 NY\nMARY  5678 LA\n")
	csvConfig := &emitter.Config{
		RowThreshold: emitter.DefaultRowThreshold,
		ForceFormat:  emitter.FormatCSV,
	}
	converter := newConverter(t, csvConfig)
	converter.SetOverrides(&pipeline.Overrides{
		Encoding: core.EncodingUTF8,
		Widths:   []int{6, 5, 2},
	})

	result, err := converter.Run(input, "")
	require.NoError(t, err)
	assert.Equal(t, core.StructureFixedWidth, result.Guess.Structure)
	assert.Equal(t, []int{0, 6, 11}, result.Guess.Boundaries)

	data, err := os.ReadFile(result.WrittenPath)
	require.NoError(t, err)
	assert.Equal(t, "JOHN,1234,NY\nMARY,5678,LA\n", string(data))
}

// TestRunMissingStage tests the guard against an unwired pipeline
func TestRunMissingStage(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	converter := pipeline.NewConverter(logger)

	_, err := converter.Run("whatever.dat", "")
	assert.Error(t, err)
}

// TestRunNoPartialOutputOnDecodeFailure tests that a malformed row past the
// sniffing sample leaves no output file behind
func TestRunNoPartialOutputOnDecodeFailure(t *testing.T) {
	var b strings.Builder
	b.WriteString("a,b,c\n")
	for i := 0; i < 30; i++ {
		b.WriteString("1,2,3\n")
	}
	b.WriteString("4,5\n")
	input := writeFixture(t, "bad.dat", b.String())
	converter := newConverter(t, nil)

	_, err := converter.Run(input, "")
	require.Error(t, err)
	var malformed *core.MalformedRowError
	require.ErrorAs(t, err, &malformed)

	base := input[:len(input)-len(filepath.Ext(input))]
	_, statCSV := os.Stat(base + ".csv")
	_, statXLSX := os.Stat(base + ".xlsx")
	assert.True(t, os.IsNotExist(statCSV))
	assert.True(t, os.IsNotExist(statXLSX))
}
