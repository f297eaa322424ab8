/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report_test.go
Description: Tests for the diagnostic report. Checks that every section
appears for a text fixture, that binary tables get a schema section, and
that unclassifiable files still produce a report instead of an error.
*/

package diagnose_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/akaylee-datconv/pkg/core"
	"github.com/kleascm/akaylee-datconv/pkg/diagnose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// TestReportCommaDelimited tests the full report for a clean text file
func TestReportCommaDelimited(t *testing.T) {
	path := writeFixture(t, "comma.dat", []byte("UNI_NO,DESC,ONHAND\n10001,WIDGET,25\n10002,GASKET,3\n"))

	var buf bytes.Buffer
	require.NoError(t, diagnose.NewReporter().Report(path, &buf))
	out := buf.String()

	assert.Contains(t, out, "DAT FILE DIAGNOSTIC REPORT")
	assert.Contains(t, out, "1. HEX VIEW")
	assert.Contains(t, out, "2. STRUCTURE SIGNALS")
	assert.Contains(t, out, "Line endings: LF (Unix)")
	assert.Contains(t, out, "3. ENCODING TRIALS")
	assert.Contains(t, out, "utf-8")
	assert.Contains(t, out, "4. DELIMITER COUNTS")
	assert.Contains(t, out, "Most likely delimiter: comma (,)")
	assert.Contains(t, out, "RECOMMENDATION")
	assert.Contains(t, out, "Structure: delimited")
	assert.NotContains(t, out, "BINARY TABLE SCHEMA")
}

// TestReportUnclassifiable tests that an ambiguous file yields a report
// with guidance rather than a hard failure
func TestReportUnclassifiable(t *testing.T) {
	path := writeFixture(t, "single.dat", []byte("just one line no structure\n"))

	var buf bytes.Buffer
	require.NoError(t, diagnose.NewReporter().Report(path, &buf))
	out := buf.String()

	assert.Contains(t, out, "No confident classification")
	assert.Contains(t, out, "forcing an encoding and delimiter")
}

// TestReportEmptyFile tests that an empty file fails with
// UnreadableFileError
func TestReportEmptyFile(t *testing.T) {
	path := writeFixture(t, "empty.dat", nil)

	var buf bytes.Buffer
	err := diagnose.NewReporter().Report(path, &buf)
	require.Error(t, err)
	var unreadable *core.UnreadableFileError
	assert.ErrorAs(t, err, &unreadable)
}

// TestReportNulWarning tests the NUL-byte warning in structure signals
func TestReportNulWarning(t *testing.T) {
	path := writeFixture(t, "nul.dat", []byte("a,b\x00c\nd,e\n"))

	var buf bytes.Buffer
	require.NoError(t, diagnose.NewReporter().Report(path, &buf))
	assert.Contains(t, buf.String(), "sample contains NUL bytes")
}
