/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report.go
Description: Diagnostic report for the Akaylee DAT Converter. Prints a
human-readable analysis of a .dat file: encoding trials, delimiter counts,
structure classification, and the final format guess. The input is only
read; no output file is written.
*/

package diagnose

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kleascm/akaylee-datconv/pkg/core"
	"github.com/kleascm/akaylee-datconv/pkg/dbf"
	"github.com/kleascm/akaylee-datconv/pkg/sniffer"
)

const (
	hexViewBytes    = 100 // Bytes shown in the hex view section
	previewLines    = 5   // Lines used for delimiter counting display
	previewColumns  = 5   // Columns shown per delimiter preview
	previewColWidth = 30  // Characters shown per previewed column
)

// Reporter produces diagnostic reports. The sniffer it wraps does the
// actual classification; the reporter prints every intermediate signal the
// sniffer normally keeps to itself.
type Reporter struct {
	sniffer    *sniffer.Sniffer
	sampleSize int
}

// NewReporter creates a reporter with the default sniffing sample size.
func NewReporter() *Reporter {
	return &Reporter{
		sniffer:    sniffer.NewSniffer(),
		sampleSize: sniffer.DefaultSampleSize,
	}
}

// SetSampleSize overrides the sample size for both the report and the
// embedded sniffer.
func (r *Reporter) SetSampleSize(n int) {
	if n > 0 {
		r.sampleSize = n
		r.sniffer.SetSampleSize(n)
	}
}

// Report writes a diagnostic analysis of the file at path to w. The file is
// only read, never written.
func (r *Reporter) Report(path string, w io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return &core.UnreadableFileError{Path: path, Reason: err.Error()}
	}

	f, err := os.Open(path)
	if err != nil {
		return &core.UnreadableFileError{Path: path, Reason: err.Error()}
	}
	sample := make([]byte, r.sampleSize)
	n, _ := io.ReadFull(f, sample)
	f.Close()
	if n == 0 {
		return &core.UnreadableFileError{Path: path, Reason: "file is empty"}
	}
	sample = sample[:n]

	rule := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 40)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "DAT FILE DIAGNOSTIC REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintf(w, "Size: %d bytes\n\n", info.Size())

	fmt.Fprintln(w, "1. HEX VIEW")
	fmt.Fprintln(w, sub)
	r.writeHexView(w, sample)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "2. STRUCTURE SIGNALS")
	fmt.Fprintln(w, sub)
	r.writeSignals(w, sample)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "3. ENCODING TRIALS")
	fmt.Fprintln(w, sub)
	for _, trial := range sniffer.TryEncodings(sample) {
		status := "FAIL"
		if trial.OK {
			status = "OK"
		}
		fmt.Fprintf(w, "%-8s %-8s %s\n", trial.Encoding, status, trial.Reason)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "4. DELIMITER COUNTS")
	fmt.Fprintln(w, sub)
	r.writeDelimiterCounts(w, sample)
	fmt.Fprintln(w)

	if schema, err := dbf.ParseSchema(sample); err == nil {
		fmt.Fprintln(w, "5. BINARY TABLE SCHEMA")
		fmt.Fprintln(w, sub)
		writeSchema(w, schema)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "RECOMMENDATION")
	fmt.Fprintln(w, rule)
	guess, err := r.sniffer.Sniff(path)
	if err != nil {
		fmt.Fprintf(w, "No confident classification: %v\n", err)
		fmt.Fprintln(w, "Consider forcing an encoding and delimiter with the convert flags.")
		return nil
	}
	writeGuess(w, guess)
	return nil
}

// writeHexView prints the leading bytes in hex, 20 per line.
func (r *Reporter) writeHexView(w io.Writer, sample []byte) {
	view := sample
	if len(view) > hexViewBytes {
		view = view[:hexViewBytes]
	}
	for i := 0; i < len(view); i += 20 {
		end := i + 20
		if end > len(view) {
			end = len(view)
		}
		parts := make([]string, 0, 20)
		for _, b := range view[i:end] {
			parts = append(parts, fmt.Sprintf("%02x", b))
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
	}
}

// writeSignals prints BOM, line ending, and NUL-byte observations.
func (r *Reporter) writeSignals(w io.Writer, sample []byte) {
	if enc, ok := sniffer.DetectBOM(sample); ok {
		fmt.Fprintf(w, "Byte order mark: %s\n", enc)
	} else {
		fmt.Fprintln(w, "Byte order mark: none")
	}

	text := string(sample)
	switch {
	case strings.Contains(text, "\r\n"):
		fmt.Fprintln(w, "Line endings: CRLF (Windows)")
	case strings.Contains(text, "\n"):
		fmt.Fprintln(w, "Line endings: LF (Unix)")
	case strings.Contains(text, "\r"):
		fmt.Fprintln(w, "Line endings: CR (legacy Mac)")
	default:
		fmt.Fprintln(w, "Line endings: none found in sample")
	}

	for _, b := range sample {
		if b == 0 {
			fmt.Fprintln(w, "Warning: sample contains NUL bytes, file may be binary")
			return
		}
	}
}

// writeDelimiterCounts prints per-line candidate delimiter counts over the
// first few sampled lines, plus a column preview under the best candidate.
func (r *Reporter) writeDelimiterCounts(w io.Writer, sample []byte) {
	enc, ok := sniffer.SelectEncoding(sample)
	if !ok {
		fmt.Fprintln(w, "Sample does not decode as text; skipping delimiter analysis")
		return
	}
	decoded, err := core.DecodeBytes(sample, enc)
	if err != nil {
		fmt.Fprintln(w, "Sample does not decode as text; skipping delimiter analysis")
		return
	}
	lines := sniffer.SampleLines(string(decoded), false)
	if len(lines) > previewLines {
		lines = lines[:previewLines]
	}
	if len(lines) == 0 {
		fmt.Fprintln(w, "No lines in sample")
		return
	}

	best := rune(0)
	bestTotal := 0
	for _, cand := range sniffer.DelimiterCandidates {
		counts := sniffer.CountDelimiters(lines, cand)
		total := 0
		for _, c := range counts {
			total += c
		}
		if total == 0 {
			continue
		}
		fmt.Fprintf(w, "%-10s per-line counts %v\n", delimiterName(cand), counts)
		if total > bestTotal {
			best = cand
			bestTotal = total
		}
	}
	if bestTotal == 0 {
		fmt.Fprintln(w, "No candidate delimiter found in sample")
		return
	}

	fmt.Fprintf(w, "\nMost likely delimiter: %s\n", delimiterName(best))
	fields := strings.Split(lines[0], string(best))
	fmt.Fprintf(w, "First line splits into %d columns:\n", len(fields))
	for i, field := range fields {
		if i >= previewColumns {
			fmt.Fprintf(w, "  ... %d more\n", len(fields)-previewColumns)
			break
		}
		if len(field) > previewColWidth {
			field = field[:previewColWidth]
		}
		fmt.Fprintf(w, "  col %d: %q\n", i+1, field)
	}
}

// writeSchema prints a binary-table field listing.
func writeSchema(w io.Writer, schema *core.TableSchema) {
	fmt.Fprintf(w, "Records: %d, record length: %d bytes\n", schema.RecordCount, schema.RecordLength)
	fmt.Fprintf(w, "%-15s %-6s %-8s %s\n", "Field", "Type", "Length", "Decimals")
	for _, f := range schema.Fields {
		fmt.Fprintf(w, "%-15s %-6s %-8d %d\n", f.Name, string(f.Type), f.Length, f.DecimalCount)
	}
}

// writeGuess prints the final format guess in recommendation form.
func writeGuess(w io.Writer, guess *core.FormatGuess) {
	fmt.Fprintf(w, "Structure: %s\n", guess.Structure)
	switch guess.Structure {
	case core.StructureDelimited:
		fmt.Fprintf(w, "Encoding:  %s\n", guess.Encoding)
		fmt.Fprintf(w, "Delimiter: %s\n", delimiterName(guess.Delimiter))
	case core.StructureFixedWidth:
		fmt.Fprintf(w, "Encoding:  %s\n", guess.Encoding)
		fmt.Fprintf(w, "Column start offsets: %v\n", guess.Boundaries)
	case core.StructureBinaryTable:
		fmt.Fprintln(w, "Encoding:  (binary, no text encoding)")
		if guess.Schema != nil {
			fmt.Fprintf(w, "Fields: %s\n", strings.Join(guess.Schema.FieldNames(), ", "))
		}
	}
}

// delimiterName renders a delimiter rune for display.
func delimiterName(d rune) string {
	switch d {
	case ',':
		return "comma (,)"
	case '\t':
		return "tab (\\t)"
	case '|':
		return "pipe (|)"
	case ';':
		return "semicolon (;)"
	case '\x01':
		return "unit sep (\\x01)"
	default:
		return fmt.Sprintf("%q", d)
	}
}
