/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sniffer.go
Description: Format and encoding sniffer for the Akaylee DAT Converter.
Inspects a bounded byte sample of an input file and reports a best-guess
encoding and structural format (delimited, fixed-width, or binary-table).
The sniff is a best-effort heuristic: ambiguous samples fail loudly with
UnreadableFileError rather than producing a low-confidence guess.
*/

package sniffer

import (
	"io"
	"os"

	"github.com/kleascm/akaylee-datconv/pkg/core"
	"github.com/kleascm/akaylee-datconv/pkg/dbf"
)

const (
	// DefaultSampleSize is the number of bytes read for sniffing.
	DefaultSampleSize = 64 * 1024

	// maxSampleLines caps how many lines participate in delimiter and
	// fixed-width analysis.
	maxSampleLines = 20
)

// Sniffer inspects input files and produces format guesses. A single
// Sniffer is stateless between calls; the sample it reads lives only for
// the duration of one Sniff.
type Sniffer struct {
	sampleSize int
}

// NewSniffer creates a sniffer with the default sample size.
func NewSniffer() *Sniffer {
	return &Sniffer{sampleSize: DefaultSampleSize}
}

// SetSampleSize overrides the sniffing sample size. Values below one line
// of typical data make classification useless, so n must be positive.
func (s *Sniffer) SetSampleSize(n int) {
	if n > 0 {
		s.sampleSize = n
	}
}

// Sniff reads a bounded sample of the file at path and classifies it.
// The returned guess is immutable; callers must not modify it.
func (s *Sniffer) Sniff(path string) (*core.FormatGuess, error) {
	sample, truncated, err := s.readSample(path)
	if err != nil {
		return nil, err
	}

	// A self-describing binary table is recognized by its header block
	// before any text trial runs; its body often passes a Latin-1 trial
	// by accident.
	if schema, err := dbf.ParseSchema(sample); err == nil {
		return &core.FormatGuess{
			Encoding:  core.EncodingNone,
			Structure: core.StructureBinaryTable,
			Schema:    schema,
		}, nil
	}

	enc, ok := SelectEncoding(sample)
	if !ok {
		// All text encodings failed: binary table without a parseable
		// header in the sample. The decoder re-reads the header from
		// the full file and fails there if it is not actually DBF.
		return &core.FormatGuess{
			Encoding:  core.EncodingNone,
			Structure: core.StructureBinaryTable,
		}, nil
	}

	decoded, err := core.DecodeBytes(sample, enc)
	if err != nil {
		return nil, &core.UnreadableFileError{Path: path, Reason: "sample does not decode as " + string(enc)}
	}

	lines := SampleLines(string(decoded), truncated)
	if len(lines) > maxSampleLines {
		lines = lines[:maxSampleLines]
	}
	if len(lines) < 2 {
		return nil, &core.UnreadableFileError{Path: path, Reason: "sample holds fewer than two lines"}
	}

	if delim, ok := detectDelimiter(lines); ok {
		return &core.FormatGuess{
			Encoding:  enc,
			Structure: core.StructureDelimited,
			Delimiter: delim,
		}, nil
	}

	if boundaries, ok := detectFixedWidth(lines); ok {
		return &core.FormatGuess{
			Encoding:   enc,
			Structure:  core.StructureFixedWidth,
			Boundaries: boundaries,
		}, nil
	}

	return nil, &core.UnreadableFileError{Path: path, Reason: "no consistent delimiter or column layout in sample"}
}

// readSample reads up to sampleSize bytes from path. truncated reports
// whether the file continues past the sample; one extra byte is attempted
// so a file of exactly sampleSize bytes is not mistaken for a longer one.
func (s *Sniffer) readSample(path string) ([]byte, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, &core.UnreadableFileError{Path: path, Reason: err.Error()}
	}
	defer f.Close()

	buf := make([]byte, s.sampleSize+1)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, false, &core.UnreadableFileError{Path: path, Reason: err.Error()}
	}
	if n == 0 {
		return nil, false, &core.UnreadableFileError{Path: path, Reason: "file is empty"}
	}
	if n > s.sampleSize {
		return buf[:s.sampleSize], true, nil
	}
	return buf[:n], false, nil
}

// detectDelimiter finds a candidate delimiter whose per-line count is
// positive and identical on every sampled line. When several candidates
// qualify, the one producing the most fields wins; remaining ties go to
// candidate priority order.
func detectDelimiter(lines []string) (rune, bool) {
	bestDelim := rune(0)
	bestCount := 0
	for _, cand := range DelimiterCandidates {
		counts := CountDelimiters(lines, cand)
		if !uniformPositive(counts) {
			continue
		}
		if counts[0] > bestCount {
			bestDelim = cand
			bestCount = counts[0]
		}
	}
	return bestDelim, bestCount > 0
}

// uniformPositive reports whether every count is equal and greater than zero.
func uniformPositive(counts []int) bool {
	if len(counts) == 0 || counts[0] == 0 {
		return false
	}
	for _, c := range counts[1:] {
		if c != counts[0] {
			return false
		}
	}
	return true
}

// detectFixedWidth classifies uniformly sized lines whose blank columns
// line up. Boundaries are the inferred column start offsets: offset zero
// plus the position following each run of universal whitespace.
func detectFixedWidth(lines []string) ([]int, bool) {
	width := len(lines[0])
	runes := make([][]rune, len(lines))
	for i, line := range lines {
		if len(line) != width {
			return nil, false
		}
		runes[i] = []rune(line)
	}
	runeWidth := len(runes[0])
	for _, r := range runes[1:] {
		if len(r) != runeWidth {
			return nil, false
		}
	}

	universalSpace := make([]bool, runeWidth)
	for pos := 0; pos < runeWidth; pos++ {
		universalSpace[pos] = true
		for _, r := range runes {
			if r[pos] != ' ' {
				universalSpace[pos] = false
				break
			}
		}
	}

	boundaries := []int{0}
	inGap := false
	for pos := 0; pos < runeWidth; pos++ {
		if universalSpace[pos] {
			inGap = true
			continue
		}
		if inGap && pos > 0 {
			boundaries = append(boundaries, pos)
		}
		inGap = false
	}

	// One column is indistinguishable from free text; demand at least two.
	if len(boundaries) < 2 {
		return nil, false
	}
	return boundaries, true
}
