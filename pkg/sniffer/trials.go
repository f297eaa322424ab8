/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: trials.go
Description: Encoding trial and delimiter counting primitives for the Akaylee
DAT Converter sniffer. Also used by the diagnostic report, which prints every
trial result instead of just the winner.
*/

package sniffer

import (
	"strings"
	"unicode/utf8"

	"github.com/kleascm/akaylee-datconv/pkg/core"
)

// DelimiterCandidates lists the delimiter characters considered during
// sniffing, in tie-break priority order. 0x01 is the unit separator some
// Sybase bcp exports use.
var DelimiterCandidates = []rune{',', '\t', '|', ';', '\x01'}

// controlRatioLimit is the fraction of non-text control bytes above which a
// single-byte decode is considered failed. Latin-1 never fails byte-wise, so
// this threshold is what pushes binary content past the text trials.
const controlRatioLimit = 0.10

// EncodingTrial records the outcome of one candidate-encoding attempt.
type EncodingTrial struct {
	Encoding core.Encoding // Candidate that was tried
	OK       bool          // Whether the sample decodes acceptably
	Reason   string        // Short human-readable outcome
}

// DetectBOM reports the encoding implied by a leading byte order mark.
func DetectBOM(sample []byte) (core.Encoding, bool) {
	switch {
	case len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF:
		return core.EncodingUTF8, true
	case len(sample) >= 2 && sample[0] == 0xFF && sample[1] == 0xFE:
		return core.EncodingUTF16, true
	case len(sample) >= 2 && sample[0] == 0xFE && sample[1] == 0xFF:
		return core.EncodingUTF16, true
	default:
		return core.EncodingNone, false
	}
}

// TryEncodings runs every candidate encoding against the sample in priority
// order and returns all outcomes.
func TryEncodings(sample []byte) []EncodingTrial {
	return []EncodingTrial{
		tryUTF8(sample),
		tryLatin1(sample),
		tryUTF16(sample),
	}
}

// SelectEncoding returns the first candidate encoding that decodes the
// sample acceptably, honoring the priority order UTF-8, Latin-1, UTF-16.
func SelectEncoding(sample []byte) (core.Encoding, bool) {
	if enc, ok := DetectBOM(sample); ok {
		return enc, true
	}
	for _, trial := range TryEncodings(sample) {
		if trial.OK {
			return trial.Encoding, true
		}
	}
	return core.EncodingNone, false
}

func tryUTF8(sample []byte) EncodingTrial {
	trial := EncodingTrial{Encoding: core.EncodingUTF8}

	// A sample may end mid-rune; trim at most three trailing continuation
	// bytes before validating.
	trimmed := sample
	for i := 0; i < 3 && len(trimmed) > 0; i++ {
		if r, _ := utf8.DecodeLastRune(trimmed); r != utf8.RuneError {
			break
		}
		trimmed = trimmed[:len(trimmed)-1]
	}

	if !utf8.Valid(trimmed) {
		trial.Reason = "invalid byte sequence"
		return trial
	}
	if ratio := controlRatio(trimmed); ratio > controlRatioLimit {
		trial.Reason = "too many control bytes"
		return trial
	}
	trial.OK = true
	trial.Reason = "valid"
	return trial
}

func tryLatin1(sample []byte) EncodingTrial {
	trial := EncodingTrial{Encoding: core.EncodingLatin1}
	if ratio := controlRatio(sample); ratio > controlRatioLimit {
		trial.Reason = "too many control bytes"
		return trial
	}
	trial.OK = true
	trial.Reason = "acceptable"
	return trial
}

func tryUTF16(sample []byte) EncodingTrial {
	trial := EncodingTrial{Encoding: core.EncodingUTF16}
	if _, ok := DetectBOM(sample); ok && (sample[0] == 0xFF || sample[0] == 0xFE) {
		trial.OK = true
		trial.Reason = "byte order mark"
		return trial
	}

	// Without a BOM, ASCII-heavy UTF-16 shows a NUL in nearly every other
	// byte position. Demand that pattern before accepting.
	if len(sample) < 4 {
		trial.Reason = "sample too short"
		return trial
	}
	even, odd := 0, 0
	for i, b := range sample {
		if b == 0 {
			if i%2 == 0 {
				even++
			} else {
				odd++
			}
		}
	}
	half := len(sample) / 2
	if even > half*3/4 || odd > half*3/4 {
		trial.OK = true
		trial.Reason = "alternating NUL pattern"
		return trial
	}
	trial.Reason = "no byte order mark or NUL pattern"
	return trial
}

// controlRatio returns the fraction of bytes that are control characters
// other than tab, newline, and carriage return. Bytes in 0x80..0x9F are not
// counted: legacy exports routinely carry cp1252 punctuation there.
func controlRatio(sample []byte) float64 {
	if len(sample) == 0 {
		return 0
	}
	control := 0
	for _, b := range sample {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			control++
		} else if b == 0x7F {
			control++
		}
	}
	return float64(control) / float64(len(sample))
}

// CountDelimiters returns the per-line occurrence counts of delim across
// the given lines.
func CountDelimiters(lines []string, delim rune) []int {
	counts := make([]int, len(lines))
	for i, line := range lines {
		counts[i] = strings.Count(line, string(delim))
	}
	return counts
}

// SampleLines splits decoded sample text into analyzable lines. The last
// line is dropped when the sample was truncated mid-file, since it is very
// likely incomplete. Trailing carriage returns and a leading BOM rune are
// stripped.
func SampleLines(text string, truncated bool) []string {
	text = strings.TrimPrefix(text, "\uFEFF")
	lines := strings.Split(text, "\n")
	if truncated && len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
