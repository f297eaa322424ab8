/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sanitize.go
Description: Spreadsheet cell and header sanitization for the Akaylee DAT
Converter. Legacy exports carry NUL bytes, stray control characters, and
cp1252 punctuation that spreadsheet applications reject or mangle.
*/

package emitter

import (
	"regexp"
	"strings"
)

var headerUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// smartPunctuation maps typographic characters to their plain equivalents.
var smartPunctuation = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...", // ellipsis
)

// CleanForSpreadsheet strips characters spreadsheet applications refuse:
// NUL bytes and other control characters, plus typographic punctuation that
// round-trips badly. The result is trimmed of surrounding whitespace.
func CleanForSpreadsheet(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F || (r >= 0x80 && r <= 0x9F) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(smartPunctuation.Replace(b.String()))
}

// SanitizeHeaderName converts a header field into a spreadsheet-safe column
// name: non-alphanumeric characters become underscores, surrounding
// underscores are trimmed, and an empty result falls back to "Column".
func SanitizeHeaderName(s string) string {
	clean := headerUnsafe.ReplaceAllString(s, "_")
	clean = strings.Trim(clean, "_")
	if clean == "" {
		return "Column"
	}
	return clean
}
