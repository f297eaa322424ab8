/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: fixedwidth.go
Description: Fixed-width decoding for the Akaylee DAT Converter. Slices each
line at the sniffed column boundary offsets and trims surrounding whitespace
per field.
*/

package decoder

import (
	"strings"

	"github.com/kleascm/akaylee-datconv/pkg/core"
)

// decodeFixedWidth slices every line at the given column start offsets.
// Offsets are rune positions; a line too short to reach every column is a
// structural violation and aborts the decode.
func decodeFixedWidth(path string, lines []string, boundaries []int) (*core.Table, error) {
	raw := make([][]string, 0, len(lines))
	last := boundaries[len(boundaries)-1]

	for i, line := range lines {
		runes := []rune(line)
		if len(runes) <= last {
			got := 0
			for _, b := range boundaries {
				if b < len(runes) {
					got++
				}
			}
			return nil, &core.MalformedRowError{
				Path:     path,
				Line:     i + 1,
				Expected: len(boundaries),
				Got:      got,
			}
		}
		fields := make([]string, len(boundaries))
		for j, start := range boundaries {
			end := len(runes)
			if j+1 < len(boundaries) {
				end = boundaries[j+1]
			}
			fields[j] = strings.TrimSpace(string(runes[start:end]))
		}
		raw = append(raw, fields)
	}

	return buildTable(raw), nil
}
