/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: delimited.go
Description: Delimited-text decoding for the Akaylee DAT Converter. Parses
lines with CSV quoting semantics under the sniffed delimiter, enforces a
consistent field count against the first row, and hands the raw grid to
header detection and type inference.
*/

package decoder

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/kleascm/akaylee-datconv/pkg/core"
)

// decodeDelimited parses each line under delim. The first row fixes the
// field count; any later row that disagrees aborts the decode with a
// MalformedRowError.
func decodeDelimited(path string, lines []string, delim rune) (*core.Table, error) {
	raw := make([][]string, 0, len(lines))
	fieldCount := 0

	for i, line := range lines {
		fields, err := splitFields(line, delim)
		if err != nil {
			return nil, &core.UnreadableFileError{
				Path:   path,
				Reason: fmt.Sprintf("line %d does not parse: %v", i+1, err),
			}
		}
		for j, f := range fields {
			fields[j] = strings.TrimSpace(f)
		}
		if i == 0 {
			fieldCount = len(fields)
		} else if len(fields) != fieldCount {
			return nil, &core.MalformedRowError{
				Path:     path,
				Line:     i + 1,
				Expected: fieldCount,
				Got:      len(fields),
			}
		}
		raw = append(raw, fields)
	}

	return buildTable(raw), nil
}

// splitFields parses one line with CSV quoting rules so quote-escaped
// fields decode back to their original values. A plain split would leave
// `"5"" pipe"` mangled after a CSV write, breaking round trips. LazyQuotes
// keeps legacy exports with stray unbalanced quotes readable.
func splitFields(line string, delim rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.Read()
}
