/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: infer.go
Description: Header detection and column type inference for the Akaylee DAT
Converter. Runs once per decode; the resulting tagged values are carried
through the rest of the pipeline without re-inspection.
*/

package decoder

import (
	"strconv"
	"strings"

	"github.com/kleascm/akaylee-datconv/pkg/core"
)

// numericMajority is the fraction of non-empty values that must parse as
// numbers before a column is converted to Number values.
const numericMajority = 0.5

// buildTable turns a raw string grid into a typed table. The first row
// becomes the header when it looks like labels over numeric data, and each
// majority-numeric column is converted to Number values in one pass.
func buildTable(raw [][]string) *core.Table {
	table := &core.Table{}
	data := raw
	if len(raw) > 1 && looksLikeHeader(raw) {
		header := make(core.Row, len(raw[0]))
		for i, name := range raw[0] {
			header[i] = core.StringValue(name)
		}
		table.Header = header
		data = raw[1:]
	}

	numericCols := numericColumns(data)
	table.Rows = make([]core.Row, len(data))
	for i, fields := range data {
		row := make(core.Row, len(fields))
		for j, field := range fields {
			if numericCols[j] && field != "" {
				if num, err := strconv.ParseFloat(field, 64); err == nil {
					row[j] = core.NumberValue(num)
					continue
				}
			}
			row[j] = core.StringValue(field)
		}
		table.Rows[i] = row
	}
	return table
}

// looksLikeHeader reports whether the first row reads as column labels:
// none of its fields parse as numeric while the majority of corresponding
// fields in the following rows do, for at least one column.
func looksLikeHeader(raw [][]string) bool {
	first := raw[0]
	rest := raw[1:]

	labelled := false
	for col, field := range first {
		if isNumeric(field) {
			return false
		}
		numeric, nonEmpty := 0, 0
		for _, row := range rest {
			if col >= len(row) || row[col] == "" {
				continue
			}
			nonEmpty++
			if isNumeric(row[col]) {
				numeric++
			}
		}
		if nonEmpty > 0 && float64(numeric) > numericMajority*float64(nonEmpty) {
			labelled = true
		}
	}
	return labelled
}

// numericColumns reports, per column, whether the majority of non-empty
// values parse as numbers.
func numericColumns(data [][]string) []bool {
	if len(data) == 0 {
		return nil
	}
	cols := len(data[0])
	out := make([]bool, cols)
	for col := 0; col < cols; col++ {
		numeric, nonEmpty := 0, 0
		for _, row := range data {
			if col >= len(row) || row[col] == "" {
				continue
			}
			nonEmpty++
			if isNumeric(row[col]) {
				numeric++
			}
		}
		out[col] = nonEmpty > 0 && float64(numeric) > numericMajority*float64(nonEmpty)
	}
	return out
}

// isNumeric reports whether s parses as a float.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
