/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: csv.go
Description: CSV output for the Akaylee DAT Converter. Comma-delimited,
UTF-8, one header line when the table carries one.
*/

package emitter

import (
	"bufio"
	"encoding/csv"
	"os"

	"github.com/kleascm/akaylee-datconv/pkg/core"
)

// writeCSV writes the table to path, overwriting any existing file.
func writeCSV(table *core.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &core.WriteError{Path: path, Err: err}
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	w := csv.NewWriter(buf)

	if table.HasHeader() {
		if err := w.Write(renderRow(table.Header)); err != nil {
			return &core.WriteError{Path: path, Err: err}
		}
	}
	for _, row := range table.Rows {
		if err := w.Write(renderRow(row)); err != nil {
			return &core.WriteError{Path: path, Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &core.WriteError{Path: path, Err: err}
	}
	if err := buf.Flush(); err != nil {
		return &core.WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &core.WriteError{Path: path, Err: err}
	}
	return nil
}

// renderRow converts typed values to their CSV text form.
func renderRow(row core.Row) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = v.Render()
	}
	return out
}
