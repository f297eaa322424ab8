/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: xlsx.go
Description: Spreadsheet output for the Akaylee DAT Converter. Writes a
single worksheet via the excelize stream writer so large (but under-threshold)
tables do not hold the whole workbook in memory.
*/

package emitter

import (
	"github.com/kleascm/akaylee-datconv/pkg/core"
	"github.com/xuri/excelize/v2"
)

// writeXLSX writes the table as a single-sheet workbook at path,
// overwriting any existing file. The header row, when present, is the
// first row of the sheet.
func writeXLSX(table *core.Table, path, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return &core.WriteError{Path: path, Err: err}
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return &core.WriteError{Path: path, Err: err}
	}

	rowIndex := 1
	if table.HasHeader() {
		cells := make([]interface{}, len(table.Header))
		for i, v := range table.Header {
			cells[i] = SanitizeHeaderName(v.Render())
		}
		if err := setRow(sw, rowIndex, cells); err != nil {
			return &core.WriteError{Path: path, Err: err}
		}
		rowIndex++
	}

	for _, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = cellValue(v)
		}
		if err := setRow(sw, rowIndex, cells); err != nil {
			return &core.WriteError{Path: path, Err: err}
		}
		rowIndex++
	}

	if err := sw.Flush(); err != nil {
		return &core.WriteError{Path: path, Err: err}
	}
	if err := f.SaveAs(path); err != nil {
		return &core.WriteError{Path: path, Err: err}
	}
	return nil
}

// setRow writes one row of cells starting at column A.
func setRow(sw *excelize.StreamWriter, rowIndex int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return err
	}
	return sw.SetRow(cell, cells)
}

// cellValue maps a tagged value onto the native cell type. String cells
// pass through spreadsheet sanitization; numbers and dates keep their
// native types so the sheet sorts and formats them correctly.
func cellValue(v core.Value) interface{} {
	switch v.Kind {
	case core.KindNumber:
		return v.Num
	case core.KindDate:
		return v.Time
	default:
		return CleanForSpreadsheet(v.Str)
	}
}
