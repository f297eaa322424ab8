/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: emitter.go
Description: Output stage of the Akaylee DAT Converter. Writes a decoded
table as CSV or as a single-sheet spreadsheet depending on row count, with
the threshold carried as explicit configuration rather than a hidden global.
*/

package emitter

import (
	"fmt"

	"github.com/kleascm/akaylee-datconv/pkg/core"
)

// DefaultRowThreshold is the row-count cutoff above which CSV output is
// chosen over spreadsheet output. It sits just under common spreadsheet
// row limits.
const DefaultRowThreshold = 1048000

// Output formats selectable via configuration.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Config holds emitter configuration.
type Config struct {
	RowThreshold int    `json:"row_threshold"` // Rows above this write CSV instead of XLSX
	ForceFormat  string `json:"force_format"`  // "csv" or "xlsx" to override the threshold rule
	SheetName    string `json:"sheet_name"`    // Worksheet name for spreadsheet output
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.RowThreshold <= 0 {
		return fmt.Errorf("row_threshold must be positive")
	}
	switch c.ForceFormat {
	case "", FormatCSV, FormatXLSX:
		// ok
	default:
		return fmt.Errorf("unsupported output format: %s", c.ForceFormat)
	}
	return nil
}

// Emitter writes tables to disk. Exactly one output file is created per
// Emit call, overwriting any existing file at that path.
type Emitter struct {
	config *Config
}

// NewEmitter creates an emitter. A nil config selects the defaults.
func NewEmitter(config *Config) (*Emitter, error) {
	if config == nil {
		config = &Config{
			RowThreshold: DefaultRowThreshold,
			SheetName:    "Data",
		}
	}
	if config.SheetName == "" {
		config.SheetName = "Data"
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid emitter config: %w", err)
	}
	return &Emitter{config: config}, nil
}

// Emit writes the table to outputPathBase plus the chosen extension and
// returns the written path. Filesystem failures surface as WriteError and
// are never retried.
func (e *Emitter) Emit(table *core.Table, outputPathBase string) (string, error) {
	format := e.config.ForceFormat
	if format == "" {
		if len(table.Rows) > e.config.RowThreshold {
			format = FormatCSV
		} else {
			format = FormatXLSX
		}
	}

	switch format {
	case FormatCSV:
		path := outputPathBase + ".csv"
		if err := writeCSV(table, path); err != nil {
			return "", err
		}
		return path, nil
	default:
		path := outputPathBase + ".xlsx"
		if err := writeXLSX(table, path, e.config.SheetName); err != nil {
			return "", err
		}
		return path, nil
	}
}
