/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the Akaylee DAT Converter. Defines the fundamental
data structures used throughout the conversion pipeline including format guesses,
tagged field values, rows, tables, and binary-table schemas.
*/

package core

import (
	"strconv"
	"time"
)

// Encoding identifies a text encoding the sniffer can report.
// Candidates are tried in priority order: UTF-8 first, then Latin-1, then UTF-16.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin-1"
	EncodingUTF16  Encoding = "utf-16"
	// EncodingNone is reported for binary-table files, which carry no text encoding.
	EncodingNone Encoding = ""
)

// Structure identifies the structural format of an input file.
type Structure string

const (
	StructureDelimited   Structure = "delimited"
	StructureFixedWidth  Structure = "fixed-width"
	StructureBinaryTable Structure = "binary-table"
)

// FormatGuess is the sniffer's verdict on a single input file.
// It is produced once per file and never mutated after creation.
type FormatGuess struct {
	Encoding   Encoding     `json:"encoding"`             // Detected text encoding (empty for binary tables)
	Structure  Structure    `json:"structure"`            // Delimited, fixed-width, or binary-table
	Delimiter  rune         `json:"delimiter,omitempty"`  // Field delimiter (delimited structure only)
	Boundaries []int        `json:"boundaries,omitempty"` // Column start offsets (fixed-width structure only)
	Schema     *TableSchema `json:"schema,omitempty"`     // Embedded schema (binary-table structure only)
}

// ValueKind tags a field value with its decoded type. The kind is decided
// once during the decoder's type-inference pass and carried thereafter
// without re-inspection.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindDate
)

// String returns a human-readable name for the kind.
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "string"
	}
}

// Value is a tagged-variant field value. Exactly one of the payload fields
// is meaningful, selected by Kind.
type Value struct {
	Kind ValueKind `json:"kind"` // Which payload field is meaningful
	Str  string    `json:"str,omitempty"`
	Num  float64   `json:"num,omitempty"`
	Time time.Time `json:"time,omitempty"`
}

// StringValue creates a string-kind value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// NumberValue creates a number-kind value.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// DateValue creates a date-kind value.
func DateValue(t time.Time) Value {
	return Value{Kind: KindDate, Time: t}
}

// Render returns the textual representation of the value as written to
// CSV output. Numbers use the shortest round-trippable form, dates use
// ISO 8601 dates.
func (v Value) Render() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindDate:
		return v.Time.Format("2006-01-02")
	default:
		return v.Str
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == other.Num
	case KindDate:
		return v.Time.Equal(other.Time)
	default:
		return v.Str == other.Str
	}
}

// Row is an ordered sequence of field values. Rows are independent of each
// other; the only cross-row invariant is a consistent field count within a
// structure.
type Row []Value

// Table is the decoder's output: an ordered sequence of rows plus an
// optional header row. A table is owned exclusively by the conversion run
// that produced it and is discarded after the emitter writes output.
type Table struct {
	Header Row   `json:"header,omitempty"` // Optional header row (nil if absent)
	Rows   []Row `json:"rows"`             // Data rows in original input order
}

// HasHeader reports whether the table carries a header row.
func (t *Table) HasHeader() bool {
	return len(t.Header) > 0
}

// FieldCount returns the number of fields per row, derived from the header
// when present or from the first data row otherwise.
func (t *Table) FieldCount() int {
	if t.HasHeader() {
		return len(t.Header)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// SchemaField describes one field of a binary-table schema.
type SchemaField struct {
	Name         string `json:"name"`          // Field name from the header block
	Type         byte   `json:"type"`          // Type code (C, N, F, L, D, I)
	Length       int    `json:"length"`        // Field length in bytes
	DecimalCount int    `json:"decimal_count"` // Decimal places for numeric fields
}

// TableSchema is the embedded schema of a binary-table file: field names,
// types, and lengths read from its header block before any row data.
type TableSchema struct {
	RecordCount  int           `json:"record_count"`  // Number of records declared in the header
	HeaderLength int           `json:"header_length"` // Byte offset where record data begins
	RecordLength int           `json:"record_length"` // Bytes per record, including the deletion flag
	Fields       []SchemaField `json:"fields"`        // Field descriptors in file order
}

// FieldNames returns the schema's field names in file order.
func (s *TableSchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}
