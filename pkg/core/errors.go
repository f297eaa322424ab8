/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy for the Akaylee DAT Converter. Every error is fatal
to the current file's conversion and is surfaced verbatim to the caller; none
are retried and none are downgraded to partial output.
*/

package core

import "fmt"

// UnreadableFileError reports a file that cannot be opened, is empty, or
// whose sample is too ambiguous to classify. Ambiguous inputs fail loudly
// rather than silently mis-convert.
type UnreadableFileError struct {
	Path   string // Input file path
	Reason string // Why the file could not be read or classified
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("unreadable file %s: %s", e.Path, e.Reason)
}

// MalformedRowError reports a structural inconsistency mid-file: a row whose
// field count disagrees with the first row's field count.
type MalformedRowError struct {
	Path     string // Input file path
	Line     int    // 1-based line (or record) number of the offending row
	Expected int    // Field count established by the first row
	Got      int    // Field count found on the offending row
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row in %s: line %d has %d fields, expected %d",
		e.Path, e.Line, e.Got, e.Expected)
}

// UnsupportedSchemaError reports a binary-table schema that uses a field
// type the decoder does not recognize.
type UnsupportedSchemaError struct {
	Path  string // Input file path
	Field string // Name of the offending field
	Type  byte   // Unrecognized type code
}

func (e *UnsupportedSchemaError) Error() string {
	return fmt.Sprintf("unsupported schema in %s: field %q has unknown type %q",
		e.Path, e.Field, string(e.Type))
}

// WriteError reports an output-stage filesystem failure (permissions, disk
// full). It wraps the underlying error for inspection via errors.Unwrap.
type WriteError struct {
	Path string // Output file path
	Err  error  // Underlying filesystem error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failed for %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
