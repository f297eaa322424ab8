/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: decoder.go
Description: Decoder for the Akaylee DAT Converter. Consumes a format guess
produced by the sniffer and parses the full input file into an ordered table
of rows. There is no partial-success mode: any row that violates the
structural rule aborts the whole decode.
*/

package decoder

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kleascm/akaylee-datconv/pkg/core"
	"github.com/kleascm/akaylee-datconv/pkg/dbf"
)

// maxLineSize bounds a single input line. Legacy exports occasionally carry
// very wide records, so this is generous.
const maxLineSize = 4 * 1024 * 1024

// Decoder parses input files into tables. It is stateless between calls.
type Decoder struct{}

// NewDecoder creates a new decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses the file at path per the given format guess. The returned
// table is owned by the caller and discarded after emission.
func (d *Decoder) Decode(path string, guess *core.FormatGuess) (*core.Table, error) {
	switch guess.Structure {
	case core.StructureBinaryTable:
		return d.decodeBinary(path, guess)
	case core.StructureDelimited:
		lines, err := d.readLines(path, guess.Encoding)
		if err != nil {
			return nil, err
		}
		return decodeDelimited(path, lines, guess.Delimiter)
	case core.StructureFixedWidth:
		lines, err := d.readLines(path, guess.Encoding)
		if err != nil {
			return nil, err
		}
		return decodeFixedWidth(path, lines, guess.Boundaries)
	default:
		return nil, fmt.Errorf("unknown structure %q", guess.Structure)
	}
}

// decodeBinary parses a DBF file. The sniffer usually supplies the schema;
// when it could not (text trials failed on a headerless sample), the header
// is re-read from the full file.
func (d *Decoder) decodeBinary(path string, guess *core.FormatGuess) (*core.Table, error) {
	schema := guess.Schema
	if schema == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &core.UnreadableFileError{Path: path, Reason: err.Error()}
		}
		schema, err = dbf.ParseSchema(data)
		if err != nil {
			return nil, &core.UnreadableFileError{Path: path, Reason: "not a recognizable binary table: " + err.Error()}
		}
	}
	return dbf.ReadTable(path, schema)
}

// readLines reads every line of the file, decoding from the sniffed
// encoding to UTF-8. Blank lines are dropped, matching the sniffer's view
// of the file.
func (d *Decoder) readLines(path string, enc core.Encoding) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.UnreadableFileError{Path: path, Reason: err.Error()}
	}
	defer f.Close()

	scanner := bufio.NewScanner(core.NewEncodedReader(f, enc))
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &core.UnreadableFileError{Path: path, Reason: err.Error()}
	}
	if len(lines) == 0 {
		return nil, &core.UnreadableFileError{Path: path, Reason: "file is empty"}
	}
	return lines, nil
}
