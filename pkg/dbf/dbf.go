/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dbf.go
Description: Binary-table (DBF) support for the Akaylee DAT Converter. Parses
the self-describing header block (field names, types, lengths) and decodes
record data into typed field values. Character data is decoded as Latin-1,
matching how legacy Sybase exports are written.
*/

package dbf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kleascm/akaylee-datconv/pkg/core"
	"golang.org/x/text/encoding/charmap"
)

const (
	headerSize          = 32   // Fixed header block size
	fieldDescriptorSize = 32   // Bytes per field descriptor
	descriptorEnd       = 0x0D // Terminator after the last field descriptor
	recordActive        = 0x20 // Deletion flag for a live record
	recordDeleted       = 0x2A // Deletion flag for a deleted record
	fileEnd             = 0x1A // End-of-file marker after the last record
)

// Field type codes the decoder understands.
const (
	TypeCharacter = 'C'
	TypeNumeric   = 'N'
	TypeFloat     = 'F'
	TypeLogical   = 'L'
	TypeDate      = 'D'
	TypeInteger   = 'I'
)

// versionBytes enumerates the DBF version identifiers accepted by the
// header sniff. Covers dBase III/IV/5, Visual FoxPro, and memo variants.
var versionBytes = map[byte]bool{
	0x02: true, 0x03: true, 0x04: true, 0x05: true,
	0x30: true, 0x31: true, 0x83: true, 0x8B: true,
	0x8E: true, 0xF5: true,
}

// Looks reports whether the sample plausibly starts a DBF file: a known
// version byte, sane header/record lengths, and a descriptor area that
// parses cleanly.
func Looks(sample []byte) bool {
	_, err := ParseSchema(sample)
	return err == nil
}

// ParseSchema reads the embedded schema from the header block of a DBF
// sample. The sample must cover the whole descriptor area (a 64 KB sniffing
// sample always does; descriptor areas are a few hundred bytes).
func ParseSchema(sample []byte) (*core.TableSchema, error) {
	if len(sample) < headerSize {
		return nil, fmt.Errorf("sample too short for header: %d bytes", len(sample))
	}
	if !versionBytes[sample[0]] {
		return nil, fmt.Errorf("unknown version byte 0x%02x", sample[0])
	}

	recordCount := int(binary.LittleEndian.Uint32(sample[4:8]))
	headerLen := int(binary.LittleEndian.Uint16(sample[8:10]))
	recordLen := int(binary.LittleEndian.Uint16(sample[10:12]))

	if headerLen < headerSize+1 || recordLen < 1 {
		return nil, fmt.Errorf("implausible header/record length %d/%d", headerLen, recordLen)
	}
	if headerLen > len(sample) {
		return nil, fmt.Errorf("header length %d exceeds sample", headerLen)
	}

	schema := &core.TableSchema{
		RecordCount:  recordCount,
		HeaderLength: headerLen,
		RecordLength: recordLen,
	}

	// Field descriptors run from byte 32 to the 0x0D terminator.
	expectedLen := 1 // deletion flag
	for off := headerSize; ; off += fieldDescriptorSize {
		if off >= len(sample) {
			return nil, fmt.Errorf("descriptor area not terminated")
		}
		if sample[off] == descriptorEnd {
			break
		}
		if off+fieldDescriptorSize > len(sample) {
			return nil, fmt.Errorf("truncated field descriptor at offset %d", off)
		}
		desc := sample[off : off+fieldDescriptorSize]
		name := string(bytes.TrimRight(desc[:11], "\x00"))
		if name == "" {
			return nil, fmt.Errorf("empty field name at offset %d", off)
		}
		schema.Fields = append(schema.Fields, core.SchemaField{
			Name:         name,
			Type:         desc[11],
			Length:       int(desc[16]),
			DecimalCount: int(desc[17]),
		})
		expectedLen += int(desc[16])
	}

	if len(schema.Fields) == 0 {
		return nil, fmt.Errorf("no field descriptors")
	}
	if expectedLen != recordLen {
		return nil, fmt.Errorf("field lengths sum to %d, record length is %d", expectedLen, recordLen)
	}
	return schema, nil
}

// ReadTable decodes the whole DBF file at path into a table of typed rows
// using the given schema. The schema's field names become the header row.
// Deleted records are skipped; an unrecognized field type aborts the read
// with an UnsupportedSchemaError before any record is decoded.
func ReadTable(path string, schema *core.TableSchema) (*core.Table, error) {
	for _, f := range schema.Fields {
		switch f.Type {
		case TypeCharacter, TypeNumeric, TypeFloat, TypeLogical, TypeDate, TypeInteger:
		default:
			return nil, &core.UnsupportedSchemaError{Path: path, Field: f.Name, Type: f.Type}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.UnreadableFileError{Path: path, Reason: err.Error()}
	}
	if len(data) < schema.HeaderLength {
		return nil, &core.UnreadableFileError{Path: path, Reason: "file shorter than declared header"}
	}

	header := make(core.Row, len(schema.Fields))
	for i, f := range schema.Fields {
		header[i] = core.StringValue(f.Name)
	}
	table := &core.Table{Header: header}

	body := data[schema.HeaderLength:]
	for record := 1; len(body) > 0; record++ {
		if body[0] == fileEnd {
			break
		}
		if len(body) < schema.RecordLength {
			return nil, &core.MalformedRowError{
				Path:     path,
				Line:     record,
				Expected: schema.RecordLength,
				Got:      len(body),
			}
		}
		raw := body[:schema.RecordLength]
		body = body[schema.RecordLength:]

		if raw[0] == recordDeleted {
			continue
		}

		row := make(core.Row, len(schema.Fields))
		off := 1
		for i, f := range schema.Fields {
			row[i] = decodeField(raw[off:off+f.Length], f.Type)
			off += f.Length
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// decodeField converts one raw field into a typed value per the schema's
// type code. Blank fields decode to empty strings rather than zero values.
func decodeField(raw []byte, typeCode byte) core.Value {
	switch typeCode {
	case TypeCharacter:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			decoded = raw
		}
		return core.StringValue(strings.TrimSpace(string(decoded)))

	case TypeNumeric, TypeFloat:
		text := strings.TrimSpace(string(raw))
		if text == "" {
			return core.StringValue("")
		}
		if num, err := strconv.ParseFloat(text, 64); err == nil {
			return core.NumberValue(num)
		}
		return core.StringValue(text)

	case TypeLogical:
		switch len(raw) {
		case 0:
			return core.StringValue("")
		}
		switch raw[0] {
		case 'T', 't', 'Y', 'y':
			return core.StringValue("true")
		case 'F', 'f', 'N', 'n':
			return core.StringValue("false")
		default:
			return core.StringValue("")
		}

	case TypeDate:
		text := strings.TrimSpace(string(raw))
		if text == "" {
			return core.StringValue("")
		}
		if t, err := time.Parse("20060102", text); err == nil {
			return core.DateValue(t)
		}
		return core.StringValue(text)

	case TypeInteger:
		if len(raw) >= 4 {
			return core.NumberValue(float64(int32(binary.LittleEndian.Uint32(raw[:4]))))
		}
		return core.StringValue("")

	default:
		// Unreachable: ReadTable validates type codes up front.
		return core.StringValue(strings.TrimSpace(string(raw)))
	}
}
