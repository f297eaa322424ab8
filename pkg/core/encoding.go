/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: encoding.go
Description: Encoding-aware reader construction for the Akaylee DAT Converter.
Wraps raw file readers with golang.org/x/text decoders so the rest of the
pipeline always sees UTF-8.
*/

package core

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewEncodedReader wraps r with a decoder for the given encoding so that all
// downstream reads yield UTF-8. UTF-8 input passes through untouched; UTF-16
// input is decoded BOM-aware with a little-endian default.
func NewEncodedReader(r io.Reader, enc Encoding) io.Reader {
	switch enc {
	case EncodingLatin1:
		return transform.NewReader(bufio.NewReader(r), charmap.ISO8859_1.NewDecoder())
	case EncodingUTF16:
		utf16 := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
		return transform.NewReader(bufio.NewReader(r), utf16.NewDecoder())
	default:
		return r
	}
}

// DecodeBytes decodes a byte sample under the given encoding and returns the
// UTF-8 result. Used by the sniffer, which works on an in-memory sample
// rather than a stream.
func DecodeBytes(data []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder().Bytes(data)
	case EncodingUTF16:
		utf16 := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
		return utf16.NewDecoder().Bytes(data)
	default:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}
}
