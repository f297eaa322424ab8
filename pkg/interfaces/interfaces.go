/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared interfaces for the Akaylee DAT Converter. Defines the
pipeline stage contracts used across packages to enable proper modular design
and component swapping in tests.
*/

package interfaces

import (
	"github.com/kleascm/akaylee-datconv/pkg/core"
)

// Sniffer inspects a byte sample of an input file and reports a best-guess
// encoding and structural format. The sample lives only inside the call.
type Sniffer interface {
	Sniff(path string) (*core.FormatGuess, error)
}

// Decoder parses the full file into an ordered table of rows per the
// sniffed format. Decoding is all-or-nothing: no row skipping, no
// best-effort recovery.
type Decoder interface {
	Decode(path string, guess *core.FormatGuess) (*core.Table, error)
}

// Emitter writes the table to disk and returns the written path. Exactly
// one output file is created per call.
type Emitter interface {
	Emit(table *core.Table, outputPathBase string) (string, error)
}
