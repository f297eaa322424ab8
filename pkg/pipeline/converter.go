/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: converter.go
Description: Conversion pipeline for the Akaylee DAT Converter. Runs the
three stages sniff, decode, emit strictly in order for one input file. Each
run owns its sample, format guess, and table exclusively; nothing outlives
the run.
*/

package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/akaylee-datconv/pkg/core"
	"github.com/kleascm/akaylee-datconv/pkg/interfaces"
	"github.com/sirupsen/logrus"
)

// Overrides carries user-forced sniffing decisions. Zero values mean "trust
// the sniffer". Forced widths are column widths in order; they are converted
// to boundary offsets.
type Overrides struct {
	Encoding  core.Encoding // Forced text encoding
	Delimiter rune          // Forced field delimiter
	Widths    []int         // Forced fixed-width column widths
}

func (o *Overrides) empty() bool {
	return o == nil || (o.Encoding == core.EncodingNone && o.Delimiter == 0 && len(o.Widths) == 0)
}

// complete reports whether the overrides specify enough to skip sniffing
// entirely: an encoding plus either a delimiter or column widths.
func (o *Overrides) complete() bool {
	if o == nil || o.Encoding == core.EncodingNone {
		return false
	}
	return o.Delimiter != 0 || len(o.Widths) > 0
}

// Result summarizes one completed conversion run.
type Result struct {
	RunID       string            `json:"run_id"`       // Unique identifier for this run
	InputPath   string            `json:"input_path"`   // Converted file
	WrittenPath string            `json:"written_path"` // Output file created by the emitter
	Guess       *core.FormatGuess `json:"guess"`        // Format the run decoded under
	RowCount    int               `json:"row_count"`    // Data rows written
	FieldCount  int               `json:"field_count"`  // Fields per row
	HasHeader   bool              `json:"has_header"`   // Whether a header row was detected
	Duration    time.Duration     `json:"duration"`     // Wall time for the whole run
}

// Converter executes the sniff, decode, emit pipeline for single files.
// Stages are injected so tests can swap components.
type Converter struct {
	sniffer   interfaces.Sniffer
	decoder   interfaces.Decoder
	emitter   interfaces.Emitter
	overrides *Overrides
	logger    *logrus.Logger
}

// NewConverter creates a converter with the given logger. Stages must be
// attached before Run.
func NewConverter(logger *logrus.Logger) *Converter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Converter{logger: logger}
}

// SetSniffer attaches the sniffing stage.
func (c *Converter) SetSniffer(s interfaces.Sniffer) {
	c.sniffer = s
}

// SetDecoder attaches the decoding stage.
func (c *Converter) SetDecoder(d interfaces.Decoder) {
	c.decoder = d
}

// SetEmitter attaches the output stage.
func (c *Converter) SetEmitter(e interfaces.Emitter) {
	c.emitter = e
}

// SetOverrides attaches user-forced sniffing decisions.
func (c *Converter) SetOverrides(o *Overrides) {
	c.overrides = o
}

// Run converts one file start to finish. outputPathBase selects where
// output lands; when empty, the input path with its extension stripped is
// used. Every error is fatal to this run and surfaced verbatim.
func (c *Converter) Run(inputPath, outputPathBase string) (*Result, error) {
	if c.sniffer == nil || c.decoder == nil || c.emitter == nil {
		return nil, fmt.Errorf("converter is missing a pipeline stage")
	}

	runID := uuid.New().String()
	start := time.Now()

	log := c.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"input":  inputPath,
	})
	log.Info("Conversion run started")

	guess, err := c.resolveGuess(inputPath)
	if err != nil {
		log.WithError(err).Error("Sniffing failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"structure": guess.Structure,
		"encoding":  guess.Encoding,
		"delimiter": delimiterLabel(guess.Delimiter),
	}).Info("Format sniffed")

	table, err := c.decoder.Decode(inputPath, guess)
	if err != nil {
		log.WithError(err).Error("Decoding failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"rows":   len(table.Rows),
		"fields": table.FieldCount(),
		"header": table.HasHeader(),
	}).Info("File decoded")

	if outputPathBase == "" {
		outputPathBase = strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	}
	written, err := c.emitter.Emit(table, outputPathBase)
	if err != nil {
		log.WithError(err).Error("Emission failed")
		return nil, err
	}

	result := &Result{
		RunID:       runID,
		InputPath:   inputPath,
		WrittenPath: written,
		Guess:       guess,
		RowCount:    len(table.Rows),
		FieldCount:  table.FieldCount(),
		HasHeader:   table.HasHeader(),
		Duration:    time.Since(start),
	}
	log.WithFields(logrus.Fields{
		"output":   written,
		"duration": result.Duration,
	}).Info("Conversion run completed")
	return result, nil
}

// resolveGuess runs the sniffer and layers any user overrides on top. When
// the overrides alone pin down the format, a failed sniff is not fatal.
func (c *Converter) resolveGuess(inputPath string) (*core.FormatGuess, error) {
	guess, err := c.sniffer.Sniff(inputPath)
	if err != nil {
		if !c.overrides.complete() {
			return nil, err
		}
		guess = &core.FormatGuess{}
	}
	if c.overrides.empty() {
		return guess, nil
	}

	forced := *guess
	if c.overrides.Encoding != core.EncodingNone {
		forced.Encoding = c.overrides.Encoding
	}
	switch {
	case c.overrides.Delimiter != 0:
		forced.Structure = core.StructureDelimited
		forced.Delimiter = c.overrides.Delimiter
		forced.Boundaries = nil
	case len(c.overrides.Widths) > 0:
		forced.Structure = core.StructureFixedWidth
		forced.Boundaries = widthsToBoundaries(c.overrides.Widths)
		forced.Delimiter = 0
	}
	return &forced, nil
}

// widthsToBoundaries converts column widths into column start offsets.
func widthsToBoundaries(widths []int) []int {
	boundaries := make([]int, len(widths))
	offset := 0
	for i, w := range widths {
		boundaries[i] = offset
		offset += w
	}
	return boundaries
}

// delimiterLabel renders a delimiter for log output.
func delimiterLabel(d rune) string {
	switch d {
	case 0:
		return ""
	case '\t':
		return "\\t"
	case '\x01':
		return "\\x01"
	default:
		return string(d)
	}
}
