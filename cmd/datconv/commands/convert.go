/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: convert.go
Description: Convert command implementation for the Akaylee DAT Converter.
Runs the sniff, decode, emit pipeline for a single input file with optional
user overrides for encoding, delimiter, column widths, and output format.
*/

package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kleascm/akaylee-datconv/pkg/decoder"
	"github.com/kleascm/akaylee-datconv/pkg/emitter"
	"github.com/kleascm/akaylee-datconv/pkg/pipeline"
	"github.com/kleascm/akaylee-datconv/pkg/sniffer"
	"github.com/kleascm/akaylee-datconv/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewConvertCommand creates the convert command
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input.dat>",
		Short: "Convert a legacy .dat file to CSV or XLSX",
		Long: `Convert sniffs the input file's encoding and structure from a byte
sample, decodes the whole file into rows, and writes CSV (large outputs) or a
single-sheet XLSX (small outputs). Ambiguous or malformed inputs fail loudly;
there is no partial output.`,
		Args: cobra.ExactArgs(1),
		RunE: RunConvert,
	}

	cmd.Flags().String("output", "", "Output path base (default: input path without extension)")
	cmd.Flags().String("format", "", "Force output format (csv, xlsx)")
	cmd.Flags().String("encoding", "", "Force input encoding (utf-8, latin-1, utf-16)")
	cmd.Flags().String("delimiter", "", "Force field delimiter (tab, pipe, comma, semicolon, x01, or a literal)")
	cmd.Flags().String("widths", "", "Force fixed-width column widths, comma-separated")
	cmd.Flags().Int("sample-size", 0, "Sniffing sample size in bytes")
	cmd.Flags().Int("row-threshold", 0, "Row count above which CSV is written instead of XLSX")
	cmd.Flags().String("report", "", "Directory for JSON run reports (default: no report)")

	viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("encoding", cmd.Flags().Lookup("encoding"))
	viper.BindPFlag("delimiter", cmd.Flags().Lookup("delimiter"))
	viper.BindPFlag("widths", cmd.Flags().Lookup("widths"))
	viper.BindPFlag("sample_size", cmd.Flags().Lookup("sample-size"))
	viper.BindPFlag("row_threshold", cmd.Flags().Lookup("row-threshold"))
	viper.BindPFlag("report_dir", cmd.Flags().Lookup("report"))

	return cmd
}

// RunConvert executes the conversion pipeline for one input file
func RunConvert(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}

	inputPath := args[0]

	overrides, err := buildOverrides()
	if err != nil {
		return err
	}

	snf := sniffer.NewSniffer()
	if size := viper.GetInt("sample_size"); size > 0 {
		snf.SetSampleSize(size)
	}

	threshold := viper.GetInt("row_threshold")
	if threshold <= 0 {
		threshold = emitter.DefaultRowThreshold
	}
	format := strings.ToLower(viper.GetString("format"))
	switch format {
	case "", emitter.FormatCSV, emitter.FormatXLSX:
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	emt, err := emitter.NewEmitter(&emitter.Config{
		RowThreshold: threshold,
		ForceFormat:  format,
		SheetName:    "Data",
	})
	if err != nil {
		return err
	}

	converter := pipeline.NewConverter(logger.GetLogger())
	converter.SetSniffer(snf)
	converter.SetDecoder(decoder.NewDecoder())
	converter.SetEmitter(emt)
	converter.SetOverrides(overrides)

	outputBase := viper.GetString("output")
	if outputBase != "" {
		outputBase = strings.TrimSuffix(outputBase, filepath.Ext(outputBase))
	}

	result, err := converter.Run(inputPath, outputBase)
	if err != nil {
		return err
	}

	if reportDir := viper.GetString("report_dir"); reportDir != "" {
		reportPath, err := utils.WriteRunReport(reportDir, result.RunID, result)
		if err != nil {
			return err
		}
		logger.Info("Run report written", map[string]interface{}{"path": reportPath})
	}

	fmt.Printf("Converted %s\n", result.InputPath)
	fmt.Printf("  structure: %s\n", result.Guess.Structure)
	fmt.Printf("  rows:      %d (%d fields)\n", result.RowCount, result.FieldCount)
	fmt.Printf("  output:    %s\n", result.WrittenPath)
	return nil
}

// buildOverrides converts the override flags into pipeline overrides.
func buildOverrides() (*pipeline.Overrides, error) {
	enc, err := ParseEncoding(viper.GetString("encoding"))
	if err != nil {
		return nil, err
	}
	delim, err := ParseDelimiter(viper.GetString("delimiter"))
	if err != nil {
		return nil, err
	}
	widths, err := ParseWidths(viper.GetString("widths"))
	if err != nil {
		return nil, err
	}
	if delim != 0 && len(widths) > 0 {
		return nil, fmt.Errorf("cannot force both a delimiter and fixed-width columns")
	}
	return &pipeline.Overrides{
		Encoding:  enc,
		Delimiter: delim,
		Widths:    widths,
	}, nil
}
