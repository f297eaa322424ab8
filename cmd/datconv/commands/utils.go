/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Akaylee DAT Converter commands.
Provides common configuration loading, logging setup, flag parsing, and
exit code mapping used across all command implementations.
*/

package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/akaylee-datconv/pkg/core"
	"github.com/kleascm/akaylee-datconv/pkg/emitter"
	"github.com/kleascm/akaylee-datconv/pkg/logging"
	"github.com/kleascm/akaylee-datconv/pkg/sniffer"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	viper.SetDefault("sample_size", sniffer.DefaultSampleSize)
	viper.SetDefault("row_threshold", emitter.DefaultRowThreshold)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "custom")

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("DATCONV")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system from viper settings
func SetupLogging() (*logging.Logger, error) {
	config := &logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormat(viper.GetString("log_format")),
		Timestamp: true,
		Colors:    !viper.GetBool("no_color"),
	}
	logger, err := logging.NewLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// ParseDelimiter turns a flag value into a delimiter rune. Accepts the
// names tab, pipe, comma, and semicolon, hex escapes like x01, or a literal
// single character.
func ParseDelimiter(value string) (rune, error) {
	switch strings.ToLower(value) {
	case "":
		return 0, nil
	case "tab", "\\t":
		return '\t', nil
	case "pipe":
		return '|', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	}
	if strings.HasPrefix(value, "x") && len(value) == 3 {
		decoded, err := strconv.ParseUint(value[1:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid delimiter %q: %w", value, err)
		}
		return rune(decoded), nil
	}
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", value)
	}
	return runes[0], nil
}

// ParseEncoding turns a flag value into a supported encoding.
func ParseEncoding(value string) (core.Encoding, error) {
	switch strings.ToLower(value) {
	case "":
		return core.EncodingNone, nil
	case "utf-8", "utf8":
		return core.EncodingUTF8, nil
	case "latin-1", "latin1", "iso-8859-1":
		return core.EncodingLatin1, nil
	case "utf-16", "utf16":
		return core.EncodingUTF16, nil
	default:
		return core.EncodingNone, fmt.Errorf("unsupported encoding %q", value)
	}
}

// ParseWidths turns a comma-separated width list into column widths.
func ParseWidths(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	widths := make([]int, 0, len(parts))
	for _, part := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("invalid column width %q", part)
		}
		widths = append(widths, w)
	}
	return widths, nil
}

// ExitCode maps an error to the process exit code: 0 for success, 1 for
// any pipeline failure (sniff, decode, emit), 2 for usage and
// configuration mistakes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var unreadable *core.UnreadableFileError
	var malformed *core.MalformedRowError
	var unsupported *core.UnsupportedSchemaError
	var write *core.WriteError
	if errors.As(err, &unreadable) || errors.As(err, &malformed) ||
		errors.As(err, &unsupported) || errors.As(err, &write) {
		return 1
	}
	return 2
}
