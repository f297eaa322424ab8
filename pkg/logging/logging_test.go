/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logging_test.go
Description: Tests for the logging system. Covers config validation, default
selection, and the custom formatter's field rendering.
*/

package logging_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/kleascm/akaylee-datconv/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLoggerDefaults tests that a nil config produces a working logger
func TestNewLoggerDefaults(t *testing.T) {
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger.GetLogger())
	assert.Equal(t, logrus.InfoLevel, logger.GetLogger().GetLevel())
}

// TestNewLoggerInvalidConfig tests rejection of unknown levels and formats
func TestNewLoggerInvalidConfig(t *testing.T) {
	_, err := logging.NewLogger(&logging.LoggerConfig{
		Level:  "verbose",
		Format: logging.LogFormatText,
	})
	assert.Error(t, err)

	_, err = logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LogLevelInfo,
		Format: "xml",
	})
	assert.Error(t, err)
}

// TestLoggerLevelFiltering tests that debug output is suppressed at info
// level
func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LogLevelInfo,
		Format: logging.LogFormatCustom,
		Output: &buf,
	})
	require.NoError(t, err)

	logger.Debug("hidden", nil)
	logger.Info("shown", map[string]interface{}{"rows": 3})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "rows=3")
}

// TestConverterFormatterFields tests that fields render sorted by key
func TestConverterFormatterFields(t *testing.T) {
	formatter := &logging.ConverterFormatter{Timestamp: false, Colors: false}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.InfoLevel,
		Message: "Format sniffed",
		Data: logrus.Fields{
			"structure": "delimited",
			"encoding":  "utf-8",
		},
	}

	out, err := formatter.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "INFO Format sniffed encoding=utf-8 structure=delimited\n", string(out))
}

// TestConverterFormatterTimestamp tests the timestamp prefix
func TestConverterFormatterTimestamp(t *testing.T) {
	formatter := &logging.ConverterFormatter{Timestamp: true, Colors: false}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "slow run",
	}

	out, err := formatter.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-14 10:30:00.000 WARNING slow run\n", string(out))
}
