/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatter for the Akaylee DAT Converter. Provides
beautiful, structured logging output with colors and converter-specific
field display.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ConverterFormatter provides beautiful, structured logging output
type ConverterFormatter struct {
	Timestamp bool
	Colors    bool
}

// Format formats a log entry for terminal display
func (f *ConverterFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var output strings.Builder

	if f.Timestamp {
		timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[36m%s\033[0m ", timestamp)) // Cyan
		} else {
			output.WriteString(fmt.Sprintf("%s ", timestamp))
		}
	}

	level := strings.ToUpper(entry.Level.String())
	if f.Colors {
		output.WriteString(fmt.Sprintf("\033[%dm%s\033[0m ", f.levelColor(entry.Level), level))
	} else {
		output.WriteString(fmt.Sprintf("%s ", level))
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if f.Colors {
				output.WriteString(fmt.Sprintf(" \033[90m%s\033[0m=%v", k, entry.Data[k]))
			} else {
				output.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
			}
		}
	}

	output.WriteString("\n")
	return []byte(output.String()), nil
}

// levelColor returns the ANSI color code for a log level
func (f *ConverterFormatter) levelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	default:
		return 35 // Magenta
	}
}
