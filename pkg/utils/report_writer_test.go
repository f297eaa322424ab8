/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report_writer_test.go
Description: Tests for the run report writer.
*/

package utils_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kleascm/akaylee-datconv/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteRunReport tests directory creation, filename shape, and JSON
// content
func TestWriteRunReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	result := map[string]interface{}{
		"run_id":    "abc-123",
		"row_count": 42,
	}

	path, err := utils.WriteRunReport(dir, "abc-123", result)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))
	assert.True(t, strings.HasSuffix(path, "_abc-123.json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "abc-123", decoded["run_id"])
	assert.Equal(t, float64(42), decoded["row_count"])
}
