//go:build unit
// +build unit

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "book-organiser.log")

	logger := NewFileLogger(config.LogLevelInfo, logPath, 10, 3, 28)
	require.NotNil(t, logger)

	logger.Info("book saved")
	logger.Warn("catalog throttled")
	logger.Error("summary failed")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	logOutput := string(content)
	assert.Contains(t, logOutput, `"msg":"book saved"`)
	assert.Contains(t, logOutput, "catalog throttled")
	assert.Contains(t, logOutput, "summary failed")
	assert.Contains(t, logOutput, `"level":"WARN"`)
}
