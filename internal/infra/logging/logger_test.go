package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_Info(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info(1, "lifecycle", "test message")

	content, err := os.ReadFile(filepath.Join(dataDir, "logs", "incidentctl.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[incident-1]")
	assert.Contains(t, string(content), "[lifecycle]")
	assert.Contains(t, string(content), "test message")

	incContent, err := os.ReadFile(filepath.Join(dataDir, "logs", "incident-1.log"))
	require.NoError(t, err)
	assert.Contains(t, string(incContent), "test message")
}

func TestLogger_GlobalOnly(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info(0, "store", "global message")

	content, err := os.ReadFile(filepath.Join(dataDir, "logs", "incidentctl.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global]")

	entries, err := os.ReadDir(filepath.Join(dataDir, "logs"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "incident-"))
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug(0, "store", "hidden")
	logger.Info(0, "store", "also hidden")
	logger.Error(0, "store", "visible")

	content, err := os.ReadFile(filepath.Join(dataDir, "logs", "incidentctl.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), "visible")
}

func TestLogger_Disabled(t *testing.T) {
	logger := New("", slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Must not panic or create files anywhere.
	logger.Info(1, "lifecycle", "discarded")
}
