package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demandcli/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestCreateLogger_Console(t *testing.T) {
	logger, err := createLogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestCreateLogger_File(t *testing.T) {
	dir := t.TempDir()
	logger, err := createLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: dir + "/pipeline.log",
	})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger.Info("pipeline started")
	require.NoError(t, CloseLogFile())
	assert.FileExists(t, dir+"/pipeline.log")
}

func TestGetLogger_UninitializedFallsBack(t *testing.T) {
	assert.NotNil(t, GetLogger())
}
