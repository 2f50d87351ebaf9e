package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/invoicer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNew_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "invoicer.log")

	log, closeLog, err := New(config.LogConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("invoice generated", zap.String("invoice_number", "7"))
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "invoice generated", entry["msg"])
	assert.Equal(t, "7", entry["invoice_number"])
	assert.Equal(t, "invoicer", entry["logger"])
}

func TestNew_BadOutput(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, _, err := New(config.LogConfig{Output: filepath.Join(blocker, "x.log")})
	assert.Error(t, err)
}

func TestNew_CloseReleasesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoicer.log")

	_, closeLog, err := New(config.LogConfig{Output: path})
	require.NoError(t, err)

	require.NoError(t, closeLog())
	assert.True(t, errors.Is(closeLog(), os.ErrClosed), "file already closed")
}

func TestNew_StreamCloseIsNoop(t *testing.T) {
	_, closeLog, err := New(config.LogConfig{Output: "stderr"})
	require.NoError(t, err)
	assert.NoError(t, closeLog())
}
