package logging

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  LogConfig
		wantErr bool
	}{
		{"stdout only", LogConfig{Level: "info"}, false},
		{"upper case level", LogConfig{Level: "DEBUG"}, false},
		{"bad level", LogConfig{Level: "verbose"}, true},
		{"file needs size", LogConfig{Level: "info", File: "x.log"}, true},
		{"negative backups", LogConfig{Level: "info", File: "x.log", MaxSize: 1, MaxBackups: -1}, true},
		{"file ok", LogConfig{Level: "warn", File: "x.log", MaxSize: 1, MaxBackups: 1, MaxAge: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelWarn)

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line")
	logger.Error("error line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "warn line")
	assert.Contains(t, out, "error line")
}

func TestRequestLoggingToggle(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelInfo)

	logger.LogHTTPRequest("GET", "/health", "127.0.0.1", "req-1", 200, 10, "1ms")
	assert.Empty(t, buf.String())

	logger.requests = true
	logger.LogHTTPRequest("GET", "/health", "127.0.0.1", "req-1", 200, 10, "1ms")
	assert.Contains(t, buf.String(), "/health")

	buf.Reset()
	logger.requests = false
	logger.LogHTTPError("POST", "/api/v1/contact/submit", "127.0.0.1", 502, "relay failed", errors.New("boom"))
	assert.Contains(t, buf.String(), "relay failed: boom")
}

func TestNewLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "api.log")
	logger, err := NewLogger(&LogConfig{Level: "info", File: path, MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	require.NoError(t, err)
	logger.Info("hello %s", "file")
	require.NoError(t, logger.Close())
	assert.FileExists(t, path)
}
