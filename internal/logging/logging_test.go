package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
		wantErr  bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
			continue
		}
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.expected, got, tt.name)
	}
}

func TestSetupConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := Setup(Config{Level: "warn", Output: &buf})
	require.NoError(t, err)
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("shown", "rows", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown rows=3")

	_, _, err = Setup(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestMultiHandler(t *testing.T) {
	var debug, info bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
	}}

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug-4))

	logger := slog.New(h).With("request_id", "abc").WithGroup("req")
	logger.Debug("only debug", "path", "/")
	logger.Info("both", "path", "/health")

	assert.Contains(t, debug.String(), "only debug")
	assert.NotContains(t, info.String(), "only debug")
	assert.Contains(t, info.String(), "request_id=abc req.path=/health")
}
