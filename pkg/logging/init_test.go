package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name    string
		logType string
		level   string
		wantErr bool
	}{
		{"json/info", JSON, "info", false},
		{"text/debug", Text, "debug", false},
		{"tint/warn", Tint, "warn", false},
		{"json/error", JSON, "error", false},
		{"invalid level", JSON, "bogus", true},
		{"unknown type", "syslog", "info", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Initialize(tt.logType, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewHandler(t *testing.T) {
	h, err := newHandler(JSON, slog.LevelInfo)
	require.NoError(t, err)
	assert.IsType(t, &slog.JSONHandler{}, h)

	h, err = newHandler(Text, slog.LevelDebug)
	require.NoError(t, err)
	assert.IsType(t, &slog.TextHandler{}, h)

	h, err = newHandler(Tint, slog.LevelWarn)
	require.NoError(t, err)
	assert.NotNil(t, h)
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))

	_, err = newHandler("syslog", slog.LevelInfo)
	assert.ErrorContains(t, err, "unknown logging type")
}
