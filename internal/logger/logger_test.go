package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"scireda/backend/internal/logger"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestNew_JSONLowercasesLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, slog.LevelDebug, "json")
	log.Warn("folder delete blocked", "module", "service", "folder_id", int64(42))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warn", line["level"])
	require.Equal(t, "folder delete blocked", line["msg"])
	require.Equal(t, float64(42), line["folder_id"])
}

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, slog.LevelWarn, "text")
	log.Info("hidden")
	require.Empty(t, buf.String())

	log.Error("shown")
	require.Contains(t, buf.String(), "level=error")
}
