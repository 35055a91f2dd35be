package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warn"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewLogger_JSONCarriesServiceName(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "info", "").Info("hello", "k", "v")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "todo-api", record["service"])
	require.Equal(t, "hello", record["msg"])
	require.Equal(t, "v", record["k"])
}

func TestNewLogger_TextFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "warn", "text")
	log.Info("dropped")
	log.Warn("kept")

	out := buf.String()
	require.NotContains(t, out, "dropped")
	require.True(t, strings.Contains(out, "msg=kept"))
	require.Contains(t, out, "service=todo-api")
}
