package logx

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	l := New()
	l.SetOutput(buf)
	l.SetColored(false)
	l.now = func() time.Time { return time.Date(2025, 6, 8, 18, 57, 52, 0, time.UTC) }
	return l
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)
	l.SetLevel(WarnLevel)

	l.Info("hidden %d", 1)
	l.Debug("hidden")
	l.Warn("shown %s", "warn")
	l.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "shown warn")
	assert.Contains(t, out, "[ERROR]")
}

func TestLogger_OffDisablesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)
	l.SetLevel(OffLevel)

	l.Error("nothing")
	assert.Empty(t, buf.String())
	assert.False(t, l.IsLevelEnabled(OffLevel))
}

func TestLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)
	l.SetPrefix("customerr")

	l.Info("registry ready")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "[2025-06-08 18:57:52] customerr [INFO] logger_test.go:"), line)
	assert.True(t, strings.HasSuffix(line, ": registry ready\n"), line)
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)
	l.SetFormat(FormatJSON)
	l.SetLevel(DebugLevel)

	l.Debug("defined error class %s", "MapError.dne")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "defined error class MapError.dne", entry["message"])
	assert.Equal(t, "2025-06-08T18:57:52Z", entry["timestamp"])
	assert.Contains(t, entry["caller"], "logger_test.go:")
}

func TestLogger_MessageWithoutArgsIsNotFormatted(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)
	l.SetShowCaller(false)

	l.Info("100%% done")
	assert.Contains(t, buf.String(), "[INFO]: 100%% done")
}

func TestConfigureFromEnv(t *testing.T) {
	env := map[string]string{
		"LOG_LEVEL":  "debug",
		"LOG_FORMAT": "json",
		"LOG_CALLER": "false",
	}
	l := New()
	configureFromEnv(l, func(k string) string { return env[k] })

	assert.Equal(t, DebugLevel, l.Level())
	assert.Equal(t, FormatJSON, l.format)
	assert.False(t, l.colored)
	assert.False(t, l.showCaller)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"trace", TraceLevel, false},
		{" WARNING ", WarnLevel, false},
		{"off", OffLevel, false},
		{"loud", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_Colorize(t *testing.T) {
	assert.Contains(t, ErrorLevel.Colorize(), "ERROR")
	assert.NotEqual(t, "ERROR", ErrorLevel.Colorize())
	assert.Equal(t, "OFF", OffLevel.Colorize())
}
