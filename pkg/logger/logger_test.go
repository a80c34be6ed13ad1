package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorfAddsErrorAttribute(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLoggerWithWriter(&buf, slog.LevelDebug)

	l.Errorf(errors.New("broker unavailable"), "send failed for %s", "801")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "send failed for 801", entry["msg"])
	assert.Equal(t, "broker unavailable", entry["error"])
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLoggerWithWriter(&buf, slog.LevelWarn)

	l.Debugf("hidden")
	l.Infof("hidden")
	assert.Zero(t, buf.Len())

	l.Warnf("cache miss on page %d", 2)
	assert.Contains(t, buf.String(), "cache miss on page 2")
}
