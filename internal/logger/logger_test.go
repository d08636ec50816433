package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestPrettyHandlerWritesAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "pretty")

	log.Debug("hidden")
	log.With("item", "Milk").WithGroup("change").Info("recorded", "op", "add", slog.Group("value", "new", "2"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "recorded")
	assert.Contains(t, out, " "+cyan+"item"+reset+"=Milk")
	assert.Contains(t, out, "change.op"+reset+"=add")
	assert.Contains(t, out, "change.value.new"+reset+"=2")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug", "json").Debug("stats aggregated", "items", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "stats aggregated", line["msg"])
	assert.Equal(t, float64(3), line["items"])
}
