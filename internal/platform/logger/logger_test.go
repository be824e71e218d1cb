package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"":        Info,
		"WARNING": Warn,
		" error ": Error,
		"verbose": Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestJSONLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "livestock-assessment", Output: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"session_id": "s-1"}).Warn("camera failed", map[string]any{
		"err":  errors.New("boom"),
		"kind": "not_found",
	})
	require.NoError(t, l.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "camera failed", entry["msg"])
	assert.Equal(t, "livestock-assessment", entry["app"])
	assert.Equal(t, "s-1", entry["session_id"])
	assert.Equal(t, "boom", entry["err"])
	assert.Equal(t, "not_found", entry["kind"])
}
