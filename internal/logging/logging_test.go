package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"warn":    zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseLevel(raw), "raw %q", raw)
	}
}

func TestComponentTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	SetLevel("debug")
	SetOutput(&buf)
	t.Cleanup(func() { SetLevel("info") })

	logger := Component("lifecycle")
	logger.Debug().Str("state", "opening").Msg("dialog transition")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lifecycle", entry["component"])
	assert.Equal(t, "opening", entry["state"])
	assert.Equal(t, "dialog transition", entry["message"])
}

func TestSetLevelFiltersEntries(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("error")
	t.Cleanup(func() { SetLevel("info") })

	logger := Component("storage")
	logger.Warn().Msg("dropped")

	assert.Zero(t, buf.Len())
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "modalkit.log")
	require.NoError(t, Setup(Config{Path: path, Level: "info"}))
	t.Cleanup(func() {
		_ = Close()
		SetOutput(os.Stderr)
	})

	logger := Component("cmd")
	logger.Info().Msg("started")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"cmd"`)
	assert.Contains(t, string(data), `"message":"started"`)
}
