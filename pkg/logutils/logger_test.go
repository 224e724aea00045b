package logutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONLinesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "caseedit.log")

	l, closer, err := New("info", file)
	require.NoError(t, err)
	l.Debug().Msg("hidden")
	l.Info().Str("doc", "a.json").Msg("opened")
	closer()

	l, closer, err = New("info", file)
	require.NoError(t, err)
	l.Warn().Msg("second run")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "appends across runs and filters by level")
	assert.Contains(t, lines[0], `"doc":"a.json"`)
	assert.Contains(t, lines[0], `"time"`)
	assert.Contains(t, lines[1], `"level":"warn"`)
}

func TestNew_Level(t *testing.T) {
	l, closer, err := New("debug", "")
	require.NoError(t, err)
	defer closer()
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())

	_, _, err = New("loud", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}
