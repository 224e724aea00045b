package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecent(t *testing.T) {
	flags := newTestFlags(t)
	cmds := []registrar{NewRecentCmd(flags)}

	out, err := runApp(t, cmds, "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "No recent files")

	ctx := context.Background()
	a, b := writeDoc(t, "a.json", "{}"), writeDoc(t, "b.json", "{}")
	require.NoError(t, flags.Recents.Add(ctx, a, 10))
	require.NoError(t, flags.Recents.Add(ctx, b, 10))

	out, err = runApp(t, cmds, "recent")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "OPENED"))
	assert.True(t, strings.HasSuffix(lines[1], b), "newest first")
	assert.True(t, strings.HasSuffix(lines[2], a))

	out, err = runApp(t, cmds, "recent", "--json")
	require.NoError(t, err)
	lines = strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"path":"`+b+`"`)

	_, err = runApp(t, cmds, "recent", "clear")
	require.NoError(t, err)
	entries, err := flags.Recents.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
