package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	file := writeDoc(t, "case.json", sampleDoc)

	out, err := runApp(t, []registrar{NewTreeCmd(newTestFlags(t))}, "tree", file)
	require.NoError(t, err)

	want := "▾ solver\n" +
		"  • tolerance: 1e-05\n" +
		"  • steps: 10\n" +
		"• name: run"
	assert.Equal(t, want, out)
}

func TestTree_JSON(t *testing.T) {
	file := writeDoc(t, "case.json", `{"a": {"b": 1.0}, "c": null}`)

	out, err := runApp(t, []registrar{NewTreeCmd(newTestFlags(t))}, "tree", "--json", "--file", file)
	require.NoError(t, err)

	// null is shown as None in the tree and comes back as that text.

	want := "{\n" +
		"    \"a\": {\n" +
		"        \"b\": 1.0\n" +
		"    },\n" +
		"    \"c\": \"None\"\n" +
		"}"
	assert.Equal(t, want, out)
}

func TestTree_ParseError(t *testing.T) {
	file := writeDoc(t, "case.json", `[1, 2]`)

	_, err := runApp(t, []registrar{NewTreeCmd(newTestFlags(t))}, "tree", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse "+file)
}
