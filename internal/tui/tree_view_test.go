package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/caseedit/internal/core/tree"
	"github.com/colonyops/caseedit/internal/core/value"
	"github.com/colonyops/caseedit/pkg/tuitest"
)

func buildTree(t *testing.T, doc string) *tree.Model {
	t.Helper()
	obj, err := value.ParseObject([]byte(doc))
	require.NoError(t, err)
	return tree.Build(obj)
}

const sampleDoc = `{"solver": {"tolerance": 1e-05, "steps": 10}, "name": "run"}`

func currentKey(t *testing.T, v *TreeView) string {
	t.Helper()
	id, ok := v.Current()
	require.True(t, ok)
	return v.tree.Key(id)
}

func TestTreeView_Navigation(t *testing.T) {
	v := NewTreeView(buildTree(t, sampleDoc))
	assert.Equal(t, "solver", currentKey(t, v))

	v.Update(tuitest.KeyPress('j'))
	assert.Equal(t, "tolerance", currentKey(t, v))

	v.Update(tuitest.KeyDown())
	v.Update(tuitest.KeyDown())
	assert.Equal(t, "name", currentKey(t, v))

	v.Update(tuitest.KeyDown())
	assert.Equal(t, "name", currentKey(t, v), "cursor stops at the last row")

	v.Update(tuitest.KeyPress('g'))
	assert.Equal(t, 0, v.Cursor())

	v.Update(tuitest.KeyPress('G'))
	assert.Equal(t, 3, v.Cursor())

	v.Update(tuitest.KeyUp())
	v.Update(tuitest.KeyPress('k'))
	assert.Equal(t, "tolerance", currentKey(t, v))
}

func TestTreeView_SpaceTogglesSelection(t *testing.T) {
	tr := buildTree(t, sampleDoc)
	v := NewTreeView(tr)
	v.Update(tuitest.KeyDown())

	v.Update(tuitest.KeySpace())
	id, _ := v.Current()
	assert.True(t, tr.Selected(id))
	assert.Equal(t, []tree.NodeID{id}, tr.SelectedNodes())

	v.Update(tuitest.KeySpace())
	assert.False(t, tr.Selected(id))
}

func TestTreeView_Expansion(t *testing.T) {
	tr := buildTree(t, sampleDoc)
	v := NewTreeView(tr)

	v.Update(tuitest.KeyEnter())
	assert.Len(t, v.visible, 2, "collapsed solver hides its children")

	v.Update(tuitest.KeyRight())
	assert.Len(t, v.visible, 4)

	v.Update(tuitest.KeyLeft())
	assert.Len(t, v.visible, 2)

	v.Update(tuitest.KeyRight())
	v.Update(tuitest.KeyDown())
	v.Update(tuitest.KeyLeft())
	assert.Equal(t, "solver", currentKey(t, v), "left on a leaf jumps to the parent")
	assert.Len(t, v.visible, 4)

	v.Update(tuitest.KeyPress('G'))
	v.Update(tuitest.KeyEnter())
	assert.Len(t, v.visible, 4, "enter on a leaf does nothing")
}

func TestTreeView_RefreshClampsCursor(t *testing.T) {
	tr := buildTree(t, sampleDoc)
	v := NewTreeView(tr)
	v.Update(tuitest.KeyPress('G'))

	id, _ := v.Current()
	tr.Detach(id)
	v.Refresh()
	assert.Equal(t, "steps", currentKey(t, v))
}

func TestTreeView_Scrolling(t *testing.T) {
	v := NewTreeView(buildTree(t, sampleDoc))
	v.SetSize(80, 2)

	v.Update(tuitest.KeyPress('G'))
	lines := strings.Split(tuitest.StripANSI(v.View()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "name")
	assert.Contains(t, lines[0], "steps")
}

func TestTreeView_View(t *testing.T) {
	tr := buildTree(t, sampleDoc)
	v := NewTreeView(tr)
	v.Update(tuitest.KeySpace())

	lines := strings.Split(tuitest.StripANSI(v.View()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[x] ▾ solver", lines[0])
	assert.Equal(t, "[ ]   • tolerance: 1e-05", lines[1])
	assert.Equal(t, "[ ]   • steps: 10", lines[2])
	assert.Equal(t, "[ ] • name: run", lines[3])

	v.Update(tuitest.KeyEnter())
	assert.Contains(t, tuitest.StripANSI(v.View()), "▸ solver (2)")
}

func TestTreeView_Empty(t *testing.T) {
	v := NewTreeView(tree.New())
	_, ok := v.Current()
	assert.False(t, ok)

	v.Update(tuitest.KeyDown())
	v.Update(tuitest.KeySpace())
	assert.Contains(t, tuitest.StripANSI(v.View()), "Empty document")
}
