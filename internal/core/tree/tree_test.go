package tree

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/caseedit/internal/core/value"
)

func parse(t *testing.T, src string) *value.Object {
	t.Helper()
	obj, err := value.ParseObject([]byte(src))
	require.NoError(t, err)
	return obj
}

func keys(m *Model, ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = m.Key(id)
	}
	return out
}

func TestBuild_Scenario(t *testing.T) {
	m := Build(parse(t, `{"a": {"b": 1, "c": [1,2,3]}}`))

	top := m.Children(Root)
	require.Len(t, top, 1)
	a := top[0]
	assert.Equal(t, "a", m.Key(a))
	assert.False(t, m.IsLeaf(a))
	assert.Equal(t, "", m.Text(a))

	kids := m.Children(a)
	require.Len(t, kids, 2)
	assert.Equal(t, "b", m.Key(kids[0]))
	assert.Equal(t, "1", m.Text(kids[0]))
	assert.Equal(t, "c", m.Key(kids[1]))
	assert.Equal(t, "1, 2, 3", m.Text(kids[1]))

	// List elements come back as strings: the codec cannot tell "1" in a
	// comma list apart from the string "1".
	want := value.NewObject()
	inner := value.NewObject()
	inner.Set("b", value.Int(1))
	inner.Set("c", value.List(value.String("1"), value.String("2"), value.String("3")))
	want.Set("a", value.FromObject(inner))

	assert.True(t, want.Equal(m.Flatten()))
}

func TestBuild_DefaultFlags(t *testing.T) {
	m := Build(parse(t, `{"a": {"b": 1}, "c": true}`))
	for id := range m.All() {
		assert.True(t, m.Expanded(id), "node %s should start expanded", m.Key(id))
		assert.False(t, m.Selected(id), "node %s should start unselected", m.Key(id))
	}
}

func TestFlatten_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"flat scalars", `{"s": "text", "i": 3, "f": 1.25, "t": true, "n": false}`},
		{"nested", `{"a": {"b": {"c": "deep"}, "d": 0}}`},
		{"integral float", `{"endTime": 1000.0}`},
		{"string list", `{"patches": ["inlet", "outlet", "walls"]}`},
		{"empty object", `{"a": {}}`},
		{"key order", `{"z": 1, "y": 2, "x": 3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := parse(t, tt.src)
			got := Build(src).Flatten()
			assert.True(t, src.Equal(got), "round trip changed %s", tt.src)
			assert.Equal(t, src.Keys(), got.Keys())
		})
	}
}

func TestFlatten_Empty(t *testing.T) {
	m := New()
	assert.True(t, m.Empty())
	assert.Equal(t, 0, m.Flatten().Len())
	assert.Equal(t, 0, m.Len())
}

func TestAll_PreOrder(t *testing.T) {
	m := Build(parse(t, `{"a": {"b": {"c": 1}, "d": 2}, "e": 3}`))
	got := keys(m, slices.Collect(m.All()))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
}

func TestVisible_SkipsCollapsed(t *testing.T) {
	m := Build(parse(t, `{"a": {"b": {"c": 1}, "d": 2}, "e": 3}`))
	b, ok := m.Find("a/b")
	require.True(t, ok)

	m.SetExpanded(b, false)
	assert.Equal(t, []string{"a", "b", "d", "e"}, keys(m, slices.Collect(m.Visible())))

	m.SetExpandedAll(false)
	assert.Equal(t, []string{"a", "e"}, keys(m, slices.Collect(m.Visible())))

	m.SetExpandedAll(true)
	assert.Equal(t, 5, len(slices.Collect(m.Visible())))
}

func TestSelectedNodes(t *testing.T) {
	m := Build(parse(t, `{"a": {"b": 1, "c": 2}, "d": 3}`))

	assert.Empty(t, m.SelectedNodes())

	a, _ := m.Find("a")
	d, _ := m.Find("d")
	c, _ := m.Find("a/c")
	m.SetSelected(d, true)
	m.SetSelected(a, true)
	m.SetSelected(c, true)

	// pre-order, not selection order; children of a are not implied
	assert.Equal(t, []string{"a", "c", "d"}, keys(m, m.SelectedNodes()))

	m.SetSelectedAll(true)
	assert.Len(t, m.SelectedNodes(), 4)

	m.SetSelectedAll(false)
	assert.Empty(t, m.SelectedNodes())
}

func TestSetAll_EmptyTree(t *testing.T) {
	m := New()
	m.SetSelectedAll(true)
	m.SetExpandedAll(false)
	assert.Empty(t, m.SelectedNodes())
}

func TestDetach(t *testing.T) {
	m := Build(parse(t, `{"a": {"b": 1}, "c": 2}`))
	a, _ := m.Find("a")
	b, _ := m.Find("a/b")

	require.True(t, m.Detach(a))
	assert.False(t, m.Attached(a))
	assert.False(t, m.Attached(b), "descendants of a detached node are unreachable")
	assert.False(t, m.Detach(a), "second detach is a no-op")
	assert.False(t, m.Detach(Root))

	assert.Equal(t, []string{"c"}, keys(m, slices.Collect(m.All())))
	assert.Equal(t, []string{"c"}, m.Flatten().Keys())
}

func TestAppendLeaf(t *testing.T) {
	m := Build(parse(t, `{"a": 1}`))
	a, _ := m.Find("a")

	child := m.AppendLeaf(a, "nested", "2.5")
	assert.False(t, m.IsLeaf(a), "leaf target becomes interior")
	assert.Equal(t, "", m.Text(a))
	assert.True(t, m.Attached(child))
	assert.Equal(t, "a/nested", m.Path(child))

	top := m.AppendLeaf(Root, "b", "True")
	assert.Equal(t, 0, m.Depth(top))
	assert.Equal(t, 1, m.Depth(child))

	got := m.Flatten()
	av, _ := got.Get("a")
	require.True(t, av.IsObject())
	nested, _ := av.Object().Get("nested")
	assert.Equal(t, value.KindFloat, nested.Kind())
	bv, _ := got.Get("b")
	assert.Equal(t, value.KindBool, bv.Kind())
}

func TestSetText_InteriorUnchanged(t *testing.T) {
	m := Build(parse(t, `{"a": {"b": 1}}`))
	a, _ := m.Find("a")
	b, _ := m.Find("a/b")

	assert.False(t, m.SetText(a, "x"))
	assert.Equal(t, "", m.Text(a))
	assert.True(t, m.SetText(b, "2"))
	assert.Equal(t, "2", m.Text(b))
}

func TestParent(t *testing.T) {
	m := Build(parse(t, `{"a": {"b": 1}}`))
	a, _ := m.Find("a")
	b, _ := m.Find("a/b")

	p, ok := m.Parent(b)
	assert.True(t, ok)
	assert.Equal(t, a, p)

	_, ok = m.Parent(a)
	assert.False(t, ok)
}
