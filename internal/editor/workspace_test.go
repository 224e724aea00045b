package editor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/caseedit/internal/core/config"
	"github.com/colonyops/caseedit/internal/core/document"
	"github.com/colonyops/caseedit/internal/core/mutate"
	"github.com/colonyops/caseedit/internal/core/recent"
	"github.com/colonyops/caseedit/internal/core/tree"
)

type fakeRecents struct {
	added []string
}

func (f *fakeRecents) List(context.Context) ([]recent.Entry, error) { return nil, nil }
func (f *fakeRecents) Add(_ context.Context, path string, _ int) error {
	f.added = append(f.added, path)
	return nil
}
func (f *fakeRecents) Remove(context.Context, string) error { return nil }
func (f *fakeRecents) Clear(context.Context) error          { return nil }

type fakeWatcher struct {
	watched map[string]bool
	written []string
}

func newFakeWatcher() *fakeWatcher { return &fakeWatcher{watched: map[string]bool{}} }

func (f *fakeWatcher) Add(path string) error {
	f.watched[path] = true
	return nil
}

func (f *fakeWatcher) Remove(path string) error {
	delete(f.watched, path)
	return nil
}

func (f *fakeWatcher) MarkWritten(path string) { f.written = append(f.written, path) }
func (f *fakeWatcher) Watch(context.Context, string) (<-chan document.ChangeEvent, error) {
	return nil, nil
}
func (f *fakeWatcher) Close() error { return nil }

// prompter answers every stage with fixed responses.
type prompter struct {
	confirm bool
	pairs   []mutate.Pair
	edit    func([]mutate.EditRecord) []mutate.EditRecord
}

func (p *prompter) Confirm(string, int) bool   { return p.confirm }
func (p *prompter) PromptPairs() []mutate.Pair { return p.pairs }
func (p *prompter) PromptEdits(recs []mutate.EditRecord) ([]mutate.EditRecord, bool) {
	if p.edit == nil {
		return nil, false
	}
	return p.edit(recs), true
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	return cfg
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func newWorkspace(t *testing.T) (*Workspace, *fakeRecents, *fakeWatcher) {
	t.Helper()
	r := &fakeRecents{}
	w := newFakeWatcher()
	return NewWorkspace(testConfig(t), r, w), r, w
}

func findKey(t *testing.T, m *tree.Model, path string) tree.NodeID {
	t.Helper()
	id, ok := m.Find(path)
	require.True(t, ok, "node %q not found", path)
	return id
}

func TestWorkspace_New(t *testing.T) {
	ws, _, _ := newWorkspace(t)

	i := ws.New()
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, ws.Len())
	assert.True(t, ws.IsUntitled(i))
	assert.False(t, ws.IsDirty(i))
	assert.Equal(t, "untitled", ws.Title(i))
	assert.True(t, ws.Tree(i).Empty())
}

func TestWorkspace_Open(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p := writeDoc(t, dir, "case.json", `{"a": {"b": 1, "c": [1, 2, 3]}}`)

	ws, recents, watcher := newWorkspace(t)

	i, err := ws.Open(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "case.json", ws.Title(i))
	assert.Equal(t, p, ws.Path(i))
	assert.Equal(t, []string{p}, recents.added)
	assert.True(t, watcher.watched[p])

	m := ws.Tree(i)
	c := findKey(t, m, "a/c")
	assert.Equal(t, "1, 2, 3", m.Text(c))
	assert.True(t, m.Expanded(findKey(t, m, "a")))

	_, err = ws.Open(ctx, p)
	require.ErrorIs(t, err, document.ErrAlreadyOpen)
	assert.Equal(t, 1, ws.Len())
}

func TestWorkspace_OpenCollapsed(t *testing.T) {
	cfg := testConfig(t)
	expand := false
	cfg.TUI.ExpandOnOpen = &expand

	p := writeDoc(t, t.TempDir(), "case.json", `{"a": {"b": 1}}`)
	ws := NewWorkspace(cfg, nil, nil)

	i, err := ws.Open(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, ws.Tree(i).Expanded(findKey(t, ws.Tree(i), "a")))
}

func TestWorkspace_OpenRejectsExtension(t *testing.T) {
	p := writeDoc(t, t.TempDir(), "notes.txt", `{}`)
	ws, _, _ := newWorkspace(t)

	_, err := ws.Open(context.Background(), p)

	var extErr *ExtensionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, []string{".json"}, extErr.Allowed)
	assert.Equal(t, 0, ws.Len())
}

func TestWorkspace_OpenErrorsLeaveNoTab(t *testing.T) {
	dir := t.TempDir()
	ws, recents, _ := newWorkspace(t)

	_, err := ws.Open(context.Background(), filepath.Join(dir, "missing.json"))
	assert.True(t, document.IsIOError(err))

	_, err = ws.Open(context.Background(), writeDoc(t, dir, "bad.json", `{`))
	assert.True(t, document.IsParseError(err))

	assert.Equal(t, 0, ws.Len())
	assert.Empty(t, recents.added)
}

func TestWorkspace_MutationsMarkDirty(t *testing.T) {
	ctx := context.Background()
	p := writeDoc(t, t.TempDir(), "case.json", `{"a": 1, "b": {"c": "x"}}`)
	ws, _, _ := newWorkspace(t)
	i, err := ws.Open(ctx, p)
	require.NoError(t, err)
	m := ws.Tree(i)

	t.Run("declined delete stays clean", func(t *testing.T) {
		m.SetSelected(findKey(t, m, "a"), true)
		assert.Equal(t, 0, ws.Delete(ctx, i, &prompter{confirm: false}))
		assert.False(t, ws.IsDirty(i))
		assert.Equal(t, "case.json", ws.Title(i))
	})

	t.Run("insert with no pairs stays clean", func(t *testing.T) {
		ws.SetSelectedAll(i, false)
		assert.Equal(t, 0, ws.Insert(ctx, i, &prompter{}))
		assert.False(t, ws.IsDirty(i))
	})

	t.Run("cancelled replace stays clean", func(t *testing.T) {
		m.SetSelected(findKey(t, m, "b"), true)
		assert.Equal(t, 0, ws.Replace(ctx, i, &prompter{}))
		assert.False(t, ws.IsDirty(i))
		ws.SetSelectedAll(i, false)
	})

	t.Run("accepted insert marks dirty", func(t *testing.T) {
		n := ws.Insert(ctx, i, &prompter{pairs: []mutate.Pair{{Key: "d", Value: "4"}}})
		assert.Equal(t, 1, n)
		assert.True(t, ws.IsDirty(i))
		assert.Equal(t, "case.json*", ws.Title(i))

		doc, err := ws.Document(i)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "d"}, doc.Keys())
	})
}

func TestWorkspace_MutationsWithoutTab(t *testing.T) {
	ws, _, _ := newWorkspace(t)
	p := &prompter{confirm: true, pairs: []mutate.Pair{{Key: "k", Value: "v"}}}

	assert.Equal(t, 0, ws.Delete(context.Background(), 0, p))
	assert.Equal(t, 0, ws.Insert(context.Background(), 0, p))
	assert.Equal(t, 0, ws.Replace(context.Background(), 0, p))
}

func TestWorkspace_CommitUnfinished(t *testing.T) {
	ctx := context.Background()
	p := writeDoc(t, t.TempDir(), "case.json", `{"a": 1}`)
	ws, _, _ := newWorkspace(t)
	i, err := ws.Open(ctx, p)
	require.NoError(t, err)
	ws.SetSelectedAll(i, true)

	op := ws.BeginDelete(i)
	require.Equal(t, mutate.StageConfirm, op.Stage())
	assert.Equal(t, 0, ws.Commit(ctx, i, op))

	op.Confirm(true)
	assert.Equal(t, 1, ws.Commit(ctx, i, op))
	assert.True(t, ws.IsDirty(i))
	assert.True(t, ws.Tree(i).Empty())
}

func TestWorkspace_SaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	content := "{\n    \"a\": {\n        \"b\": 1,\n        \"f\": 2.0\n    }\n}\n"
	p := writeDoc(t, t.TempDir(), "case.json", content)

	ws, _, watcher := newWorkspace(t)
	i, err := ws.Open(ctx, p)
	require.NoError(t, err)
	ws.store.SetDirty(i, true)

	require.NoError(t, ws.Save(ctx, i))
	assert.False(t, ws.IsDirty(i))
	assert.Equal(t, []string{p}, watcher.written)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestWorkspace_SaveUntitled(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	ws, recents, watcher := newWorkspace(t)
	i := ws.New()

	require.ErrorIs(t, ws.Save(ctx, i), document.ErrUntitled)

	var extErr *ExtensionError
	require.ErrorAs(t, ws.SaveAs(ctx, i, filepath.Join(dir, "a.txt")), &extErr)
	assert.True(t, ws.IsUntitled(i))

	a := filepath.Join(dir, "a.json")
	require.NoError(t, ws.SaveAs(ctx, i, a))
	assert.Equal(t, a, ws.Path(i))
	assert.False(t, ws.IsDirty(i))
	assert.Equal(t, "a.json", ws.Title(i))
	assert.Equal(t, []string{a}, recents.added)
	assert.True(t, watcher.watched[a])

	ws.store.SetDirty(i, true)
	b := filepath.Join(dir, "b.json")
	require.NoError(t, ws.SaveAs(ctx, i, b))
	assert.Equal(t, a, ws.Path(i), "second save as writes a copy")
	assert.True(t, ws.IsDirty(i))
	assert.FileExists(t, b)
	assert.False(t, watcher.watched[b])
}

func TestWorkspace_MarkStale(t *testing.T) {
	ctx := context.Background()
	p := writeDoc(t, t.TempDir(), "case.json", `{}`)
	ws, _, _ := newWorkspace(t)
	i, err := ws.Open(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, -1, ws.MarkStale("/elsewhere.json"))
	assert.Equal(t, i, ws.MarkStale(p))
	assert.True(t, ws.Session(i).Stale())

	require.NoError(t, ws.Save(ctx, i))
	assert.False(t, ws.Session(i).Stale())
}

func TestWorkspace_SelectMatching(t *testing.T) {
	ctx := context.Background()
	p := writeDoc(t, t.TempDir(), "case.json", `{"solver": {"tol": 1, "inner": {"tol": 2}}, "tol": 3}`)
	ws, _, _ := newWorkspace(t)
	i, err := ws.Open(ctx, p)
	require.NoError(t, err)

	n, err := ws.SelectMatching(i, "solver/**/tol")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = ws.SelectMatching(5, "x")
	require.ErrorIs(t, err, ErrNoTab)
}
