package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/caseedit/internal/core/value"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func sampleObject() *value.Object {
	o := value.NewObject()
	o.Set("name", value.String("Ann"))
	o.Set("age", value.Int(30))
	return o
}

func TestStore_New(t *testing.T) {
	s := NewStore(DefaultIndent)

	id := s.New()
	assert.Equal(t, 0, id)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.IsUntitled(id))
	assert.False(t, s.IsDirty(id))
	assert.Empty(t, s.PathOf(id))
	assert.Equal(t, "untitled", s.Title(id))
}

func TestStore_Open(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("parses and binds path", func(t *testing.T) {
		s := NewStore(DefaultIndent)
		p := writeFile(t, dir, "a.json", `{"b":1,"a":"x"}`)

		root, id, err := s.Open(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, 0, id)
		assert.Equal(t, []string{"b", "a"}, root.Keys())
		assert.Equal(t, p, s.PathOf(id))
		assert.False(t, s.IsDirty(id))
		assert.True(t, s.IsOpen(p))
		assert.Equal(t, "a.json", s.Title(id))
	})

	t.Run("duplicate path rejected", func(t *testing.T) {
		s := NewStore(DefaultIndent)
		p := writeFile(t, dir, "dup.json", `{}`)

		_, _, err := s.Open(ctx, p)
		require.NoError(t, err)

		_, _, err = s.Open(ctx, p)
		require.ErrorIs(t, err, ErrAlreadyOpen)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("missing file is io error", func(t *testing.T) {
		s := NewStore(DefaultIndent)

		_, _, err := s.Open(ctx, filepath.Join(dir, "missing.json"))
		require.Error(t, err)
		assert.True(t, IsIOError(err))
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("invalid json is parse error", func(t *testing.T) {
		s := NewStore(DefaultIndent)
		p := writeFile(t, dir, "bad.json", `{"a":`)

		_, _, err := s.Open(ctx, p)
		require.Error(t, err)
		assert.True(t, IsParseError(err))
		assert.False(t, IsIOError(err))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("syntax error reports offset", func(t *testing.T) {
		s := NewStore(DefaultIndent)
		p := writeFile(t, dir, "syntax.json", `{"a" 1}`)

		_, _, err := s.Open(ctx, p)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, p, parseErr.Path)
		assert.Positive(t, parseErr.Offset)
	})

	t.Run("non-object root is parse error", func(t *testing.T) {
		s := NewStore(DefaultIndent)
		p := writeFile(t, dir, "list.json", `[1,2]`)

		_, _, err := s.Open(ctx, p)
		require.ErrorIs(t, err, value.ErrNotObject)
		assert.True(t, IsParseError(err))
	})
}

func TestStore_Save(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("writes indented json and clears dirty", func(t *testing.T) {
		s := NewStore(DefaultIndent)
		p := writeFile(t, dir, "save.json", `{}`)
		_, id, err := s.Open(ctx, p)
		require.NoError(t, err)

		s.SetDirty(id, true)
		require.NoError(t, s.Save(ctx, id, sampleObject()))
		assert.False(t, s.IsDirty(id))

		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "{\n    \"name\": \"Ann\",\n    \"age\": 30\n}\n", string(data))
	})

	t.Run("untitled requires save as", func(t *testing.T) {
		s := NewStore(DefaultIndent)
		id := s.New()
		s.SetDirty(id, true)

		err := s.Save(ctx, id, sampleObject())
		require.ErrorIs(t, err, ErrUntitled)
		assert.True(t, s.IsDirty(id))
	})

	t.Run("write failure keeps dirty", func(t *testing.T) {
		sub := t.TempDir()
		s := NewStore(DefaultIndent)
		p := writeFile(t, sub, "gone.json", `{}`)
		_, id, err := s.Open(ctx, p)
		require.NoError(t, err)
		s.SetDirty(id, true)

		require.NoError(t, os.RemoveAll(sub))
		err = s.Save(ctx, id, sampleObject())
		require.Error(t, err)
		assert.True(t, IsIOError(err))
		assert.True(t, s.IsDirty(id))
	})

	t.Run("bad index", func(t *testing.T) {
		s := NewStore(DefaultIndent)
		require.ErrorIs(t, s.Save(ctx, 3, sampleObject()), ErrNoDocument)
	})
}

func TestStore_SaveAs(t *testing.T) {
	ctx := context.Background()

	t.Run("binds untitled document", func(t *testing.T) {
		dir := t.TempDir()
		s := NewStore(DefaultIndent)
		id := s.New()
		s.SetDirty(id, true)

		p := filepath.Join(dir, "a.json")
		require.NoError(t, s.SaveAs(ctx, id, sampleObject(), p))

		assert.Equal(t, p, s.PathOf(id))
		assert.False(t, s.IsUntitled(id))
		assert.False(t, s.IsDirty(id))
		assert.FileExists(t, p)
	})

	t.Run("named document writes a copy", func(t *testing.T) {
		dir := t.TempDir()
		s := NewStore(DefaultIndent)
		orig := writeFile(t, dir, "orig.json", `{}`)
		_, id, err := s.Open(ctx, orig)
		require.NoError(t, err)
		s.SetDirty(id, true)

		copyPath := filepath.Join(dir, "copy.json")
		require.NoError(t, s.SaveAs(ctx, id, sampleObject(), copyPath))

		assert.Equal(t, orig, s.PathOf(id))
		assert.True(t, s.IsDirty(id))
		assert.False(t, s.IsOpen(copyPath))

		data, err := os.ReadFile(orig)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))

		root, err := os.ReadFile(copyPath)
		require.NoError(t, err)
		parsed, err := value.ParseObject(root)
		require.NoError(t, err)
		assert.True(t, parsed.Equal(sampleObject()))
	})

	t.Run("path open in another tab rejected", func(t *testing.T) {
		dir := t.TempDir()
		s := NewStore(DefaultIndent)
		p := writeFile(t, dir, "taken.json", `{}`)
		_, _, err := s.Open(ctx, p)
		require.NoError(t, err)

		id := s.New()
		err = s.SaveAs(ctx, id, sampleObject(), p)
		require.ErrorIs(t, err, ErrAlreadyOpen)
		assert.True(t, s.IsUntitled(id))
	})

	t.Run("failed write leaves untitled", func(t *testing.T) {
		dir := t.TempDir()
		s := NewStore(DefaultIndent)
		id := s.New()

		err := s.SaveAs(ctx, id, sampleObject(), filepath.Join(dir, "nope", "a.json"))
		require.Error(t, err)
		assert.True(t, IsIOError(err))
		assert.True(t, s.IsUntitled(id))
	})
}

func TestStore_Close(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(DefaultIndent)

	a := writeFile(t, dir, "a.json", `{}`)
	b := writeFile(t, dir, "b.json", `{}`)
	_, _, err := s.Open(ctx, a)
	require.NoError(t, err)
	_, _, err = s.Open(ctx, b)
	require.NoError(t, err)
	s.SetDirty(1, true)

	require.NoError(t, s.Close(0))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, b, s.PathOf(0))
	assert.True(t, s.IsDirty(0))
	assert.False(t, s.IsOpen(a))

	_, _, err = s.Open(ctx, a)
	require.NoError(t, err, "closed path can be reopened")

	require.ErrorIs(t, s.Close(5), ErrNoDocument)
}

func TestStore_Dirty(t *testing.T) {
	s := NewStore(DefaultIndent)
	id := s.New()

	s.SetDirty(id, true)
	assert.True(t, s.IsDirty(id))
	s.SetDirty(id, false)
	assert.False(t, s.IsDirty(id))

	s.SetDirty(9, true)
	assert.False(t, s.IsDirty(9))
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStore(DefaultIndent)
	_, _, err := s.Open(ctx, "whatever.json")
	require.ErrorIs(t, err, context.Canceled)

	id := s.New()
	require.ErrorIs(t, s.SaveAs(ctx, id, sampleObject(), "x.json"), context.Canceled)
	assert.True(t, s.IsUntitled(id))
}
