// Package document tracks the documents open as editor tabs and reads and
// writes them on disk.
package document

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/colonyops/caseedit/internal/core/value"
)

// DefaultIndent is the number of spaces used when writing documents.
const DefaultIndent = 4

// Document is one open tab. An empty path means untitled.
type Document struct {
	path  string
	dirty bool
}

// Store owns the open documents, indexed by tab position. No two documents
// share a non-empty path.
type Store struct {
	docs   []*Document
	indent int
}

// NewStore creates an empty store that writes JSON with the given indent.
func NewStore(indent int) *Store {
	if indent < 0 {
		indent = DefaultIndent
	}
	return &Store{indent: indent}
}

// Len returns the number of open documents.
func (s *Store) Len() int { return len(s.docs) }

// New appends an untitled, clean document and returns its index.
func (s *Store) New() int {
	s.docs = append(s.docs, &Document{})
	return len(s.docs) - 1
}

// Open reads and parses path, appends a clean document bound to it, and
// returns the parsed root together with the new index.
func (s *Store) Open(ctx context.Context, path string) (*value.Object, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, -1, err
	}
	if s.IsOpen(path) {
		return nil, -1, ErrAlreadyOpen
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, -1, &IOError{Op: "read", Path: path, Err: err}
	}

	root, err := value.ParseObject(data)
	if err != nil {
		return nil, -1, newParseError(path, err)
	}

	s.docs = append(s.docs, &Document{path: path})
	return root, len(s.docs) - 1, nil
}

// IsOpen reports whether some document is bound to path.
func (s *Store) IsOpen(path string) bool {
	return s.indexOf(path) >= 0
}

func (s *Store) indexOf(path string) int {
	if path == "" {
		return -1
	}
	want := filepath.Clean(path)
	return slices.IndexFunc(s.docs, func(d *Document) bool {
		return d.path != "" && filepath.Clean(d.path) == want
	})
}

// Save writes v to the document's path and marks it clean. Untitled
// documents return ErrUntitled; the caller must go through SaveAs.
func (s *Store) Save(ctx context.Context, id int, v *value.Object) error {
	doc, err := s.get(id)
	if err != nil {
		return err
	}
	if doc.path == "" {
		return ErrUntitled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.write(doc.path, v); err != nil {
		return err
	}
	doc.dirty = false
	return nil
}

// SaveAs writes v to newPath. Only an untitled document is rebound: it takes
// newPath as its path and becomes clean. A document that already has a path
// keeps it and its dirty flag, so the write is a copy.
func (s *Store) SaveAs(ctx context.Context, id int, v *value.Object, newPath string) error {
	doc, err := s.get(id)
	if err != nil {
		return err
	}
	if other := s.indexOf(newPath); other >= 0 && other != id {
		return ErrAlreadyOpen
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.write(newPath, v); err != nil {
		return err
	}

	if doc.path == "" {
		doc.path = newPath
		doc.dirty = false
	}
	return nil
}

// Close removes the document. Unsaved changes are discarded.
func (s *Store) Close(id int) error {
	if _, err := s.get(id); err != nil {
		return err
	}
	s.docs = slices.Delete(s.docs, id, id+1)
	return nil
}

// SetDirty sets the document's dirty flag. Out-of-range indexes are ignored.
func (s *Store) SetDirty(id int, flag bool) {
	if doc, err := s.get(id); err == nil {
		doc.dirty = flag
	}
}

// IsDirty reports whether the document has unsaved changes.
func (s *Store) IsDirty(id int) bool {
	doc, err := s.get(id)
	return err == nil && doc.dirty
}

// IsUntitled reports whether the document has no path.
func (s *Store) IsUntitled(id int) bool {
	doc, err := s.get(id)
	return err == nil && doc.path == ""
}

// PathOf returns the document's path, or "" when untitled.
func (s *Store) PathOf(id int) string {
	doc, err := s.get(id)
	if err != nil {
		return ""
	}
	return doc.path
}

// Title is the tab label: the base name of the path or "untitled".
func (s *Store) Title(id int) string {
	p := s.PathOf(id)
	if p == "" {
		return "untitled"
	}
	return filepath.Base(p)
}

func (s *Store) get(id int) (*Document, error) {
	if id < 0 || id >= len(s.docs) {
		return nil, ErrNoDocument
	}
	return s.docs[id], nil
}

// write serializes v and replaces path atomically.
func (s *Store) write(path string, v *value.Object) error {
	data, err := value.MarshalIndent(v, s.indent)
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
