// Package editor wires open documents, their trees, and batch edits into
// tabs, and implements the close-with-unsaved-changes flow.
package editor

import (
	"github.com/colonyops/caseedit/internal/core/tree"
	"github.com/colonyops/caseedit/internal/core/value"
)

// Session is the per-tab state that lives next to a document: its tree and
// whether the file was changed on disk by someone else.
type Session struct {
	tree  *tree.Model
	stale bool
}

func newSession(root *value.Object, expand bool) *Session {
	t := tree.New()
	if root != nil {
		t = tree.Build(root)
	}
	// Nodes are created expanded.
	if !expand {
		t.SetExpandedAll(false)
	}
	return &Session{tree: t}
}

// Tree returns the tab's tree.
func (s *Session) Tree() *tree.Model { return s.tree }

// Stale reports whether the file changed on disk since it was opened or saved.
func (s *Session) Stale() bool { return s.stale }
