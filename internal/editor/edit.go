package editor

import (
	"context"

	"github.com/colonyops/caseedit/internal/core/logging"
	"github.com/colonyops/caseedit/internal/core/mutate"
)

// BeginDelete starts deleting the selected nodes of tab i. The returned Op
// is finished immediately when nothing is selected or i is not a tab.
func (w *Workspace) BeginDelete(i int) *mutate.Op {
	t := w.Tree(i)
	if t == nil {
		return w.mutator.Delete(nil, nil)
	}
	return w.mutator.Delete(t, t.SelectedNodes())
}

// BeginInsert starts inserting under the selected nodes of tab i, or under
// the top level when nothing is selected.
func (w *Workspace) BeginInsert(i int) *mutate.Op {
	t := w.Tree(i)
	if t == nil {
		return w.mutator.Insert(nil, nil)
	}
	return w.mutator.Insert(t, t.SelectedNodes())
}

// BeginReplace starts editing the selected nodes of tab i.
func (w *Workspace) BeginReplace(i int) *mutate.Op {
	t := w.Tree(i)
	if t == nil {
		return w.mutator.Replace(nil, nil)
	}
	return w.mutator.Replace(t, t.SelectedNodes())
}

// Commit records the outcome of a finished Op on tab i: a positive count
// marks the document dirty. It returns the count, or 0 for an unfinished Op.
func (w *Workspace) Commit(ctx context.Context, i int, op *mutate.Op) int {
	if !op.Done() {
		return 0
	}

	ctx = logging.WithOperation(logging.WithDocument(ctx, w.store.PathOf(i)), op.Kind().String())
	count := op.Count()
	if count > 0 && w.Session(i) != nil {
		w.store.SetDirty(i, true)
	}
	w.log.Debug().Ctx(ctx).Int("tab", i).Int("count", count).Msg("edit applied")
	return count
}

// Delete runs a delete on tab i to completion through p.
func (w *Workspace) Delete(ctx context.Context, i int, p mutate.Prompter) int {
	op := w.BeginDelete(i)
	mutate.Run(op, p)
	return w.Commit(ctx, i, op)
}

// Insert runs an insert on tab i to completion through p.
func (w *Workspace) Insert(ctx context.Context, i int, p mutate.Prompter) int {
	op := w.BeginInsert(i)
	mutate.Run(op, p)
	return w.Commit(ctx, i, op)
}

// Replace runs a replace on tab i to completion through p.
func (w *Workspace) Replace(ctx context.Context, i int, p mutate.Prompter) int {
	op := w.BeginReplace(i)
	mutate.Run(op, p)
	return w.Commit(ctx, i, op)
}

// SetSelectedAll selects or unselects every node of tab i.
func (w *Workspace) SetSelectedAll(i int, flag bool) {
	if t := w.Tree(i); t != nil {
		t.SetSelectedAll(flag)
	}
}

// SetExpandedAll expands or collapses every node of tab i.
func (w *Workspace) SetExpandedAll(i int, flag bool) {
	if t := w.Tree(i); t != nil {
		t.SetExpandedAll(flag)
	}
}

// SelectMatching selects the nodes of tab i whose path matches any of the
// doublestar patterns and returns how many matched.
func (w *Workspace) SelectMatching(i int, patterns ...string) (int, error) {
	t := w.Tree(i)
	if t == nil {
		return 0, ErrNoTab
	}
	return t.SelectMatching(patterns...)
}
