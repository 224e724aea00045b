package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/colonyops/caseedit/internal/core/config"
	"github.com/colonyops/caseedit/internal/core/document"
	"github.com/colonyops/caseedit/internal/core/logging"
	"github.com/colonyops/caseedit/internal/core/mutate"
	"github.com/colonyops/caseedit/internal/core/recent"
	"github.com/colonyops/caseedit/internal/core/tree"
	"github.com/colonyops/caseedit/internal/core/value"
)

// Workspace is the set of open tabs. Tab i is document i in the store and
// session i; the two are always kept the same length and order.
type Workspace struct {
	store    *document.Store
	sessions []*Session
	mutator  *mutate.Mutator
	config   *config.Config
	recents  recent.Store
	watcher  document.Watcher
	log      zerolog.Logger
}

// NewWorkspace creates an empty workspace. recents and watcher are optional.
func NewWorkspace(cfg *config.Config, recents recent.Store, watcher document.Watcher) *Workspace {
	return &Workspace{
		store:   document.NewStore(cfg.Indent),
		mutator: mutate.New(cfg.Confirm.InsertThreshold),
		config:  cfg,
		recents: recents,
		watcher: watcher,
		log:     logging.Component("editor"),
	}
}

// Len returns the number of open tabs.
func (w *Workspace) Len() int { return len(w.sessions) }

// Session returns tab i, or nil when i is out of range.
func (w *Workspace) Session(i int) *Session {
	if i < 0 || i >= len(w.sessions) {
		return nil
	}
	return w.sessions[i]
}

// Tree returns the tree of tab i, or nil when i is out of range.
func (w *Workspace) Tree(i int) *tree.Model {
	if s := w.Session(i); s != nil {
		return s.tree
	}
	return nil
}

func (w *Workspace) IsDirty(i int) bool    { return w.store.IsDirty(i) }
func (w *Workspace) IsUntitled(i int) bool { return w.store.IsUntitled(i) }
func (w *Workspace) Path(i int) string     { return w.store.PathOf(i) }

// Title is the tab label: the file name, with a trailing "*" when dirty.
func (w *Workspace) Title(i int) string {
	title := w.store.Title(i)
	if w.store.IsDirty(i) {
		title += "*"
	}
	return title
}

// IndexOf returns the tab bound to path, or -1.
func (w *Workspace) IndexOf(path string) int {
	for i := range w.sessions {
		if p := w.store.PathOf(i); p != "" && p == path {
			return i
		}
	}
	return -1
}

// Document flattens tab i back into a value.
func (w *Workspace) Document(i int) (*value.Object, error) {
	t := w.Tree(i)
	if t == nil {
		return nil, ErrNoTab
	}
	return t.Flatten(), nil
}

// New opens an untitled tab with an empty tree.
func (w *Workspace) New() int {
	id := w.store.New()
	w.sessions = append(w.sessions, newSession(nil, true))
	w.log.Debug().Int("tab", id).Msg("new untitled document")
	return id
}

// Open reads path into a new tab and returns its index.
func (w *Workspace) Open(ctx context.Context, path string) (int, error) {
	ctx = logging.WithDocument(ctx, path)

	if err := w.checkExtension(path); err != nil {
		return -1, err
	}

	root, id, err := w.store.Open(ctx, path)
	if err != nil {
		w.log.Warn().Ctx(ctx).Err(err).Msg("open failed")
		return -1, err
	}
	w.sessions = append(w.sessions, newSession(root, w.config.TUI.ExpandOnOpenEnabled()))

	w.track(ctx, path)
	w.log.Info().Ctx(ctx).Int("tab", id).Int("nodes", w.sessions[id].tree.Len()).Msg("opened document")
	return id, nil
}

// Save writes tab i to its path. Untitled tabs return document.ErrUntitled
// so the caller can ask for a path and use SaveAs.
func (w *Workspace) Save(ctx context.Context, i int) error {
	t := w.Tree(i)
	if t == nil {
		return ErrNoTab
	}
	path := w.store.PathOf(i)
	ctx = logging.WithDocument(ctx, path)

	if w.watcher != nil && path != "" {
		w.watcher.MarkWritten(path)
	}
	if err := w.store.Save(ctx, i, t.Flatten()); err != nil {
		if !errors.Is(err, document.ErrUntitled) {
			w.log.Error().Ctx(ctx).Err(err).Msg("save failed")
		}
		return err
	}

	w.sessions[i].stale = false
	w.log.Info().Ctx(ctx).Msg("saved document")
	return nil
}

// SaveAs writes tab i to path. An untitled tab becomes bound to path; a
// named tab keeps its path and dirty flag.
func (w *Workspace) SaveAs(ctx context.Context, i int, path string) error {
	t := w.Tree(i)
	if t == nil {
		return ErrNoTab
	}
	ctx = logging.WithDocument(ctx, path)

	if err := w.checkExtension(path); err != nil {
		return err
	}

	untitled := w.store.IsUntitled(i)
	if w.watcher != nil {
		w.watcher.MarkWritten(path)
	}
	if err := w.store.SaveAs(ctx, i, t.Flatten(), path); err != nil {
		w.log.Error().Ctx(ctx).Err(err).Msg("save as failed")
		return err
	}

	if untitled {
		w.track(ctx, path)
	} else {
		w.addRecent(ctx, path)
	}
	w.log.Info().Ctx(ctx).Bool("bound", untitled).Msg("saved document as")
	return nil
}

// MarkStale flags the tab bound to path as changed on disk and returns its
// index, or -1 when no tab has that path.
func (w *Workspace) MarkStale(path string) int {
	i := w.IndexOf(path)
	if i >= 0 {
		w.sessions[i].stale = true
	}
	return i
}

func (w *Workspace) checkExtension(path string) error {
	if w.config.Accepts(path) {
		return nil
	}
	return &ExtensionError{Path: path, Allowed: slices.Clone(w.config.Extensions)}
}

// track records path as recent and starts watching it.
func (w *Workspace) track(ctx context.Context, path string) {
	w.addRecent(ctx, path)
	if w.watcher != nil && w.config.TUI.WatchFilesEnabled() {
		if err := w.watcher.Add(path); err != nil {
			w.log.Warn().Ctx(ctx).Err(err).Msg("watch failed")
		}
	}
}

func (w *Workspace) addRecent(ctx context.Context, path string) {
	if w.recents == nil {
		return
	}
	if err := w.recents.Add(ctx, path, w.config.Recent.MaxEntries); err != nil {
		w.log.Warn().Ctx(ctx).Err(err).Msg("record recent file failed")
	}
}

// remove drops tab i from the store and the sessions in lockstep.
func (w *Workspace) remove(ctx context.Context, i int) error {
	path := w.store.PathOf(i)
	if err := w.store.Close(i); err != nil {
		return fmt.Errorf("close tab %d: %w", i, err)
	}
	w.sessions = slices.Delete(w.sessions, i, i+1)

	if w.watcher != nil && path != "" {
		if err := w.watcher.Remove(path); err != nil {
			w.log.Warn().Ctx(ctx).Err(err).Msg("unwatch failed")
		}
	}
	w.log.Info().Ctx(logging.WithDocument(ctx, path)).Int("tab", i).Msg("closed document")
	return nil
}
