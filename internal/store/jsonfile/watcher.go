package jsonfile

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/colonyops/caseedit/internal/core/document"
	"github.com/colonyops/caseedit/internal/core/logging"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 100
	// selfWriteWindow is how long after MarkWritten events for a path are dropped.
	selfWriteWindow = 500 * time.Millisecond
)

// DocumentWatcher watches the files of open documents using fsnotify. The
// parent directory of each file is watched so atomic replace-by-rename
// writes are seen.
type DocumentWatcher struct {
	watcher *fsnotify.Watcher
	log     zerolog.Logger

	mu          sync.Mutex
	files       map[string]string                        // abs path -> registered path
	dirs        map[string]int                           // dir -> watched file count
	written     map[string]time.Time                     // abs path -> last own write
	subscribers map[string][]chan<- document.ChangeEvent // pattern -> channels
	debounce    map[string]*time.Timer                   // abs path -> debounce timer
	pending     map[string]document.ChangeKind           // abs path -> kind to report

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDocumentWatcher creates a watcher with no files registered.
func NewDocumentWatcher() (*DocumentWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	dw := &DocumentWatcher{
		watcher:     watcher,
		log:         logging.Component("watcher"),
		files:       make(map[string]string),
		dirs:        make(map[string]int),
		written:     make(map[string]time.Time),
		subscribers: make(map[string][]chan<- document.ChangeEvent),
		debounce:    make(map[string]*time.Timer),
		pending:     make(map[string]document.ChangeKind),
		ctx:         ctx,
		cancel:      cancel,
	}

	dw.wg.Add(1)
	go dw.run()

	return dw, nil
}

// Add starts reporting changes to path. Adding a path twice is a no-op.
func (dw *DocumentWatcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	dw.mu.Lock()
	defer dw.mu.Unlock()

	if _, ok := dw.files[abs]; ok {
		return nil
	}

	dir := filepath.Dir(abs)
	if dw.dirs[dir] == 0 {
		if err := dw.watcher.Add(dir); err != nil {
			return err
		}
	}
	dw.dirs[dir]++
	dw.files[abs] = path
	return nil
}

// Remove stops reporting changes to path.
func (dw *DocumentWatcher) Remove(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	dw.mu.Lock()
	defer dw.mu.Unlock()

	if _, ok := dw.files[abs]; !ok {
		return nil
	}
	delete(dw.files, abs)
	delete(dw.written, abs)
	if timer, ok := dw.debounce[abs]; ok {
		timer.Stop()
		delete(dw.debounce, abs)
		delete(dw.pending, abs)
	}

	dir := filepath.Dir(abs)
	dw.dirs[dir]--
	if dw.dirs[dir] > 0 {
		return nil
	}
	delete(dw.dirs, dir)
	if err := dw.watcher.Remove(dir); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
		return err
	}
	return nil
}

// MarkWritten drops events for path for a short window so that saving a
// document does not report it as changed on disk.
func (dw *DocumentWatcher) MarkWritten(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	dw.mu.Lock()
	dw.written[abs] = time.Now()
	dw.mu.Unlock()
}

// Watch returns a channel that receives events for registered files whose
// path matches the doublestar pattern. An empty pattern matches every file.
func (dw *DocumentWatcher) Watch(ctx context.Context, pattern string) (<-chan document.ChangeEvent, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	ch := make(chan document.ChangeEvent, eventBufferSize)

	dw.mu.Lock()
	dw.subscribers[pattern] = append(dw.subscribers[pattern], ch)
	dw.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			dw.unsubscribe(pattern, ch)
		case <-dw.ctx.Done():
			// Watcher is closing, channel will be closed by Close()
		}
	}()

	return ch, nil
}

// Close stops watching and closes all subscriber channels.
func (dw *DocumentWatcher) Close() error {
	dw.cancel()

	dw.mu.Lock()
	for _, timer := range dw.debounce {
		timer.Stop()
	}

	for _, subs := range dw.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	dw.subscribers = make(map[string][]chan<- document.ChangeEvent)
	dw.mu.Unlock()

	err := dw.watcher.Close()
	dw.wg.Wait()
	return err
}

func (dw *DocumentWatcher) unsubscribe(pattern string, ch chan<- document.ChangeEvent) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	subs := dw.subscribers[pattern]
	for i, sub := range subs {
		if sub == ch {
			dw.subscribers[pattern] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(dw.subscribers[pattern]) == 0 {
		delete(dw.subscribers, pattern)
	}
}

func (dw *DocumentWatcher) run() {
	defer dw.wg.Done()

	for {
		select {
		case <-dw.ctx.Done():
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.handleEvent(event)
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.log.Warn().Err(err).Msg("file watcher error")
		}
	}
}

func (dw *DocumentWatcher) handleEvent(event fsnotify.Event) {
	var kind document.ChangeKind
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		kind = document.ChangeModified
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		kind = document.ChangeRemoved
	default:
		return
	}

	abs := filepath.Clean(event.Name)

	dw.mu.Lock()
	defer dw.mu.Unlock()

	if _, ok := dw.files[abs]; !ok {
		return
	}
	if at, ok := dw.written[abs]; ok {
		if time.Since(at) < selfWriteWindow {
			return
		}
		delete(dw.written, abs)
	}

	// Last kind wins: a rename away followed by a create is a replace.
	dw.pending[abs] = kind

	if timer, exists := dw.debounce[abs]; exists {
		timer.Stop()
	}
	dw.debounce[abs] = time.AfterFunc(debounceDelay, func() {
		dw.notifySubscribers(abs)
	})
}

func (dw *DocumentWatcher) notifySubscribers(abs string) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	path, ok := dw.files[abs]
	kind := dw.pending[abs]
	delete(dw.debounce, abs)
	delete(dw.pending, abs)
	if !ok {
		return
	}

	event := document.ChangeEvent{
		Path:      path,
		Kind:      kind,
		Timestamp: time.Now(),
	}

	for pattern, subs := range dw.subscribers {
		if !matchesPattern(pattern, abs) {
			continue
		}
		for _, ch := range subs {
			select {
			case ch <- event:
			default:
				// Channel full, drop event to prevent blocking
			}
		}
	}
}

func matchesPattern(pattern, path string) bool {
	if pattern == "" {
		return true
	}
	ok, err := doublestar.Match(pattern, filepath.ToSlash(path))
	return err == nil && ok
}
