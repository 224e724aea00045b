// Package recent defines the recently opened files list.
package recent

import (
	"context"
	"time"
)

// DefaultMaxEntries bounds the list when no limit is configured.
const DefaultMaxEntries = 20

// Entry is one recently opened or saved document.
type Entry struct {
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
}

// Store persists the recent files list, newest first. A path appears at
// most once.
type Store interface {
	List(ctx context.Context) ([]Entry, error)
	Add(ctx context.Context, path string, maxEntries int) error
	Remove(ctx context.Context, path string) error
	Clear(ctx context.Context) error
}
