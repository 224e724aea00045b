package document

import (
	"context"
	"time"
)

// ChangeKind classifies an outside change to an open document's file.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota
	ChangeRemoved
)

func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// ChangeEvent reports that a watched file changed on disk. Path is the path
// the file was registered with.
type ChangeEvent struct {
	Path      string
	Kind      ChangeKind
	Timestamp time.Time
}

// Watcher reports outside changes to the files of open documents.
type Watcher interface {
	Add(path string) error
	Remove(path string) error
	// MarkWritten suppresses the events caused by our own write to path.
	MarkWritten(path string)
	Watch(ctx context.Context, pattern string) (<-chan ChangeEvent, error)
	Close() error
}
