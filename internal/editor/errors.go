package editor

import (
	"errors"
	"fmt"
)

// ErrNoTab is returned for a tab index outside the workspace.
var ErrNoTab = errors.New("no such tab")

// ExtensionError is returned when a path does not carry an accepted document
// extension.
type ExtensionError struct {
	Path    string
	Allowed []string
}

func (e *ExtensionError) Error() string {
	return fmt.Sprintf("%s: unsupported file extension (allowed: %v)", e.Path, e.Allowed)
}
