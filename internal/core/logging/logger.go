// Package logging holds the zerolog helpers shared by the editor packages.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentKey is the field naming the package that wrote an event.
const ComponentKey = "cmp"

// Component returns a child of the global logger tagged with name. The
// child is bound when called, so construct it after main has configured
// log.Logger.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str(ComponentKey, name).Logger()
}
