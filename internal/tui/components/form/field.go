// Package form provides the text-entry dialogs used by the editor's modals.
package form

import tea "charm.land/bubbletea/v2"

// Field is one entry in a Dialog.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool

	Label() string
	Value() string
	// Changed reports whether Value differs from the text the field
	// started with.
	Changed() bool
}
