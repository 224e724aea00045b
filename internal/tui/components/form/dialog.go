package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/caseedit/internal/core/styles"
)

const defaultHelp = "tab: next  shift+tab: prev  enter: submit  esc: cancel"

// Dialog is a form container that manages focus cycling, submission, and
// cancellation across a set of form fields.
type Dialog struct {
	fields       []Field
	names        []string // parallel slice: value name for each field
	focusedField int
	submitted    bool
	cancelled    bool

	Title string
	Help  string

	// OnKey, when set, sees every key press before the dialog does. Returning
	// true marks the key as handled.
	OnKey func(d *Dialog, key string) (bool, tea.Cmd)
}

// NewDialog creates a form dialog with the given fields and value names.
// The first field is focused automatically.
func NewDialog(title string, fields []Field, names []string) *Dialog {
	d := &Dialog{
		fields: fields,
		names:  names,
		Title:  title,
		Help:   defaultHelp,
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// Append adds fields to the end of the form and moves focus to the first
// of them.
func (d *Dialog) Append(fields []Field, names []string) tea.Cmd {
	if len(fields) == 0 {
		return nil
	}
	first := len(d.fields)
	d.fields = append(d.fields, fields...)
	d.names = append(d.names, names...)
	return d.focus(first)
}

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d.updateFocusedField(msg)
	}

	key := keyMsg.String()
	if d.OnKey != nil {
		if handled, cmd := d.OnKey(d, key); handled {
			return d, cmd
		}
	}

	switch key {
	case "tab", "down":
		return d.advanceFocus()
	case "shift+tab", "up":
		return d.retreatFocus()
	case "enter":
		return d.advanceFocus()
	case "ctrl+s":
		d.submitted = true
		return d, nil
	case "esc":
		d.cancelled = true
		return d, nil
	}

	return d.updateFocusedField(msg)
}

// View renders all fields vertically with spacing and help text.
func (d *Dialog) View() string {
	parts := make([]string, 0, len(d.fields)*2+3)
	if d.Title != "" {
		parts = append(parts, styles.ModalTitleStyle.Render(d.Title), "")
	}
	for i, field := range d.fields {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, field.View())
	}
	parts = append(parts, "", styles.FormHelpStyle.Render(d.Help))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// FormValues returns a map of value names to field values.
func (d *Dialog) FormValues() map[string]string {
	result := make(map[string]string, len(d.fields))
	for i, field := range d.fields {
		result[d.names[i]] = field.Value()
	}
	return result
}

// Values returns the field values in field order.
func (d *Dialog) Values() []string {
	out := make([]string, len(d.fields))
	for i, field := range d.fields {
		out[i] = field.Value()
	}
	return out
}

// Len returns the number of fields.
func (d *Dialog) Len() int { return len(d.fields) }

// Focused returns the index of the focused field.
func (d *Dialog) Focused() int { return d.focusedField }

// Submitted returns whether the form was submitted.
func (d *Dialog) Submitted() bool { return d.submitted }

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

func (d *Dialog) focus(i int) tea.Cmd {
	if d.focusedField < len(d.fields) {
		d.fields[d.focusedField].Blur()
	}
	d.focusedField = i
	return d.fields[i].Focus()
}

func (d *Dialog) advanceFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		d.submitted = true
		return d, nil
	}

	next := d.focusedField + 1
	if next >= len(d.fields) {
		d.submitted = true
		return d, nil
	}
	return d, d.focus(next)
}

func (d *Dialog) retreatFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 || d.focusedField == 0 {
		return d, nil
	}
	return d, d.focus(d.focusedField - 1)
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}
