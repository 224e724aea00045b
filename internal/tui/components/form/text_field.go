package form

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/caseedit/internal/core/styles"
)

const (
	defaultFieldWidth = 40
	minFieldWidth     = 10
)

// TextField is a single-line input for a key, a value or a path. A field
// created with existing text marks itself once that text is edited.
type TextField struct {
	input   textinput.Model
	label   string
	initial string
	focused bool
}

// NewTextField returns a field labelled label holding text.
func NewTextField(label, placeholder, text string) *TextField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.SetWidth(defaultFieldWidth)
	in.SetValue(text)

	st := textinput.DefaultStyles(true)
	st.Cursor.Color = styles.ColorPrimary
	muted := lipgloss.NewStyle().Foreground(styles.ColorMuted)
	st.Focused.Placeholder = muted
	st.Blurred.Placeholder = muted
	in.SetStyles(st)

	return &TextField{input: in, label: label, initial: text}
}

func (f *TextField) SetWidth(w int) {
	f.input.SetWidth(max(w, minFieldWidth))
}

func (f *TextField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *TextField) View() string {
	title, box := styles.FormTitleBlurredStyle, styles.FormFieldStyle
	if f.focused {
		title, box = styles.FormTitleStyle, styles.FormFieldFocusedStyle
	}

	label := title.Render(f.label)
	if f.Changed() {
		label += " " + styles.TextWarningStyle.Render(styles.IconDirty)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, label, f.input.View()))
}

func (f *TextField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextField) Blur() {
	f.focused = false
	f.input.Blur()
}

func (f *TextField) Focused() bool { return f.focused }
func (f *TextField) Label() string { return f.label }
func (f *TextField) Value() string { return f.input.Value() }
func (f *TextField) Changed() bool { return f.input.Value() != f.initial }
