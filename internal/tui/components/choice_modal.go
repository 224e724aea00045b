package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/caseedit/internal/core/styles"
)

// ChoiceModal offers a row of buttons. Each option can also be picked by its
// first letter. Esc picks the last option, which is expected to be the
// non-destructive one.
type ChoiceModal struct {
	title    string
	message  string
	options  []string
	selected int
	chosen   int
}

// NewChoiceModal creates a modal with the first option preselected.
func NewChoiceModal(title, message string, options ...string) ChoiceModal {
	return ChoiceModal{
		title:   title,
		message: message,
		options: options,
		chosen:  -1,
	}
}

// Update handles input for the choice modal.
func (m ChoiceModal) Update(msg tea.Msg) (ChoiceModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.options) == 0 {
		return m, nil
	}

	key := keyMsg.String()
	switch key {
	case "left", "h", "shift+tab":
		m.selected = (m.selected + len(m.options) - 1) % len(m.options)
	case "right", "l", "tab":
		m.selected = (m.selected + 1) % len(m.options)
	case "enter":
		m.chosen = m.selected
	case "esc":
		m.chosen = len(m.options) - 1
	default:
		for i, opt := range m.options {
			if strings.EqualFold(key, opt[:1]) {
				m.chosen = i
				break
			}
		}
	}
	return m, nil
}

// View renders the choice modal.
func (m ChoiceModal) View() string {
	buttons := make([]string, 0, len(m.options)*2)
	for i, opt := range m.options {
		if i > 0 {
			buttons = append(buttons, "  ")
		}
		style := styles.ModalButtonStyle
		if i == m.selected {
			style = styles.ModalButtonSelectedStyle
		}
		buttons = append(buttons, style.Render(opt))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
		styles.ModalHelpStyle.Render("←/→ select  enter choose  esc cancel"),
	)
	return styles.ModalStyle.Render(content)
}

// Chosen returns the index of the picked option, or -1 while undecided.
func (m ChoiceModal) Chosen() int { return m.chosen }

// Done reports whether an option was picked.
func (m ChoiceModal) Done() bool { return m.chosen >= 0 }
