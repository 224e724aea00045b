// Package components provides reusable TUI components.
package components

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/caseedit/internal/core/styles"
)

// ConfirmModal is a yes/no confirmation dialog.
type ConfirmModal struct {
	title       string
	message     string
	yesSelected bool
	confirmed   bool
	cancelled   bool
}

// NewConfirmModal creates a new confirmation modal with Yes preselected.
func NewConfirmModal(title, message string) ConfirmModal {
	return ConfirmModal{
		title:       title,
		message:     message,
		yesSelected: true,
	}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.confirmed = true
	case "n", "N", "esc":
		m.cancelled = true
	case "left", "right", "h", "l", "tab", "shift+tab":
		m.yesSelected = !m.yesSelected
	case "enter":
		if m.yesSelected {
			m.confirmed = true
		} else {
			m.cancelled = true
		}
	}
	return m, nil
}

// View renders the confirmation modal.
func (m ConfirmModal) View() string {
	yes, no := styles.ModalButtonStyle, styles.ModalButtonSelectedStyle
	if m.yesSelected {
		yes, no = no, yes
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yes.Render("Yes"), "  ", no.Render("No"))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		"",
		buttons,
		styles.ModalHelpStyle.Render("y/n  ←/→ select  enter confirm  esc cancel"),
	)
	return styles.ModalStyle.Render(content)
}

// Confirmed returns true if user confirmed.
func (m ConfirmModal) Confirmed() bool { return m.confirmed }

// Cancelled returns true if user cancelled.
func (m ConfirmModal) Cancelled() bool { return m.cancelled }

// Done reports whether the user answered either way.
func (m ConfirmModal) Done() bool { return m.confirmed || m.cancelled }
