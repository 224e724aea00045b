package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/caseedit/internal/core/config"
	"github.com/colonyops/caseedit/internal/core/styles"
	"github.com/colonyops/caseedit/internal/tui/components"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	chromeHeight  = 2 // tab bar and status bar
)

func (m Model) screenWidth() int {
	if m.width == 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) screenHeight() int {
	if m.height == 0 {
		return defaultHeight
	}
	return m.height
}

func (m Model) bodyHeight() int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-chromeHeight, 1)
}

func (m Model) modalWidth() int {
	return min(max(m.screenWidth()-10, 40), 90)
}

// View renders the editor.
func (m Model) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the tab bar, body, status line, and any overlays.
func (m Model) render() string {
	w, h := m.screenWidth(), m.screenHeight()
	content := lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), m.renderBody(), m.renderStatus())
	if m.height > 0 {
		content = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(content)
	}

	switch m.state {
	case stateConfirm:
		content = components.Overlay(content, m.confirm.View(), w, h)
	case stateChoice:
		content = components.Overlay(content, m.choice.View(), w, h)
	case stateForm:
		modal := styles.ModalStyle.Width(m.modalWidth()).Render(m.form.View())
		content = components.Overlay(content, modal, w, h)
	case statePager:
		content = components.Overlay(content, m.pager.View(), w, h)
	}

	if m.toasts.HasToasts() {
		content = m.toastView.Overlay(content, w, h)
	}
	return content
}

func (m Model) renderTabs() string {
	if m.ws.Len() == 0 {
		return styles.TabInactiveStyle.Render("no documents")
	}

	tabs := make([]string, 0, m.ws.Len())
	for i := range m.ws.Len() {
		label := styles.IconFileJSON + m.ws.Title(i)
		if s := m.ws.Session(i); s != nil && s.Stale() {
			label += " " + styles.IconNotifyWarning
		}
		style := styles.TabInactiveStyle
		if i == m.active {
			style = styles.TabActiveStyle
		}
		tabs = append(tabs, style.Render(label))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.width > 0 {
		bar = ansi.Truncate(bar, m.width, "…")
	}
	return bar
}

func (m Model) renderBody() string {
	v := m.activeView()
	if v == nil {
		hint := fmt.Sprintf("No documents open. Press %s to open a file or %s for a new one.",
			m.keys.Hint(config.ActionOpen), m.keys.Hint(config.ActionNew))
		return styles.TextMutedStyle.Render(hint)
	}
	v.Refresh()
	return v.View()
}

func (m Model) renderStatus() string {
	i := m.active
	if m.ws.Session(i) == nil {
		return styles.StatusBarStyle.Render(m.helpHint())
	}

	path := m.ws.Path(i)
	if path == "" {
		path = "untitled"
	}
	parts := []string{path}

	t := m.ws.Tree(i)
	parts = append(parts, fmt.Sprintf("%d items", t.Len()))
	if n := len(t.SelectedNodes()); n > 0 {
		parts = append(parts, styles.TreeSelectedStyle.Render(fmt.Sprintf("%d selected", n)))
	}
	if m.ws.IsDirty(i) {
		parts = append(parts, styles.TabDirtyStyle.Render(styles.IconDirty+" modified"))
	}
	parts = append(parts, m.helpHint())

	status := strings.Join(parts, styles.DividerStyle.Render(" │ "))
	if m.width > 0 {
		status = ansi.Truncate(status, m.width-2, "…")
	}
	return styles.StatusBarStyle.Render(status)
}

func (m Model) helpHint() string {
	if key := m.keys.Hint(config.ActionHelp); key != "" {
		return styles.TextMutedStyle.Render(key + " help")
	}
	return ""
}
