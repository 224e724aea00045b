package components

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/caseedit/internal/core/styles"
)

const (
	pagerChrome    = 6 // border, padding, title and help lines
	pagerMinWidth  = 30
	pagerMinHeight = 5
)

// Pager is a scrollable read-only dialog.
type Pager struct {
	title    string
	help     string
	viewport viewport.Model
	closed   bool
}

// NewPager creates a pager sized to fit inside a width x height screen.
func NewPager(title, content, help string, width, height int) *Pager {
	w := max(width-8, pagerMinWidth)
	h := max(min(lipgloss.Height(content), height-pagerChrome-2), pagerMinHeight)

	vp := viewport.New(viewport.WithWidth(w), viewport.WithHeight(h))
	vp.SetContent(content)

	return &Pager{title: title, help: help, viewport: vp}
}

// Update scrolls the content; esc or q closes the pager.
func (p *Pager) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "esc", "q":
			p.closed = true
			return nil
		case "g":
			p.viewport.GotoTop()
			return nil
		case "G":
			p.viewport.GotoBottom()
			return nil
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// Closed reports whether the user dismissed the pager.
func (p *Pager) Closed() bool { return p.closed }

// View renders the pager.
func (p *Pager) View() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(p.title),
		"",
		p.viewport.View(),
		styles.ModalHelpStyle.Render(p.help),
	)
	return styles.ModalStyle.Render(content)
}
