package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/caseedit/internal/core/document"
	"github.com/colonyops/caseedit/internal/core/notify"
)

type documentChangedMsg struct {
	event document.ChangeEvent
}

// waitForChange returns a command that waits for the next change event.
func waitForChange(ch <-chan document.ChangeEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return documentChangedMsg{event: ev}
	}
}

func (m Model) handleDocumentChanged(msg documentChangedMsg) (tea.Model, tea.Cmd) {
	next := waitForChange(m.changes)

	i := m.ws.MarkStale(msg.event.Path)
	if i < 0 {
		return m, next
	}

	m.log.Info().
		Str("path", msg.event.Path).
		Str("kind", msg.event.Kind.String()).
		Msg("document changed on disk")

	title := m.ws.Title(i)
	var n notify.Notification
	switch msg.event.Kind {
	case document.ChangeRemoved:
		n = notify.Warning("%s was removed from disk", title)
	default:
		n = notify.Warning("%s was changed by another program", title)
	}
	return m, tea.Batch(m.notify(n), next)
}
