package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/caseedit/internal/core/config"
	"github.com/colonyops/caseedit/internal/core/notify"
	"github.com/colonyops/caseedit/internal/tui/components"
	"github.com/colonyops/caseedit/internal/tui/jsoncolor"
)

const keyCtrlC = "ctrl+c"

// handleKey routes a key press to the open modal, a bound action, or the
// active tree view.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateConfirm:
		m.confirm, _ = m.confirm.Update(msg)
		if m.confirm.Done() {
			return m.resolveConfirm(m.confirm.Confirmed())
		}
		return m, nil
	case stateChoice:
		m.choice, _ = m.choice.Update(msg)
		if m.choice.Done() {
			return m.resolveChoice(m.choice.Chosen())
		}
		return m, nil
	case stateForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		switch {
		case m.form.Submitted():
			return m.resolveForm(true)
		case m.form.Cancelled():
			return m.resolveForm(false)
		}
		return m, cmd
	case statePager:
		cmd := m.pager.Update(msg)
		if m.pager.Closed() {
			m.closeModal()
		}
		return m, cmd
	}

	key := msg.String()
	if key == keyCtrlC {
		return m.runAction(config.ActionQuit)
	}
	if key == "esc" && m.toasts.HasToasts() {
		m.toasts.Dismiss()
		return m, nil
	}
	if action, ok := m.keys.Action(key); ok {
		return m.runAction(action)
	}
	if v := m.activeView(); v != nil {
		return m, v.Update(msg)
	}
	return m, nil
}

// runAction performs a built-in action on the active tab.
func (m Model) runAction(action string) (tea.Model, tea.Cmd) {
	i := m.active
	switch action {
	case config.ActionOpen:
		return m.promptOpen()
	case config.ActionNew:
		m.setActive(m.ws.New())
		return m, nil
	case config.ActionSave:
		return m.save(i)
	case config.ActionSaveAs:
		return m.promptSaveAs(i)
	case config.ActionClose:
		return m.startClose(i)
	case config.ActionDelete:
		return m.beginOp(i, m.ws.BeginDelete(i))
	case config.ActionInsert:
		return m.beginOp(i, m.ws.BeginInsert(i))
	case config.ActionReplace:
		return m.beginOp(i, m.ws.BeginReplace(i))
	case config.ActionSelectAll, config.ActionUnselectAll:
		m.ws.SetSelectedAll(i, action == config.ActionSelectAll)
		return m, nil
	case config.ActionExpandAll, config.ActionCollapseAll:
		m.ws.SetExpandedAll(i, action == config.ActionExpandAll)
		m.refresh(i)
		return m, nil
	case config.ActionPreview:
		return m.openPreview(i)
	case config.ActionNextTab:
		if n := m.ws.Len(); n > 0 {
			m.active = (m.active + 1) % n
		}
		return m, nil
	case config.ActionPrevTab:
		if n := m.ws.Len(); n > 0 {
			m.active = (m.active + n - 1) % n
		}
		return m, nil
	case config.ActionHelp:
		m.pager = components.NewPager("Help", renderMarkdown(m.keys.HelpMarkdown(), m.modalWidth()), "j/k scroll  esc close", m.screenWidth(), m.screenHeight())
		m.state = statePager
		return m, nil
	case config.ActionQuit:
		m.quitting = true
		return m.continueQuit()
	}
	return m, nil
}

func (m Model) openPreview(i int) (tea.Model, tea.Cmd) {
	doc, err := m.ws.Document(i)
	if err != nil {
		return m, m.notify(notify.Error("Preview failed", err))
	}
	content, err := jsoncolor.Document(doc, m.cfg.Indent)
	if err != nil {
		return m, m.notify(notify.Error("Preview failed", err))
	}

	m.pager = components.NewPager("Preview: "+m.ws.Title(i), content, "j/k scroll  g/G top/bottom  esc close", m.screenWidth(), m.screenHeight())
	m.state = statePager
	return m, nil
}
