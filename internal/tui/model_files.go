package tui

import (
	"errors"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/caseedit/internal/core/document"
	"github.com/colonyops/caseedit/internal/core/notify"
	"github.com/colonyops/caseedit/internal/editor"
	"github.com/colonyops/caseedit/internal/tui/components"
	"github.com/colonyops/caseedit/internal/tui/components/form"
)

const pathHelp = "enter: confirm  esc: cancel"

// choiceOptions are the buttons of the unsaved-changes modal, in the order
// their indexes map to editor choices.
var choiceOptions = []string{"Save", "Discard", "Cancel"}

func choiceAt(i int) editor.Choice {
	switch i {
	case 0:
		return editor.ChoiceSave
	case 1:
		return editor.ChoiceDiscard
	default:
		return editor.ChoiceCancel
	}
}

func (m Model) newPathForm(title, value string) *form.Dialog {
	field := form.NewTextField("Path", "path/to/case.json", value)
	field.SetWidth(m.modalWidth() - 8)

	d := form.NewDialog(title, []form.Field{field}, []string{"path"})
	d.Help = pathHelp
	return d
}

// promptOpen asks for a path, offering the most recent file that is not
// already open.
func (m Model) promptOpen() (tea.Model, tea.Cmd) {
	m.form = m.newPathForm("Open Document", m.recentDefault())
	m.state = stateForm
	m.purpose = purposeOpen
	return m, nil
}

func (m Model) recentDefault() string {
	if m.recents == nil {
		return ""
	}
	entries, err := m.recents.List(m.ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("list recent files")
		return ""
	}
	for _, e := range entries {
		if m.ws.IndexOf(e.Path) < 0 {
			return e.Path
		}
	}
	return ""
}

func (m Model) open(path string) (tea.Model, tea.Cmd) {
	i, err := m.ws.Open(m.ctx, path)
	switch {
	case errors.Is(err, document.ErrAlreadyOpen):
		if j := m.indexOfPath(path); j >= 0 {
			m.active = j
		}
		return m, m.notify(notify.Info("%s is already open", filepath.Base(path)))
	case err != nil:
		return m, m.notify(notify.Error("Open failed", err))
	}

	m.setActive(i)
	return m, m.notify(notify.Success("Opened %s", m.ws.Title(i)))
}

// indexOfPath finds the tab for path, comparing cleaned paths.
func (m Model) indexOfPath(path string) int {
	clean := filepath.Clean(path)
	for i := range m.ws.Len() {
		if p := m.ws.Path(i); p != "" && filepath.Clean(p) == clean {
			return i
		}
	}
	return -1
}

// save writes tab i, routing untitled tabs to the save-as prompt.
func (m Model) save(i int) (tea.Model, tea.Cmd) {
	if m.ws.Session(i) == nil {
		return m, nil
	}
	if m.ws.IsUntitled(i) {
		return m.promptSaveAs(i)
	}
	if err := m.ws.Save(m.ctx, i); err != nil {
		return m, m.notify(notify.Error("Save failed", err))
	}
	return m, m.notify(notify.Success("Saved %s", m.ws.Title(i)))
}

func (m Model) promptSaveAs(i int) (tea.Model, tea.Cmd) {
	if m.ws.Session(i) == nil {
		return m, nil
	}
	m.modalTab = i
	m.form = m.newPathForm("Save As", m.ws.Path(i))
	m.state = stateForm
	m.purpose = purposeSaveAs
	return m, nil
}

func (m Model) saveAs(i int, path string) (tea.Model, tea.Cmd) {
	if err := m.ws.SaveAs(m.ctx, i, path); err != nil {
		return m, m.notify(notify.Error("Save failed", err))
	}
	return m, m.notify(notify.Success("Saved %s", filepath.Base(path)))
}

// startClose begins the close flow for tab i.
func (m Model) startClose(i int) (tea.Model, tea.Cmd) {
	if m.ws.Session(i) == nil {
		m.quitting = false
		return m, nil
	}
	m.modalTab = i

	title := m.ws.Title(i)
	switch m.ws.CloseStep(i) {
	case editor.CloseAskDiscard:
		m.confirm = components.NewConfirmModal("Discard Document", title+" has never been saved. Discard it?")
		m.state = stateConfirm
		m.purpose = purposeCloseDiscard
		return m, nil
	case editor.CloseAskSave:
		m.choice = components.NewChoiceModal("Unsaved Changes", "Save changes to "+title+" before closing?", choiceOptions...)
		m.state = stateChoice
		m.purpose = purposeCloseSave
		return m, nil
	}
	return m.finishClose(editor.ChoiceDiscard)
}

// finishClose applies the close answer for the tab the modal was opened for.
func (m Model) finishClose(choice editor.Choice) (tea.Model, tea.Cmd) {
	i := m.modalTab
	m.closeModal()

	session := m.ws.Session(i)
	closed, err := m.ws.ResolveClose(m.ctx, i, choice)
	if err != nil {
		m.quitting = false
		return m, m.notify(notify.Error("Save failed", err))
	}
	if !closed {
		m.quitting = false
		return m, nil
	}

	delete(m.views, session)
	if m.active > i || m.active >= m.ws.Len() {
		m.setActive(m.active - 1)
	}

	if m.quitting {
		return m.continueQuit()
	}
	return m, nil
}

// continueQuit walks the dirty tabs from the first one, asking about each,
// and quits once none is left.
func (m Model) continueQuit() (tea.Model, tea.Cmd) {
	for i := range m.ws.Len() {
		if m.ws.IsDirty(i) {
			m.active = i
			return m.startClose(i)
		}
	}
	m.done = true
	return m, tea.Quit
}

func (m Model) resolveConfirm(confirmed bool) (tea.Model, tea.Cmd) {
	switch m.purpose {
	case purposeEdit:
		return m.answerOp(confirmed)
	case purposeCloseDiscard:
		if confirmed {
			return m.finishClose(editor.ChoiceDiscard)
		}
		return m.finishClose(editor.ChoiceCancel)
	}
	m.closeModal()
	return m, nil
}

func (m Model) resolveChoice(i int) (tea.Model, tea.Cmd) {
	if m.purpose == purposeCloseSave {
		return m.finishClose(choiceAt(i))
	}
	m.closeModal()
	return m, nil
}

func (m Model) resolveForm(submitted bool) (tea.Model, tea.Cmd) {
	if m.purpose == purposeEdit {
		return m.answerOp(submitted)
	}

	p := m.purpose
	path := strings.TrimSpace(m.form.FormValues()["path"])
	m.closeModal()
	if !submitted || path == "" {
		return m, nil
	}

	switch p {
	case purposeOpen:
		return m.open(path)
	case purposeSaveAs:
		return m.saveAs(m.modalTab, path)
	}
	return m, nil
}
