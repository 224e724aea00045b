// Package tui implements the interactive tabbed tree editor.
package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/caseedit/internal/core/config"
	"github.com/colonyops/caseedit/internal/core/document"
	"github.com/colonyops/caseedit/internal/core/logging"
	"github.com/colonyops/caseedit/internal/core/mutate"
	"github.com/colonyops/caseedit/internal/core/notify"
	"github.com/colonyops/caseedit/internal/core/recent"
	"github.com/colonyops/caseedit/internal/editor"
	"github.com/colonyops/caseedit/internal/tui/components"
	"github.com/colonyops/caseedit/internal/tui/components/form"
)

// UIState represents which modal, if any, owns the keyboard.
type UIState int

const (
	stateNormal UIState = iota
	stateConfirm
	stateChoice
	stateForm
	statePager
)

// purpose records what the open modal does once it is answered.
type purpose int

const (
	purposeNone purpose = iota
	purposeEdit
	purposeOpen
	purposeSaveAs
	purposeCloseDiscard
	purposeCloseSave
)

// Options configures the TUI.
type Options struct {
	Workspace *editor.Workspace
	Recents   recent.Store                // optional, supplies the open prompt default
	Changes   <-chan document.ChangeEvent // optional, external file changes
	Warnings  []string                    // startup warnings shown as toasts
}

// Model is the main Bubble Tea model for the editor.
type Model struct {
	ctx     context.Context
	cfg     *config.Config
	ws      *editor.Workspace
	recents recent.Store
	changes <-chan document.ChangeEvent
	keys    *KeyMap
	log     zerolog.Logger

	views  map[*editor.Session]*TreeView
	active int

	state   UIState
	purpose purpose
	confirm components.ConfirmModal
	choice  components.ChoiceModal
	form    *form.Dialog
	pager   *components.Pager

	op       *mutate.Op
	opTab    int
	modalTab int // tab targeted by the open save-as or close modal
	quitting bool
	done     bool

	toasts    *ToastController
	toastView *ToastView

	width  int
	height int
}

// New creates the editor model. An empty workspace gets one untitled tab.
func New(ctx context.Context, cfg *config.Config, opts Options) Model {
	ws := opts.Workspace
	if ws.Len() == 0 {
		ws.New()
	}

	toasts := NewToastController()
	for _, w := range opts.Warnings {
		toasts.Push(notify.Warning("%s", w))
	}

	return Model{
		ctx:       ctx,
		cfg:       cfg,
		ws:        ws,
		recents:   opts.Recents,
		changes:   opts.Changes,
		keys:      NewKeyMap(cfg.Keybindings),
		log:       logging.Component("tui"),
		views:     make(map[*editor.Session]*TreeView),
		toasts:    toasts,
		toastView: NewToastView(toasts),
	}
}

// Init starts the change listener and the toast timer.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	if m.toasts.HasToasts() {
		m.toasts.SetTicking(true)
		cmds = append(cmds, scheduleToastTick())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeViews()
		return m, nil
	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil
	case documentChangedMsg:
		return m.handleDocumentChanged(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and similar messages belong to the open form.
	if m.state == stateForm && m.form != nil {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Workspace returns the workspace the model edits.
func (m Model) Workspace() *editor.Workspace { return m.ws }

// Active returns the index of the active tab, or -1 when no tab is open.
func (m Model) Active() int {
	if m.ws.Len() == 0 {
		return -1
	}
	return m.active
}

// State returns the current UI state.
func (m Model) State() UIState { return m.state }

// Done reports whether the model has finished and asked to quit.
func (m Model) Done() bool { return m.done }

// view returns the tree view of tab i, creating it on first use.
func (m Model) view(i int) *TreeView {
	s := m.ws.Session(i)
	if s == nil {
		return nil
	}
	v, ok := m.views[s]
	if !ok {
		v = NewTreeView(s.Tree())
		m.views[s] = v
	}
	v.SetSize(m.width, m.bodyHeight())
	return v
}

func (m Model) activeView() *TreeView { return m.view(m.active) }

func (m Model) resizeViews() {
	for _, v := range m.views {
		v.SetSize(m.width, m.bodyHeight())
	}
}

// refresh recomputes the rows of tab i after its tree changed.
func (m Model) refresh(i int) {
	if v := m.view(i); v != nil {
		v.Refresh()
	}
}

func (m *Model) setActive(i int) {
	switch {
	case m.ws.Len() == 0:
		m.active = 0
	case i < 0:
		m.active = 0
	case i >= m.ws.Len():
		m.active = m.ws.Len() - 1
	default:
		m.active = i
	}
}

// notify shows n as a toast and starts the toast timer when it is idle.
func (m Model) notify(n notify.Notification) tea.Cmd {
	m.toasts.Push(n)
	if m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

func (m *Model) closeModal() {
	m.state = stateNormal
	m.purpose = purposeNone
	m.form = nil
	m.pager = nil
}
