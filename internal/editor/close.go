package editor

import (
	"context"
)

// CloseStep is what closing a tab needs from the user.
type CloseStep int

const (
	// CloseNow closes without asking: the tab is named and clean.
	CloseNow CloseStep = iota
	// CloseAskDiscard asks whether to throw away an untitled tab.
	CloseAskDiscard
	// CloseAskSave offers Save, Discard, or Cancel for a named dirty tab.
	CloseAskSave
)

// Choice is the answer to a close prompt.
type Choice int

const (
	ChoiceCancel Choice = iota
	ChoiceSave
	ChoiceDiscard
)

func (c Choice) String() string {
	switch c {
	case ChoiceSave:
		return "save"
	case ChoiceDiscard:
		return "discard"
	default:
		return "cancel"
	}
}

// CloseAsker is the presentation capability the blocking close flow needs.
type CloseAsker interface {
	// ConfirmDiscard asks whether an untitled tab may be thrown away.
	ConfirmDiscard(title string) bool
	// SaveDiscardCancel asks what to do with a named tab's unsaved changes.
	SaveDiscardCancel(title string) Choice
}

// CloseStep reports what closing tab i requires.
func (w *Workspace) CloseStep(i int) CloseStep {
	switch {
	case w.store.IsUntitled(i):
		return CloseAskDiscard
	case w.store.IsDirty(i):
		return CloseAskSave
	default:
		return CloseNow
	}
}

// ResolveClose applies the user's answer for tab i. For CloseNow any choice
// other than Cancel closes. ChoiceSave on an untitled tab is treated as
// Cancel since there is no path to save to. It reports whether the tab was
// removed; a failed save leaves the tab open and returns the error.
func (w *Workspace) ResolveClose(ctx context.Context, i int, choice Choice) (bool, error) {
	if w.Session(i) == nil {
		return false, ErrNoTab
	}

	switch choice {
	case ChoiceCancel:
		return false, nil
	case ChoiceDiscard:
		return true, w.remove(ctx, i)
	case ChoiceSave:
		if w.store.IsUntitled(i) {
			return false, nil
		}
		if w.store.IsDirty(i) {
			if err := w.Save(ctx, i); err != nil {
				return false, err
			}
		}
		return true, w.remove(ctx, i)
	}
	return false, nil
}

// Close runs the whole close flow for tab i, asking through asker when the
// tab cannot close silently.
func (w *Workspace) Close(ctx context.Context, i int, asker CloseAsker) (bool, error) {
	if w.Session(i) == nil {
		return false, ErrNoTab
	}

	switch w.CloseStep(i) {
	case CloseAskDiscard:
		if !asker.ConfirmDiscard(w.Title(i)) {
			return false, nil
		}
		return w.ResolveClose(ctx, i, ChoiceDiscard)
	case CloseAskSave:
		return w.ResolveClose(ctx, i, asker.SaveDiscardCancel(w.Title(i)))
	default:
		return w.ResolveClose(ctx, i, ChoiceDiscard)
	}
}

// CloseAll closes every tab from the last to the first. It stops at the
// first tab the user keeps open and reports whether all tabs were closed.
func (w *Workspace) CloseAll(ctx context.Context, asker CloseAsker) (bool, error) {
	for i := w.Len() - 1; i >= 0; i-- {
		closed, err := w.Close(ctx, i, asker)
		if err != nil || !closed {
			return false, err
		}
	}
	return true, nil
}
