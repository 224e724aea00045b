package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/caseedit/internal/core/mutate"
	"github.com/colonyops/caseedit/internal/core/notify"
	"github.com/colonyops/caseedit/internal/tui/components"
	"github.com/colonyops/caseedit/internal/tui/components/form"
)

const (
	pairsHelp = "tab: next  ctrl+n: add row  ctrl+s: insert  esc: cancel"
	editsHelp = "tab: next  ctrl+s: apply  esc: cancel"
)

// beginOp starts a batch edit on tab i and opens the modal for its first
// stage.
func (m Model) beginOp(i int, op *mutate.Op) (tea.Model, tea.Cmd) {
	m.op = op
	m.opTab = i
	return m.advanceOp()
}

// advanceOp shows the modal for the stage the pending op waits in, or
// commits it once it is done.
func (m Model) advanceOp() (tea.Model, tea.Cmd) {
	op := m.op
	switch op.Stage() {
	case mutate.StageConfirm:
		m.confirm = components.NewConfirmModal(opTitle(op.Kind()), op.ConfirmMessage())
		m.state = stateConfirm
		m.purpose = purposeEdit
		return m, nil
	case mutate.StagePairs:
		m.form = newPairsForm(len(op.Targets()))
		m.state = stateForm
		m.purpose = purposeEdit
		return m, nil
	case mutate.StageEdits:
		m.form = newEditsForm(op.Records())
		m.state = stateForm
		m.purpose = purposeEdit
		return m, nil
	}
	return m.finishOp()
}

func (m Model) finishOp() (tea.Model, tea.Cmd) {
	op, i := m.op, m.opTab
	m.op = nil
	m.closeModal()

	count := m.ws.Commit(m.ctx, i, op)
	m.refresh(i)

	switch {
	case count > 0:
		return m, m.notify(notify.Success("%s %d items", opVerb(op.Kind()), count))
	case len(op.Targets()) == 0:
		return m, m.notify(notify.Info("Nothing selected"))
	}
	return m, nil
}

// answerOp feeds a modal answer into the pending op.
func (m Model) answerOp(confirmed bool) (tea.Model, tea.Cmd) {
	op := m.op
	switch op.Stage() {
	case mutate.StageConfirm:
		op.Confirm(confirmed)
	case mutate.StagePairs:
		if confirmed {
			op.SubmitPairs(pairsFromForm(m.form))
		} else {
			op.SubmitPairs(nil)
		}
	case mutate.StageEdits:
		if confirmed {
			op.SubmitEdits(recordsFromForm(m.form, op.Records()), true)
		} else {
			op.SubmitEdits(nil, false)
		}
	}
	return m.advanceOp()
}

func opTitle(k mutate.Kind) string {
	switch k {
	case mutate.KindDelete:
		return "Delete Items"
	case mutate.KindInsert:
		return "Insert Items"
	default:
		return "Replace Items"
	}
}

func opVerb(k mutate.Kind) string {
	switch k {
	case mutate.KindDelete:
		return "Deleted"
	case mutate.KindInsert:
		return "Inserted"
	default:
		return "Updated"
	}
}

func newPairsForm(targets int) *form.Dialog {
	title := "Insert Items"
	if targets > 1 {
		title = fmt.Sprintf("Insert Items under %d targets", targets)
	}

	d := form.NewDialog(title, nil, nil)
	d.Append(pairRow(1))
	d.Help = pairsHelp
	d.OnKey = func(d *form.Dialog, key string) (bool, tea.Cmd) {
		if key != "ctrl+n" {
			return false, nil
		}
		return true, d.Append(pairRow(d.Len()/2 + 1))
	}
	return d
}

func pairRow(n int) ([]form.Field, []string) {
	fields := []form.Field{
		form.NewTextField(fmt.Sprintf("Key %d", n), "key", ""),
		form.NewTextField(fmt.Sprintf("Value %d", n), "value", ""),
	}
	return fields, []string{fmt.Sprintf("key.%d", n), fmt.Sprintf("value.%d", n)}
}

// pairsFromForm reads the key/value rows in order, dropping incomplete rows.
func pairsFromForm(d *form.Dialog) []mutate.Pair {
	vals := d.Values()
	pairs := make([]mutate.Pair, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		pairs = append(pairs, mutate.Pair{Key: vals[i], Value: vals[i+1]})
	}
	return mutate.AcceptPairs(pairs)
}

func newEditsForm(records []mutate.EditRecord) *form.Dialog {
	var fields []form.Field
	var names []string
	for i, r := range records {
		fields = append(fields, form.NewTextField(fmt.Sprintf("Key %d", i+1), "key", r.Key))
		names = append(names, editKey(i))
		if r.HasValue {
			fields = append(fields, form.NewTextField(fmt.Sprintf("Value %d", i+1), "value", r.Value))
			names = append(names, editValue(i))
		}
	}

	d := form.NewDialog(fmt.Sprintf("Replace %d Items", len(records)), fields, names)
	d.Help = editsHelp
	return d
}

// recordsFromForm copies the edited keys and values over the records the
// form was built from.
func recordsFromForm(d *form.Dialog, records []mutate.EditRecord) []mutate.EditRecord {
	vals := d.FormValues()
	for i := range records {
		records[i].Key = vals[editKey(i)]
		if records[i].HasValue {
			records[i].Value = vals[editValue(i)]
		}
	}
	return records
}

func editKey(i int) string   { return fmt.Sprintf("key.%d", i) }
func editValue(i int) string { return fmt.Sprintf("value.%d", i) }
