// Package mutate implements the batch edits applied to a selection of tree
// nodes: delete, insert and replace.
//
// Each edit is an Op that moves through a fixed sequence of stages. An Op
// waiting in a prompt stage has not touched the tree yet; declining a
// confirmation or cancelling a prompt ends the Op with a count of zero. This
// lets an event-driven UI answer one prompt per event, while Run drives an Op
// to completion against a blocking Prompter.
package mutate

import (
	"fmt"
	"slices"

	"github.com/colonyops/caseedit/internal/core/tree"
)

// Kind identifies the batch edit an Op performs.
type Kind int

const (
	KindDelete Kind = iota
	KindInsert
	KindReplace
)

func (k Kind) String() string {
	switch k {
	case KindDelete:
		return "delete"
	case KindInsert:
		return "insert"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Stage is the point an Op has reached.
type Stage int

const (
	// StageConfirm waits for a yes/no answer via Confirm.
	StageConfirm Stage = iota
	// StagePairs waits for key/value pairs via SubmitPairs.
	StagePairs
	// StageEdits waits for edited records via SubmitEdits.
	StageEdits
	// StageDone means Count holds the final result.
	StageDone
)

// Pair is one key/value-text entry collected for insertion.
type Pair struct {
	Key   string
	Value string
}

// EditRecord is the editable view of one node during replace. HasValue is
// false for interior nodes, whose Value is always empty and never applied.
type EditRecord struct {
	Key      string
	Value    string
	HasValue bool
}

// Prompter is the presentation capability a blocking driver needs.
type Prompter interface {
	Confirm(message string, count int) bool
	PromptPairs() []Pair
	PromptEdits(records []EditRecord) ([]EditRecord, bool)
}

// AcceptPairs drops pairs with an empty key or empty value. Prompt
// implementations call it when the user accepts the form.
func AcceptPairs(pairs []Pair) []Pair {
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if p.Key == "" || p.Value == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DefaultInsertConfirmThreshold is the number of insert targets above which
// the user is asked to confirm.
const DefaultInsertConfirmThreshold = 1

// Mutator creates batch edit Ops.
type Mutator struct {
	insertConfirmThreshold int
}

// New returns a Mutator. Inserting under more than insertConfirmThreshold
// targets requires confirmation; values below 1 use the default.
func New(insertConfirmThreshold int) *Mutator {
	if insertConfirmThreshold < 1 {
		insertConfirmThreshold = DefaultInsertConfirmThreshold
	}
	return &Mutator{insertConfirmThreshold: insertConfirmThreshold}
}

// Op is one batch edit in progress.
type Op struct {
	kind    Kind
	tree    *tree.Model
	targets []tree.NodeID
	stage   Stage
	records []EditRecord
	count   int
}

// Delete starts removing selected. An empty selection finishes immediately
// without asking for confirmation.
func (m *Mutator) Delete(t *tree.Model, selected []tree.NodeID) *Op {
	op := &Op{kind: KindDelete, tree: t, targets: slices.Clone(selected), stage: StageConfirm}
	if t == nil || len(selected) == 0 {
		op.finish(0)
	}
	return op
}

// Insert starts adding leaf children under targets. With no targets the top
// level of the document is the single target. A nil tree finishes with zero.
func (m *Mutator) Insert(t *tree.Model, targets []tree.NodeID) *Op {
	op := &Op{kind: KindInsert, tree: t, targets: slices.Clone(targets), stage: StagePairs}
	if t == nil {
		op.finish(0)
		return op
	}
	if len(op.targets) == 0 {
		op.targets = []tree.NodeID{tree.Root}
	}
	if len(op.targets) > m.insertConfirmThreshold {
		op.stage = StageConfirm
	}
	return op
}

// Replace starts editing the keys and leaf values of selected.
func (m *Mutator) Replace(t *tree.Model, selected []tree.NodeID) *Op {
	op := &Op{kind: KindReplace, tree: t, targets: slices.Clone(selected), stage: StageEdits}
	if t == nil || len(selected) == 0 {
		op.finish(0)
		return op
	}

	op.records = make([]EditRecord, len(selected))
	for i, id := range selected {
		if t.IsLeaf(id) {
			op.records[i] = EditRecord{Key: t.Key(id), Value: t.Text(id), HasValue: true}
		} else {
			op.records[i] = EditRecord{Key: t.Key(id)}
		}
	}
	return op
}

func (o *Op) Kind() Kind   { return o.kind }
func (o *Op) Stage() Stage { return o.stage }
func (o *Op) Done() bool   { return o.stage == StageDone }

// Count is the number of affected items once the Op is done.
func (o *Op) Count() int { return o.count }

// Targets returns the nodes the Op acts on.
func (o *Op) Targets() []tree.NodeID { return slices.Clone(o.targets) }

// ConfirmMessage describes what confirming will do.
func (o *Op) ConfirmMessage() string {
	switch o.kind {
	case KindDelete:
		return fmt.Sprintf("%d items and their sub-items will be deleted!", len(o.targets))
	case KindInsert:
		return fmt.Sprintf("New items will be inserted under %d items!", len(o.targets))
	default:
		return ""
	}
}

// Records returns a copy of the edit records presented during replace.
func (o *Op) Records() []EditRecord { return slices.Clone(o.records) }

// Confirm answers the confirmation stage. Declining finishes with zero.
func (o *Op) Confirm(ok bool) {
	if o.stage != StageConfirm {
		return
	}
	if !ok {
		o.finish(0)
		return
	}

	switch o.kind {
	case KindDelete:
		o.applyDelete()
	case KindInsert:
		o.stage = StagePairs
	}
}

// applyDelete detaches targets in reverse pre-order so descendants go before
// their ancestors. The count is the number of requested nodes, not
// including implicitly removed descendants.
func (o *Op) applyDelete() {
	ordered := slices.Clone(o.targets)
	slices.SortStableFunc(ordered, o.preOrderCompare())
	for _, id := range slices.Backward(ordered) {
		o.tree.Detach(id)
	}
	o.finish(len(o.targets))
}

func (o *Op) preOrderCompare() func(a, b tree.NodeID) int {
	rank := make(map[tree.NodeID]int)
	i := 0
	for id := range o.tree.All() {
		rank[id] = i
		i++
	}
	return func(a, b tree.NodeID) int {
		return rank[a] - rank[b]
	}
}

// SubmitPairs answers the pairs stage. Every target receives one new leaf
// per pair; an empty answer changes nothing.
func (o *Op) SubmitPairs(pairs []Pair) {
	if o.stage != StagePairs {
		return
	}
	if len(pairs) == 0 {
		o.finish(0)
		return
	}

	for _, target := range o.targets {
		for _, p := range pairs {
			o.tree.AppendLeaf(target, p.Key, p.Value)
		}
	}
	o.finish(len(o.targets) * len(pairs))
}

// SubmitEdits answers the edits stage. Keys are always applied and values
// only where HasValue was set. A cancelled prompt, or records that do not
// line up with the selection, finish with zero.
func (o *Op) SubmitEdits(records []EditRecord, ok bool) {
	if o.stage != StageEdits {
		return
	}
	if !ok || len(records) != len(o.targets) {
		o.finish(0)
		return
	}

	for i, id := range o.targets {
		o.tree.SetKey(id, records[i].Key)
		if o.records[i].HasValue {
			o.tree.SetText(id, records[i].Value)
		}
	}
	o.finish(len(o.targets))
}

func (o *Op) finish(count int) {
	o.count = count
	o.stage = StageDone
}

// Run drives op to completion by asking p at each stage and returns the
// final count.
func Run(op *Op, p Prompter) int {
	for !op.Done() {
		switch op.Stage() {
		case StageConfirm:
			op.Confirm(p.Confirm(op.ConfirmMessage(), len(op.targets)))
		case StagePairs:
			op.SubmitPairs(p.PromptPairs())
		case StageEdits:
			op.SubmitEdits(p.PromptEdits(op.Records()))
		}
	}
	return op.Count()
}
