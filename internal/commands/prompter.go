package commands

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/caseedit/internal/core/mutate"
	"github.com/colonyops/caseedit/internal/core/styles"
)

// formPrompter answers edit prompts with huh forms on the terminal. Pairs
// and confirmations given on the command line skip their forms.
type formPrompter struct {
	yes   bool
	pairs []mutate.Pair
	err   error
}

func newFormPrompter(yes bool, pairs []mutate.Pair) *formPrompter {
	return &formPrompter{yes: yes, pairs: pairs}
}

// Err returns the first form error, such as huh.ErrUserAborted.
func (p *formPrompter) Err() error { return p.err }

func (p *formPrompter) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *formPrompter) run(groups ...*huh.Group) bool {
	if err := huh.NewForm(groups...).WithTheme(styles.FormTheme()).Run(); err != nil {
		p.fail(err)
		return false
	}
	return true
}

func (p *formPrompter) Confirm(message string, count int) bool {
	if p.yes {
		return true
	}

	var ok bool
	confirmed := p.run(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Description(fmt.Sprintf("%d items selected", count)).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	return confirmed && ok
}

func (p *formPrompter) PromptPairs() []mutate.Pair {
	if len(p.pairs) > 0 {
		return mutate.AcceptPairs(p.pairs)
	}

	var pairs []mutate.Pair
	for {
		var key, text string
		more := false
		ok := p.run(huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Key %d", len(pairs)+1)).
				Value(&key),
			huh.NewInput().
				Title("Value").
				Description("Value text as the editor shows it, e.g. 10, 1.0, [1, 2]").
				Value(&text),
			huh.NewConfirm().
				Title("Add another item?").
				Value(&more),
		))
		if !ok {
			return nil
		}

		pairs = append(pairs, mutate.Pair{Key: key, Value: text})
		if !more {
			return mutate.AcceptPairs(pairs)
		}
	}
}

func (p *formPrompter) PromptEdits(records []mutate.EditRecord) ([]mutate.EditRecord, bool) {
	out := slices.Clone(records)

	groups := make([]*huh.Group, 0, len(out))
	for i := range out {
		fields := []huh.Field{
			huh.NewInput().
				Title(fmt.Sprintf("Key %d", i+1)).
				Value(&out[i].Key),
		}
		if out[i].HasValue {
			fields = append(fields, huh.NewInput().
				Title(fmt.Sprintf("Value %d", i+1)).
				Value(&out[i].Value))
		}
		groups = append(groups, huh.NewGroup(fields...))
	}

	if !p.run(groups...) {
		return nil, false
	}
	return out, true
}
