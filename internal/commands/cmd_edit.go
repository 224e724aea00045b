package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/caseedit/internal/core/mutate"
	"github.com/colonyops/caseedit/internal/editor"
	"github.com/colonyops/caseedit/internal/printer"
)

// prompter is a mutate.Prompter that remembers why a prompt failed.
type prompter interface {
	mutate.Prompter
	Err() error
}

type EditCmd struct {
	flags *Flags

	// newPrompter builds the prompter for one edit; tests replace it.
	newPrompter func(yes bool, pairs []mutate.Pair) prompter

	// flags
	selects []string
	pairs   []string
	yes     bool
	output  string
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{
		flags: flags,
		newPrompter: func(yes bool, pairs []mutate.Pair) prompter {
			return newFormPrompter(yes, pairs)
		},
	}
}

// Register adds the edit command and its subcommands to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "edit",
		Usage: "Batch edit the items of a case file",
		Description: `Selects items by path and deletes, inserts under, or replaces them.

Item paths join keys with "/" from the top level, e.g. solver/tolerance.
--select takes doublestar patterns, so solver/** matches everything below solver.

The file is saved in place when anything changed, or written to --output.`,
		Commands: []*cli.Command{
			{
				Name:      "delete",
				Usage:     "Delete the selected items and everything below them",
				UsageText: "caseedit edit delete --select PATTERN [--yes] [--output FILE] FILE",
				Flags:     cmd.editFlags(true, false),
				ShellComplete: RecentFileCompleter(cmd.flags),
				Action:    cmd.action(mutate.KindDelete),
			},
			{
				Name:      "insert",
				Usage:     "Insert key/value items under the selected items, or at the top level",
				UsageText: "caseedit edit insert [--select PATTERN] [--pair key=value ...] [--output FILE] FILE",
				Flags:     cmd.editFlags(false, true),
				ShellComplete: RecentFileCompleter(cmd.flags),
				Action:    cmd.action(mutate.KindInsert),
			},
			{
				Name:      "replace",
				Usage:     "Edit the keys and values of the selected items",
				UsageText: "caseedit edit replace --select PATTERN [--output FILE] FILE",
				Flags:     cmd.editFlags(true, false),
				ShellComplete: RecentFileCompleter(cmd.flags),
				Action:    cmd.action(mutate.KindReplace),
			},
		},
	})

	return app
}

func (cmd *EditCmd) editFlags(requireSelect, withPairs bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "select",
			Aliases:     []string{"s"},
			Usage:       "item path pattern to select (repeatable)",
			Required:    requireSelect,
			Destination: &cmd.selects,
		},
		&cli.BoolFlag{
			Name:        "yes",
			Aliases:     []string{"y"},
			Usage:       "skip the confirmation prompt",
			Destination: &cmd.yes,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "write the result to this file instead of saving in place",
			Destination: &cmd.output,
		},
	}
	if withPairs {
		flags = append(flags, &cli.StringSliceFlag{
			Name:        "pair",
			Aliases:     []string{"p"},
			Usage:       "key=value item to insert (repeatable); prompts when absent",
			Destination: &cmd.pairs,
		})
	}
	return flags
}

func (cmd *EditCmd) action(kind mutate.Kind) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return fmt.Errorf("expected exactly one FILE argument")
		}
		return cmd.run(ctx, kind, c.Args().First())
	}
}

func (cmd *EditCmd) run(ctx context.Context, kind mutate.Kind, path string) error {
	p := printer.Ctx(ctx)

	pairs, err := parsePairs(cmd.pairs)
	if err != nil {
		return err
	}

	ws := editor.NewWorkspace(cmd.flags.Config, cmd.flags.Recents, nil)
	i, err := ws.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}

	if len(cmd.selects) > 0 {
		n, err := ws.SelectMatching(i, cmd.selects...)
		if err != nil {
			return fmt.Errorf("select: %w", err)
		}
		if n == 0 {
			p.Infof("No items match %s", strings.Join(cmd.selects, ", "))
			return nil
		}
	}

	pr := cmd.newPrompter(cmd.yes, pairs)
	var count int
	switch kind {
	case mutate.KindDelete:
		count = ws.Delete(ctx, i, pr)
	case mutate.KindInsert:
		count = ws.Insert(ctx, i, pr)
	case mutate.KindReplace:
		count = ws.Replace(ctx, i, pr)
	}

	if err := pr.Err(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			p.Infof("Cancelled")
			return nil
		}
		return fmt.Errorf("prompt: %w", err)
	}

	if count == 0 {
		p.Infof("No changes")
		return nil
	}
	p.Successf("%s %d items", editVerb(kind), count)

	target := path
	if cmd.output != "" {
		target = cmd.output
		err = ws.SaveAs(ctx, i, cmd.output)
	} else {
		err = ws.Save(ctx, i)
	}
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	p.Success("Saved", target)
	return nil
}

func editVerb(k mutate.Kind) string {
	switch k {
	case mutate.KindDelete:
		return "Deleted"
	case mutate.KindInsert:
		return "Inserted"
	default:
		return "Updated"
	}
}

// parsePairs splits each "key=value" at the first "=".
func parsePairs(raw []string) ([]mutate.Pair, error) {
	pairs := make([]mutate.Pair, 0, len(raw))
	for _, s := range raw {
		key, text, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid pair %q: expected key=value", s)
		}
		pairs = append(pairs, mutate.Pair{Key: key, Value: text})
	}
	return pairs, nil
}
