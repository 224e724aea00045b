package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/caseedit/internal/core/styles"
	"github.com/colonyops/caseedit/internal/core/tree"
	"github.com/colonyops/caseedit/internal/core/value"
	"github.com/colonyops/caseedit/internal/tui/jsoncolor"
	"github.com/colonyops/caseedit/pkg/iojson"
)

type TreeCmd struct {
	flags *Flags
	input iojson.FileReader

	// flags
	jsonOutput bool
}

// NewTreeCmd creates a new tree command
func NewTreeCmd(flags *Flags) *TreeCmd {
	return &TreeCmd{flags: flags}
}

// Register adds the tree command to the application
func (cmd *TreeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tree",
		Usage:     "Print a case file as a tree",
		UsageText: "caseedit tree [--json] [FILE | --file FILE | < FILE]",
		Description: `Prints every key of the document, one per line, indented by depth.
Leaves show their value text as it appears in the editor.

Use --json to print the document as the editor would save it.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the flattened document as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: RecentFileCompleter(cmd.flags),
		Action: cmd.run,
	})

	return app
}

func (cmd *TreeCmd) run(_ context.Context, c *cli.Command) error {
	cmd.input.SetDefault(c.Args().First())

	data, err := cmd.input.Read()
	if err != nil {
		return err
	}
	root, err := value.ParseObject(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", cmd.input.Source(), err)
	}

	t := tree.Build(root)
	out := c.Root().Writer

	if cmd.jsonOutput {
		doc, err := jsoncolor.Document(t.Flatten(), cmd.flags.Config.Indent)
		if err != nil {
			return fmt.Errorf("render json: %w", err)
		}
		_, err = lipgloss.Fprintln(out, doc)
		return err
	}

	return writeTree(out, t)
}

// writeTree prints every node of t in pre-order.
func writeTree(w io.Writer, t *tree.Model) error {
	var b strings.Builder
	for id := range t.All() {
		b.WriteString(strings.Repeat("  ", t.Depth(id)))
		if t.IsLeaf(id) {
			b.WriteString(styles.TreeGuideStyle.Render(styles.IconLeaf + " "))
			b.WriteString(styles.TreeKeyStyle.Render(t.Key(id)))
			b.WriteString(styles.TreeGuideStyle.Render(": "))
			b.WriteString(styles.TreeValueStyle.Render(t.Text(id)))
		} else {
			b.WriteString(styles.TreeGuideStyle.Render("▾ "))
			b.WriteString(styles.TreeKeyStyle.Render(t.Key(id)))
		}
		b.WriteString("\n")
	}
	_, err := lipgloss.Fprint(w, b.String())
	return err
}
