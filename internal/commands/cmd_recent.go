package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/caseedit/internal/printer"
	"github.com/colonyops/caseedit/pkg/iojson"
)

type RecentCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewRecentCmd creates a new recent command
func NewRecentCmd(flags *Flags) *RecentCmd {
	return &RecentCmd{flags: flags}
}

// Register adds the recent command to the application
func (cmd *RecentCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "recent",
		Usage:     "List recently opened case files",
		UsageText: "caseedit recent [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
		Commands: []*cli.Command{
			{
				Name:   "clear",
				Usage:  "Forget all recent files",
				Action: cmd.runClear,
			},
		},
	})

	return app
}

func (cmd *RecentCmd) run(ctx context.Context, c *cli.Command) error {
	entries, err := cmd.flags.Recents.List(ctx)
	if err != nil {
		return fmt.Errorf("list recent files: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, e := range entries {
			if err := iojson.WriteLine(out, e); err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
		}
		return nil
	}

	if len(entries) == 0 {
		printer.Ctx(ctx).Infof("No recent files")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "OPENED\tPATH")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", e.OpenedAt.Local().Format(time.DateTime), e.Path)
	}
	return w.Flush()
}

func (cmd *RecentCmd) runClear(ctx context.Context, _ *cli.Command) error {
	if err := cmd.flags.Recents.Clear(ctx); err != nil {
		return fmt.Errorf("clear recent files: %w", err)
	}
	printer.Ctx(ctx).Successf("Cleared recent files")
	return nil
}
