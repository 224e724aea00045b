package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/caseedit/internal/core/document"
	"github.com/colonyops/caseedit/internal/editor"
	"github.com/colonyops/caseedit/internal/store/jsonfile"
	"github.com/colonyops/caseedit/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open case files in the interactive editor",
		UsageText: "caseedit tui [files...]",
		Description: `Opens each file as a tab. Files that are already open are skipped.

With no files the editor starts with one untitled document.`,
		ShellComplete: RecentFileCompleter(cmd.flags),
		Action: cmd.Run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	var watcher *jsonfile.DocumentWatcher
	var changes <-chan document.ChangeEvent
	if cfg.TUI.WatchFilesEnabled() {
		w, err := jsonfile.NewDocumentWatcher()
		if err != nil {
			log.Warn().Err(err).Msg("file watching disabled")
		} else {
			defer func() { _ = w.Close() }()
			watcher = w

			watchCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			if changes, err = w.Watch(watchCtx, ""); err != nil {
				return fmt.Errorf("watch documents: %w", err)
			}
		}
	}

	var ws *editor.Workspace
	if watcher != nil {
		ws = editor.NewWorkspace(cfg, cmd.flags.Recents, watcher)
	} else {
		ws = editor.NewWorkspace(cfg, cmd.flags.Recents, nil)
	}

	warnings := openAll(ctx, ws, c.Args().Slice())

	m := tui.New(ctx, cfg, tui.Options{
		Workspace: ws,
		Recents:   cmd.flags.Recents,
		Changes:   changes,
		Warnings:  warnings,
	})

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// openAll opens each path as a tab and returns a warning for every path
// that could not be opened.
func openAll(ctx context.Context, ws *editor.Workspace, paths []string) []string {
	var warnings []string
	for _, p := range paths {
		_, err := ws.Open(ctx, p)
		switch {
		case errors.Is(err, document.ErrAlreadyOpen):
			warnings = append(warnings, fmt.Sprintf("%s is already open", filepath.Base(p)))
		case err != nil:
			warnings = append(warnings, err.Error())
		}
	}
	return warnings
}
