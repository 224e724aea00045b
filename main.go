package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/caseedit/internal/commands"
	"github.com/colonyops/caseedit/internal/core/config"
	"github.com/colonyops/caseedit/internal/core/logging"
	"github.com/colonyops/caseedit/internal/core/styles"
	"github.com/colonyops/caseedit/internal/printer"
	"github.com/colonyops/caseedit/internal/store/jsonfile"
	"github.com/colonyops/caseedit/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// ldflags aren't set by `go install module@version`, so fall back to
	// the module version and VCS metadata from the build info.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "caseedit",
		Usage:     "Edit case files as a key/value tree",
		UsageText: "caseedit [global options] [files...] | command [command options]",
		Description: `caseedit opens JSON case files as trees of keys and values.

Run 'caseedit' with file arguments to open them in the interactive editor.
Run 'caseedit edit' to delete, insert or replace items without the editor.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("CASEEDIT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/caseedit.log)",
				Sources:     cli.EnvVars("CASEEDIT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("CASEEDIT_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("CASEEDIT_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// The editor owns the terminal, so logs always go to a file.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			styles.UseTheme(cfg.Theme)

			flags.Config = cfg
			flags.Recents = jsonfile.NewRecentStore(cfg.RecentFile())

			log.Debug().Str("config", flags.ConfigPath).Str("version", version).Msg("caseedit starting")

			return printer.NewContext(ctx, printer.New(os.Stdout, os.Stderr)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = tuiCmd.Register(app)
	app = commands.NewTreeCmd(flags).Register(app)
	app = commands.NewEditCmd(flags).Register(app)
	app = commands.NewRecentCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Bare file arguments open the editor.
	app.ShellComplete = commands.RecentFileCompleter(flags)
	app.Action = tuiCmd.Run

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
