package commands

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/caseedit/internal/core/config"
	"github.com/colonyops/caseedit/internal/printer"
	"github.com/colonyops/caseedit/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "caseedit config validate [options]",
				Description: "Validates the configuration file, checking extensions, keybindings, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationError is one field problem in the JSON report.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	errs := fieldErrors(cfg.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []validationError          `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(errs) == 0,
			Errors:   errs,
			Warnings: warnings,
		}
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
			return err
		}
		if len(errs) > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	p := printer.Ctx(ctx)
	for _, w := range warnings {
		p.Warnf("%s: %s", w.Category, w.Message)
		if w.Item != "" {
			p.Printf("  Item: %s", w.Item)
		}
	}
	for _, e := range errs {
		p.Errorf("%s: %s", e.Field, e.Message)
	}

	p.Printf("")
	if len(errs) == 0 {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(errs))
	return cli.Exit("", 1)
}

// fieldErrors flattens a validation error into one entry per field.
func fieldErrors(err error) []validationError {
	if err == nil {
		return nil
	}

	var fe criterio.FieldErrors
	if !errors.As(err, &fe) {
		return []validationError{{Field: "config", Message: err.Error()}}
	}

	out := make([]validationError, 0, len(fe))
	for _, e := range fe {
		out = append(out, validationError{Field: e.Field, Message: e.Err.Error()})
	}
	return out
}
