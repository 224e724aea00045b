package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/caseedit/internal/core/config"
	"github.com/colonyops/caseedit/internal/core/value"
	"github.com/colonyops/caseedit/internal/printer"
	"github.com/colonyops/caseedit/internal/store/jsonfile"
	"github.com/colonyops/caseedit/pkg/tuitest"
)

const sampleDoc = `{"solver": {"tolerance": 1e-05, "steps": 10}, "name": "run"}`

func newTestFlags(t *testing.T) *Flags {
	t.Helper()
	dataDir := t.TempDir()
	cfg, err := config.Load("", dataDir)
	require.NoError(t, err)
	return &Flags{
		DataDir: dataDir,
		Config:  cfg,
		Recents: jsonfile.NewRecentStore(cfg.RecentFile()),
	}
}

func writeDoc(t *testing.T, name, doc string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(doc), 0o644))
	return p
}

func readDoc(t *testing.T, path string) *value.Object {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	obj, err := value.ParseObject(data)
	require.NoError(t, err)
	return obj
}

type registrar interface {
	Register(app *cli.Command) *cli.Command
}

// runApp runs args against a root command holding cmds and returns the
// combined, ANSI-stripped output.
func runApp(t *testing.T, cmds []registrar, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.Command{
		Name:           "caseedit",
		Writer:         &out,
		ErrWriter:      &out,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	for _, c := range cmds {
		app = c.Register(app)
	}

	ctx := printer.NewContext(context.Background(), printer.New(&out, &out))
	err := app.Run(ctx, append([]string{"caseedit"}, args...))
	return tuitest.StripANSI(out.String()), err
}
