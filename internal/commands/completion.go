package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// RecentFileCompleter returns a ShellCompleteFunc that suggests recently
// opened files that still exist as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func RecentFileCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if flags.Recents == nil {
			return
		}
		entries, err := flags.Recents.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, e := range entries {
			if _, err := os.Stat(e.Path); err != nil {
				continue
			}
			_, _ = fmt.Fprintln(w, e.Path)
		}
	}
}
