package root

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Pyro18/codepaw/internal/tui"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the live pet dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			decayEvery := time.Duration(a.cfg.DecayIntervalMinutes) * time.Minute
			return tui.RunWatch(ctx, a.mgr, decayEvery, cmd.OutOrStdout())
		},
	}

	return cmd
}
