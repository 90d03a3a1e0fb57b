package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pyro18/codepaw/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the pet to a fresh hatchling",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("this wipes all progress; re-run with --yes to confirm")
			}
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.mgr.Reset(ctx); err != nil {
				return err
			}
			p := a.mgr.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s hatched anew at level %d.\n", ui.IconPaw, p.Name, p.Level)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")

	return cmd
}
