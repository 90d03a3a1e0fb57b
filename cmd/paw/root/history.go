package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pyro18/codepaw/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the pet's evolution history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := a.mgr.Snapshot()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, fmt.Sprintf("%s's journey", p.Name)))
			fmt.Fprintf(out, "%s hatched %s\n", ui.Muted.Render("🥚"), ui.Muted.Render(p.CreatedAt.Format("2006-01-02 15:04")))
			if len(p.EvolutionHistory) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No evolutions yet. Keep coding!"))
				return nil
			}
			for _, e := range p.EvolutionHistory {
				fmt.Fprintf(out, "%s %s at level %d — %s\n",
					ui.PetFace(e.Stage, 100),
					ui.StageText(e.Stage),
					e.Level,
					ui.Muted.Render(e.Date.Format("2006-01-02 15:04")),
				)
			}

			return nil
		},
	}

	return cmd
}
