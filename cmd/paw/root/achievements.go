package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pyro18/codepaw/internal/pet"
	"github.com/Pyro18/codepaw/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and their status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := a.mgr.Snapshot()
			out := cmd.OutOrStdout()

			catalog := pet.Catalog()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements %d/%d", p.Achievements.Len(), len(catalog))))
			for _, ach := range catalog {
				if p.Achievements.Has(ach.ID) {
					fmt.Fprintf(out, "%s %s %s — %s\n", ui.Good.Render("✓"), ach.Icon, ui.Gold.Render(ach.Name), ui.Muted.Render(ach.Description))
					continue
				}
				fmt.Fprintf(out, "%s %s %s — %s\n", ui.Muted.Render("•"), ach.Icon, ach.Name, ui.Muted.Render(ach.Description))
			}

			return nil
		},
	}

	return cmd
}
