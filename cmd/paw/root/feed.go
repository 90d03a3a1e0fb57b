package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Pyro18/codepaw/internal/pet"
	"github.com/Pyro18/codepaw/internal/ui"
)

func newFeedCmd() *cobra.Command {
	var xp int

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Grant the pet some manual XP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if xp < 0 {
				return errors.New("xp must not be negative")
			}
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := a.mgr.RecordActivity(ctx, pet.Manual(xp))
			if err != nil {
				return err
			}
			printActivityResult(cmd.OutOrStdout(), a.mgr.Snapshot().Name, res)
			return nil
		},
	}

	cmd.Flags().IntVar(&xp, "xp", 10, "XP to grant")

	return cmd
}

// printActivityResult is shared by feed and log: XP line plus any level-up,
// evolution, and achievement notices.
func printActivityResult(out io.Writer, name string, res *pet.ActivityResult) {
	fmt.Fprintf(out, "%s %s gained %d XP\n", ui.IconSparkle, name, res.XPAwarded)
	if res.LevelUp {
		fmt.Fprintf(out, "%s %s reached level %d!\n", ui.IconStar, name, res.LevelAfter)
	}
	if res.StageChanged {
		fmt.Fprintf(out, "%s %s evolved into %s!\n", ui.IconParty, name, ui.StageText(res.StageAfter))
	}
	for _, a := range res.NewAchievements {
		fmt.Fprintf(out, "%s Achievement unlocked: %s %s\n", ui.IconTrophy, a.Icon, ui.Gold.Render(a.Name))
	}
}
