package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pyro18/codepaw/internal/pet"
	"github.com/Pyro18/codepaw/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show your pet and its stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := a.mgr.Snapshot()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconPaw, fmt.Sprintf("%s  %s", ui.PetFace(p.Stage, p.Happiness), p.Name)))
			fmt.Fprintln(out, ui.LabelValue("Stage", ui.StageText(p.Stage)))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintf(out, "%s %s %d/%d\n", ui.Key.Render("XP:"), ui.Bar(p.XP, p.MaxXP, 20), p.XP, p.MaxXP)
			fmt.Fprintf(out, "%s %s %d%%\n", ui.Key.Render(ui.IconHeart+" Happiness:"), ui.Bar(p.Happiness, 100, 20), p.Happiness)
			fmt.Fprintf(out, "%s %s %d%%\n", ui.Key.Render(ui.IconBolt+" Energy:"), ui.Bar(p.Energy, 100, 20), p.Energy)
			fmt.Fprintln(out, ui.LabelValue("Mood", ui.Mood(p.Happiness, p.Energy)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days (best %d)", ui.IconFire, p.Stats.CurrentStreak, p.Stats.LongestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Total XP earned", p.TotalXPEarned))
			fmt.Fprintln(out, "")

			st := p.Stats
			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			fmt.Fprintf(out, "- Saves: %d (lines: %d)\n", st.TotalSaves, st.TotalLines)
			fmt.Fprintf(out, "- Commits: %d on %s (bugfixes: %d, features: %d)\n", st.CommitsCount, st.CurrentBranch, st.BugFixCount, st.FeatureCount)
			fmt.Fprintf(out, "- Files created: %d (tests: %d)\n", st.FilesCreated, st.TestFilesCreated)
			fmt.Fprintf(out, "- Languages: %d, repositories: %d\n", st.LanguagesUsed.Len(), st.RepositoriesUsed.Len())
			fmt.Fprintf(out, "- Debug sessions: %d, terminals: %d\n", st.DebugSessions, st.TerminalSessions)
			fmt.Fprintf(out, "- Coding time: %dm (longest session: %dm)\n", st.TotalSessionTime, st.LongestSession)
			fmt.Fprintln(out, "")

			earned := p.Achievements.Len()
			total := len(pet.Catalog())
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements %d/%d", ui.IconTrophy, earned, total)))
			fmt.Fprintln(out, ui.Muted.Render("Run 'paw achievements' for the full list."))

			return nil
		},
	}

	return cmd
}
