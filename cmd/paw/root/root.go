package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Pyro18/codepaw/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "paw",
	Short:         "CodePaw — a virtual pet that levels up as you code",
	Long:          "CodePaw turns coding activity (saves, commits, debugging) into XP, levels, streaks and achievements for a virtual pet, with optional Gist-backed cloud sync.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newFeedCmd(),
		newLogCmd(),
		newAchievementsCmd(),
		newHistoryCmd(),
		newSyncCmd(),
		newResetCmd(),
		newWatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
