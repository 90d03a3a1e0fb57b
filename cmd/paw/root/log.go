package root

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pyro18/codepaw/internal/pet"
)

// Base XP heuristics per event type. These mirror what the editor
// integration awards; the engine itself never chooses XP values.
const (
	xpSave          = 15
	xpSaveBigFile   = 5  // > 100 lines
	xpSaveHugeFile  = 10 // > 500 lines
	xpNewFile       = 20
	xpNewTestFile   = 15
	xpNewConfigFile = 10
	xpTypingPerLine = 2
	xpTypingCap     = 15
	xpCommit        = 25
	xpCommitLongMsg = 10
	xpCommitBugFix  = 15
	xpCommitFeature = 20
	xpBranch        = 5
	xpDebug         = 20
	xpTerminal      = 5
	xpSession       = 3
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a coding activity",
		Long:  "Record a coding activity by hand. Each subcommand stands in for an editor event and uses the same XP heuristics the editor integration would.",
	}

	cmd.AddCommand(
		newLogSaveCmd(),
		newLogFileCmd(),
		newLogTypingCmd(),
		newLogCommitCmd(),
		newLogBranchCmd(),
		newLogDebugCmd(),
		newLogTerminalCmd(),
		newLogSessionCmd(),
	)

	return cmd
}

func recordAndPrint(cmd *cobra.Command, act pet.Activity) error {
	ctx := context.Background()
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := a.mgr.RecordActivity(ctx, act)
	if err != nil {
		return err
	}
	printActivityResult(cmd.OutOrStdout(), a.mgr.Snapshot().Name, res)
	return nil
}

func newLogSaveCmd() *cobra.Command {
	var lang string
	var lines int
	var file string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Record a file save",
		RunE: func(cmd *cobra.Command, args []string) error {
			xp := xpSave
			if lines > 100 {
				xp += xpSaveBigFile
			}
			if lines > 500 {
				xp += xpSaveHugeFile
			}
			return recordAndPrint(cmd, pet.Save(xp, lang, lines, file))
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language of the saved file")
	cmd.Flags().IntVar(&lines, "lines", 0, "Line count of the saved file")
	cmd.Flags().StringVarP(&file, "file", "f", "", "File name")

	return cmd
}

func newLogFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file <name>",
		Short: "Record a created file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("file name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			lower := strings.ToLower(name)
			xp := xpNewFile
			if strings.Contains(lower, "test") || strings.Contains(lower, "spec") {
				xp += xpNewTestFile
			}
			if strings.Contains(lower, "config") || strings.Contains(lower, "setup") {
				xp += xpNewConfigFile
			}
			return recordAndPrint(cmd, pet.NewFile(xp, name))
		},
	}

	return cmd
}

func newLogTypingCmd() *cobra.Command {
	var changes int

	cmd := &cobra.Command{
		Use:   "typing",
		Short: "Record a burst of edits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if changes < 1 {
				return errors.New("changes must be at least 1")
			}
			xp := changes * xpTypingPerLine
			if xp > xpTypingCap {
				xp = xpTypingCap
			}
			return recordAndPrint(cmd, pet.Typing(xp, changes))
		},
	}

	cmd.Flags().IntVarP(&changes, "changes", "c", 1, "Changed lines in the burst")

	return cmd
}

func newLogCommitCmd() *cobra.Command {
	var message string
	var repo string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record a VCS commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			xp := xpCommit
			lower := strings.ToLower(message)
			if len(message) > 50 {
				xp += xpCommitLongMsg
			}
			if strings.Contains(lower, "fix") || strings.Contains(lower, "bug") {
				xp += xpCommitBugFix
			}
			if strings.Contains(lower, "feat") || strings.Contains(lower, "feature") {
				xp += xpCommitFeature
			}
			return recordAndPrint(cmd, pet.Commit(xp, message, repo))
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Repository path or name")

	return cmd
}

func newLogBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch <name>",
		Short: "Record a branch switch",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("branch name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordAndPrint(cmd, pet.Branch(xpBranch, args[0]))
		},
	}

	return cmd
}

func newLogDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Record a debug session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordAndPrint(cmd, pet.Debug(xpDebug))
		},
	}

	return cmd
}

func newLogTerminalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terminal",
		Short: "Record an opened terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordAndPrint(cmd, pet.Terminal(xpTerminal))
		},
	}

	return cmd
}

func newLogSessionCmd() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Record active coding time",
		RunE: func(cmd *cobra.Command, args []string) error {
			if minutes < 1 {
				return errors.New("minutes must be at least 1")
			}
			return recordAndPrint(cmd, pet.Session(xpSession, minutes))
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 5, "Session length in minutes")

	return cmd
}
