package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	petsync "github.com/Pyro18/codepaw/internal/sync"
	"github.com/Pyro18/codepaw/internal/ui"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync pet progress through a private GitHub Gist",
	}

	cmd.AddCommand(
		newSyncSetupCmd(),
		newSyncUpCmd(),
		newSyncDownCmd(),
		newSyncStatusCmd(),
		newSyncResetCmd(),
	)

	return cmd
}

func newSyncSetupCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Store a GitHub token and discover existing cloud data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return errors.New("a GitHub personal access token is required (--token)")
			}
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := a.sync.Configure(ctx, token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Found {
				fmt.Fprintln(out, ui.Good.Render("Found existing pet data in the cloud."))
				fmt.Fprintln(out, "- "+ui.Key.Render("paw sync down")+" to use the cloud data")
				fmt.Fprintln(out, "- "+ui.Key.Render("paw sync up")+" to overwrite it with this device")
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render("Setup complete."))
			fmt.Fprintln(out, ui.Muted.Render("A new Gist will be created on the first upload."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub personal access token with gist scope")

	return cmd
}

func newSyncUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Upload local progress to the cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.sync.Upload(ctx, a.mgr.Snapshot()); err != nil {
				return syncError("upload", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconCloud+" Progress synced to cloud."))
			return nil
		},
	}

	return cmd
}

func newSyncDownCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Replace local progress with the cloud copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("this replaces all local progress (the pet's name is kept); re-run with --yes to confirm")
			}
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			record, err := a.sync.Download(ctx)
			if err != nil {
				return syncError("download", err)
			}
			if err := a.mgr.AcceptRemote(ctx, record); err != nil {
				return err
			}
			p := a.mgr.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is back: level %d, %d achievements.\n",
				ui.Good.Render(ui.IconCloud), p.Name, p.Level, p.Achievements.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm replacing local progress")

	return cmd
}

func newSyncStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show sync configuration and last cloud write",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := a.sync.SyncStatus(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !st.Configured {
				fmt.Fprintln(out, ui.Muted.Render("Sync is not configured. Run 'paw sync setup'."))
				return nil
			}
			fmt.Fprintln(out, ui.LabelValue("Configured", ui.Good.Render("yes")))
			if st.LastSync.IsZero() {
				fmt.Fprintln(out, ui.LabelValue("Last sync", ui.Muted.Render("unknown (cloud unreachable)")))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Last sync", st.LastSync.Format("2006-01-02 15:04:05")))
			}
			if st.DeviceID != "" {
				fmt.Fprintln(out, ui.LabelValue("Device", ui.Muted.Render(st.DeviceID)))
			}
			return nil
		},
	}

	return cmd
}

func newSyncResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the sync credential and document id",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.sync.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sync configuration reset.")
			return nil
		},
	}

	return cmd
}

// syncError rewrites the client's typed errors into single-line, user-facing
// messages.
func syncError(op string, err error) error {
	var transport petsync.TransportError
	switch {
	case errors.Is(err, petsync.ErrNotConfigured):
		return errors.New("sync not configured; run 'paw sync setup' first")
	case errors.Is(err, petsync.ErrVersionSkew):
		return errors.New("cloud data was written by a newer CodePaw; update before downloading")
	case errors.Is(err, petsync.ErrMalformedDocument):
		return fmt.Errorf("%s failed: cloud document is missing the pet data file", op)
	case errors.As(err, &transport):
		return fmt.Errorf("%s failed: GitHub returned status %d", op, transport.Status)
	default:
		return fmt.Errorf("%s failed: %w", op, err)
	}
}
