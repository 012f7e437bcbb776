package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KafClaw/missionctl/internal/avatar"
	"github.com/KafClaw/missionctl/internal/config"
	"github.com/KafClaw/missionctl/internal/notify"
)

var (
	avatarsOut  string
	avatarsOnly string
)

// avatarOptions lets tests inject a fake doer and clock.
var avatarOptions []avatar.Option

var avatarsCmd = &cobra.Command{
	Use:   "avatars",
	Short: "Generate agent avatar images",
}

var avatarsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List avatar jobs and their target files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, j := range avatar.DefaultJobs() {
			fmt.Fprintf(out, "%-14s %s\n", j.ID, j.FileName())
		}
	},
}

var avatarsFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch avatars from the image service into the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := avatar.FilterJobs(avatar.DefaultJobs(), splitList(avatarsOnly))
		if err != nil {
			return err
		}
		outDir := avatarsOut
		if outDir == "" {
			outDir = cfg.Paths.AvatarDir
		}
		outDir, err = config.ExpandHome(outDir)
		if err != nil {
			return err
		}

		if err := ensureDir(outDir); err != nil {
			return err
		}
		lock := avatar.NewDirLock(outDir)
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("lock %s: %w", outDir, err)
		}
		if !locked {
			return fmt.Errorf("another avatar run is writing to %s", outDir)
		}
		defer lock.Unlock()

		out := cmd.OutOrStdout()
		printHeader(out, "🎨 Avatar Fetch")
		opts := append([]avatar.Option{avatar.WithOutput(out)}, avatarOptions...)
		f := avatar.New(cfg.Avatar, outDir, opts...)
		rep, err := f.Run(cmd.Context(), jobs)
		if err != nil {
			return err
		}

		if cfg.Slack.Enabled {
			if n, err := notify.NewSlackNotifier(cfg.Slack); err != nil {
				slog.Warn("Slack notify disabled", "error", err)
			} else if err := n.PostReport(cmd.Context(), rep); err != nil {
				slog.Warn("Slack notify failed", "run_id", rep.RunID, "error", err)
			}
		}
		return rep.Err()
	},
}

func init() {
	avatarsFetchCmd.Flags().StringVar(&avatarsOut, "out", "", "Output directory (default from config)")
	avatarsFetchCmd.Flags().StringVar(&avatarsOnly, "only", "", "Comma-separated job ids to fetch")

	avatarsCmd.AddCommand(avatarsListCmd)
	avatarsCmd.AddCommand(avatarsFetchCmd)
}
