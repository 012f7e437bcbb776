package cli

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KafClaw/missionctl/internal/config"
	"github.com/KafClaw/missionctl/internal/squad"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/KafClaw/missionctl/internal/cli.version=1.2.3"
	version = "0.4.0"
	logo    = "\n" +
		"  _ __ ___ (_)___ ___(_) ___  _ __   ___| |_| |\n" +
		" | '_ ` _ \\| / __/ __| |/ _ \\| '_ \\ / __| __| |\n" +
		" | | | | | | \\__ \\__ \\ | (_) | | | | (__| |_| |\n" +
		" |_| |_| |_|_|___/___/_|\\___/|_| |_|\\___|\\__|_|\n"
)

var verbose bool

// Populated by PersistentPreRunE before any subcommand runs.
var (
	registry *squad.Registry
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "missionctl",
	Short:        "missionctl - Mission Control squad tooling",
	Long:         color.CyanString(logo) + "\nPersona registry, avatar fetcher and Mission Control schema for the agent squad.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		reg, err := squad.Default()
		if err != nil {
			return err
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		registry, cfg = reg, loaded
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(squadCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(avatarsCmd)
}
