package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		printHeader(out, "🏷️ missionctl Version")
		fmt.Fprintf(out, "Version: %s\n", version)
		fmt.Fprintf(out, "Agents:  %d\n", len(registry.IDs()))
	},
}
