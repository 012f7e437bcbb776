package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KafClaw/missionctl/internal/group"
	"github.com/KafClaw/missionctl/internal/identity"
	"github.com/KafClaw/missionctl/internal/schedule"
	"github.com/KafClaw/missionctl/internal/squad"
)

var (
	squadExportFormat   string
	squadScheduleFrom   string
	squadScaffoldForce  bool
	squadPublishBrokers string
	squadPublishGroup   string
)

// newRosterWriter is swapped in tests.
var newRosterWriter = func(brokers []string, groupName string) (group.MessageWriter, error) {
	gc := cfg.Group
	gc.Brokers = brokers
	gc.GroupName = groupName
	return group.NewKafkaWriter(gc)
}

var squadCmd = &cobra.Command{
	Use:   "squad",
	Short: "Inspect the agent roster",
}

var squadListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents with role, model and heartbeat",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-14s %-14s %-22s %-10s %s\n", "ID", "NAME", "ROLE", "MODEL", "HEARTBEAT")
		for _, a := range registry.Agents() {
			fmt.Fprintf(out, "%-14s %-14s %-22s %-10s %s\n", a.ID, a.Name, a.Role, a.Model, a.Cron)
		}
	},
}

var squadShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one agent record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := registry.Agent(args[0])
		if !ok {
			return fmt.Errorf("unknown agent: %s (known: %s)", args[0], strings.Join(registry.IDs(), ", "))
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:          %s\n", a.ID)
		fmt.Fprintf(out, "Name:        %s\n", a.Name)
		fmt.Fprintf(out, "Role:        %s\n", a.Role)
		fmt.Fprintf(out, "Personality: %s\n", a.Personality)
		fmt.Fprintf(out, "Session:     %s\n", a.SessionKey)
		fmt.Fprintf(out, "Heartbeat:   %s (%s)\n", a.Cron, squad.HeartbeatJobName(a.ID))
		fmt.Fprintf(out, "Tools:       %s\n", strings.Join(a.Tools, ", "))
		fmt.Fprintf(out, "Specialty:   %s\n", a.Specialty)
		fmt.Fprintf(out, "Model:       %s\n", a.Model)
		return nil
	},
}

var squadSoulCmd = &cobra.Command{
	Use:   "soul <id>",
	Short: "Print an agent's soul document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		soul, ok := registry.Soul(args[0])
		if !ok {
			return fmt.Errorf("unknown agent: %s", args[0])
		}
		fmt.Fprint(cmd.OutOrStdout(), soul)
		return nil
	},
}

var squadValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check roster invariants",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// Registry construction already validated; report what was checked.
		out := cmd.OutOrStdout()
		okLine(out, "%d agents with unique ids and session keys", len(registry.IDs()))
		okLine(out, "soul documents match agent ids")
		okLine(out, "heartbeats staggered, no shared minutes")
		okLine(out, "standup cron %q valid", registry.StandupCron())
	},
}

type squadExport struct {
	Agents      []squad.AgentRecord `json:"agents" yaml:"agents"`
	StandupCron string              `json:"standup_cron" yaml:"standup_cron"`
}

var squadExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the roster as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := squadExport{Agents: registry.Agents(), StandupCron: registry.StandupCron()}
		return writeFormatted(cmd.OutOrStdout(), squadExportFormat, doc)
	},
}

var squadScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the next wake of every heartbeat and the standup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := time.Now()
		if squadScheduleFrom != "" {
			t, err := time.Parse(time.RFC3339, squadScheduleFrom)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			from = t
		}
		wakes, err := schedule.Plan(registry.CronJobs(), from)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, w := range wakes {
			fmt.Fprintf(out, "%-22s %-20s %s\n", w.Name, w.Expr, w.At.Format(time.RFC3339))
		}
		return nil
	},
}

var squadScaffoldCmd = &cobra.Command{
	Use:   "scaffold <dir>",
	Short: "Write <dir>/<id>/SOUL.md for every agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := identity.ScaffoldWorkspace(args[0], registry.IDs(), squadScaffoldForce)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range res.Created {
			okLine(out, "created %s", p)
		}
		for _, p := range res.Skipped {
			fmt.Fprintf(out, "- skipped %s (exists, use --force)\n", p)
		}
		for _, e := range res.Errors {
			failLine(out, "%s", e)
		}
		if len(res.Errors) > 0 {
			return fmt.Errorf("scaffold: %d errors", len(res.Errors))
		}
		return nil
	},
}

var squadPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Announce the roster on the group's Kafka control topic",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		brokers := cfg.Group.Brokers
		if squadPublishBrokers != "" {
			brokers = splitList(squadPublishBrokers)
		}
		groupName := cfg.Group.GroupName
		if squadPublishGroup != "" {
			groupName = squadPublishGroup
		}

		w, err := newRosterWriter(brokers, groupName)
		if err != nil {
			return err
		}
		pub := group.NewRosterPublisher(w, cfg.Group.SenderID)
		defer pub.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		n, err := pub.Publish(ctx, registry)
		if err != nil {
			return err
		}
		okLine(cmd.OutOrStdout(), "published %d agents to %s", n, group.RosterTopic(groupName))
		return nil
	},
}

func writeFormatted(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "", "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	squadExportCmd.Flags().StringVar(&squadExportFormat, "format", "json", "Output format: json or yaml")
	squadScheduleCmd.Flags().StringVar(&squadScheduleFrom, "from", "", "Compute wakes after this RFC3339 time (default now)")
	squadScaffoldCmd.Flags().BoolVar(&squadScaffoldForce, "force", false, "Overwrite existing SOUL.md files")
	squadPublishCmd.Flags().StringVar(&squadPublishBrokers, "brokers", "", "Comma-separated Kafka brokers (default from config)")
	squadPublishCmd.Flags().StringVar(&squadPublishGroup, "group", "", "Group name (default from config)")

	squadCmd.AddCommand(squadListCmd)
	squadCmd.AddCommand(squadShowCmd)
	squadCmd.AddCommand(squadSoulCmd)
	squadCmd.AddCommand(squadValidateCmd)
	squadCmd.AddCommand(squadExportCmd)
	squadCmd.AddCommand(squadScheduleCmd)
	squadCmd.AddCommand(squadScaffoldCmd)
	squadCmd.AddCommand(squadPublishCmd)
}
