package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KafClaw/missionctl/internal/config"
	"github.com/KafClaw/missionctl/internal/mcschema"
	"github.com/KafClaw/missionctl/internal/store"
)

var (
	schemaShowFormat    string
	schemaApplyDB       string
	schemaActivityLimit int
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Mission Control store schema",
}

var schemaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Describe the Mission Control collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := mcschema.MissionControl()
		if !strings.EqualFold(schemaShowFormat, "text") {
			return writeFormatted(cmd.OutOrStdout(), schemaShowFormat, s)
		}
		out := cmd.OutOrStdout()
		for i, c := range s.Collections {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s (%s)\n", c.Name, c.Record)
			for _, f := range c.Fields {
				line := fmt.Sprintf("  %-14s %s", f.Name, f.Hint())
				if f.Note != "" {
					line += "  # " + f.Note
				}
				fmt.Fprintln(out, line)
			}
		}
		return nil
	},
}

var schemaDDLCmd = &cobra.Command{
	Use:   "ddl",
	Short: "Print SQLite DDL for the collections",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), mcschema.MissionControl().SQLiteDDL())
	},
}

var schemaApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create the collections as tables in a SQLite database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := storePath()
		if err != nil {
			return err
		}

		s := mcschema.MissionControl()
		if err := mcschema.Apply(cmd.Context(), dbPath, s); err != nil {
			return err
		}
		tables, err := mcschema.Tables(cmd.Context(), dbPath)
		if err != nil {
			return err
		}
		okLine(cmd.OutOrStdout(), "%s: %s", dbPath, strings.Join(tables, ", "))
		return nil
	},
}

var schemaSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the squad into the store's agents table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := storePath()
		if err != nil {
			return err
		}
		svc, err := store.Open(cmd.Context(), dbPath)
		if err != nil {
			return err
		}
		defer svc.Close()

		res, err := svc.SeedAgents(cmd.Context(), registry.Agents())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, id := range res.Inserted {
			okLine(out, "inserted %s", id)
		}
		for _, id := range res.Updated {
			fmt.Fprintf(out, "- refreshed %s\n", id)
		}
		return nil
	},
}

var schemaActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the store's most recent activities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := storePath()
		if err != nil {
			return err
		}
		svc, err := store.Open(cmd.Context(), dbPath)
		if err != nil {
			return err
		}
		defer svc.Close()

		acts, err := svc.ListActivities(cmd.Context(), schemaActivityLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, a := range acts {
			fmt.Fprintf(out, "%s  %-22s %-14s %s\n", a.Timestamp.Format(time.RFC3339), a.Type, a.AgentID, a.Message)
		}
		return nil
	},
}

// storePath resolves --db or the configured store and makes sure its
// directory exists.
func storePath() (string, error) {
	dbPath := schemaApplyDB
	if dbPath == "" {
		dbPath = cfg.Paths.StoreDB
	}
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return "", err
	}
	if err := ensureDir(filepath.Dir(dbPath)); err != nil {
		return "", err
	}
	return dbPath, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

func init() {
	schemaShowCmd.Flags().StringVar(&schemaShowFormat, "format", "text", "Output format: text, json or yaml")
	for _, c := range []*cobra.Command{schemaApplyCmd, schemaSeedCmd, schemaActivityCmd} {
		c.Flags().StringVar(&schemaApplyDB, "db", "", "SQLite database path (default from config)")
	}
	schemaActivityCmd.Flags().IntVar(&schemaActivityLimit, "limit", 20, "Number of activities to show")

	schemaCmd.AddCommand(schemaShowCmd)
	schemaCmd.AddCommand(schemaDDLCmd)
	schemaCmd.AddCommand(schemaApplyCmd)
	schemaCmd.AddCommand(schemaSeedCmd)
	schemaCmd.AddCommand(schemaActivityCmd)
}
