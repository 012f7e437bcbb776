package mcschema

import (
	"context"
	"database/sql"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestMissionControlCollections(t *testing.T) {
	s := MissionControl()
	want := []string{"agents", "tasks", "messages", "activities", "documents", "notifications"}
	if !slices.Equal(s.Names(), want) {
		t.Errorf("Names = %v, want %v", s.Names(), want)
	}

	records := map[string]string{}
	for _, c := range s.Collections {
		records[c.Name] = c.Record
	}
	if records["activities"] != "Activity" || records["notifications"] != "Notification" {
		t.Errorf("unexpected record names: %v", records)
	}
}

func TestFieldHints(t *testing.T) {
	s := MissionControl()
	tests := []struct {
		collection, field, hint string
	}{
		{"agents", "status", "idle | active | blocked"},
		{"agents", "last_heartbeat", "datetime"},
		{"tasks", "status", "inbox | assigned | in_progress | review | done | blocked"},
		{"tasks", "priority", "low | medium | high | urgent"},
		{"tasks", "assignee_ids", "array"},
		{"messages", "type", "comment | update | question | decision"},
		{"activities", "metadata", "object"},
		{"documents", "type", "deliverable | research | protocol | note"},
		{"notifications", "delivered", "boolean"},
	}
	for _, tc := range tests {
		c, ok := s.Collection(tc.collection)
		if !ok {
			t.Fatalf("collection %s missing", tc.collection)
		}
		f, ok := c.Field(tc.field)
		if !ok {
			t.Errorf("%s.%s missing", tc.collection, tc.field)
			continue
		}
		if f.Hint() != tc.hint {
			t.Errorf("%s.%s hint = %q, want %q", tc.collection, tc.field, f.Hint(), tc.hint)
		}
	}
}

func TestMissionControlReturnsFreshValue(t *testing.T) {
	a := MissionControl()
	a.Collections[0].Fields[2].Values[0] = "mutated"
	b := MissionControl()
	if b.Collections[0].Fields[2].Values[0] != "idle" {
		t.Error("schema definition shared between calls")
	}
}

func TestSQLiteDDL(t *testing.T) {
	ddl := MissionControl().SQLiteDDL()
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS agents (",
		"status TEXT NOT NULL DEFAULT 'idle' CHECK (status IN ('idle', 'active', 'blocked'))",
		"tools TEXT NOT NULL DEFAULT '[]'",
		"metadata TEXT NOT NULL DEFAULT '{}'",
		"delivered BOOLEAN NOT NULL DEFAULT 0",
		"due_date DATETIME",
	} {
		if !strings.Contains(ddl, want) {
			t.Errorf("DDL missing %q", want)
		}
	}
	if n := strings.Count(ddl, "CREATE TABLE"); n != 6 {
		t.Errorf("expected 6 tables, got %d", n)
	}
}

func TestApplyCreatesTables(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "mission.db")

	if err := Apply(ctx, dbPath, MissionControl()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// Second apply is a no-op.
	if err := Apply(ctx, dbPath, MissionControl()); err != nil {
		t.Fatalf("second Apply: %v", err)
	}

	tables, err := Tables(ctx, dbPath)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	want := []string{"activities", "agents", "documents", "messages", "notifications", "tasks"}
	if !slices.Equal(tables, want) {
		t.Errorf("tables = %v, want %v", tables, want)
	}
}

func TestApplyEnforcesEnums(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "mission.db")
	if err := Apply(ctx, dbPath, MissionControl()); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	db, err := sql.Open("sqlite", "file:"+dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO agents (id, name, status) VALUES ('dexter', 'Dexter', 'active')`); err != nil {
		t.Fatalf("valid insert failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO agents (id, name, status) VALUES ('mandark', 'Mandark', 'evil')`); err == nil {
		t.Error("insert with unknown status should violate the CHECK constraint")
	}
}
