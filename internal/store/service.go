// Package store seeds and reads a local SQLite copy of the Mission Control
// store: the agents table and the activity feed.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/KafClaw/missionctl/internal/mcschema"
	"github.com/KafClaw/missionctl/internal/squad"
)

// Activity types accepted by the activities table.
const (
	ActivityTaskCreated        = "task_created"
	ActivityMessageSent        = "message_sent"
	ActivityDocumentCreated    = "document_created"
	ActivityAgentStatusChanged = "agent_status_changed"
)

// Keep only the most recent activities, like the feed the dashboard reads.
const maxActivities = 1000

type Service struct {
	db  *sql.DB
	now func() time.Time
}

// Activity is one entry of the activity feed.
type Activity struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	AgentID   string         `json:"agent_id"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
}

// AgentRow is an agents table row.
type AgentRow struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Status        string   `json:"status"`
	SessionKey    string   `json:"session_key"`
	Tools         []string `json:"tools"`
	LastHeartbeat string   `json:"last_heartbeat,omitempty"`
}

// SeedResult lists which agents were inserted and which already existed.
type SeedResult struct {
	Inserted []string
	Updated  []string
}

// Open opens (or creates) the store at dbPath and applies the Mission
// Control tables.
func Open(ctx context.Context, dbPath string) (*Service, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open store db: %w", err)
	}
	if _, err := db.ExecContext(ctx, mcschema.MissionControl().SQLiteDDL()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Service{db: db, now: time.Now}, nil
}

func (s *Service) Close() error {
	return s.db.Close()
}

// SeedAgents upserts the roster into the agents table. New agents start idle
// and get an agent_status_changed activity; existing rows keep their status
// and only have their descriptive columns refreshed.
func (s *Service) SeedAgents(ctx context.Context, agents []squad.AgentRecord) (*SeedResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res := &SeedResult{}
	for _, a := range agents {
		tools, err := json.Marshal(a.Tools)
		if err != nil {
			return nil, err
		}

		var existing int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM agents WHERE id = ?`, a.ID).Scan(&existing); err != nil {
			return nil, fmt.Errorf("lookup agent %s: %w", a.ID, err)
		}
		if existing > 0 {
			if _, err := tx.ExecContext(ctx, `UPDATE agents SET name = ?, role = ?, session_key = ?, tools = ? WHERE id = ?`,
				a.Name, a.Role, a.SessionKey, string(tools), a.ID); err != nil {
				return nil, fmt.Errorf("update agent %s: %w", a.ID, err)
			}
			res.Updated = append(res.Updated, a.ID)
			continue
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO agents (id, name, role, status, session_key, tools) VALUES (?, ?, ?, 'idle', ?, ?)`,
			a.ID, a.Name, a.Role, a.SessionKey, string(tools)); err != nil {
			return nil, fmt.Errorf("insert agent %s: %w", a.ID, err)
		}
		act := &Activity{
			Type:     ActivityAgentStatusChanged,
			AgentID:  a.ID,
			Message:  fmt.Sprintf("Agent %s status updated to idle", a.ID),
			Metadata: map[string]any{"source": "seed", "model": a.Model},
		}
		if err := s.insertActivity(ctx, tx, act); err != nil {
			return nil, err
		}
		res.Inserted = append(res.Inserted, a.ID)
	}

	if err := s.trimActivities(ctx, tx); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// ListAgents returns all agent rows ordered by id.
func (s *Service) ListAgents(ctx context.Context) ([]AgentRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, COALESCE(name,''), COALESCE(role,''), status,
		COALESCE(session_key,''), tools, COALESCE(last_heartbeat,'')
		FROM agents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AgentRow
	for rows.Next() {
		var r AgentRow
		var tools string
		if err := rows.Scan(&r.ID, &r.Name, &r.Role, &r.Status, &r.SessionKey, &tools, &r.LastHeartbeat); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tools), &r.Tools); err != nil {
			return nil, fmt.Errorf("agent %s tools: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LogActivity appends one entry to the feed, filling in id and timestamp
// when they are empty.
func (s *Service) LogActivity(ctx context.Context, a *Activity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.insertActivity(ctx, tx, a); err != nil {
		return err
	}
	if err := s.trimActivities(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// ListActivities returns the most recent limit activities, oldest first.
func (s *Service) ListActivities(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, type, COALESCE(agent_id,''), COALESCE(message,''), timestamp, metadata
		FROM (SELECT rowid AS seq, * FROM activities ORDER BY seq DESC LIMIT ?) ORDER BY seq`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		var ts, meta string
		if err := rows.Scan(&a.ID, &a.Type, &a.AgentID, &a.Message, &ts, &meta); err != nil {
			return nil, err
		}
		if a.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("activity %s timestamp: %w", a.ID, err)
		}
		if err := json.Unmarshal([]byte(meta), &a.Metadata); err != nil {
			return nil, fmt.Errorf("activity %s metadata: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Service) insertActivity(ctx context.Context, tx *sql.Tx, a *Activity) error {
	if a.ID == "" {
		a.ID = "activity_" + uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = s.now().UTC()
	}
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	meta, err := json.Marshal(a.Metadata)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO activities (id, type, agent_id, message, timestamp, metadata) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Type, a.AgentID, a.Message, a.Timestamp.Format(time.RFC3339Nano), string(meta))
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (s *Service) trimActivities(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE rowid NOT IN
		(SELECT rowid FROM activities ORDER BY rowid DESC LIMIT ?)`, maxActivities)
	return err
}
