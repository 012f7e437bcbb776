package mcschema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Apply creates the schema's tables in the SQLite database at dbPath,
// creating the file if needed. Existing tables are left untouched.
func Apply(ctx context.Context, dbPath string, s Schema) error {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("open store db: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, s.SQLiteDDL()); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	slog.Info("Mission Control schema applied", "db", dbPath, "collections", len(s.Collections))
	return nil
}

// Tables lists the user tables present in the SQLite database at dbPath.
func Tables(ctx context.Context, dbPath string) ([]string, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
