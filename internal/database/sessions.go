package database

import (
	"context"
	"fmt"
)

// UpsertSession inserts or updates a scenario_sessions row. The conflict
// target is schedule_id, mirroring the destination table's unique key.
func (db *DB) UpsertSession(ctx context.Context, row SessionRow) error {
	query := `
		INSERT INTO scenario_sessions (id, schedule_id)
		VALUES ($1, $2)
		ON CONFLICT (schedule_id)
		DO UPDATE SET id = EXCLUDED.id
	`
	if _, err := db.conn.ExecContext(ctx, query, row.ID, row.ScheduleID); err != nil {
		return fmt.Errorf("database: upsert session: %w", err)
	}
	return nil
}

// SessionIDs returns every id currently in scenario_sessions.
func (db *DB) SessionIDs(ctx context.Context) ([]string, error) {
	return db.selectIDs(ctx, `SELECT id FROM scenario_sessions`)
}

// DeleteSessionsByIDs bulk-deletes scenario_sessions rows.
func (db *DB) DeleteSessionsByIDs(ctx context.Context, ids []string) error {
	return db.deleteByIDs(ctx, "scenario_sessions", "id", ids)
}

// ListSessions returns all scenario_sessions rows.
func (db *DB) ListSessions(ctx context.Context) ([]SessionRow, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, schedule_id FROM scenario_sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("database: list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var r SessionRow
		if err := rows.Scan(&r.ID, &r.ScheduleID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
