package database

import (
	"context"
	"encoding/json"
	"fmt"
)

// UpsertSchedule inserts or updates a schedules row keyed by id. Members are
// stored as a jsonb array; a nil slice persists as [].
func (db *DB) UpsertSchedule(ctx context.Context, row ScheduleRow) error {
	members := row.Members
	if members == nil {
		members = []string{}
	}
	membersJSON, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("database: marshal members: %w", err)
	}

	query := `
		INSERT INTO schedules (
			id, content_type, content_id, status, date, label, start_time,
			position, role, members, pc_name, gmst_name, server,
			is_stream, stream_url, endcard_image, memo
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id)
		DO UPDATE SET
			content_type  = EXCLUDED.content_type,
			content_id    = EXCLUDED.content_id,
			status        = EXCLUDED.status,
			date          = EXCLUDED.date,
			label         = EXCLUDED.label,
			start_time    = EXCLUDED.start_time,
			position      = EXCLUDED.position,
			role          = EXCLUDED.role,
			members       = EXCLUDED.members,
			pc_name       = EXCLUDED.pc_name,
			gmst_name     = EXCLUDED.gmst_name,
			server        = EXCLUDED.server,
			is_stream     = EXCLUDED.is_stream,
			stream_url    = EXCLUDED.stream_url,
			endcard_image = EXCLUDED.endcard_image,
			memo          = EXCLUDED.memo
	`
	if _, err := db.conn.ExecContext(ctx, query,
		row.ID, row.ContentType, row.ContentID, row.Status, row.Date, row.Label,
		row.StartTime, row.Position, row.Role, string(membersJSON), row.PCName,
		row.GMSTName, row.Server, row.IsStream, row.StreamURL, row.EndcardImage,
		row.Memo); err != nil {
		return fmt.Errorf("database: upsert schedule: %w", err)
	}
	return nil
}

// ScheduleIDs returns every id currently in schedules.
func (db *DB) ScheduleIDs(ctx context.Context) ([]string, error) {
	return db.selectIDs(ctx, `SELECT id FROM schedules`)
}

// ScenarioScheduleIDs returns the ids of schedules whose content type is
// scenario; scenario_sessions is kept in lockstep with this set.
func (db *DB) ScenarioScheduleIDs(ctx context.Context) ([]string, error) {
	return db.selectIDs(ctx, `SELECT id FROM schedules WHERE content_type = 'scenario'`)
}

// DeleteSchedulesByIDs bulk-deletes schedules rows.
func (db *DB) DeleteSchedulesByIDs(ctx context.Context, ids []string) error {
	return db.deleteByIDs(ctx, "schedules", "id", ids)
}

// ListSchedules returns all schedules rows ordered by date then start time.
func (db *DB) ListSchedules(ctx context.Context) ([]ScheduleRow, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, content_type, content_id, status,
		       to_char(date, 'YYYY-MM-DD'), label, start_time,
		       position, role, members, pc_name, gmst_name, server,
		       is_stream, stream_url, endcard_image, memo
		FROM schedules
		ORDER BY date NULLS LAST, start_time NULLS LAST, id`)
	if err != nil {
		return nil, fmt.Errorf("database: list schedules: %w", err)
	}
	defer rows.Close()

	var out []ScheduleRow
	for rows.Next() {
		var r ScheduleRow
		var members []byte
		if err := rows.Scan(&r.ID, &r.ContentType, &r.ContentID, &r.Status,
			&r.Date, &r.Label, &r.StartTime, &r.Position, &r.Role, &members,
			&r.PCName, &r.GMSTName, &r.Server, &r.IsStream, &r.StreamURL,
			&r.EndcardImage, &r.Memo); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(members, &r.Members); err != nil {
			return nil, fmt.Errorf("database: unmarshal members: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
