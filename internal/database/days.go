package database

import (
	"context"
	"fmt"
)

// UpsertDay inserts or updates a days_status row keyed by id.
func (db *DB) UpsertDay(ctx context.Context, row DayRow) error {
	query := `
		INSERT INTO days_status (id, date, work_off, stream_off, will, memo)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			date       = EXCLUDED.date,
			work_off   = EXCLUDED.work_off,
			stream_off = EXCLUDED.stream_off,
			will       = EXCLUDED.will,
			memo       = EXCLUDED.memo
	`
	if _, err := db.conn.ExecContext(ctx, query,
		row.ID, row.Date, row.WorkOff, row.StreamOff, row.Will, row.Memo); err != nil {
		return fmt.Errorf("database: upsert day: %w", err)
	}
	return nil
}

// DayIDs returns every id currently in days_status.
func (db *DB) DayIDs(ctx context.Context) ([]string, error) {
	return db.selectIDs(ctx, `SELECT id FROM days_status`)
}

// DeleteDaysByIDs bulk-deletes days_status rows.
func (db *DB) DeleteDaysByIDs(ctx context.Context, ids []string) error {
	return db.deleteByIDs(ctx, "days_status", "id", ids)
}

// ListDays returns all days_status rows ordered by date.
func (db *DB) ListDays(ctx context.Context) ([]DayRow, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), work_off, stream_off, will, memo
		FROM days_status ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("database: list days: %w", err)
	}
	defer rows.Close()

	var out []DayRow
	for rows.Next() {
		var r DayRow
		if err := rows.Scan(&r.ID, &r.Date, &r.WorkOff, &r.StreamOff, &r.Will, &r.Memo); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
