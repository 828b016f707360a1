package database

import (
	"context"
	"fmt"
)

// UpsertScenario inserts or updates a scenario_info row keyed by id.
func (db *DB) UpsertScenario(ctx context.Context, row ScenarioRow) error {
	query := `
		INSERT INTO scenario_info (
			id, title, official_url, genre, memo,
			players, game_system, production, creator, duration,
			possible_gm, possible_stream, trailer_image
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id)
		DO UPDATE SET
			title           = EXCLUDED.title,
			official_url    = EXCLUDED.official_url,
			genre           = EXCLUDED.genre,
			memo            = EXCLUDED.memo,
			players         = EXCLUDED.players,
			game_system     = EXCLUDED.game_system,
			production      = EXCLUDED.production,
			creator         = EXCLUDED.creator,
			duration        = EXCLUDED.duration,
			possible_gm     = EXCLUDED.possible_gm,
			possible_stream = EXCLUDED.possible_stream,
			trailer_image   = EXCLUDED.trailer_image
	`
	if _, err := db.conn.ExecContext(ctx, query,
		row.ID, row.Title, row.OfficialURL, row.Genre, row.Memo,
		row.Players, row.GameSystem, row.Production, row.Creator, row.Duration,
		row.PossibleGM, row.PossibleStream, row.TrailerImage); err != nil {
		return fmt.Errorf("database: upsert scenario: %w", err)
	}
	return nil
}

// ScenarioIDs returns every id currently in scenario_info.
func (db *DB) ScenarioIDs(ctx context.Context) ([]string, error) {
	return db.selectIDs(ctx, `SELECT id FROM scenario_info`)
}

// DeleteScenariosByIDs bulk-deletes scenario_info rows.
func (db *DB) DeleteScenariosByIDs(ctx context.Context, ids []string) error {
	return db.deleteByIDs(ctx, "scenario_info", "id", ids)
}

// ListScenarios returns all scenario_info rows ordered by title.
func (db *DB) ListScenarios(ctx context.Context) ([]ScenarioRow, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, official_url, genre, memo,
		       players, game_system, production, creator, duration,
		       possible_gm, possible_stream, trailer_image
		FROM scenario_info ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("database: list scenarios: %w", err)
	}
	defer rows.Close()

	var out []ScenarioRow
	for rows.Next() {
		var r ScenarioRow
		if err := rows.Scan(&r.ID, &r.Title, &r.OfficialURL, &r.Genre, &r.Memo,
			&r.Players, &r.GameSystem, &r.Production, &r.Creator, &r.Duration,
			&r.PossibleGM, &r.PossibleStream, &r.TrailerImage); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
