package database

import (
	"context"
	"fmt"
)

// UpsertGame inserts or updates a game_info row keyed by id.
func (db *DB) UpsertGame(ctx context.Context, row GameRow) error {
	query := `
		INSERT INTO game_info (id, title, official_url, genre, memo)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			title        = EXCLUDED.title,
			official_url = EXCLUDED.official_url,
			genre        = EXCLUDED.genre,
			memo         = EXCLUDED.memo
	`
	if _, err := db.conn.ExecContext(ctx, query,
		row.ID, row.Title, row.OfficialURL, row.Genre, row.Memo); err != nil {
		return fmt.Errorf("database: upsert game: %w", err)
	}
	return nil
}

// GameIDs returns every id currently in game_info.
func (db *DB) GameIDs(ctx context.Context) ([]string, error) {
	return db.selectIDs(ctx, `SELECT id FROM game_info`)
}

// DeleteGamesByIDs bulk-deletes game_info rows.
func (db *DB) DeleteGamesByIDs(ctx context.Context, ids []string) error {
	return db.deleteByIDs(ctx, "game_info", "id", ids)
}

// ListGames returns all game_info rows ordered by title.
func (db *DB) ListGames(ctx context.Context) ([]GameRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, official_url, genre, memo FROM game_info ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("database: list games: %w", err)
	}
	defer rows.Close()

	var out []GameRow
	for rows.Next() {
		var r GameRow
		if err := rows.Scan(&r.ID, &r.Title, &r.OfficialURL, &r.Genre, &r.Memo); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
