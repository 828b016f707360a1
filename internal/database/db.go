// Package database persists portal rows in PostgreSQL. All writes are
// primary-key upserts; deletes are bulk by id list, matching the pipeline's
// full-reconciliation model.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/starford/wunjo/internal/database/migrations"
)

// syncLockKey identifies the advisory lock guarding pipeline runs. Any two
// processes syncing against the same database contend on this key.
const syncLockKey = 0x77756E6A

// DB wraps a sql.DB with portal-specific operations.
type DB struct {
	conn *sql.DB

	// lockConn pins the advisory lock to one pooled connection; advisory
	// locks are session-scoped so acquire and release must share a session.
	lockConn *sql.Conn
}

// Open connects to PostgreSQL and applies pending migrations.
func Open(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database: dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, "."); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database: migrate: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	if db.lockConn != nil {
		_ = db.lockConn.Close()
		db.lockConn = nil
	}
	return db.conn.Close()
}

// AcquireSyncLock takes the cross-process sync lock. Returns false when
// another run already holds it.
func (db *DB) AcquireSyncLock(ctx context.Context) (bool, error) {
	c, err := db.conn.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("database: lock conn: %w", err)
	}
	var got bool
	if err := c.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, syncLockKey).Scan(&got); err != nil {
		_ = c.Close()
		return false, fmt.Errorf("database: acquire lock: %w", err)
	}
	if !got {
		_ = c.Close()
		return false, nil
	}
	db.lockConn = c
	return true, nil
}

// ReleaseSyncLock releases the sync lock taken by AcquireSyncLock.
func (db *DB) ReleaseSyncLock(ctx context.Context) error {
	if db.lockConn == nil {
		return nil
	}
	_, err := db.lockConn.ExecContext(ctx, `SELECT pg_advisory_unlock($1)`, syncLockKey)
	_ = db.lockConn.Close()
	db.lockConn = nil
	if err != nil {
		return fmt.Errorf("database: release lock: %w", err)
	}
	return nil
}

// selectIDs runs a single-column id query.
func (db *DB) selectIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("database: select ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// deleteByIDs issues a bulk delete by primary key. A no-op for empty ids.
func (db *DB) deleteByIDs(ctx context.Context, table, column string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s IN (%s)", table, column, strings.Join(placeholders, ", "))
	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("database: delete from %s: %w", table, err)
	}
	return nil
}
