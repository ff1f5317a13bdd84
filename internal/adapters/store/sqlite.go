package store

import (
	"ciesta/internal/core/domain"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS users (
	position        INTEGER PRIMARY KEY,
	identity        TEXT NOT NULL UNIQUE,
	handle          TEXT NOT NULL,
	external_handle TEXT NOT NULL DEFAULT '',
	display_name    TEXT NOT NULL DEFAULT '',
	role            TEXT NOT NULL,
	registered_at   INTEGER NOT NULL,
	updated_at      INTEGER NOT NULL
)`

// SQLite keeps the registry in a users table. Row order is registration order.
type SQLite struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}

	dsn := clean + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create users table: %w", err)
	}

	return &SQLite{sqlDB: sqlDB}, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLite) Load(ctx context.Context) (domain.State, error) {
	if err := ctx.Err(); err != nil {
		return domain.State{}, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT identity, handle, external_handle, display_name, role,
		registered_at, updated_at FROM users ORDER BY position`)
	if err != nil {
		return domain.State{}, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var state domain.State
	for rows.Next() {
		var (
			u            domain.User
			role         string
			registeredAt int64
			updatedAt    int64
		)
		if err := rows.Scan(&u.Identity, &u.Handle, &u.ExternalHandle, &u.DisplayName, &role,
			&registeredAt, &updatedAt); err != nil {
			return domain.State{}, fmt.Errorf("scan user: %w", err)
		}

		u.Role = domain.ParseRole(role)
		u.RegisteredAt = fromMillis(registeredAt)
		u.UpdatedAt = fromMillis(updatedAt)
		state.Users = append(state.Users, u)
	}

	if err := rows.Err(); err != nil {
		return domain.State{}, fmt.Errorf("iterate users: %w", err)
	}

	return state, nil
}

// Save replaces every row inside one transaction.
func (s *SQLite) Save(ctx context.Context, state domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO users (position, identity, handle, external_handle,
		display_name, role, registered_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, u := range state.Users {
		if _, err := stmt.ExecContext(ctx, i, u.Identity, u.Handle, u.ExternalHandle, u.DisplayName,
			string(u.Role), toMillis(u.RegisteredAt), toMillis(u.UpdatedAt)); err != nil {
			return fmt.Errorf("insert user %s: %w", u.Identity, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit users: %w", err)
	}

	return nil
}
