package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/repository"

	_ "modernc.org/sqlite"
)

const settingsSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLitePreferences keeps preferences in a local settings table.
type SQLitePreferences struct {
	db *sql.DB
}

var _ repository.Preferences = (*SQLitePreferences)(nil)

// OpenSQLitePreferences opens (creating if needed) the database at path
// and ensures the settings table exists.
func OpenSQLitePreferences(ctx context.Context, path string) (*SQLitePreferences, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one writer avoids SQLITE_BUSY on concurrent upserts
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, settingsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate settings: %w", err)
	}
	return &SQLitePreferences{db: db}, nil
}

func (p *SQLitePreferences) Get(ctx context.Context, key string) (string, bool, error) {
	if !models.IsPreferenceKey(key) {
		return "", false, fmt.Errorf("%w: %s", repository.ErrUnknownPreference, key)
	}
	var value string
	err := p.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (p *SQLitePreferences) Set(ctx context.Context, key, value string) error {
	if !models.IsPreferenceKey(key) {
		return fmt.Errorf("%w: %s", repository.ErrUnknownPreference, key)
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

// All returns every stored known preference. Rows with retired keys are ignored.
func (p *SQLitePreferences) All(ctx context.Context) (map[string]string, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		if models.IsPreferenceKey(key) {
			out[key] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return out, nil
}

func (p *SQLitePreferences) Close() error {
	return p.db.Close()
}
