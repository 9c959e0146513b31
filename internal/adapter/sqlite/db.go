// Package sqlite holds the SQLite connection setup shared by the sqlite
// adapters. It uses the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/heartmarshall/info-backend/internal/config"
	"github.com/heartmarshall/info-backend/migrations"
)

// TimeLayout is how timestamps are stored. It is fixed width and always UTC,
// so text comparison orders the same way as time comparison.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA journal_mode = WAL",
}

// Open opens the database at dsn and applies connection pragmas.
// SQLite allows one writer at a time, so the pool is limited to a single
// connection. This also keeps ":memory:" databases from splitting per connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)

	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, MapError(fmt.Errorf("%s: %w", p, err), "database")
		}
	}

	return db, nil
}

// Migrate applies the embedded sqlite migrations and returns how many ran.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	return migrations.Up(ctx, config.DriverSQLite, db)
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime is the inverse of FormatTime.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}
