package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Dialects supported by NewProvider, keyed by config driver name.
var dialects = map[string]struct {
	dialect goose.Dialect
	fsys    func() fs.FS
}{
	"postgres": {dialect: goose.DialectPostgres, fsys: Postgres},
	"sqlite":   {dialect: goose.DialectSQLite3, fsys: SQLite},
}

// NewProvider returns a goose provider for the given driver bound to db.
// goose.NewProvider handles $$-delimited bodies, unlike the legacy goose.Up.
func NewProvider(driver string, db *sql.DB) (*goose.Provider, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("migrations: unsupported driver %q", driver)
	}

	provider, err := goose.NewProvider(d.dialect, db, d.fsys())
	if err != nil {
		return nil, fmt.Errorf("migrations: new provider: %w", err)
	}
	return provider, nil
}

// Up applies every pending migration and returns how many were applied.
func Up(ctx context.Context, driver string, db *sql.DB) (int, error) {
	provider, err := NewProvider(driver, db)
	if err != nil {
		return 0, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations: up: %w", err)
	}
	return len(results), nil
}
