package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/info-backend/internal/adapter/memory/record"
	"github.com/heartmarshall/info-backend/internal/adapter/postgres"
	pgrecord "github.com/heartmarshall/info-backend/internal/adapter/postgres/record"
	"github.com/heartmarshall/info-backend/internal/adapter/sqlite"
	sqliterecord "github.com/heartmarshall/info-backend/internal/adapter/sqlite/record"
	"github.com/heartmarshall/info-backend/internal/config"
	"github.com/heartmarshall/info-backend/internal/domain"
)

// recordStore is the method set every record store backend provides.
type recordStore interface {
	Insert(ctx context.Context, rec *domain.Record) (*domain.Record, error)
	FindAll(ctx context.Context, filter domain.RecordFilter) ([]*domain.Record, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	UpdateFields(ctx context.Context, id uuid.UUID, upd domain.RecordUpdate) (*domain.Record, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// openStore connects the configured backend and, when enabled, applies
// pending migrations. The returned func releases the backend.
func openStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (recordStore, func(), error) {
	driver := cfg.NormalizedDriver()

	switch driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.AutoMigrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migrate postgres: %w", err)
			}
			logMigrated(ctx, log, driver, applied)
		}
		return pgrecord.New(pool), pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if cfg.AutoMigrate {
			applied, err := sqlite.Migrate(ctx, db)
			if err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
			}
			logMigrated(ctx, log, driver, applied)
		}
		return sqliterecord.New(db), func() { _ = db.Close() }, nil

	case config.DriverMemory:
		log.WarnContext(ctx, "using in-memory record store, data is lost on restart")
		return record.New(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func logMigrated(ctx context.Context, log *slog.Logger, driver string, applied int) {
	log.InfoContext(ctx, "migrations applied",
		slog.String("driver", driver),
		slog.Int("applied", applied),
	)
}
