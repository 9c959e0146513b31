package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/info-backend/internal/domain"
)

// UniqueName returns prefix plus a short random suffix, so parallel tests
// sharing one database can search for their own rows only.
func UniqueName(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedRecord inserts a record with explicit timestamps and returns it.
// A zero createdAt means now.
func SeedRecord(t *testing.T, pool *pgxpool.Pool, name string, age int, createdAt time.Time) domain.Record {
	t.Helper()

	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	rec := domain.Record{
		Name:      name,
		Age:       age,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}
	rec.UpdatedAt = rec.CreatedAt

	err := pool.QueryRow(context.Background(),
		`INSERT INTO records (name, age, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		rec.Name, rec.Age, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedRecord: %v", err)
	}

	return rec
}
