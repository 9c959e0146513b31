package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/info-backend/internal/domain"
)

var recordColumns = []string{"id", "name", "age", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		mock.Close()
	})
	return New(mock), mock
}

func TestRepo_Insert(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "returns stored row",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(recordColumns).AddRow(id, "Bob", 40, now, now)
				mock.ExpectQuery(`INSERT INTO records \(name,age\) VALUES \(\$1,\$2\) RETURNING`).
					WithArgs("Bob", 40).
					WillReturnRows(rows)
			},
		},
		{
			name: "check violation maps to validation",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO records`).
					WithArgs("Bob", 40).
					WillReturnError(&pgconn.PgError{Code: "23514"})
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "connection loss maps to unavailable",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO records`).
					WithArgs("Bob", 40).
					WillReturnError(&pgconn.PgError{Code: "08006"})
			},
			wantErr: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			got, err := repo.Insert(context.Background(), &domain.Record{Name: "Bob", Age: 40})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Insert() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Insert() unexpected error: %v", err)
			}
			if got.ID != id || got.Name != "Bob" || got.Age != 40 {
				t.Errorf("Insert() = %+v", got)
			}
			if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
				t.Errorf("Insert() timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, now)
			}
		})
	}
}

func TestRepo_FindAll(t *testing.T) {
	now := time.Now().UTC()
	older, newer := uuid.New(), uuid.New()

	t.Run("no filter", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		rows := pgxmock.NewRows(recordColumns).
			AddRow(newer, "Bobby", 12, now, now).
			AddRow(older, "Bob", 40, now.Add(-time.Minute), now.Add(-time.Minute))
		mock.ExpectQuery(`SELECT id, name, age, created_at, updated_at FROM records ORDER BY created_at DESC, seq DESC`).
			WillReturnRows(rows)

		got, err := repo.FindAll(context.Background(), domain.RecordFilter{})
		if err != nil {
			t.Fatalf("FindAll() unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].ID != newer || got[1].ID != older {
			t.Errorf("FindAll() order = %v", got)
		}
	})

	t.Run("search uses escaped ILIKE", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`FROM records WHERE name ILIKE \$1 ORDER BY`).
			WithArgs(`%50\%%`).
			WillReturnRows(pgxmock.NewRows(recordColumns))

		got, err := repo.FindAll(context.Background(), domain.RecordFilter{Search: "50%"})
		if err != nil {
			t.Fatalf("FindAll() unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("FindAll() = %v, want empty non-nil slice", got)
		}
	})

	t.Run("row error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		rows := pgxmock.NewRows(recordColumns).
			AddRow(newer, "Bobby", 12, now, now).
			RowError(0, errors.New("stream broke"))
		mock.ExpectQuery(`SELECT`).WillReturnRows(rows)

		if _, err := repo.FindAll(context.Background(), domain.RecordFilter{}); err == nil {
			t.Fatal("FindAll() expected error")
		}
	})
}

func TestRepo_FindByID(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT .+ FROM records WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(recordColumns).AddRow(id, "Bob", 40, now, now))

		got, err := repo.FindByID(context.Background(), id)
		if err != nil {
			t.Fatalf("FindByID() unexpected error: %v", err)
		}
		if got.ID != id {
			t.Errorf("FindByID() id = %v, want %v", got.ID, id)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT`).WithArgs(id).WillReturnError(pgx.ErrNoRows)

		_, err := repo.FindByID(context.Background(), id)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("FindByID() error = %v, want ErrNotFound", err)
		}
	})
}

func TestRepo_UpdateFields(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()
	name, age := "Alice", 41

	tests := []struct {
		name  string
		upd   domain.RecordUpdate
		query string
		args  []any
	}{
		{
			name:  "both fields",
			upd:   domain.RecordUpdate{Name: &name, Age: &age},
			query: `UPDATE records SET updated_at = GREATEST\(now\(\), created_at\), name = \$1, age = \$2 WHERE id = \$3 RETURNING`,
			args:  []any{name, age, id},
		},
		{
			name:  "age only",
			upd:   domain.RecordUpdate{Age: &age},
			query: `UPDATE records SET updated_at = GREATEST\(now\(\), created_at\), age = \$1 WHERE id = \$2`,
			args:  []any{age, id},
		},
		{
			name:  "empty update only touches updated_at",
			upd:   domain.RecordUpdate{},
			query: `UPDATE records SET updated_at = GREATEST\(now\(\), created_at\) WHERE id = \$1`,
			args:  []any{id},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectQuery(tt.query).
				WithArgs(tt.args...).
				WillReturnRows(pgxmock.NewRows(recordColumns).AddRow(id, name, age, now, now.Add(time.Second)))

			got, err := repo.UpdateFields(context.Background(), id, tt.upd)
			if err != nil {
				t.Fatalf("UpdateFields() unexpected error: %v", err)
			}
			if got.UpdatedAt.Before(got.CreatedAt) {
				t.Errorf("UpdateFields() updatedAt %v before createdAt %v", got.UpdatedAt, got.CreatedAt)
			}
		})
	}

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`UPDATE records`).WithArgs(age, id).WillReturnError(pgx.ErrNoRows)

		_, err := repo.UpdateFields(context.Background(), id, domain.RecordUpdate{Age: &age})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("UpdateFields() error = %v, want ErrNotFound", err)
		}
	})
}

func TestRepo_DeleteByID(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "not found", affected: 0, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec(`DELETE FROM records WHERE id = \$1`).
				WithArgs(id).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			err := repo.DeleteByID(context.Background(), id)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("DeleteByID() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("DeleteByID() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRepo_Ping(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectPing()

		if err := repo.Ping(context.Background()); err != nil {
			t.Fatalf("Ping() unexpected error: %v", err)
		}
	})

	t.Run("down", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectPing().WillReturnError(errors.New("dial tcp: connection refused"))

		if err := repo.Ping(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("Ping() error = %v, want ErrStoreUnavailable", err)
		}
	})
}
