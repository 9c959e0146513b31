// Package record implements the record store on SQLite.
package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/info-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/info-backend/internal/domain"
)

const table = "records"

var (
	builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

	columns   = []string{"id", "name", "age", "created_at", "updated_at"}
	returning = "RETURNING id, name, age, created_at, updated_at"
)

// Repo provides record persistence backed by SQLite.
// Ids and timestamps are produced here since SQLite has no native types for them.
type Repo struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new record repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db, now: time.Now}
}

// Insert stores a new record with a fresh id and equal timestamps.
func (r *Repo) Insert(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	now := r.now().UTC()
	created := &domain.Record{
		ID:        uuid.New(),
		Name:      rec.Name,
		Age:       rec.Age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query, args, err := builder.Insert(table).
		Columns(columns...).
		Values(created.ID.String(), created.Name, created.Age, sqlite.FormatTime(now), sqlite.FormatTime(now)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert record: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, sqlite.MapError(err, "record")
	}
	return created, nil
}

// FindAll returns the records matching filter, newest first.
func (r *Repo) FindAll(ctx context.Context, filter domain.RecordFilter) ([]*domain.Record, error) {
	b := builder.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "seq DESC")
	if filter.Search != "" {
		b = b.Where(`lower(name) LIKE lower(?) ESCAPE '\'`, filter.LikePattern())
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find records: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, table)
	}
	defer rows.Close()

	records := make([]*domain.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, sqlite.MapError(err, table)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err, table)
	}

	return records, nil
}

// FindByID returns the record with the given id or domain.ErrNotFound.
func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	query, args, err := builder.Select(columns...).
		From(table).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find record: %w", err)
	}

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, subject(id))
	}
	return rec, nil
}

// UpdateFields overwrites the set fields of upd and refreshes updated_at,
// never letting it fall behind created_at.
func (r *Repo) UpdateFields(ctx context.Context, id uuid.UUID, upd domain.RecordUpdate) (*domain.Record, error) {
	b := builder.Update(table).
		Set("updated_at", sq.Expr("max(?, created_at)", sqlite.FormatTime(r.now())))
	if upd.Name != nil {
		b = b.Set("name", *upd.Name)
	}
	if upd.Age != nil {
		b = b.Set("age", *upd.Age)
	}

	query, args, err := b.Where(sq.Eq{"id": id.String()}).Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update record: %w", err)
	}

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, subject(id))
	}
	return rec, nil
}

// DeleteByID removes the record or returns domain.ErrNotFound.
func (r *Repo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query, args, err := builder.Delete(table).Where(sq.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete record: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, subject(id))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return sqlite.MapError(err, subject(id))
	}
	if n == 0 {
		return sqlite.MapError(sql.ErrNoRows, subject(id))
	}
	return nil
}

// Ping checks that the database file is usable.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("ping records store: %w", err)
		}
		return fmt.Errorf("ping records store: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func subject(id uuid.UUID) string {
	return "record " + id.String()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.Record, error) {
	var (
		rec                  domain.Record
		id, created, updated string
	)
	if err := row.Scan(&id, &rec.Name, &rec.Age, &created, &updated); err != nil {
		return nil, err
	}

	var err error
	if rec.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse stored id %q: %w", id, err)
	}
	if rec.CreatedAt, err = sqlite.ParseTime(created); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = sqlite.ParseTime(updated); err != nil {
		return nil, err
	}
	return &rec, nil
}
