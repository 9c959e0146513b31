// Package record implements the record store on PostgreSQL.
// Every operation is a single statement, so each one is atomic on its own.
package record

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/info-backend/internal/adapter/postgres"
	"github.com/heartmarshall/info-backend/internal/domain"
)

const (
	table  = "records"
	entity = "record"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	columns   = []string{"id", "name", "age", "created_at", "updated_at"}
	returning = "RETURNING id, name, age, created_at, updated_at"
)

// Repo provides record persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new record repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Insert stores a new record. The database assigns id and both timestamps.
func (r *Repo) Insert(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	query, args, err := psql.Insert(table).
		Columns("name", "age").
		Values(rec.Name, rec.Age).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert record: %w", err)
	}

	created, err := scanRecord(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	return created, nil
}

// FindAll returns the records matching filter, newest first.
// Records created in the same instant keep insertion order via seq.
func (r *Repo) FindAll(ctx context.Context, filter domain.RecordFilter) ([]*domain.Record, error) {
	b := psql.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "seq DESC")
	if filter.Search != "" {
		b = b.Where(sq.ILike{"name": filter.LikePattern()})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find records: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, table, uuid.Nil)
	}
	defer rows.Close()

	records := make([]*domain.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, postgres.MapError(err, table, uuid.Nil)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, table, uuid.Nil)
	}

	return records, nil
}

// FindByID returns the record with the given id or domain.ErrNotFound.
func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find record: %w", err)
	}

	rec, err := scanRecord(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return rec, nil
}

// UpdateFields overwrites the set fields of upd and refreshes updated_at.
// An empty update still refreshes updated_at.
func (r *Repo) UpdateFields(ctx context.Context, id uuid.UUID, upd domain.RecordUpdate) (*domain.Record, error) {
	b := psql.Update(table).Set("updated_at", sq.Expr("GREATEST(now(), created_at)"))
	if upd.Name != nil {
		b = b.Set("name", *upd.Name)
	}
	if upd.Age != nil {
		b = b.Set("age", *upd.Age)
	}

	query, args, err := b.Where(sq.Eq{"id": id}).Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update record: %w", err)
	}

	rec, err := scanRecord(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return rec, nil
}

// DeleteByID removes the record or returns domain.ErrNotFound.
func (r *Repo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete record: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, id)
	}
	return nil
}

// Ping checks that the database answers.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.q.Ping(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("ping records store: %w", err)
		}
		return fmt.Errorf("ping records store: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.Record, error) {
	var rec domain.Record
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Age, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
