package record

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/info-backend/internal/domain"
)

type recordRepo interface {
	Insert(ctx context.Context, rec *domain.Record) (*domain.Record, error)
	FindAll(ctx context.Context, filter domain.RecordFilter) ([]*domain.Record, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	UpdateFields(ctx context.Context, id uuid.UUID, upd domain.RecordUpdate) (*domain.Record, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// DefaultMaxSearchLength applies when NewService gets a non-positive limit.
const DefaultMaxSearchLength = 200

// Service validates record payloads and drives the record store.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	records         recordRepo
	log             *slog.Logger
	maxSearchLength int
}

// NewService creates a new Record service.
func NewService(log *slog.Logger, records recordRepo, maxSearchLength int) *Service {
	if maxSearchLength <= 0 {
		maxSearchLength = DefaultMaxSearchLength
	}
	return &Service{
		records:         records,
		log:             log.With("service", "record"),
		maxSearchLength: maxSearchLength,
	}
}

// Ping reports whether the underlying store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.records.Ping(ctx)
}
