package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/info-backend/internal/domain"
)

// CreateRecord validates the payload and stores a new record.
// Nothing reaches the store when validation fails.
func (s *Service) CreateRecord(ctx context.Context, input CreateRecordInput) (*domain.Record, error) {
	rec, err := input.record()
	if err != nil {
		return nil, err
	}

	created, err := s.records.Insert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	s.log.InfoContext(ctx, "record created",
		slog.String("record_id", created.ID.String()),
		slog.Int("age", created.Age),
	)

	return created, nil
}
