package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/info-backend/internal/domain"
)

// ReplaceRecord overwrites the fields present in input and leaves the others.
// Either every provided field is valid and applied, or none is.
func (s *Service) ReplaceRecord(ctx context.Context, input ReplaceRecordInput) (*domain.Record, error) {
	recordID, err := domain.ParseRecordID(input.ID)
	if err != nil {
		return nil, err
	}

	upd, err := input.update()
	if err != nil {
		return nil, err
	}

	updated, err := s.records.UpdateFields(ctx, recordID, upd)
	if err != nil {
		return nil, fmt.Errorf("replace record: %w", err)
	}

	s.log.InfoContext(ctx, "record replaced",
		slog.String("record_id", updated.ID.String()),
	)

	return updated, nil
}
