package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/info-backend/internal/domain"
)

// DeleteRecord removes a record and returns its id.
func (s *Service) DeleteRecord(ctx context.Context, id string) (uuid.UUID, error) {
	recordID, err := domain.ParseRecordID(id)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.records.DeleteByID(ctx, recordID); err != nil {
		return uuid.Nil, fmt.Errorf("delete record: %w", err)
	}

	s.log.InfoContext(ctx, "record deleted",
		slog.String("record_id", recordID.String()),
	)

	return recordID, nil
}
