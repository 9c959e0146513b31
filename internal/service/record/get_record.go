package record

import (
	"context"
	"fmt"

	"github.com/heartmarshall/info-backend/internal/domain"
)

// GetRecord returns a single record by its client-supplied id.
func (s *Service) GetRecord(ctx context.Context, id string) (*domain.Record, error) {
	recordID, err := domain.ParseRecordID(id)
	if err != nil {
		return nil, err
	}

	rec, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("find record: %w", err)
	}
	return rec, nil
}
