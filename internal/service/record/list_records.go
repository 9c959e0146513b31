package record

import (
	"context"
	"fmt"

	"github.com/heartmarshall/info-backend/internal/domain"
)

// ListRecords returns records whose name contains input.Search in any letter
// case, newest first. The result is never nil.
func (s *Service) ListRecords(ctx context.Context, input ListRecordsInput) ([]*domain.Record, error) {
	if err := input.validate(s.maxSearchLength); err != nil {
		return nil, err
	}

	records, err := s.records.FindAll(ctx, domain.RecordFilter{Search: input.Search})
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	if records == nil {
		records = []*domain.Record{}
	}

	return records, nil
}
