package record

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/info-backend/internal/domain"
)

// PatchRecord applies the patchable members of input.Fields.
// Unknown and read-only members are dropped without error.
func (s *Service) PatchRecord(ctx context.Context, input PatchRecordInput) (*domain.Record, error) {
	recordID, err := domain.ParseRecordID(input.ID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]gjson.Result, len(patchableFields))
	var ignored []string
	for key, v := range input.Fields {
		if patchableFields[key] {
			fields[key] = v
			continue
		}
		ignored = append(ignored, key)
	}
	if len(ignored) > 0 {
		sort.Strings(ignored)
		s.log.DebugContext(ctx, "patch fields ignored",
			slog.String("record_id", recordID.String()),
			slog.Any("fields", ignored),
		)
	}

	upd, err := buildUpdate(fields)
	if err != nil {
		return nil, err
	}

	updated, err := s.records.UpdateFields(ctx, recordID, upd)
	if err != nil {
		return nil, fmt.Errorf("patch record: %w", err)
	}

	s.log.InfoContext(ctx, "record patched",
		slog.String("record_id", updated.ID.String()),
	)

	return updated, nil
}
