package stats

import (
	"context"
	"fmt"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// GradeClassRollup returns per grade and class the active loans now and the
// loans and returns created within the range.
func (s *Service) GradeClassRollup(ctx context.Context, r domain.DateRange) ([]domain.RollupRow, error) {
	r = domain.NewDateRange(r.From, r.To)
	if err := validateRange(r, 0); err != nil {
		return nil, err
	}

	rows, err := s.stats.GradeClassRollup(ctx, r.From, r.End())
	if err != nil {
		return nil, fmt.Errorf("grade class rollup: %w", err)
	}
	return rows, nil
}
