package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// Trend returns borrow and return events per UTC day in the inclusive range.
// Days without events are present with zero counts.
func (s *Service) Trend(ctx context.Context, r domain.DateRange) (domain.TrendSeries, error) {
	r = domain.NewDateRange(r.From, r.To)
	if err := validateRange(r, s.cfg.MaxTrendDays); err != nil {
		return domain.TrendSeries{}, err
	}

	borrows, err := s.stats.DailyBorrows(ctx, r.From, r.End())
	if err != nil {
		return domain.TrendSeries{}, fmt.Errorf("daily borrows: %w", err)
	}
	returns, err := s.stats.DailyReturns(ctx, r.From, r.End())
	if err != nil {
		return domain.TrendSeries{}, fmt.Errorf("daily returns: %w", err)
	}

	return domain.TrendSeries{Range: r, Points: zeroFill(r, borrows, returns)}, nil
}

func zeroFill(r domain.DateRange, borrows, returns []domain.DayCount) []domain.TrendPoint {
	byDay := func(counts []domain.DayCount) map[time.Time]int {
		m := make(map[time.Time]int, len(counts))
		for _, c := range counts {
			m[domain.TruncateDay(c.Date)] += c.Count
		}
		return m
	}
	b, rt := byDay(borrows), byDay(returns)

	points := make([]domain.TrendPoint, 0, r.Days())
	for d := r.From; d.Before(r.End()); d = d.AddDate(0, 0, 1) {
		points = append(points, domain.TrendPoint{Date: d, Borrows: b[d], Returns: rt[d]})
	}
	return points
}
