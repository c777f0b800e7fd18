package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/library-backend/internal/domain"
	"github.com/heartmarshall/library-backend/internal/service/overdue"
)

// Dashboard collects the overview figures. The queries are independent and
// run concurrently; the first failure cancels the rest.
func (s *Service) Dashboard(ctx context.Context, asOf time.Time) (domain.Dashboard, error) {
	if asOf.IsZero() {
		return domain.Dashboard{}, domain.NewValidationError("as_of", "required")
	}

	d := domain.Dashboard{AsOf: asOf}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		totals, err := s.stats.Totals(gctx)
		if err != nil {
			return fmt.Errorf("totals: %w", err)
		}
		d.Totals = totals
		return nil
	})

	g.Go(func() error {
		popular, err := s.stats.PopularBooks(gctx, s.cfg.PopularLimit)
		if err != nil {
			return fmt.Errorf("popular books: %w", err)
		}
		d.PopularBooks = popular
		return nil
	})

	g.Go(func() error {
		lends, err := s.lends.ListActiveDueBefore(gctx, asOf)
		if err != nil {
			return fmt.Errorf("overdue lends: %w", err)
		}
		d.Overdue = overdue.Bucketize(asOf, lends)
		return nil
	})

	g.Go(func() error {
		n, err := s.stats.CountUnreturnedSince(gctx, asOf.Add(-s.cfg.RecentUnreturnedWindow))
		if err != nil {
			return fmt.Errorf("recent unreturned: %w", err)
		}
		d.RecentUnreturned = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Dashboard{}, err
	}

	s.log.DebugContext(ctx, "dashboard built",
		slog.Int("overdue", d.Overdue.Total()),
		slog.Int("popular", len(d.PopularBooks)),
	)

	return d, nil
}
