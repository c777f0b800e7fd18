package circulation

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// historyLimit caps the audit entries fetched per entity.
const historyLimit = 50

// LendDetail returns a lend record, deleted or not, with its return records
// and the audit entries of the lend and of each return.
func (s *Service) LendDetail(ctx context.Context, id uuid.UUID) (domain.LendDetail, error) {
	lend, err := s.lends.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LendDetail{}, fmt.Errorf("lend %s: %w", id, domain.ErrNotFound)
		}
		return domain.LendDetail{}, fmt.Errorf("get lend: %w", err)
	}

	returns, err := s.returns.ListByLend(ctx, id)
	if err != nil {
		return domain.LendDetail{}, fmt.Errorf("list return records: %w", err)
	}

	// one history slot for the lend, then one per return record
	histories := make([][]domain.AuditRecord, len(returns)+1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.history.GetByEntity(gctx, domain.EntityTypeLend, id, historyLimit)
		histories[0] = recs
		return err
	})
	for i, rr := range returns {
		g.Go(func() error {
			recs, err := s.history.GetByEntity(gctx, domain.EntityTypeReturn, rr.ID, historyLimit)
			histories[i+1] = recs
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return domain.LendDetail{}, fmt.Errorf("load lend history: %w", err)
	}

	history := slices.Concat(histories...)
	slices.SortStableFunc(history, func(a, b domain.AuditRecord) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	return domain.LendDetail{Lend: lend, Returns: returns, History: history}, nil
}
