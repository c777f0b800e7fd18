package circulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// ReturnBook takes back Quantity copies of a book from a reader. A suspended
// or expired reader may still return. The return is apportioned over the
// reader's active lends first-due-first-out; one return record is created per
// lend touched and the records are returned in that order.
func (s *Service) ReturnBook(ctx context.Context, input ReturnInput) (records []domain.ReturnRecord, err error) {
	defer func() { s.metrics.Observe(opReturn, input.Quantity, err) }()

	if err := input.Validate(s.rules); err != nil {
		return nil, err
	}

	now := s.now()

	reader, err := s.resolveReader(ctx, input.CardNo)
	if err != nil {
		return nil, err
	}
	book, err := s.resolveBook(ctx, input.ISBN)
	if err != nil {
		return nil, err
	}

	comment := trimOrNil(input.Comment)

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		records = records[:0]

		lends, err := s.lends.LockActiveForReturn(ctx, reader.ID, book.ID)
		if err != nil {
			return fmt.Errorf("lock active lends: %w", err)
		}

		portions, err := apportion(lends, input.Quantity)
		if err != nil {
			return fmt.Errorf("card %q isbn %q: %w", reader.CardNo, book.ISBN, err)
		}

		for _, p := range portions {
			rr, err := s.applyPortion(ctx, p, input.OperatorID, comment, now)
			if err != nil {
				return err
			}
			records = append(records, rr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "book returned",
		slog.String("reader_id", reader.ID.String()),
		slog.String("book_id", book.ID.String()),
		slog.Int("quantity", input.Quantity),
		slog.Int("lends", len(records)),
	)

	return records, nil
}

func (s *Service) applyPortion(ctx context.Context, p portion, operatorID uuid.UUID, comment *string, now time.Time) (domain.ReturnRecord, error) {
	lend := p.lend

	rr := domain.ReturnRecord{
		ID:         uuid.New(),
		LendID:     lend.ID,
		Quantity:   p.quantity,
		OperatorID: operatorID,
		Status:     domain.ReturnStatusProcessed,
		Comment:    comment,
		CreatedAt:  now,
	}
	if err := s.returns.Create(ctx, rr); err != nil {
		return domain.ReturnRecord{}, fmt.Errorf("create return record: %w", err)
	}

	if err := s.ledger.Release(ctx, lend.BookID, p.quantity); err != nil {
		return domain.ReturnRecord{}, err
	}

	if lend.ApplyReturn(p.quantity, now) {
		if err := s.lends.UpdateStatus(ctx, lend.ID, domain.LendStatusReturned, now); err != nil {
			return domain.ReturnRecord{}, fmt.Errorf("close lend: %w", err)
		}
	}

	err := s.audit.Log(ctx, domain.AuditRecord{
		OperatorID: operatorID,
		EntityType: domain.EntityTypeReturn,
		EntityID:   &rr.ID,
		Action:     domain.AuditActionReturn,
		Changes: map[string]any{
			"lend_id":           lend.ID.String(),
			"quantity":          p.quantity,
			"returned_quantity": lend.ReturnedQuantity,
			"lend_status":       lend.Status.String(),
		},
		CreatedAt: now,
	})
	if err != nil {
		return domain.ReturnRecord{}, err
	}
	return rr, nil
}
