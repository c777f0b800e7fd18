package circulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// Borrow lends Quantity copies of a book to a reader. The stock reservation,
// the lend record and its audit entry commit together.
func (s *Service) Borrow(ctx context.Context, input BorrowInput) (lend domain.LendRecord, err error) {
	defer func() { s.metrics.Observe(opBorrow, input.Quantity, err) }()

	if err := input.Validate(s.rules); err != nil {
		return domain.LendRecord{}, err
	}

	now := s.now()

	reader, err := s.resolveReader(ctx, input.CardNo)
	if err != nil {
		return domain.LendRecord{}, err
	}
	if !reader.CanBorrow(now) {
		return domain.LendRecord{}, fmt.Errorf("card %q: %w", reader.CardNo, domain.ErrReaderSuspended)
	}

	book, err := s.resolveBook(ctx, input.ISBN)
	if err != nil {
		return domain.LendRecord{}, err
	}

	lend = domain.LendRecord{
		ID:         uuid.New(),
		BookID:     book.ID,
		ReaderID:   reader.ID,
		Quantity:   input.Quantity,
		DueDate:    s.dueDate(now, input.DueDays),
		Status:     domain.LendStatusActive,
		OperatorID: input.OperatorID,
		Comment:    trimOrNil(input.Comment),
		Audit:      domain.NewAudit(now),
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ledger.Reserve(ctx, book.ID, lend.Quantity); err != nil {
			return err
		}
		if err := s.lends.Create(ctx, lend); err != nil {
			return fmt.Errorf("create lend: %w", err)
		}
		return s.audit.Log(ctx, domain.AuditRecord{
			OperatorID: input.OperatorID,
			EntityType: domain.EntityTypeLend,
			EntityID:   &lend.ID,
			Action:     domain.AuditActionBorrow,
			Changes: map[string]any{
				"book_id":   book.ID.String(),
				"reader_id": reader.ID.String(),
				"quantity":  lend.Quantity,
				"due_date":  lend.DueDate.Format(time.RFC3339),
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return domain.LendRecord{}, err
	}

	s.log.InfoContext(ctx, "book lent",
		slog.String("lend_id", lend.ID.String()),
		slog.String("reader_id", reader.ID.String()),
		slog.String("book_id", book.ID.String()),
		slog.Int("quantity", lend.Quantity),
	)

	return lend, nil
}

func (s *Service) dueDate(now time.Time, dueDays *int) time.Time {
	if dueDays != nil {
		return now.AddDate(0, 0, *dueDays)
	}
	return now.Add(s.rules.LoanPeriod)
}
