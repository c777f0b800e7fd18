// Package inventory owns the per-book stock counters. All mutations run
// inside the caller's transaction with the book row locked, so concurrent
// reservations of the same title are applied one at a time.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

type stockRepo interface {
	GetStock(ctx context.Context, bookID uuid.UUID) (domain.Stock, error)
	LockStock(ctx context.Context, bookID uuid.UUID) (domain.Stock, error)
	SetOnLoan(ctx context.Context, bookID uuid.UUID, onLoan int) error
}

// Ledger enforces 0 <= on loan <= total for every book.
type Ledger struct {
	stock stockRepo
	log   *slog.Logger
}

// NewLedger creates a new inventory ledger.
func NewLedger(log *slog.Logger, stock stockRepo) *Ledger {
	return &Ledger{
		stock: stock,
		log:   log.With("service", "inventory"),
	}
}

// Reserve moves qty copies of a book from the shelf to on-loan. It fails with
// domain.ErrInsufficientStock, leaving the counters untouched, when fewer than
// qty copies are available. Must be called inside a transaction.
func (l *Ledger) Reserve(ctx context.Context, bookID uuid.UUID, qty int) error {
	if qty < 1 {
		return domain.NewValidationError("quantity", "must be at least 1")
	}

	s, err := l.lock(ctx, bookID)
	if err != nil {
		return err
	}

	if s.Available() < qty {
		return fmt.Errorf("book %s: requested %d, available %d: %w", bookID, qty, s.Available(), domain.ErrInsufficientStock)
	}

	if err := l.stock.SetOnLoan(ctx, bookID, s.OnLoanCopies+qty); err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	return nil
}

// Release moves qty copies back to the shelf. Releasing more than is on loan
// is a logic error upstream: it fails with domain.ErrInvariantViolation and
// never clamps. Must be called inside a transaction.
func (l *Ledger) Release(ctx context.Context, bookID uuid.UUID, qty int) error {
	if qty < 1 {
		return domain.NewValidationError("quantity", "must be at least 1")
	}

	s, err := l.lock(ctx, bookID)
	if err != nil {
		return err
	}

	if s.OnLoanCopies-qty < 0 {
		l.log.ErrorContext(ctx, "stock release below zero",
			slog.String("book_id", bookID.String()),
			slog.Int("on_loan", s.OnLoanCopies),
			slog.Int("release", qty),
		)
		return fmt.Errorf("book %s: release %d with %d on loan: %w", bookID, qty, s.OnLoanCopies, domain.ErrInvariantViolation)
	}

	if err := l.stock.SetOnLoan(ctx, bookID, s.OnLoanCopies-qty); err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	return nil
}

// Available returns a read-only snapshot of the copies on the shelf.
func (l *Ledger) Available(ctx context.Context, bookID uuid.UUID) (int, error) {
	s, err := l.stock.GetStock(ctx, bookID)
	if err != nil {
		return 0, translateNotFound(err, bookID)
	}
	return s.Available(), nil
}

func (l *Ledger) lock(ctx context.Context, bookID uuid.UUID) (domain.Stock, error) {
	s, err := l.stock.LockStock(ctx, bookID)
	if err != nil {
		return domain.Stock{}, translateNotFound(err, bookID)
	}
	if !s.Valid() {
		return domain.Stock{}, fmt.Errorf("book %s: total %d, on loan %d: %w", bookID, s.TotalCopies, s.OnLoanCopies, domain.ErrInvariantViolation)
	}
	return s, nil
}

func translateNotFound(err error, bookID uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("book %s: %w", bookID, domain.ErrBookNotFound)
	}
	return fmt.Errorf("lock stock: %w", err)
}
