package stats

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/library-backend/internal/domain"
	"github.com/heartmarshall/library-backend/internal/service/overdue"
)

// ListOverdue returns the loans overdue at asOf with reader and book display
// fields, most overdue first. Ties break on lend creation time, then lend id.
// Calling it twice with the same asOf and no writes in between gives the same
// list.
func (s *Service) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueEntry, error) {
	if asOf.IsZero() {
		return nil, domain.NewValidationError("as_of", "required")
	}

	active, err := s.lends.ListActiveDueBefore(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("list active lends: %w", err)
	}
	lends := overdue.Evaluate(asOf, active)
	if len(lends) == 0 {
		return []domain.OverdueEntry{}, nil
	}

	l := s.newLoaders()
	readerThunks := make([]dataloader.Thunk[domain.Reader], len(lends))
	bookThunks := make([]dataloader.Thunk[domain.Book], len(lends))
	for i, lend := range lends {
		readerThunks[i] = l.readers.Load(ctx, lend.ReaderID)
		bookThunks[i] = l.books.Load(ctx, lend.BookID)
	}

	entries := make([]domain.OverdueEntry, len(lends))
	for i, lend := range lends {
		reader, err := readerThunks[i]()
		if err != nil {
			return nil, fmt.Errorf("load reader %s: %w", lend.ReaderID, err)
		}
		book, err := bookThunks[i]()
		if err != nil {
			return nil, fmt.Errorf("load book %s: %w", lend.BookID, err)
		}

		entries[i] = domain.OverdueEntry{
			LendID:      lend.ID,
			ReaderID:    lend.ReaderID,
			CardNo:      reader.CardNo,
			ReaderName:  reader.Name,
			BookID:      lend.BookID,
			ISBN:        book.ISBN,
			Title:       book.Title,
			Outstanding: lend.Outstanding(),
			BorrowedAt:  lend.CreatedAt,
			DueDate:     lend.DueDate,
			DaysOverdue: overdue.DaysOverdue(asOf, lend.DueDate),
		}
	}

	slices.SortStableFunc(entries, func(a, b domain.OverdueEntry) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		if c := a.BorrowedAt.Compare(b.BorrowedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.LendID[:], b.LendID[:])
	})

	return entries, nil
}
