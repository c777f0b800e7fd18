package circulation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/domain"
	"github.com/heartmarshall/library-backend/internal/service/inventory"
)

// memStore is an in-memory stand-in for the circulation tables. RunInTx
// serializes transactions and restores a snapshot when fn fails, so tests can
// assert that a failed operation left no trace.
type memStore struct {
	mu sync.Mutex

	readers map[string]domain.Reader
	books   map[uuid.UUID]domain.Book
	lends   map[uuid.UUID]domain.LendRecord
	returns []domain.ReturnRecord
	audit   []domain.AuditRecord

	// failAudit makes the next audit write fail.
	failAudit error
}

func newMemStore() *memStore {
	return &memStore{
		readers: map[string]domain.Reader{},
		books:   map[uuid.UUID]domain.Book{},
		lends:   map[uuid.UUID]domain.LendRecord{},
	}
}

type memSnapshot struct {
	books   map[uuid.UUID]domain.Book
	lends   map[uuid.UUID]domain.LendRecord
	returns []domain.ReturnRecord
	audit   []domain.AuditRecord
}

func (s *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := memSnapshot{
		books:   maps.Clone(s.books),
		lends:   maps.Clone(s.lends),
		returns: slices.Clone(s.returns),
		audit:   slices.Clone(s.audit),
	}
	if err := fn(ctx); err != nil {
		s.books, s.lends, s.returns, s.audit = snap.books, snap.lends, snap.returns, snap.audit
		return err
	}
	return nil
}

// readers

func (s *memStore) GetByCardNo(_ context.Context, cardNo string) (domain.Reader, error) {
	r, ok := s.readers[cardNo]
	if !ok || r.IsDeleted() {
		return domain.Reader{}, fmt.Errorf("reader %s: %w", cardNo, domain.ErrNotFound)
	}
	return r, nil
}

// books

func (s *memStore) GetByISBN(_ context.Context, isbn string) (domain.Book, error) {
	for _, b := range s.books {
		if b.ISBN == isbn && !b.IsDeleted() {
			return b, nil
		}
	}
	return domain.Book{}, fmt.Errorf("book %s: %w", isbn, domain.ErrNotFound)
}

func (s *memStore) GetStock(_ context.Context, id uuid.UUID) (domain.Stock, error) {
	b, ok := s.books[id]
	if !ok {
		return domain.Stock{}, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	return domain.Stock{BookID: id, TotalCopies: b.TotalCopies, OnLoanCopies: b.OnLoanCopies}, nil
}

func (s *memStore) LockStock(ctx context.Context, id uuid.UUID) (domain.Stock, error) {
	return s.GetStock(ctx, id)
}

func (s *memStore) SetOnLoan(_ context.Context, id uuid.UUID, onLoan int) error {
	b, ok := s.books[id]
	if !ok {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	if onLoan < 0 || onLoan > b.TotalCopies {
		return fmt.Errorf("books_stock_check: %w", domain.ErrInvariantViolation)
	}
	b.OnLoanCopies = onLoan
	s.books[id] = b
	return nil
}

func (s *memStore) onLoan(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id].OnLoanCopies
}

// lends; memStore itself satisfies lendRepo through memLends to avoid the
// Create name clash with returns.

type memLends struct{ *memStore }

func (l memLends) Create(_ context.Context, rec domain.LendRecord) error {
	l.lends[rec.ID] = rec
	return nil
}

func (l memLends) UpdateStatus(_ context.Context, id uuid.UUID, status domain.LendStatus, now time.Time) error {
	rec, ok := l.lends[id]
	if !ok {
		return fmt.Errorf("lend %s: %w", id, domain.ErrNotFound)
	}
	rec.Status = status
	rec.UpdatedAt = now
	l.lends[id] = rec
	return nil
}

func (l memLends) LockActiveForReturn(_ context.Context, readerID, bookID uuid.UUID) ([]domain.LendRecord, error) {
	var out []domain.LendRecord
	for _, rec := range l.lends {
		if rec.ReaderID != readerID || rec.BookID != bookID || !rec.IsActive() {
			continue
		}
		rec.ReturnedQuantity = l.returnedOf(rec.ID)
		out = append(out, rec)
	}
	// Map iteration order is random; the service must impose FIFO itself.
	return out, nil
}

func (l memLends) GetByID(_ context.Context, id uuid.UUID) (domain.LendRecord, error) {
	rec, ok := l.lends[id]
	if !ok {
		return domain.LendRecord{}, fmt.Errorf("lend %s: %w", id, domain.ErrNotFound)
	}
	rec.ReturnedQuantity = l.returnedOf(id)
	return rec, nil
}

func (s *memStore) returnedOf(lendID uuid.UUID) int {
	n := 0
	for _, rr := range s.returns {
		if rr.LendID == lendID {
			n += rr.Quantity
		}
	}
	return n
}

func (s *memStore) lend(id uuid.UUID) domain.LendRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.lends[id]
	rec.ReturnedQuantity = s.returnedOf(id)
	return rec
}

// returns

type memReturns struct{ *memStore }

func (r memReturns) Create(_ context.Context, rr domain.ReturnRecord) error {
	if _, ok := r.lends[rr.LendID]; !ok {
		return fmt.Errorf("return record %s: %w", rr.ID, domain.ErrNotFound)
	}
	r.returns = append(r.returns, rr)
	return nil
}

func (r memReturns) ListByLend(_ context.Context, lendID uuid.UUID) ([]domain.ReturnRecord, error) {
	var out []domain.ReturnRecord
	for _, rr := range r.returns {
		if rr.LendID == lendID {
			out = append(out, rr)
		}
	}
	return out, nil
}

// audit

func (s *memStore) Log(_ context.Context, record domain.AuditRecord) error {
	if s.failAudit != nil {
		err := s.failAudit
		s.failAudit = nil
		return err
	}
	record.ID = uuid.New()
	s.audit = append(s.audit, record)
	return nil
}

func (s *memStore) GetByEntity(_ context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AuditRecord
	for i := len(s.audit) - 1; i >= 0 && len(out) < limit; i-- {
		rec := s.audit[i]
		if rec.EntityType == entityType && rec.EntityID != nil && *rec.EntityID == entityID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// seeding helpers

func (s *memStore) addReader(cardNo string, status domain.ReaderStatus) domain.Reader {
	r := domain.Reader{ID: uuid.New(), CardNo: cardNo, Name: "Reader " + cardNo, Status: status}
	s.readers[cardNo] = r
	return r
}

func (s *memStore) addBook(isbn string, total, onLoan int) domain.Book {
	b := domain.Book{ID: uuid.New(), Title: "Book " + isbn, ISBN: isbn, TotalCopies: total, OnLoanCopies: onLoan}
	s.books[b.ID] = b
	return b
}

func (s *memStore) addLend(reader domain.Reader, book domain.Book, qty int, created, due time.Time) domain.LendRecord {
	rec := domain.LendRecord{
		ID:         uuid.New(),
		BookID:     book.ID,
		ReaderID:   reader.ID,
		Quantity:   qty,
		DueDate:    due,
		Status:     domain.LendStatusActive,
		OperatorID: uuid.New(),
		Audit:      domain.NewAudit(created),
	}
	s.lends[rec.ID] = rec
	return rec
}

var errAuditDown = errors.New("audit journal unavailable")

var testRules = config.CirculationConfig{
	LoanPeriod:            30 * 24 * time.Hour,
	MaxLoanDays:           365,
	MaxQuantityPerRequest: 20,
}

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// newMemService wires the service to the store with the real inventory ledger.
func newMemService(store *memStore) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(log, testRules, Deps{
		Readers: store,
		Books:   store,
		Lends:   memLends{store},
		Returns: memReturns{store},
		Ledger:  inventory.NewLedger(log, store),
		Audit:   store,
		History: store,
		Tx:      store,
	})
	svc.now = func() time.Time { return fixedNow }
	return svc
}
