// Package circulation implements borrowing and returning of books. Each
// operation is one database transaction: the stock counters, the lend and
// return records and the audit journal change together or not at all.
package circulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/domain"
)

const (
	opBorrow = "borrow"
	opReturn = "return"
)

type readerRepo interface {
	GetByCardNo(ctx context.Context, cardNo string) (domain.Reader, error)
}

type bookRepo interface {
	GetByISBN(ctx context.Context, isbn string) (domain.Book, error)
}

type lendRepo interface {
	Create(ctx context.Context, l domain.LendRecord) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LendStatus, now time.Time) error
	LockActiveForReturn(ctx context.Context, readerID, bookID uuid.UUID) ([]domain.LendRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.LendRecord, error)
}

type returnRepo interface {
	Create(ctx context.Context, rr domain.ReturnRecord) error
	ListByLend(ctx context.Context, lendID uuid.UUID) ([]domain.ReturnRecord, error)
}

type ledger interface {
	Reserve(ctx context.Context, bookID uuid.UUID, qty int) error
	Release(ctx context.Context, bookID uuid.UUID, qty int) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type auditHistory interface {
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// recorder receives the outcome of every borrow and return.
type recorder interface {
	Observe(op string, qty int, err error)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, int, error) {}

// Service is the circulation engine. It is the only writer of lend and
// return records and the only caller of the ledger mutators.
type Service struct {
	readers readerRepo
	books   bookRepo
	lends   lendRepo
	returns returnRepo
	ledger  ledger
	audit   auditLogger
	history auditHistory
	tx      txManager
	metrics recorder
	rules   config.CirculationConfig
	log     *slog.Logger
	now     func() time.Time
}

// Deps groups the collaborators of the circulation engine.
type Deps struct {
	Readers readerRepo
	Books   bookRepo
	Lends   lendRepo
	Returns returnRepo
	Ledger  ledger
	Audit   auditLogger
	History auditHistory
	Tx      txManager
	// Metrics is optional.
	Metrics recorder
}

// NewService creates a new circulation service.
func NewService(log *slog.Logger, rules config.CirculationConfig, deps Deps) *Service {
	var rec recorder = nopRecorder{}
	if deps.Metrics != nil {
		rec = deps.Metrics
	}
	return &Service{
		readers: deps.Readers,
		books:   deps.Books,
		lends:   deps.Lends,
		returns: deps.Returns,
		ledger:  deps.Ledger,
		audit:   deps.Audit,
		history: deps.History,
		tx:      deps.Tx,
		metrics: rec,
		rules:   rules,
		log:     log.With("service", "circulation"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) resolveReader(ctx context.Context, cardNo string) (domain.Reader, error) {
	reader, err := s.readers.GetByCardNo(ctx, strings.TrimSpace(cardNo))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reader{}, fmt.Errorf("card %q: %w", cardNo, domain.ErrReaderNotFound)
		}
		return domain.Reader{}, fmt.Errorf("get reader: %w", err)
	}
	return reader, nil
}

func (s *Service) resolveBook(ctx context.Context, isbn string) (domain.Book, error) {
	book, err := s.books.GetByISBN(ctx, strings.TrimSpace(isbn))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Book{}, fmt.Errorf("isbn %q: %w", isbn, domain.ErrBookNotFound)
		}
		return domain.Book{}, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
