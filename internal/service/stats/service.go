// Package stats builds the read-only circulation reports. Figures come from
// aggregate queries over the same tables the circulation engine writes, so
// they are consistent with the ledger as of each query's snapshot.
package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/domain"
)

type statsRepo interface {
	DailyBorrows(ctx context.Context, from, to time.Time) ([]domain.DayCount, error)
	DailyReturns(ctx context.Context, from, to time.Time) ([]domain.DayCount, error)
	GradeClassRollup(ctx context.Context, from, to time.Time) ([]domain.RollupRow, error)
	StockValueByCategory(ctx context.Context) ([]domain.CategoryValuationRow, error)
	Totals(ctx context.Context) (domain.LibraryTotals, error)
	PopularBooks(ctx context.Context, limit int) ([]domain.PopularBook, error)
	CountUnreturnedSince(ctx context.Context, since time.Time) (int, error)
}

type categoryRepo interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
}

type lendRepo interface {
	ListActiveDueBefore(ctx context.Context, asOf time.Time) ([]domain.LendRecord, error)
}

type readerRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Reader, error)
}

type bookRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Book, error)
}

// Deps groups the repositories the reports read from.
type Deps struct {
	Stats      statsRepo
	Categories categoryRepo
	Lends      lendRepo
	Readers    readerRepo
	Books      bookRepo
}

// Service is the statistics aggregator.
type Service struct {
	stats      statsRepo
	categories categoryRepo
	lends      lendRepo
	readers    readerRepo
	books      bookRepo
	cfg        config.StatsConfig
	log        *slog.Logger
}

// NewService creates a new statistics service.
func NewService(log *slog.Logger, cfg config.StatsConfig, deps Deps) *Service {
	return &Service{
		stats:      deps.Stats,
		categories: deps.Categories,
		lends:      deps.Lends,
		readers:    deps.Readers,
		books:      deps.Books,
		cfg:        cfg,
		log:        log.With("service", "stats"),
	}
}

func validateRange(r domain.DateRange, maxDays int) error {
	var errs []domain.FieldError
	if r.From.IsZero() {
		errs = append(errs, domain.FieldError{Field: "from", Message: "required"})
	}
	if r.To.IsZero() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "required"})
	}
	if len(errs) == 0 {
		switch days := r.Days(); {
		case days == 0:
			errs = append(errs, domain.FieldError{Field: "to", Message: "must not be before from"})
		case maxDays > 0 && days > maxDays:
			errs = append(errs, domain.FieldError{Field: "to", Message: "range too long"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
