// Package book implements the book repository using PostgreSQL.
// Stock counters are read under a row lock and written back by the inventory
// ledger; no other code path updates on_loan_copies.
package book

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/domain"
)

const table = "books"

var columns = []string{
	"b.id", "b.title", "b.isbn", "b.category_id", "b.author", "b.publisher", "b.position",
	"b.total_copies", "b.on_loan_copies", "b.price::text",
	"b.created_at", "b.updated_at", "b.deleted_at",
}

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new book repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByISBN returns the non-deleted book with the given ISBN.
func (r *Repo) GetByISBN(ctx context.Context, isbn string) (domain.Book, error) {
	query, args, err := selectBooks().
		Where(squirrel.Eq{"b.isbn": isbn}).
		ToSql()
	if err != nil {
		return domain.Book{}, fmt.Errorf("build book query: %w", err)
	}

	b, err := scanBook(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Book{}, postgres.MapError(err, "book", isbn)
	}
	return b, nil
}

// GetByIDs returns the books with the given ids, deleted ones included, so
// that historical loans can still be displayed. Order is unspecified.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Book, error) {
	if len(ids) == 0 {
		return []domain.Book{}, nil
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From(table + " b").
		Where(squirrel.Eq{"b.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build books query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "books", len(ids))
	}
	defer rows.Close()

	books := make([]domain.Book, 0, len(ids))
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "books", len(ids))
	}

	return books, nil
}

// ---------------------------------------------------------------------------
// Stock counters
// ---------------------------------------------------------------------------

// GetStock reads the counters of a non-deleted book without locking.
func (r *Repo) GetStock(ctx context.Context, id uuid.UUID) (domain.Stock, error) {
	return r.stock(ctx, id, false)
}

// LockStock reads the counters of a non-deleted book and holds the row lock
// until the surrounding transaction ends. It must run inside RunInTx.
func (r *Repo) LockStock(ctx context.Context, id uuid.UUID) (domain.Stock, error) {
	if !postgres.InTx(ctx) {
		return domain.Stock{}, fmt.Errorf("lock book %s: %w: no transaction in context", id, domain.ErrInvariantViolation)
	}
	return r.stock(ctx, id, true)
}

func (r *Repo) stock(ctx context.Context, id uuid.UUID, lock bool) (domain.Stock, error) {
	b := postgres.Builder().
		Select("id", "total_copies", "on_loan_copies").
		From(table).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return domain.Stock{}, fmt.Errorf("build stock query: %w", err)
	}

	var s domain.Stock
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).
		Scan(&s.BookID, &s.TotalCopies, &s.OnLoanCopies)
	if err != nil {
		return domain.Stock{}, postgres.MapError(err, "book", id)
	}
	return s, nil
}

// SetOnLoan writes the on-loan counter of a book. Callers hold the row lock
// taken by LockStock.
func (r *Repo) SetOnLoan(ctx context.Context, id uuid.UUID, onLoan int) error {
	query, args, err := postgres.Builder().
		Update(table).
		Set("on_loan_copies", onLoan).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build stock update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "book", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func selectBooks() squirrel.SelectBuilder {
	return postgres.Builder().
		Select(columns...).
		From(table + " b").
		Where(postgres.NotDeleted("b"))
}

func scanBook(row pgx.Row) (domain.Book, error) {
	var (
		b     domain.Book
		price string
	)
	err := row.Scan(
		&b.ID, &b.Title, &b.ISBN, &b.CategoryID, &b.Author, &b.Publisher, &b.Position,
		&b.TotalCopies, &b.OnLoanCopies, &price,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	if err != nil {
		return domain.Book{}, err
	}

	b.Price, err = decimal.NewFromString(price)
	if err != nil {
		return domain.Book{}, fmt.Errorf("book %s price %q: %w", b.ID, price, err)
	}
	return b, nil
}
