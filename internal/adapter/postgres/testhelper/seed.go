package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedGrade inserts a grade with a unique name.
func SeedGrade(t *testing.T, pool *pgxpool.Pool, name string) domain.Grade {
	t.Helper()

	g := domain.Grade{ID: uuid.New(), Name: name + " " + uniqueSuffix(), Audit: domain.NewAudit(now())}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO grades (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		g.ID, g.Name, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGrade: %v", err)
	}
	return g
}

// SeedClass inserts a class belonging to gradeID.
func SeedClass(t *testing.T, pool *pgxpool.Pool, gradeID uuid.UUID, name string) domain.Class {
	t.Helper()

	c := domain.Class{ID: uuid.New(), GradeID: gradeID, Name: name, Audit: domain.NewAudit(now())}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO classes (id, grade_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.GradeID, c.Name, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedClass: %v", err)
	}
	return c
}

// SeedCategory inserts a category under parentID (nil for a root).
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string, parentID *uuid.UUID) domain.Category {
	t.Helper()

	c := domain.Category{ID: uuid.New(), Name: name, ParentID: parentID, Audit: domain.NewAudit(now())}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, name, parent_id, sort, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.ParentID, c.Sort, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	return c
}

// BookOpt customizes a seeded book.
type BookOpt func(*domain.Book)

// WithCategory assigns the book to a category.
func WithCategory(id uuid.UUID) BookOpt {
	return func(b *domain.Book) { b.CategoryID = &id }
}

// WithPrice sets the unit price, e.g. "12.50".
func WithPrice(p string) BookOpt {
	return func(b *domain.Book) { b.Price = decimal.RequireFromString(p) }
}

// WithOnLoan sets the on-loan counter directly.
func WithOnLoan(n int) BookOpt {
	return func(b *domain.Book) { b.OnLoanCopies = n }
}

// SeedBook inserts a book with a unique ISBN and the given total copies.
func SeedBook(t *testing.T, pool *pgxpool.Pool, totalCopies int, opts ...BookOpt) domain.Book {
	t.Helper()

	suffix := uniqueSuffix()
	b := domain.Book{
		ID:          uuid.New(),
		Title:       "Book " + suffix,
		ISBN:        "978-" + suffix,
		TotalCopies: totalCopies,
		Price:       decimal.Zero,
		Audit:       domain.NewAudit(now()),
	}
	for _, o := range opts {
		o(&b)
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO books (id, title, isbn, category_id, total_copies, on_loan_copies, price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.Title, b.ISBN, b.CategoryID, b.TotalCopies, b.OnLoanCopies, b.Price, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBook: %v", err)
	}
	return b
}

// ReaderOpt customizes a seeded reader.
type ReaderOpt func(*domain.Reader)

// WithClass assigns the reader to a class.
func WithClass(id uuid.UUID) ReaderOpt {
	return func(r *domain.Reader) { r.ClassID = &id }
}

// WithStatus sets the reader status.
func WithStatus(s domain.ReaderStatus) ReaderOpt {
	return func(r *domain.Reader) { r.Status = s }
}

// WithExpiry sets the membership expiry.
func WithExpiry(at time.Time) ReaderOpt {
	return func(r *domain.Reader) { r.ExpiresAt = &at }
}

// SeedReader inserts an active reader with a unique card number and a
// membership valid for one year.
func SeedReader(t *testing.T, pool *pgxpool.Pool, opts ...ReaderOpt) domain.Reader {
	t.Helper()

	suffix := uniqueSuffix()
	created := now()
	expires := created.AddDate(1, 0, 0)
	r := domain.Reader{
		ID:        uuid.New(),
		CardNo:    "C-" + suffix,
		Name:      "Reader " + suffix,
		Status:    domain.ReaderStatusActive,
		ExpiresAt: &expires,
		Audit:     domain.NewAudit(created),
	}
	for _, o := range opts {
		o(&r)
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO readers (id, card_no, name, status, class_id, expires_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.CardNo, r.Name, string(r.Status), r.ClassID, r.ExpiresAt, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReader: %v", err)
	}
	return r
}

// SeedLend inserts an ACTIVE lend directly, bypassing the ledger. The caller
// is responsible for keeping the book's on-loan counter consistent.
func SeedLend(t *testing.T, pool *pgxpool.Pool, bookID, readerID uuid.UUID, qty int, createdAt, dueDate time.Time) domain.LendRecord {
	t.Helper()

	l := domain.LendRecord{
		ID:         uuid.New(),
		BookID:     bookID,
		ReaderID:   readerID,
		Quantity:   qty,
		DueDate:    dueDate.UTC().Truncate(time.Microsecond),
		Status:     domain.LendStatusActive,
		OperatorID: uuid.New(),
		Audit:      domain.NewAudit(createdAt.UTC().Truncate(time.Microsecond)),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO lends (id, book_id, reader_id, quantity, due_date, status, operator_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.BookID, l.ReaderID, l.Quantity, l.DueDate, string(l.Status), l.OperatorID, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLend: %v", err)
	}
	return l
}

// SeedReturn inserts a return record for lendID.
func SeedReturn(t *testing.T, pool *pgxpool.Pool, lendID uuid.UUID, qty int, createdAt time.Time) domain.ReturnRecord {
	t.Helper()

	rr := domain.ReturnRecord{
		ID:         uuid.New(),
		LendID:     lendID,
		Quantity:   qty,
		OperatorID: uuid.New(),
		Status:     domain.ReturnStatusProcessed,
		CreatedAt:  createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO return_records (id, lend_id, quantity, operator_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rr.ID, rr.LendID, rr.Quantity, rr.OperatorID, string(rr.Status), rr.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReturn: %v", err)
	}
	return rr
}
