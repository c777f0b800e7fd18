// Package lend implements the lend record repository using PostgreSQL.
// ReturnedQuantity is never stored: every read derives it from return_records.
package lend

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/domain"
)

const returnedExpr = "COALESCE((SELECT SUM(rr.quantity) FROM return_records rr WHERE rr.lend_id = l.id), 0)::int AS returned_quantity"

var columns = []string{
	"l.id", "l.book_id", "l.reader_id", "l.quantity", returnedExpr,
	"l.due_date", "l.status", "l.operator_id", "l.comment",
	"l.created_at", "l.updated_at", "l.deleted_at",
}

// fifoOrder is the order in which returns consume loans: oldest due first.
var fifoOrder = []string{"l.due_date ASC", "l.created_at ASC", "l.id ASC"}

// Repo provides lend record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lend repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new lend record.
func (r *Repo) Create(ctx context.Context, l domain.LendRecord) error {
	query, args, err := postgres.Builder().
		Insert("lends").
		Columns("id", "book_id", "reader_id", "quantity", "due_date", "status",
			"operator_id", "comment", "created_at", "updated_at").
		Values(l.ID, l.BookID, l.ReaderID, l.Quantity, l.DueDate, string(l.Status),
			l.OperatorID, l.Comment, l.CreatedAt, l.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build lend insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "lend", l.ID)
	}
	return nil
}

// UpdateStatus sets the status of an active lend and bumps updated_at.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LendStatus, now time.Time) error {
	query, args, err := postgres.Builder().
		Update("lends").
		Set("status", string(status)).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build lend update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "lend", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lend %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// LockActiveForReturn returns the reader's active lends of a book in FIFO
// order and locks them until the surrounding transaction ends.
//
// The rows are locked by one statement and read by a second. Under Read
// Committed the second statement takes a fresh snapshot after the lock wait,
// so it sees return records committed by whoever held the lock before us.
func (r *Repo) LockActiveForReturn(ctx context.Context, readerID, bookID uuid.UUID) ([]domain.LendRecord, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("lock lends of reader %s: %w: no transaction in context", readerID, domain.ErrInvariantViolation)
	}

	ids, err := r.lockActiveIDs(ctx, readerID, bookID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	b := selectActive().
		Where(squirrel.Eq{"l.id": ids}).
		OrderBy(fifoOrder...)

	return r.list(ctx, b, "lends of reader", readerID)
}

func (r *Repo) lockActiveIDs(ctx context.Context, readerID, bookID uuid.UUID) ([]uuid.UUID, error) {
	query, args, err := postgres.Builder().
		Select("l.id").
		From("lends l").
		Where(squirrel.Eq{
			"l.reader_id": readerID,
			"l.book_id":   bookID,
			"l.status":    string(domain.LendStatusActive),
		}).
		Where(postgres.NotDeleted("l")).
		OrderBy(fifoOrder...).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lend lock query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lends of reader", readerID)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, postgres.MapError(err, "lends of reader", readerID)
	}
	return ids, nil
}

// ListActiveDueBefore returns active lends whose due date is strictly before
// asOf, most overdue first.
func (r *Repo) ListActiveDueBefore(ctx context.Context, asOf time.Time) ([]domain.LendRecord, error) {
	b := selectActive().
		Where(squirrel.Lt{"l.due_date": asOf}).
		OrderBy(fifoOrder...)

	return r.list(ctx, b, "overdue lends as of", asOf.Format(time.RFC3339))
}

// GetByID returns a lend record, deleted or not.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.LendRecord, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("lends l").
		Where(squirrel.Eq{"l.id": id}).
		ToSql()
	if err != nil {
		return domain.LendRecord{}, fmt.Errorf("build lend query: %w", err)
	}

	l, err := scanLend(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return domain.LendRecord{}, postgres.MapError(err, "lend", id)
	}
	return l, nil
}

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder, entity string, key any) ([]domain.LendRecord, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", entity, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, key)
	}
	defer rows.Close()

	var lends []domain.LendRecord
	for rows.Next() {
		l, err := scanLend(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lend: %w", err)
		}
		lends = append(lends, l)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, key)
	}

	return lends, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func selectActive() squirrel.SelectBuilder {
	return postgres.Builder().
		Select(columns...).
		From("lends l").
		Where(squirrel.Eq{"l.status": string(domain.LendStatusActive)}).
		Where(postgres.NotDeleted("l"))
}

func scanLend(row pgx.Row) (domain.LendRecord, error) {
	var (
		l      domain.LendRecord
		status string
	)
	err := row.Scan(
		&l.ID, &l.BookID, &l.ReaderID, &l.Quantity, &l.ReturnedQuantity,
		&l.DueDate, &status, &l.OperatorID, &l.Comment,
		&l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
	)
	if err != nil {
		return domain.LendRecord{}, err
	}
	l.Status = domain.LendStatus(status)
	return l, nil
}
