// Package reader implements the reader repository using PostgreSQL.
package reader

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/domain"
)

var columns = []string{
	"id", "card_no", "name", "status", "class_id", "expires_at",
	"created_at", "updated_at", "deleted_at",
}

// Repo provides reader lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new reader repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByCardNo returns the non-deleted reader holding card cardNo.
func (r *Repo) GetByCardNo(ctx context.Context, cardNo string) (domain.Reader, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("readers").
		Where(squirrel.Eq{"card_no": cardNo, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return domain.Reader{}, fmt.Errorf("build reader query: %w", err)
	}

	rd, err := scanReader(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Reader{}, postgres.MapError(err, "reader", cardNo)
	}
	return rd, nil
}

// GetByIDs returns the readers with the given ids, deleted ones included.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Reader, error) {
	if len(ids) == 0 {
		return []domain.Reader{}, nil
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From("readers").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build readers query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "readers", len(ids))
	}
	defer rows.Close()

	readers := make([]domain.Reader, 0, len(ids))
	for rows.Next() {
		rd, err := scanReader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reader: %w", err)
		}
		readers = append(readers, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "readers", len(ids))
	}

	return readers, nil
}

func scanReader(row pgx.Row) (domain.Reader, error) {
	var (
		rd     domain.Reader
		status string
	)
	err := row.Scan(
		&rd.ID, &rd.CardNo, &rd.Name, &status, &rd.ClassID, &rd.ExpiresAt,
		&rd.CreatedAt, &rd.UpdatedAt, &rd.DeletedAt,
	)
	if err != nil {
		return domain.Reader{}, err
	}
	rd.Status = domain.ReaderStatus(status)
	return rd, nil
}
