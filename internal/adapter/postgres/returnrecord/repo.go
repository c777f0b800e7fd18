// Package returnrecord implements the append-only return record repository.
package returnrecord

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// Repo provides return record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new return record repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a return record. Records are never updated afterwards.
func (r *Repo) Create(ctx context.Context, rr domain.ReturnRecord) error {
	query, args, err := postgres.Builder().
		Insert("return_records").
		Columns("id", "lend_id", "quantity", "operator_id", "status", "comment", "created_at").
		Values(rr.ID, rr.LendID, rr.Quantity, rr.OperatorID, string(rr.Status), rr.Comment, rr.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build return record insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "return_record", rr.ID)
	}
	return nil
}

// ListByLend returns the return records of a lend, oldest first.
func (r *Repo) ListByLend(ctx context.Context, lendID uuid.UUID) ([]domain.ReturnRecord, error) {
	query, args, err := postgres.Builder().
		Select("id", "lend_id", "quantity", "operator_id", "status", "comment", "created_at").
		From("return_records").
		Where(squirrel.Eq{"lend_id": lendID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build return records query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "return_records of lend", lendID)
	}
	defer rows.Close()

	var records []domain.ReturnRecord
	for rows.Next() {
		var (
			rr     domain.ReturnRecord
			status string
		)
		if err := rows.Scan(&rr.ID, &rr.LendID, &rr.Quantity, &rr.OperatorID, &status, &rr.Comment, &rr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan return record: %w", err)
		}
		rr.Status = domain.ReturnStatus(status)
		records = append(records, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "return_records of lend", lendID)
	}

	return records, nil
}
