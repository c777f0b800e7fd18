// Package category implements read access to the book classification tree.
package category

import (
	"context"
	"fmt"

	postgres "github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// Repo provides category reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new category repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListAll returns every category, soft-deleted ones included, so that books
// still pointing at a deleted node resolve to a root.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Category, error) {
	query, args, err := postgres.Builder().
		Select("id", "name", "parent_id", "sort", "created_at", "updated_at", "deleted_at").
		From("categories").
		OrderBy("sort ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "categories", "all")
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.Sort, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "categories", "all")
	}

	return out, nil
}
