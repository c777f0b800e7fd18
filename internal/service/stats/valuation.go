package stats

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// UncategorizedName labels the valuation row of books without a category.
const UncategorizedName = "Uncategorized"

// CategoryValuation sums copies and stock value per top-level category.
// Sub-categories fold into their root. Rows follow the tree order and the
// uncategorized row, if any, comes last.
func (s *Service) CategoryValuation(ctx context.Context) ([]domain.CategoryValuationRow, error) {
	rows, err := s.stats.StockValueByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock value by category: %w", err)
	}
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return foldIntoRoots(domain.BuildCategoryTree(categories), rows), nil
}

func foldIntoRoots(tree *domain.CategoryTree, rows []domain.CategoryValuationRow) []domain.CategoryValuationRow {
	totals := make(map[uuid.UUID]*domain.CategoryValuationRow)
	uncategorized := domain.CategoryValuationRow{CategoryName: UncategorizedName, TotalValue: decimal.Zero}
	hasUncategorized := false

	for _, row := range rows {
		var root domain.Category
		ok := false
		if row.CategoryID != nil {
			root, ok = tree.RootOf(*row.CategoryID)
		}
		if !ok {
			uncategorized.TotalCopies += row.TotalCopies
			uncategorized.TotalValue = uncategorized.TotalValue.Add(row.TotalValue)
			hasUncategorized = true
			continue
		}

		acc, seen := totals[root.ID]
		if !seen {
			id := root.ID
			acc = &domain.CategoryValuationRow{CategoryID: &id, CategoryName: root.Name, TotalValue: decimal.Zero}
			totals[root.ID] = acc
		}
		acc.TotalCopies += row.TotalCopies
		acc.TotalValue = acc.TotalValue.Add(row.TotalValue)
	}

	out := make([]domain.CategoryValuationRow, 0, len(totals)+1)
	for _, node := range tree.Roots {
		if acc, ok := totals[node.Category.ID]; ok {
			out = append(out, *acc)
			delete(totals, node.Category.ID)
		}
	}
	// Roots reached through a cycle are not in tree.Roots.
	rest := make([]domain.CategoryValuationRow, 0, len(totals))
	for _, acc := range totals {
		rest = append(rest, *acc)
	}
	slices.SortFunc(rest, func(a, b domain.CategoryValuationRow) int {
		return strings.Compare(a.CategoryName, b.CategoryName)
	})
	out = append(out, rest...)
	if hasUncategorized {
		out = append(out, uncategorized)
	}
	return out
}
