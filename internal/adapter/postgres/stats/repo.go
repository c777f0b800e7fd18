// Package stats implements the read-only report queries. Rows are scanned with
// scany into local structs and converted to domain types.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// Repo runs aggregate queries over the circulation tables.
type Repo struct {
	db postgres.Querier
}

// New creates a new stats repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type dayCountRow struct {
	Day   time.Time `db:"day"`
	Count int64     `db:"count"`
}

// DailyBorrows counts lend records created per UTC day in [from, to).
func (r *Repo) DailyBorrows(ctx context.Context, from, to time.Time) ([]domain.DayCount, error) {
	b := postgres.Builder().Select().From("lends l")
	return r.daily(ctx, b, "l.created_at", "lends", from, to)
}

// DailyReturns counts return records created per UTC day in [from, to).
// Returns against a soft-deleted lend are left out, as the lend itself is.
func (r *Repo) DailyReturns(ctx context.Context, from, to time.Time) ([]domain.DayCount, error) {
	b := postgres.Builder().Select().From("return_records rr").Join("lends l ON l.id = rr.lend_id")
	return r.daily(ctx, b, "rr.created_at", "return_records", from, to)
}

func (r *Repo) daily(ctx context.Context, b squirrel.SelectBuilder, tsCol, table string, from, to time.Time) ([]domain.DayCount, error) {
	b = b.
		Columns("("+tsCol+" AT TIME ZONE 'UTC')::date AS day", "COUNT(*) AS count").
		Where(postgres.NotDeleted("l")).
		Where(squirrel.GtOrEq{tsCol: from}).
		Where(squirrel.Lt{tsCol: to}).
		GroupBy("day").
		OrderBy("day")

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build daily %s query: %w", table, err)
	}

	var rows []dayCountRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "daily "+table, from.Format(time.DateOnly))
	}

	out := make([]domain.DayCount, len(rows))
	for i, row := range rows {
		out[i] = domain.DayCount{Date: domain.TruncateDay(row.Day), Count: int(row.Count)}
	}
	return out, nil
}

type rollupRow struct {
	GradeID         uuid.UUID `db:"grade_id"`
	GradeName       string    `db:"grade_name"`
	ClassID         uuid.UUID `db:"class_id"`
	ClassName       string    `db:"class_name"`
	ActiveLoans     int64     `db:"active_loans"`
	HistoricalLoans int64     `db:"historical_loans"`
	Returns         int64     `db:"returns"`
}

const rollupSQL = `
SELECT g.id   AS grade_id,
       g.name AS grade_name,
       c.id   AS class_id,
       c.name AS class_name,
       COUNT(DISTINCT l.id)  FILTER (WHERE l.status = 'ACTIVE')                        AS active_loans,
       COUNT(DISTINCT l.id)  FILTER (WHERE l.created_at >= $1 AND l.created_at < $2)   AS historical_loans,
       COUNT(DISTINCT rr.id) FILTER (WHERE rr.created_at >= $1 AND rr.created_at < $2) AS returns
FROM classes c
JOIN grades g ON g.id = c.grade_id AND g.deleted_at IS NULL
LEFT JOIN readers r ON r.class_id = c.id
LEFT JOIN lends l ON l.reader_id = r.id AND l.deleted_at IS NULL
LEFT JOIN return_records rr ON rr.lend_id = l.id
WHERE c.deleted_at IS NULL
GROUP BY g.id, g.name, c.id, c.name
ORDER BY g.name, c.name, c.id`

// GradeClassRollup aggregates loans per non-deleted grade and class. Classes
// without any loans are included with zero counts.
func (r *Repo) GradeClassRollup(ctx context.Context, from, to time.Time) ([]domain.RollupRow, error) {
	var rows []rollupRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, rollupSQL, from, to); err != nil {
		return nil, postgres.MapError(err, "rollup", from.Format(time.DateOnly))
	}

	out := make([]domain.RollupRow, len(rows))
	for i, row := range rows {
		out[i] = domain.RollupRow{
			GradeID:         row.GradeID,
			GradeName:       row.GradeName,
			ClassID:         row.ClassID,
			ClassName:       row.ClassName,
			ActiveLoans:     int(row.ActiveLoans),
			HistoricalLoans: int(row.HistoricalLoans),
			Returns:         int(row.Returns),
		}
	}
	return out, nil
}

type valuationRow struct {
	CategoryID *uuid.UUID `db:"category_id"`
	Copies     int64      `db:"copies"`
	Value      string     `db:"value"`
}

// StockValueByCategory sums copies and copies x price of non-deleted books per
// direct category. A nil CategoryID groups uncategorized books.
func (r *Repo) StockValueByCategory(ctx context.Context) ([]domain.CategoryValuationRow, error) {
	query, args, err := postgres.Builder().
		Select("category_id", "COALESCE(SUM(total_copies), 0) AS copies", "COALESCE(SUM(total_copies * price), 0)::text AS value").
		From("books").
		Where(squirrel.Eq{"deleted_at": nil}).
		GroupBy("category_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build valuation query: %w", err)
	}

	var rows []valuationRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "valuation", "books")
	}

	out := make([]domain.CategoryValuationRow, len(rows))
	for i, row := range rows {
		value, err := decimal.NewFromString(row.Value)
		if err != nil {
			return nil, fmt.Errorf("valuation value %q: %w", row.Value, err)
		}
		out[i] = domain.CategoryValuationRow{
			CategoryID:  row.CategoryID,
			TotalCopies: int(row.Copies),
			TotalValue:  value,
		}
	}
	return out, nil
}

type totalsRow struct {
	CopiesOnShelf  int64 `db:"copies_on_shelf"`
	DistinctTitles int64 `db:"distinct_titles"`
	Readers        int64 `db:"readers"`
	ActiveReaders  int64 `db:"active_readers"`
}

const totalsSQL = `
SELECT (SELECT COALESCE(SUM(total_copies - on_loan_copies), 0) FROM books WHERE deleted_at IS NULL) AS copies_on_shelf,
       (SELECT COUNT(DISTINCT isbn) FROM books WHERE deleted_at IS NULL)                           AS distinct_titles,
       (SELECT COUNT(*) FROM readers WHERE deleted_at IS NULL)                                     AS readers,
       (SELECT COUNT(DISTINCT reader_id) FROM lends WHERE status = 'ACTIVE' AND deleted_at IS NULL) AS active_readers`

// Totals returns the headline counters of the dashboard.
func (r *Repo) Totals(ctx context.Context) (domain.LibraryTotals, error) {
	var row totalsRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, totalsSQL); err != nil {
		return domain.LibraryTotals{}, postgres.MapError(err, "totals", "library")
	}
	return domain.LibraryTotals{
		CopiesOnShelf:  int(row.CopiesOnShelf),
		DistinctTitles: int(row.DistinctTitles),
		Readers:        int(row.Readers),
		ActiveReaders:  int(row.ActiveReaders),
	}, nil
}

type popularRow struct {
	BookID   uuid.UUID `db:"book_id"`
	Title    string    `db:"title"`
	Borrowed int64     `db:"borrowed"`
}

// PopularBooks ranks titles by total borrowed quantity.
func (r *Repo) PopularBooks(ctx context.Context, limit int) ([]domain.PopularBook, error) {
	query, args, err := postgres.Builder().
		Select("b.id AS book_id", "b.title", "SUM(l.quantity) AS borrowed").
		From("lends l").
		Join("books b ON b.id = l.book_id").
		Where(postgres.NotDeleted("l")).
		Where(postgres.NotDeleted("b")).
		GroupBy("b.id", "b.title").
		OrderBy("borrowed DESC", "b.title ASC", "b.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build popular books query: %w", err)
	}

	var rows []popularRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "popular books", limit)
	}

	out := make([]domain.PopularBook, len(rows))
	for i, row := range rows {
		out[i] = domain.PopularBook{BookID: row.BookID, Title: row.Title, Borrowed: int(row.Borrowed)}
	}
	return out, nil
}

// CountUnreturnedSince counts active lends created at or after since.
func (r *Repo) CountUnreturnedSince(ctx context.Context, since time.Time) (int, error) {
	query, args, err := postgres.Builder().
		Select("COUNT(*)").
		From("lends").
		Where(squirrel.Eq{"status": string(domain.LendStatusActive), "deleted_at": nil}).
		Where(squirrel.GtOrEq{"created_at": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build unreturned query: %w", err)
	}

	var n int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "unreturned lends since", since.Format(time.DateOnly))
	}
	return int(n), nil
}
