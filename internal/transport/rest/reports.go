package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/library-backend/internal/domain"
)

const dateLayout = "2006-01-02"

type statsService interface {
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueEntry, error)
	Trend(ctx context.Context, r domain.DateRange) (domain.TrendSeries, error)
	GradeClassRollup(ctx context.Context, r domain.DateRange) ([]domain.RollupRow, error)
	CategoryValuation(ctx context.Context) ([]domain.CategoryValuationRow, error)
	Dashboard(ctx context.Context, asOf time.Time) (domain.Dashboard, error)
}

// ReportsHandler serves the read-only reporting endpoints.
type ReportsHandler struct {
	stats statsService
	log   *slog.Logger
	now   func() time.Time
}

// NewReportsHandler creates a ReportsHandler.
func NewReportsHandler(stats statsService, logger *slog.Logger) *ReportsHandler {
	return &ReportsHandler{
		stats: stats,
		log:   logger.With("handler", "reports"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type overdueEntryResponse struct {
	LendID      uuid.UUID `json:"lend_id"`
	ReaderID    uuid.UUID `json:"reader_id"`
	CardNo      string    `json:"card_no"`
	ReaderName  string    `json:"reader_name"`
	BookID      uuid.UUID `json:"book_id"`
	ISBN        string    `json:"isbn"`
	Title       string    `json:"title"`
	Outstanding int       `json:"outstanding"`
	BorrowedAt  time.Time `json:"borrowed_at"`
	DueDate     time.Time `json:"due_date"`
	DaysOverdue int       `json:"days_overdue"`
}

type overdueResponse struct {
	AsOf    time.Time              `json:"as_of"`
	Total   int                    `json:"total"`
	Entries []overdueEntryResponse `json:"entries"`
}

type trendPointResponse struct {
	Date    string `json:"date"`
	Borrows int    `json:"borrows"`
	Returns int    `json:"returns"`
}

type trendResponse struct {
	From   string               `json:"from"`
	To     string               `json:"to"`
	Points []trendPointResponse `json:"points"`
}

type rollupRowResponse struct {
	GradeID         uuid.UUID `json:"grade_id"`
	GradeName       string    `json:"grade_name"`
	ClassID         uuid.UUID `json:"class_id"`
	ClassName       string    `json:"class_name"`
	ActiveLoans     int       `json:"active_loans"`
	HistoricalLoans int       `json:"historical_loans"`
	Returns         int       `json:"returns"`
}

type valuationRowResponse struct {
	CategoryID   *uuid.UUID      `json:"category_id"`
	CategoryName string          `json:"category_name"`
	TotalCopies  int             `json:"total_copies"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

type valuationResponse struct {
	Rows        []valuationRowResponse `json:"rows"`
	TotalCopies int                    `json:"total_copies"`
	TotalValue  decimal.Decimal        `json:"total_value"`
}

type dashboardResponse struct {
	AsOf   time.Time `json:"as_of"`
	Totals struct {
		CopiesOnShelf  int `json:"copies_on_shelf"`
		DistinctTitles int `json:"distinct_titles"`
		Readers        int `json:"readers"`
		ActiveReaders  int `json:"active_readers"`
	} `json:"totals"`
	PopularBooks []popularBookResponse `json:"popular_books"`
	Overdue      struct {
		UnderMonth      int `json:"under_month"`
		MonthToHalfYear int `json:"month_to_half_year"`
		HalfYearToYear  int `json:"half_year_to_year"`
		OverYear        int `json:"over_year"`
		Total           int `json:"total"`
	} `json:"overdue"`
	RecentUnreturned int `json:"recent_unreturned"`
}

type popularBookResponse struct {
	BookID   uuid.UUID `json:"book_id"`
	Title    string    `json:"title"`
	Borrowed int       `json:"borrowed"`
}

// Overdue handles GET /api/v1/reports/overdue?as_of=.
func (h *ReportsHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	asOf, err := h.asOf(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	entries, err := h.stats.ListOverdue(r.Context(), asOf)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := overdueResponse{AsOf: asOf, Total: len(entries), Entries: make([]overdueEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, overdueEntryResponse{
			LendID:      e.LendID,
			ReaderID:    e.ReaderID,
			CardNo:      e.CardNo,
			ReaderName:  e.ReaderName,
			BookID:      e.BookID,
			ISBN:        e.ISBN,
			Title:       e.Title,
			Outstanding: e.Outstanding,
			BorrowedAt:  e.BorrowedAt,
			DueDate:     e.DueDate,
			DaysOverdue: e.DaysOverdue,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Trend handles GET /api/v1/reports/trend?from=&to=.
func (h *ReportsHandler) Trend(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	series, err := h.stats.Trend(r.Context(), rng)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := trendResponse{
		From:   series.Range.From.Format(dateLayout),
		To:     series.Range.To.Format(dateLayout),
		Points: make([]trendPointResponse, 0, len(series.Points)),
	}
	for _, p := range series.Points {
		resp.Points = append(resp.Points, trendPointResponse{
			Date:    p.Date.Format(dateLayout),
			Borrows: p.Borrows,
			Returns: p.Returns,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Rollup handles GET /api/v1/reports/rollup?from=&to=.
func (h *ReportsHandler) Rollup(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	rows, err := h.stats.GradeClassRollup(r.Context(), rng)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := make([]rollupRowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, rollupRowResponse(row))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Valuation handles GET /api/v1/reports/valuation.
func (h *ReportsHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	rows, err := h.stats.CategoryValuation(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := valuationResponse{Rows: make([]valuationRowResponse, 0, len(rows)), TotalValue: decimal.Zero}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, valuationRowResponse(row))
		resp.TotalCopies += row.TotalCopies
		resp.TotalValue = resp.TotalValue.Add(row.TotalValue)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Dashboard handles GET /api/v1/reports/dashboard?as_of=.
func (h *ReportsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	asOf, err := h.asOf(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	d, err := h.stats.Dashboard(r.Context(), asOf)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var resp dashboardResponse
	resp.AsOf = d.AsOf
	resp.Totals.CopiesOnShelf = d.Totals.CopiesOnShelf
	resp.Totals.DistinctTitles = d.Totals.DistinctTitles
	resp.Totals.Readers = d.Totals.Readers
	resp.Totals.ActiveReaders = d.Totals.ActiveReaders
	resp.PopularBooks = make([]popularBookResponse, 0, len(d.PopularBooks))
	for _, b := range d.PopularBooks {
		resp.PopularBooks = append(resp.PopularBooks, popularBookResponse(b))
	}
	resp.Overdue.UnderMonth = d.Overdue.UnderMonth
	resp.Overdue.MonthToHalfYear = d.Overdue.MonthToHalfYear
	resp.Overdue.HalfYearToYear = d.Overdue.HalfYearToYear
	resp.Overdue.OverYear = d.Overdue.OverYear
	resp.Overdue.Total = d.Overdue.Total()
	resp.RecentUnreturned = d.RecentUnreturned
	writeJSON(w, http.StatusOK, resp)
}

// asOf reads the as_of query parameter: RFC 3339 or a bare date, which means
// UTC midnight of that day. Missing means now.
func (h *ReportsHandler) asOf(r *http.Request) (time.Time, error) {
	v := r.URL.Query().Get("as_of")
	if v == "" {
		return h.now(), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, domain.NewValidationError("as_of", "must be RFC 3339 or YYYY-MM-DD")
	}
	return d, nil
}

func parseRange(r *http.Request) (domain.DateRange, error) {
	var errs []domain.FieldError
	parse := func(field string) time.Time {
		v := r.URL.Query().Get(field)
		if v == "" {
			errs = append(errs, domain.FieldError{Field: field, Message: "required"})
			return time.Time{}
		}
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: field, Message: "must be YYYY-MM-DD"})
		}
		return t
	}

	from, to := parse("from"), parse("to")
	if len(errs) > 0 {
		return domain.DateRange{}, &domain.ValidationError{Errors: errs}
	}
	return domain.NewDateRange(from, to), nil
}
