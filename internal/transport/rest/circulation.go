package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
	"github.com/heartmarshall/library-backend/internal/service/circulation"
	"github.com/heartmarshall/library-backend/pkg/ctxutil"
)

type circulationService interface {
	Borrow(ctx context.Context, input circulation.BorrowInput) (domain.LendRecord, error)
	ReturnBook(ctx context.Context, input circulation.ReturnInput) ([]domain.ReturnRecord, error)
	LendDetail(ctx context.Context, id uuid.UUID) (domain.LendDetail, error)
}

type retrier interface {
	Do(ctx context.Context, op string, fn func(ctx context.Context) error) error
}

// CirculationHandler serves the lend and return endpoints.
type CirculationHandler struct {
	svc   circulationService
	retry retrier
	log   *slog.Logger
}

// NewCirculationHandler creates a CirculationHandler.
func NewCirculationHandler(svc circulationService, retry retrier, logger *slog.Logger) *CirculationHandler {
	return &CirculationHandler{svc: svc, retry: retry, log: logger.With("handler", "circulation")}
}

type borrowRequest struct {
	CardNo   string  `json:"card_no"`
	ISBN     string  `json:"isbn"`
	Quantity int     `json:"quantity"`
	DueDays  *int    `json:"due_days,omitempty"`
	Comment  *string `json:"comment,omitempty"`
}

type returnRequest struct {
	CardNo   string  `json:"card_no"`
	ISBN     string  `json:"isbn"`
	Quantity int     `json:"quantity"`
	Comment  *string `json:"comment,omitempty"`
}

type lendResponse struct {
	ID               uuid.UUID `json:"id"`
	BookID           uuid.UUID `json:"book_id"`
	ReaderID         uuid.UUID `json:"reader_id"`
	Quantity         int       `json:"quantity"`
	ReturnedQuantity int       `json:"returned_quantity"`
	DueDate          time.Time `json:"due_date"`
	Status           string    `json:"status"`
	OperatorID       uuid.UUID `json:"operator_id"`
	Comment          *string   `json:"comment,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type returnRecordResponse struct {
	ID         uuid.UUID `json:"id"`
	LendID     uuid.UUID `json:"lend_id"`
	Quantity   int       `json:"quantity"`
	OperatorID uuid.UUID `json:"operator_id"`
	Status     string    `json:"status"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type returnResponse struct {
	Returned int                    `json:"returned"`
	Records  []returnRecordResponse `json:"records"`
}

type auditEntryResponse struct {
	ID         uuid.UUID      `json:"id"`
	OperatorID uuid.UUID      `json:"operator_id"`
	EntityType string         `json:"entity_type"`
	EntityID   *uuid.UUID     `json:"entity_id,omitempty"`
	Action     string         `json:"action"`
	Changes    map[string]any `json:"changes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type lendDetailResponse struct {
	lendResponse
	Deleted bool                   `json:"deleted"`
	Returns []returnRecordResponse `json:"returns"`
	History []auditEntryResponse   `json:"history"`
}

// Lend handles POST /api/v1/lends.
func (h *CirculationHandler) Lend(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := ctxutil.OperatorIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var req borrowRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := circulation.BorrowInput{
		CardNo:     req.CardNo,
		ISBN:       req.ISBN,
		Quantity:   req.Quantity,
		OperatorID: operatorID,
		DueDays:    req.DueDays,
		Comment:    req.Comment,
	}

	var lend domain.LendRecord
	err := h.retry.Do(r.Context(), "borrow", func(ctx context.Context) error {
		var err error
		lend, err = h.svc.Borrow(ctx, input)
		return err
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLendResponse(lend))
}

// Return handles POST /api/v1/returns.
func (h *CirculationHandler) Return(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := ctxutil.OperatorIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var req returnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := circulation.ReturnInput{
		CardNo:     req.CardNo,
		ISBN:       req.ISBN,
		Quantity:   req.Quantity,
		OperatorID: operatorID,
		Comment:    req.Comment,
	}

	var records []domain.ReturnRecord
	err := h.retry.Do(r.Context(), "return", func(ctx context.Context) error {
		var err error
		records, err = h.svc.ReturnBook(ctx, input)
		return err
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := returnResponse{Records: make([]returnRecordResponse, 0, len(records))}
	for _, rec := range records {
		resp.Returned += rec.Quantity
		resp.Records = append(resp.Records, toReturnRecordResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Detail handles GET /api/v1/lends/{id}.
func (h *CirculationHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "lend id must be a UUID")
		return
	}

	detail, err := h.svc.LendDetail(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := lendDetailResponse{
		lendResponse: toLendResponse(detail.Lend),
		Deleted:      detail.Lend.IsDeleted(),
		Returns:      make([]returnRecordResponse, 0, len(detail.Returns)),
		History:      make([]auditEntryResponse, 0, len(detail.History)),
	}
	for _, rec := range detail.Returns {
		resp.Returns = append(resp.Returns, toReturnRecordResponse(rec))
	}
	for _, a := range detail.History {
		resp.History = append(resp.History, auditEntryResponse{
			ID:         a.ID,
			OperatorID: a.OperatorID,
			EntityType: string(a.EntityType),
			EntityID:   a.EntityID,
			Action:     string(a.Action),
			Changes:    a.Changes,
			CreatedAt:  a.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toLendResponse(l domain.LendRecord) lendResponse {
	return lendResponse{
		ID:               l.ID,
		BookID:           l.BookID,
		ReaderID:         l.ReaderID,
		Quantity:         l.Quantity,
		ReturnedQuantity: l.ReturnedQuantity,
		DueDate:          l.DueDate,
		Status:           string(l.Status),
		OperatorID:       l.OperatorID,
		Comment:          l.Comment,
		CreatedAt:        l.CreatedAt,
	}
}

func toReturnRecordResponse(r domain.ReturnRecord) returnRecordResponse {
	return returnRecordResponse{
		ID:         r.ID,
		LendID:     r.LendID,
		Quantity:   r.Quantity,
		OperatorID: r.OperatorID,
		Status:     string(r.Status),
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
