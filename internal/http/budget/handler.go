package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/budget"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/{id}/convert", h.convert)
}

type createItemRequest struct {
	PlanID           uuid.UUID          `json:"plan_id"`
	Name             string             `json:"name"`
	PlannedAmount    int64              `json:"planned_amount"`
	PaymentType      budget.PaymentType `json:"payment_type"`
	MonthlyAmount    int64              `json:"monthly_amount,omitempty"`
	MonthCount       int                `json:"month_count,omitempty"`
	InstallmentCount int                `json:"installment_count,omitempty"`
	StartDate        time.Time          `json:"start_date"`
	EndDate          *time.Time         `json:"end_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.Create(r.Context(), &budget.Item{
		PlanID:           req.PlanID,
		Name:             req.Name,
		PlannedAmount:    req.PlannedAmount,
		PaymentType:      req.PaymentType,
		MonthlyAmount:    req.MonthlyAmount,
		MonthCount:       req.MonthCount,
		InstallmentCount: req.InstallmentCount,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(item)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := budget.ListFilter{}

	if s := r.URL.Query().Get("plan_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.PlanID = new(id)
		}
	}

	if s := r.URL.Query().Get("converted"); s != "" {
		filter.ConvertedOnly = new(s == "true")
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = toResponse(item)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	created, err := h.svc.Convert(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	ids := make([]uuid.UUID, len(created))
	for i, o := range created {
		ids[i] = o.ID
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(map[string]any{"obligation_ids": ids}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type itemResponse struct {
	ID               uuid.UUID          `json:"id"`
	PlanID           uuid.UUID          `json:"plan_id"`
	Name             string             `json:"name"`
	PlannedAmount    int64              `json:"planned_amount"`
	PaymentType      budget.PaymentType `json:"payment_type"`
	MonthlyAmount    int64              `json:"monthly_amount,omitempty"`
	MonthCount       int                `json:"month_count,omitempty"`
	InstallmentCount int                `json:"installment_count,omitempty"`
	StartDate        time.Time          `json:"start_date"`
	EndDate          *time.Time         `json:"end_date,omitempty"`
	IsConverted      bool               `json:"is_converted"`
	CreatedAt        time.Time          `json:"created_at"`
}

func toResponse(item *budget.Item) itemResponse {
	return itemResponse{
		ID:               item.ID,
		PlanID:           item.PlanID,
		Name:             item.Name,
		PlannedAmount:    item.PlannedAmount,
		PaymentType:      item.PaymentType,
		MonthlyAmount:    item.MonthlyAmount,
		MonthCount:       item.MonthCount,
		InstallmentCount: item.InstallmentCount,
		StartDate:        item.StartDate,
		EndDate:          item.EndDate,
		IsConverted:      item.IsConverted,
		CreatedAt:        item.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, budget.ErrNotFound):
		http.Error(w, "budget item not found", http.StatusNotFound)
	case errors.Is(err, budget.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, budget.ErrAlreadyConverted):
		http.Error(w, "budget item already converted", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
