package obligation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/obligation"
)

type Handler struct {
	svc *obligation.Service
}

func NewHandler(svc *obligation.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/payments", h.recordPayment)
	r.Get("/{id}/integrated", h.integrated)
}

type createObligationRequest struct {
	Name        string                 `json:"name"`
	TotalAmount int64                  `json:"total_amount"`
	PaymentType obligation.PaymentType `json:"payment_type"`
	PeriodCount int                    `json:"period_count,omitempty"`
	StartDate   time.Time              `json:"start_date"`
	DueDate     *time.Time             `json:"due_date,omitempty"`
	EndDate     *time.Time             `json:"end_date,omitempty"`
	ProjectID   *uuid.UUID             `json:"project_id,omitempty"`
	CategoryID  *uuid.UUID             `json:"category_id,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.Create(r.Context(), obligation.CreateParams{
		Name:        req.Name,
		TotalAmount: req.TotalAmount,
		PaymentType: req.PaymentType,
		PeriodCount: req.PeriodCount,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		EndDate:     req.EndDate,
		ProjectID:   req.ProjectID,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	// Installment creation returns the full generated set; a single
	// obligation comes back as a plain object.
	var payload any = toResponseList(created)
	if len(created) == 1 {
		payload = toResponse(created[0])
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := obligation.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(obligation.Status(s))
	}

	if s := r.URL.Query().Get("payment_type"); s != "" {
		filter.PaymentType = new(obligation.PaymentType(s))
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	if s := r.URL.Query().Get("group_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.GroupID = new(id)
		}
	}

	os, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(os)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateObligationRequest struct {
	Name        *string    `json:"name,omitempty"`
	TotalAmount *int64     `json:"total_amount,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ClearDue    bool       `json:"clear_due_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.svc.Update(r.Context(), id, obligation.UpdateParams{
		Name:        req.Name,
		TotalAmount: req.TotalAmount,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDue,
		EndDate:     req.EndDate,
		ProjectID:   req.ProjectID,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordPaymentRequest struct {
	Amount int64     `json:"amount"`
	Date   time.Time `json:"date"`
	Method string    `json:"method"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.svc.RecordPayment(r.Context(), id, req.Amount, req.Date, req.Method)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) integrated(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	view, err := h.svc.IntegratedView(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toIntegratedResponse(view)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto status codes. Overpayment and
// concurrent modification both answer 409; overpayment carries the
// maximum acceptable amount so the caller can retry.
func writeError(w http.ResponseWriter, err error) {
	var overpayment *obligation.OverpaymentError
	if errors.As(err, &overpayment) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(map[string]any{
			"error":          "overpayment rejected",
			"max_acceptable": overpayment.MaxAcceptable,
		}); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	switch {
	case errors.Is(err, obligation.ErrNotFound):
		http.Error(w, "obligation not found", http.StatusNotFound)
	case errors.Is(err, obligation.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, obligation.ErrConcurrentModification):
		http.Error(w, "conflicting concurrent update, retry", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
