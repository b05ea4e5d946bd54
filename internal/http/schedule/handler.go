package schedule

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/payplanhq/payplan/internal/schedule"
)

type Handler struct {
	svc *schedule.Service
	now func() time.Time
}

func NewHandler(svc *schedule.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Post("/{id}/reschedule", h.reschedule)
}

type createEntryRequest struct {
	ObligationID    uuid.UUID `json:"obligation_id"`
	ScheduledDate   time.Time `json:"scheduled_date"`
	ScheduledAmount int64     `json:"scheduled_amount"`
	Notes           string    `json:"notes,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), schedule.CreateParams{
		ObligationID:    req.ObligationID,
		ScheduledDate:   req.ScheduledDate,
		ScheduledAmount: req.ScheduledAmount,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e, h.now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.svc.ListMonth(r.Context(), year, month)
	if err != nil {
		writeError(w, err)
		return
	}

	today := h.now()

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e, today)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := h.svc.Stats(r.Context(), year, month, h.now())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toStatsResponse(stats)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type rescheduleRequest struct {
	NewDate time.Time `json:"new_date"`
	Notes   string    `json:"notes,omitempty"`
}

func (h *Handler) reschedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	replacement, err := h.svc.Reschedule(r.Context(), id, req.NewDate, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(replacement, h.now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func yearMonth(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, errors.New("invalid year")
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("invalid month")
	}

	return year, time.Month(month), nil
}

type entryResponse struct {
	ID              uuid.UUID       `json:"id"`
	ObligationID    uuid.UUID       `json:"obligation_id"`
	ScheduledDate   time.Time       `json:"scheduled_date"`
	ScheduledAmount int64           `json:"scheduled_amount"`
	Status          schedule.Status `json:"status"`
	IsOverdue       bool            `json:"is_overdue"`
	SupersededBy    *uuid.UUID      `json:"superseded_by,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toResponse(e *schedule.Entry, today time.Time) entryResponse {
	return entryResponse{
		ID:              e.ID,
		ObligationID:    e.ObligationID,
		ScheduledDate:   e.ScheduledDate,
		ScheduledAmount: e.ScheduledAmount,
		Status:          e.Status,
		IsOverdue:       e.IsOverdue(today),
		SupersededBy:    e.SupersededBy,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
	}
}

type statsResponse struct {
	Year         int           `json:"year"`
	Month        int           `json:"month"`
	DailyTotals  map[int]int64 `json:"daily_totals"`
	MonthTotal   int64         `json:"month_total"`
	EntryCount   int           `json:"entry_count"`
	OverdueCount int           `json:"overdue_count"`
}

func toStatsResponse(s *schedule.Stats) statsResponse {
	return statsResponse{
		Year:         s.Year,
		Month:        int(s.Month),
		DailyTotals:  s.DailyTotals,
		MonthTotal:   s.MonthTotal,
		EntryCount:   s.EntryCount,
		OverdueCount: s.OverdueCount,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule.ErrNotFound):
		http.Error(w, "schedule entry not found", http.StatusNotFound)
	case errors.Is(err, schedule.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, schedule.ErrConcurrentModification):
		http.Error(w, "conflicting concurrent update, retry", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
