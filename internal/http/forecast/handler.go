package forecast

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/payplanhq/payplan/internal/forecast"
	"github.com/payplanhq/payplan/internal/obligation"
)

type Handler struct {
	svc           *forecast.Service
	defaultMonths int
}

func NewHandler(svc *forecast.Service, defaultMonths int) *Handler {
	return &Handler{svc: svc, defaultMonths: defaultMonths}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.project)
}

func (h *Handler) project(w http.ResponseWriter, r *http.Request) {
	months := h.defaultMonths

	if s := r.URL.Query().Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid months", http.StatusBadRequest)
			return
		}

		months = n
	}

	buckets, err := h.svc.Project(r.Context(), months)
	if err != nil {
		if errors.Is(err, obligation.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(buckets)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type lineItemResponse struct {
	SourceID string `json:"source_id"`
	Name     string `json:"name,omitempty"`
	Amount   int64  `json:"amount"`
}

type bucketResponse struct {
	Month     string                                   `json:"month"`
	Subtotals map[forecast.Category]int64              `json:"subtotals"`
	Items     map[forecast.Category][]lineItemResponse `json:"items"`
	Total     int64                                    `json:"total"`
}

func toResponseList(buckets []*forecast.MonthBucket) []bucketResponse {
	resp := make([]bucketResponse, len(buckets))

	for i, b := range buckets {
		out := bucketResponse{
			Month:     b.Key(),
			Subtotals: b.Subtotals,
			Items:     make(map[forecast.Category][]lineItemResponse, len(b.Items)),
			Total:     b.Total(),
		}

		for category, items := range b.Items {
			list := make([]lineItemResponse, len(items))
			for j, item := range items {
				list[j] = lineItemResponse{
					SourceID: item.SourceID.String(),
					Name:     item.Name,
					Amount:   item.Amount,
				}
			}

			out.Items[category] = list
		}

		resp[i] = out
	}

	return resp
}
