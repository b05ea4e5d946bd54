package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/payplanhq/payplan/internal/http/budget"
	"github.com/payplanhq/payplan/internal/http/forecast"
	"github.com/payplanhq/payplan/internal/http/obligation"
	"github.com/payplanhq/payplan/internal/http/schedule"
)

func New(
	obligationsV1 *obligation.Handler,
	scheduleV1 *schedule.Handler,
	budgetV1 *budget.Handler,
	forecastV1 *forecast.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/obligations", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			obligationsV1.Routes(r)
		})

		r.Route("/schedule", func(r chi.Router) {
			scheduleV1.Routes(r)
		})

		r.Route("/budget-items", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetV1.Routes(r)
		})

		r.Route("/forecast", forecastV1.Routes)
	})

	return router
}
