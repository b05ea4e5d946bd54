package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/payplanhq/payplan/internal/budget"
	budgetStore "github.com/payplanhq/payplan/internal/budget/store"
	"github.com/payplanhq/payplan/internal/config"
	"github.com/payplanhq/payplan/internal/database"
	"github.com/payplanhq/payplan/internal/forecast"
	payplanHttp "github.com/payplanhq/payplan/internal/http"
	budgetHandler "github.com/payplanhq/payplan/internal/http/budget"
	forecastHandler "github.com/payplanhq/payplan/internal/http/forecast"
	obligationHandler "github.com/payplanhq/payplan/internal/http/obligation"
	scheduleHandler "github.com/payplanhq/payplan/internal/http/schedule"
	"github.com/payplanhq/payplan/internal/obligation"
	obligationStore "github.com/payplanhq/payplan/internal/obligation/store"
	"github.com/payplanhq/payplan/internal/schedule"
	scheduleStore "github.com/payplanhq/payplan/internal/schedule/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		scheduleService   = schedule.NewService(scheduleStore.New(db))
		obligationService = obligation.NewService(obligationStore.New(db)).WithScheduleSource(scheduleService)
		budgetService     = budget.NewService(budgetStore.New(db), obligationService)
		forecastService   = forecast.NewService(obligationService, budgetService, scheduleService, obligationService)
	)

	var (
		obligationH = obligationHandler.NewHandler(obligationService)
		scheduleH   = scheduleHandler.NewHandler(scheduleService)
		budgetH     = budgetHandler.NewHandler(budgetService)
		forecastH   = forecastHandler.NewHandler(forecastService, cfg.Forecast.DefaultMonths)
	)

	router := payplanHttp.New(obligationH, scheduleH, budgetH, forecastH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
