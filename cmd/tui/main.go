package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/payplanhq/payplan/cmd/tui/internal/view"
	"github.com/payplanhq/payplan/internal/budget"
	budgetStore "github.com/payplanhq/payplan/internal/budget/store"
	"github.com/payplanhq/payplan/internal/config"
	"github.com/payplanhq/payplan/internal/database"
	"github.com/payplanhq/payplan/internal/forecast"
	"github.com/payplanhq/payplan/internal/obligation"
	obligationStore "github.com/payplanhq/payplan/internal/obligation/store"
	"github.com/payplanhq/payplan/internal/schedule"
	scheduleStore "github.com/payplanhq/payplan/internal/schedule/store"
)

type model struct {
	obligationService *obligation.Service
	scheduleService   *schedule.Service
	forecastService   *forecast.Service

	defaultMonths int

	currentView View

	obligationView view.ObligationModel
	scheduleView   view.ScheduleModel
	forecastView   view.ForecastModel
}

type View int

const (
	ViewMenu        View = 0
	ViewObligations View = 1
	ViewSchedule    View = 2
	ViewForecast    View = 3
)

func initialModel() model {
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

	scheduleSvc := schedule.NewService(scheduleStore.New(db))
	obligationSvc := obligation.NewService(obligationStore.New(db)).WithScheduleSource(scheduleSvc)
	budgetSvc := budget.NewService(budgetStore.New(db), obligationSvc)
	forecastSvc := forecast.NewService(obligationSvc, budgetSvc, scheduleSvc, obligationSvc)

	return model{
		obligationService: obligationSvc,
		scheduleService:   scheduleSvc,
		forecastService:   forecastSvc,
		defaultMonths:     cfg.Forecast.DefaultMonths,
		currentView:       ViewMenu,
		obligationView:    view.NewObligationModel(obligationSvc),
		scheduleView:      view.NewScheduleModel(scheduleSvc),
		forecastView:      view.NewForecastModel(forecastSvc, cfg.Forecast.DefaultMonths),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewObligations
				m.obligationView = view.NewObligationModel(m.obligationService)

				return m, m.obligationView.Init()
			case "2":
				m.currentView = ViewSchedule
				m.scheduleView = view.NewScheduleModel(m.scheduleService)

				return m, m.scheduleView.Init()
			case "3":
				m.currentView = ViewForecast
				m.forecastView = view.NewForecastModel(m.forecastService, m.defaultMonths)

				return m, m.forecastView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewObligations:
		var newModel tea.Model
		newModel, cmd = m.obligationView.Update(msg)
		m.obligationView = newModel.(view.ObligationModel)
	case ViewSchedule:
		var newModel tea.Model
		newModel, cmd = m.scheduleView.Update(msg)
		m.scheduleView = newModel.(view.ScheduleModel)
	case ViewForecast:
		var newModel tea.Model
		newModel, cmd = m.forecastView.Update(msg)
		m.forecastView = newModel.(view.ForecastModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"PayPlan TUI\n\n" +
				"1. Obligations\n" +
				"2. Payment Schedule\n" +
				"3. Cash-Flow Forecast\n\n" +
				"q. Quit",
		)
	case ViewObligations:
		return m.obligationView.View()
	case ViewSchedule:
		return m.scheduleView.View()
	case ViewForecast:
		return m.forecastView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
