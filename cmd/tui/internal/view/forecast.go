package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/payplanhq/payplan/internal/forecast"
)

const (
	minForecastMonths = 1
	maxForecastMonths = 24
)

var forecastCategories = []forecast.Category{
	forecast.CategoryBudget,
	forecast.CategoryScheduled,
	forecast.CategoryEstimated,
	forecast.CategoryRecurring,
	forecast.CategoryPaid,
	forecast.CategoryCarriedOver,
}

type ForecastModel struct {
	CommonModel
	forecastService *forecast.Service

	buckets     []*forecast.MonthBucket
	monthsAhead int

	loading bool
	err     error
}

func NewForecastModel(forecastSvc *forecast.Service, monthsAhead int) ForecastModel {
	if monthsAhead < minForecastMonths {
		monthsAhead = minForecastMonths
	}

	return ForecastModel{
		forecastService: forecastSvc,
		monthsAhead:     monthsAhead,
	}
}

func (m ForecastModel) Title() string { return "Cash-Flow Forecast" }
func (m ForecastModel) ShortHelp() string {
	return "Esc: back | +/-: horizon | r: refresh"
}

func (m ForecastModel) Init() tea.Cmd {
	return m.loadForecastCmd()
}

func (m ForecastModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadForecastMsg:
		m.loading = false
		m.err = msg.err
		m.buckets = msg.buckets
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadForecastCmd()
		case "+", "=":
			if m.monthsAhead < maxForecastMonths {
				m.monthsAhead++
			}
			return m, m.loadForecastCmd()
		case "-":
			if m.monthsAhead > minForecastMonths {
				m.monthsAhead--
			}
			return m, m.loadForecastCmd()
		}
	}

	return m, nil
}

func (m ForecastModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Projecting...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Horizon: %s", activeStyle(fmt.Sprintf("%d months", m.monthsAhead)))

	cards := make([]string, 0, len(m.buckets))
	for _, b := range m.buckets {
		cards = append(cards, renderBucket(b))
	}

	grid := renderRows(cards, 4)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			grid,
		),
	)
}

func renderBucket(b *forecast.MonthBucket) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(b.Key()))
	sb.WriteString("\n")

	for _, c := range forecastCategories {
		amount := b.Subtotals[c]
		if amount == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-12s %12s\n", c, FormatAmount(amount)))
	}

	sb.WriteString(fmt.Sprintf("%-12s %12s", "total", FormatAmount(b.Total())))

	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(28).
		Render(sb.String())
}

func renderRows(cards []string, perRow int) string {
	rows := make([]string, 0, (len(cards)+perRow-1)/perRow)
	for len(cards) > 0 {
		n := min(perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[:n]...))
		cards = cards[n:]
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Messages

type loadForecastMsg struct {
	buckets []*forecast.MonthBucket
	err     error
}

func (m ForecastModel) loadForecastCmd() tea.Cmd {
	monthsAhead := m.monthsAhead

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		buckets, err := m.forecastService.Project(ctx, monthsAhead)
		return loadForecastMsg{buckets: buckets, err: err}
	}
}
