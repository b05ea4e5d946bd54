package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/payplanhq/payplan/internal/schedule"
)

type scheduleState int

const (
	scheduleStateBrowse scheduleState = iota
	scheduleStateReschedule
)

type ScheduleModel struct {
	CommonModel
	scheduleService *schedule.Service

	state   scheduleState
	table   table.Model
	entries []*schedule.Entry
	stats   *schedule.Stats
	form    *huh.Form

	year  int
	month time.Month

	loading bool
	err     error
	status  string

	// Form bindings
	formDate  string
	formNotes string
}

func NewScheduleModel(scheduleSvc *schedule.Service) ScheduleModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Status", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Overdue", Width: 8},
		{Title: "Notes", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	now := time.Now()

	return ScheduleModel{
		scheduleService: scheduleSvc,
		table:           t,
		year:            now.Year(),
		month:           now.Month(),
	}
}

func (m ScheduleModel) Title() string { return "Payment Schedule" }
func (m ScheduleModel) ShortHelp() string {
	if m.state == scheduleStateReschedule {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | left/right: month | e: reschedule | r: refresh"
}

func (m ScheduleModel) Init() tea.Cmd {
	return m.loadMonthCmd()
}

func (m ScheduleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadScheduleMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.stats = msg.stats
		m.refreshTable()
		return m, nil

	case rescheduleDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error rescheduling: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Moved to %s", FormatDate(msg.entry.ScheduledDate))
		}
		m.state = scheduleStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadMonthCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case scheduleStateBrowse:
		return m.updateBrowse(msg)
	case scheduleStateReschedule:
		return m.updateReschedule(msg)
	}

	return m, nil
}

func (m ScheduleModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadMonthCmd()
		case "left":
			m.shiftMonth(-1)
			return m, m.loadMonthCmd()
		case "right":
			m.shiftMonth(1)
			return m, m.loadMonthCmd()
		case "e":
			return m.enterRescheduleMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScheduleModel) shiftMonth(delta int) {
	shifted := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	m.year = shifted.Year()
	m.month = shifted.Month()
}

func (m ScheduleModel) enterRescheduleMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return m, nil
	}

	e := m.entries[idx]
	if e.Status != schedule.StatusPending {
		m.status = "Only pending entries can be rescheduled."
		return m, nil
	}

	m.formDate = FormatDate(e.ScheduledDate)
	m.formNotes = e.Notes

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("New Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
					return err
				}),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = scheduleStateReschedule
	m.table.Blur()
	return m, m.form.Init()
}

func (m ScheduleModel) updateReschedule(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = scheduleStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.rescheduleCmd()
}

func (m ScheduleModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading schedule...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Month: %s", activeStyle(fmt.Sprintf("%s %d", m.month, m.year)))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := ""
	if m.stats != nil {
		footer = fmt.Sprintf(
			"Entries: %d | Month total: %s | Overdue: %d",
			m.stats.EntryCount,
			FormatAmount(m.stats.MonthTotal),
			m.stats.OverdueCount,
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().Faint(true).PaddingTop(1).Render(footer),
	)

	if m.state == scheduleStateReschedule && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Reschedule Entry\n\n%s", m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ScheduleModel) refreshTable() {
	today := time.Now()

	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		overdue := ""
		if e.IsOverdue(today) {
			overdue = "yes"
		}
		rows = append(rows, table.Row{
			FormatDate(e.ScheduledDate),
			string(e.Status),
			FormatAmount(e.ScheduledAmount),
			overdue,
			e.Notes,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadScheduleMsg struct {
	entries []*schedule.Entry
	stats   *schedule.Stats
	err     error
}

func (m ScheduleModel) loadMonthCmd() tea.Cmd {
	year, month := m.year, m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.scheduleService.ListMonth(ctx, year, month)
		if err != nil {
			return loadScheduleMsg{err: err}
		}

		stats, err := m.scheduleService.Stats(ctx, year, month, time.Now())
		if err != nil {
			return loadScheduleMsg{err: err}
		}

		return loadScheduleMsg{entries: entries, stats: stats}
	}
}

type rescheduleDoneMsg struct {
	entry *schedule.Entry
	err   error
}

func (m ScheduleModel) rescheduleCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return nil
	}

	e := m.entries[idx]
	notes := m.formNotes

	newDate, err := time.Parse("2006-01-02", strings.TrimSpace(m.formDate))
	if err != nil {
		return func() tea.Msg { return rescheduleDoneMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entry, err := m.scheduleService.Reschedule(ctx, e.ID, newDate, notes)
		return rescheduleDoneMsg{entry: entry, err: err}
	}
}
