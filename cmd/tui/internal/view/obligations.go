package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/payplanhq/payplan/internal/money"
	"github.com/payplanhq/payplan/internal/obligation"
)

type obligationState int

const (
	obligationStateBrowse obligationState = iota
	obligationStatePay
)

type ObligationModel struct {
	CommonModel
	obligationService *obligation.Service

	state       obligationState
	table       table.Model
	obligations []*obligation.Obligation
	form        *huh.Form

	// Filter cycling
	statusFilterIdx int
	typeFilterIdx   int

	filter  obligation.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formAmount string
	formDate   string
	formMethod string
}

func NewObligationModel(obligationSvc *obligation.Service) ObligationModel {
	columns := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Type", Width: 12},
		{Title: "Total", Width: 12},
		{Title: "Paid", Width: 12},
		{Title: "Remaining", Width: 12},
		{Title: "Name", Width: 36},
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

	return ObligationModel{
		obligationService: obligationSvc,
		table:             t,
		filter:            obligation.ListFilter{},
	}
}

func (m ObligationModel) Title() string { return "Obligations" }
func (m ObligationModel) ShortHelp() string {
	if m.state == obligationStatePay {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | p: record payment | s: status filter | t: type filter | r: refresh"
}

func (m ObligationModel) Init() tea.Cmd {
	return m.loadObligationsCmd()
}

func (m ObligationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadObligationsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.obligations = msg.obligations
		m.status = ""
		m.refreshTable()
		return m, nil

	case paymentSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error recording payment: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Recorded. New status: %s", msg.obligation.Status)
		}
		m.state = obligationStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadObligationsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case obligationStateBrowse:
		return m.updateBrowse(msg)
	case obligationStatePay:
		return m.updatePay(msg)
	}

	return m, nil
}

func (m ObligationModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadObligationsCmd()
		case "p":
			return m.enterPayMode()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 5
			m.applyFilter()
			return m, m.loadObligationsCmd()
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % 4
			m.applyFilter()
			return m, m.loadObligationsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ObligationModel) enterPayMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.obligations) {
		return m, nil
	}

	o := m.obligations[idx]
	if o.Remaining() == 0 {
		m.status = "Already settled."
		return m, nil
	}

	m.formAmount = money.Format(o.Remaining())
	m.formDate = FormatDate(time.Now())
	m.formMethod = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					cents, err := money.ParseStrict(s)
					if err != nil {
						return err
					}
					if cents <= 0 {
						return fmt.Errorf("amount must be positive")
					}
					if cents > o.Remaining() {
						return fmt.Errorf("max acceptable is %s", money.Format(o.Remaining()))
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Payment Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
					return err
				}),

			huh.NewInput().
				Key("method").
				Title("Method").
				Placeholder("bank transfer").
				Value(&m.formMethod),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = obligationStatePay
	m.table.Blur()
	return m, m.form.Init()
}

func (m ObligationModel) updatePay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = obligationStateBrowse
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

	return m, m.recordPaymentCmd()
}

func (m ObligationModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading obligations...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pending", "Partial", "Paid", "Overdue"}
	typeLabels := []string{"All", "Single", "Installment", "Recurring"}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [t] Type: %s",
		activeStyle(statusLabels[m.statusFilterIdx]),
		activeStyle(typeLabels[m.typeFilterIdx]),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == obligationStatePay && m.form != nil {
		idx := m.table.Cursor()
		name := ""
		remaining := ""
		if idx >= 0 && idx < len(m.obligations) {
			name = m.obligations[idx].Name
			remaining = money.Format(m.obligations[idx].Remaining())
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(
				fmt.Sprintf("Record Payment\n\n%s\nRemaining: %s\n\n%s", name, remaining, m.form.View()),
			)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ObligationModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		m.filter.Status = new(obligation.StatusPending)
	case 2:
		m.filter.Status = new(obligation.StatusPartial)
	case 3:
		m.filter.Status = new(obligation.StatusPaid)
	case 4:
		m.filter.Status = new(obligation.StatusOverdue)
	default:
		m.filter.Status = nil
	}

	switch m.typeFilterIdx {
	case 1:
		m.filter.PaymentType = new(obligation.TypeSingle)
	case 2:
		m.filter.PaymentType = new(obligation.TypeInstallment)
	case 3:
		m.filter.PaymentType = new(obligation.TypeRecurring)
	default:
		m.filter.PaymentType = nil
	}
}

func (m *ObligationModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.obligations))
	for _, o := range m.obligations {
		due := ""
		if o.DueDate != nil {
			due = FormatDate(*o.DueDate)
		}
		rows = append(rows, table.Row{
			due,
			string(o.Status),
			string(o.PaymentType),
			FormatAmount(o.TotalAmount),
			FormatAmount(o.PaidAmount),
			FormatAmount(o.Remaining()),
			o.Name,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadObligationsMsg struct {
	obligations []*obligation.Obligation
	err         error
}

func (m ObligationModel) loadObligationsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		obligations, err := m.obligationService.List(ctx, m.filter)
		return loadObligationsMsg{obligations: obligations, err: err}
	}
}

type paymentSavedMsg struct {
	obligation *obligation.Obligation
	err        error
}

func (m ObligationModel) recordPaymentCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.obligations) {
		return nil
	}

	o := m.obligations[idx]
	amount := money.Parse(m.formAmount)
	date, err := time.Parse("2006-01-02", strings.TrimSpace(m.formDate))
	if err != nil {
		date = time.Now()
	}
	method := m.formMethod

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.obligationService.RecordPayment(ctx, o.ID, amount, date, method)
		return paymentSavedMsg{obligation: updated, err: err}
	}
}
