package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dentalbudget/internal/report"
)

type varianceState int

const (
	varianceStateLoading varianceState = iota
	varianceStateForm
	varianceStateRunning
	varianceStateReport
)

type varianceChoice struct {
	practiceID int64
	periodID   int64
}

// VarianceModel shows budget against actuals for one practice period.
type VarianceModel struct {
	CommonModel
	reports *report.Service
	catalog Catalog

	state  varianceState
	choice *varianceChoice
	form   *huh.Form
	table  table.Model
	report *report.Variance
	err    error
}

func NewVarianceModel(reports *report.Service, catalog Catalog) VarianceModel {
	columns := []table.Column{
		{Title: "Code", Width: 8},
		{Title: "Category", Width: 36},
		{Title: "Type", Width: 8},
		{Title: "Budget", Width: 14},
		{Title: "Actual", Width: 14},
		{Title: "Variance", Width: 14},
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

	return VarianceModel{
		reports: reports,
		catalog: catalog,
		choice:  &varianceChoice{},
		table:   t,
	}
}

func (m VarianceModel) Title() string { return "Variance Report" }

func (m VarianceModel) ShortHelp() string {
	if m.state == varianceStateReport {
		return "↑/↓: navigate | r: another period | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m VarianceModel) Init() tea.Cmd {
	return m.catalog.loadCmd()
}

type varianceMsg struct {
	report *report.Variance
	err    error
}

func (m VarianceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == varianceStateReport && msg.String() == "r" {
			m.state = varianceStateLoading
			m.err = nil

			return m, m.catalog.loadCmd()
		}

	case targetsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = varianceStateReport

			return m, nil
		}

		m.form = m.buildForm(msg)
		m.state = varianceStateForm

		return m, m.form.Init()

	case varianceMsg:
		m.state = varianceStateReport
		m.err = msg.err
		m.report = msg.report

		if msg.err == nil {
			m.table.SetRows(varianceRows(msg.report))
			m.table.SetCursor(0)
		}

		return m, nil
	}

	switch m.state {
	case varianceStateForm:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.state = varianceStateRunning

		return m, m.runCmd(*m.choice)

	case varianceStateReport:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m VarianceModel) buildForm(targets targetsMsg) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Practice").
				Options(practiceOptions(targets.practices)...).
				Value(&m.choice.practiceID),
			huh.NewSelect[int64]().
				Title("Budget Period").
				Options(periodOptions(targets.periods)...).
				Value(&m.choice.periodID),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m VarianceModel) runCmd(choice varianceChoice) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := m.reports.Variance(ctx, choice.practiceID, choice.periodID)

		return varianceMsg{report: r, err: err}
	}
}

func varianceRows(r *report.Variance) []table.Row {
	rows := make([]table.Row, len(r.LineItems))
	for i, item := range r.LineItems {
		rows[i] = table.Row{
			item.CategoryCode,
			item.CategoryName,
			string(item.CategoryType),
			FormatAmount(item.Budget),
			FormatAmount(item.Actual),
			FormatAmount(item.Variance),
		}
	}

	return rows
}

func (m VarianceModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case varianceStateLoading:
		return style.Render("Loading practices and periods...")
	case varianceStateForm:
		return style.Render(m.form.View())
	case varianceStateRunning:
		return style.Render("Building report...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(r to retry, Esc to go back)")
	}

	r := m.report

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%s) - %s",
		r.Practice.Name, r.Practice.Location, r.Period.PeriodDate.Format("January 2006"))))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	fmt.Fprintf(&b, "\n\nBudget: %s   Actual: %s   Variance: %s (%.2f%%)",
		FormatAmount(r.TotalBudget),
		FormatAmount(r.TotalActual),
		FormatVariance(r.TotalVariance),
		r.VariancePercentage,
	)

	for _, w := range r.Warnings {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + w))
	}

	b.WriteString("\n\n" + m.ShortHelp())

	return style.Render(b.String())
}
