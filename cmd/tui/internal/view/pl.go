package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/report"
)

type plState int

const (
	plStateLoading plState = iota
	plStatePractice
	plStateTimeframe
	plStateRunning
	plStateResult
)

// ProfitAndLossModel sums a practice's actuals over a chosen timeframe.
type ProfitAndLossModel struct {
	CommonModel
	reports *report.Service
	catalog Catalog

	state           plState
	practiceID      *int64
	form            *huh.Form
	timeframePicker TimeframePicker
	result          *report.ProfitAndLoss
	err             error
}

func NewProfitAndLossModel(reports *report.Service, catalog Catalog) ProfitAndLossModel {
	return ProfitAndLossModel{
		reports:         reports,
		catalog:         catalog,
		practiceID:      new(int64(0)),
		timeframePicker: NewTimeframePicker(),
	}
}

func (m ProfitAndLossModel) Title() string { return "Profit & Loss" }

func (m ProfitAndLossModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ProfitAndLossModel) Init() tea.Cmd {
	return m.catalog.loadCmd()
}

type profitAndLossMsg struct {
	result *report.ProfitAndLoss
	err    error
}

func (m ProfitAndLossModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case targetsMsg:
		if msg.err != nil {
			m.state = plStateResult
			m.err = msg.err

			return m, nil
		}

		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int64]().
					Title("Practice").
					Options(practiceOptions(msg.practices)...).
					Value(m.practiceID),
			),
		).WithWidth(60).WithShowHelp(false)
		m.state = plStatePractice

		return m, m.form.Init()

	case TimeframeSelectedMsg:
		m.state = plStateRunning
		return m, m.runCmd(*m.practiceID, msg)

	case profitAndLossMsg:
		m.state = plStateResult
		m.result = msg.result
		m.err = msg.err

		return m, nil
	}

	switch m.state {
	case plStatePractice:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State == huh.StateCompleted {
			m.state = plStateTimeframe
			m.timeframePicker.Reset()
		}

		return m, cmd

	case plStateTimeframe:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		return m, cmd

	case plStateResult, plStateLoading:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case keyMsg.Type == tea.KeyEsc:
				return m, Back
			case keyMsg.String() == "t" && m.state == plStateResult:
				m.state = plStateTimeframe
				m.timeframePicker.Reset()
			}
		}
	}

	return m, nil
}

func (m ProfitAndLossModel) runCmd(practiceID int64, tf TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		pl, err := m.reports.ProfitAndLoss(ctx, practiceID, tf.Start, tf.End)

		return profitAndLossMsg{result: pl, err: err}
	}
}

func (m ProfitAndLossModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case plStateLoading:
		return style.Render("Loading practices...")
	case plStatePractice:
		return style.Render(m.form.View())
	case plStateTimeframe:
		return style.Render(m.timeframePicker.View())
	case plStateRunning:
		return style.Render("Summing actuals...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(t: other timeframe | Esc: back)")
	}

	pl := m.result

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s: %s to %s (%d periods)",
		pl.Practice.Name, FormatDate(pl.StartDate), FormatDate(pl.EndDate), len(pl.PeriodIDs))))

	writeSection := func(title string, totals []report.CategoryTotal) {
		fmt.Fprintf(&b, "\n\n%s\n", title)
		for _, t := range totals {
			fmt.Fprintf(&b, "  %-8s %-40s %14s\n", t.Code, t.Name, FormatAmount(t.Amount))
		}
	}

	writeSection("Revenue", pl.Revenue)
	fmt.Fprintf(&b, "  %-49s %14s", "Total Revenue", FormatAmount(pl.TotalRevenue))
	writeSection("Expenses", pl.Expenses)
	fmt.Fprintf(&b, "  %-49s %14s", "Total Expenses", FormatAmount(pl.TotalExpenses))
	fmt.Fprintf(&b, "\n\n  %-49s %s", "Net Income", FormatVariance(pl.NetIncome))

	var metrics []report.CategoryTotal
	for _, c := range pl.Categories {
		if c.Type == category.TypeMetric {
			metrics = append(metrics, c)
		}
	}

	if len(metrics) > 0 {
		writeSection("Metrics", metrics)
	}
	b.WriteString("\n\n(t: other timeframe | Esc: back)")

	return style.Render(b.String())
}
