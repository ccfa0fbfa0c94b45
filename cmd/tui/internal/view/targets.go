package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	"github.com/MrJamesThe3rd/dentalbudget/internal/page"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
)

// Catalog loads the practices and budget periods offered by the pickers.
type Catalog struct {
	Practices *practice.Service
	Fiscal    *fiscal.Service
}

type targetsMsg struct {
	practices []*practice.Practice
	periods   []*fiscal.BudgetPeriod
	err       error
}

func (c Catalog) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		practices, err := c.Practices.List(ctx, 0, page.MaxLimit)
		if err != nil {
			return targetsMsg{err: err}
		}

		periods, err := c.Fiscal.ListPeriods(ctx, nil)
		if err != nil {
			return targetsMsg{err: err}
		}

		return targetsMsg{practices: practices, periods: periods}
	}
}

func practiceOptions(practices []*practice.Practice) []huh.Option[int64] {
	opts := make([]huh.Option[int64], len(practices))
	for i, p := range practices {
		opts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", p.Name, p.Location), p.ID)
	}

	return opts
}

func periodOptions(periods []*fiscal.BudgetPeriod) []huh.Option[int64] {
	opts := make([]huh.Option[int64], len(periods))
	for i, p := range periods {
		opts[i] = huh.NewOption(fmt.Sprintf("%s [%s]", p.PeriodDate.Format("2006-01"), p.Status), p.ID)
	}

	return opts
}

func practiceName(practices []*practice.Practice, id int64) string {
	for _, p := range practices {
		if p.ID == id {
			return p.Name
		}
	}

	return fmt.Sprintf("practice %d", id)
}
