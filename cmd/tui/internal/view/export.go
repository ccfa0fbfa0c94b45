package view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dentalbudget/internal/export"
)

const (
	exportTimeout    = 2 * time.Minute
	maxExportPeriods = 24
)

type exportState int

const (
	exportStateLoading exportState = iota
	exportStateForm
	exportStateExporting
	exportStateResult
)

type exportChoice struct {
	practiceID int64
	periodIDs  []int64
	path       string
}

type ExportModel struct {
	CommonModel
	exportService *export.Service
	catalog       Catalog

	state   exportState
	err     error
	choice  *exportChoice
	form    *huh.Form
	spinner spinner.Model
	summary string
}

func NewExportModel(svc *export.Service, catalog Catalog) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService: svc,
		catalog:       catalog,
		choice:        &exportChoice{path: "./exports"},
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export Variance Workbooks" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.catalog.loadCmd()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state != exportStateExporting {
		return m, Back
	}

	switch m.state {
	case exportStateLoading:
		return m.updateLoading(msg)
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	}

	return m, nil
}

func (m ExportModel) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	targets, ok := msg.(targetsMsg)
	if !ok {
		return m, nil
	}

	if targets.err != nil {
		m.state = exportStateResult
		m.err = targets.err

		return m, nil
	}

	m.form = m.buildForm(targets)
	m.state = exportStateForm

	return m, m.form.Init()
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(*m.choice))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildForm(targets targetsMsg) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Practice").
				Options(practiceOptions(targets.practices)...).
				Value(&m.choice.practiceID),
			huh.NewMultiSelect[int64]().
				Title("Budget Periods").
				Options(periodOptions(targets.periods)...).
				Validate(func(ids []int64) error {
					if len(ids) == 0 || len(ids) > maxExportPeriods {
						return fmt.Errorf("select between 1 and %d periods", maxExportPeriods)
					}

					return nil
				}).
				Value(&m.choice.periodIDs),
			huh.NewInput().
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("output path is required")
					}

					return nil
				}).
				Value(&m.choice.path),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateLoading:
		return lipgloss.NewStyle().Padding(1).Render("Loading practices and periods...")

	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Building variance workbooks...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)",
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			"Summary:",
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	body string
	err  error
}

func (m ExportModel) runExportCmd(choice exportChoice) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		items, err := m.exportService.Export(ctx, choice.practiceID, choice.periodIDs, choice.path)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{body: m.exportService.GenerateSummary(items)}
	}
}
