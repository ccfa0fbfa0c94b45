package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateLoading importState = iota
	importStateOptions
	importStateFilePick
	importStateImporting
	importStateResult
)

// importChoice holds the values bound to the options form.
type importChoice struct {
	practiceID int64
	format     importer.Format
}

type ImportModel struct {
	CommonModel
	importService *importer.Service
	catalog       Catalog

	state      importState
	choice     *importChoice
	form       *huh.Form
	filePicker filepicker.Model
	imported   list.Model

	status string
	err    error
}

func NewImportModel(impSvc *importer.Service, catalog Catalog) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		catalog:       catalog,
		choice:        &importChoice{},
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Actuals" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "↑/↓: scroll | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.catalog.loadCmd()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case targetsMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.form = m.buildOptionsForm(msg)
		m.state = importStateOptions

		return m, m.form.Init()

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d actuals (%s, batch %s).",
			len(msg.result.Actuals), msg.result.Profile, msg.result.BatchID)
		m.imported = newActualList(msg.result.Actuals)

		return m, nil
	}

	switch m.state {
	case importStateOptions:
		return m.updateOptions(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	case importStateResult:
		if m.err == nil {
			var cmd tea.Cmd
			m.imported, cmd = m.imported.Update(msg)

			return m, cmd
		}
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == importStateFilePick {
		m.form = nil
		m.state = importStateLoading

		return m, m.catalog.loadCmd()
	}

	return m, Back
}

func (m ImportModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) buildOptionsForm(targets targetsMsg) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Practice").
				Options(practiceOptions(targets.practices)...).
				Value(&m.choice.practiceID),
			huh.NewSelect[importer.Format]().
				Title("Export Format").
				Options(
					huh.NewOption("Auto-detect", importer.Format("")),
					huh.NewOption("QuickBooks", budget.SourceQuickBooks),
					huh.NewOption("Xero", budget.SourceXero),
					huh.NewOption("Generic ledger", budget.SourceImport),
				).
				Value(&m.choice.format),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading practices...")
	case importStateOptions:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case importStateFilePick:
		return m.viewFilePick()
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewFilePick() string {
	format := string(m.choice.format)
	if format == "" {
		format = "auto-detect"
	}

	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select file to import (%s):\n\n%s", format, m.filePicker.View()),
	)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(
		successStyle.Render(m.status) + "\n\n" + m.imported.View() + "\n\n(Esc to go back)",
	)
}

type importResultMsg struct {
	result *importer.ActualsResult
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	choice := *m.choice

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.importService.ImportActuals(ctx, choice.practiceID, choice.format, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result}
	}
}

// Imported actual list

type actualItem struct {
	actual *budget.Actual
}

func (i actualItem) Title() string       { return "" }
func (i actualItem) Description() string { return "" }
func (i actualItem) FilterValue() string { return "" }

type actualDelegate struct{}

func (d actualDelegate) Height() int                             { return 1 }
func (d actualDelegate) Spacing() int                            { return 0 }
func (d actualDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d actualDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(actualItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	fmt.Fprintf(w, "%s%s  category %-6d %14s  [%s]",
		cursor,
		FormatDate(item.actual.PeriodDate),
		item.actual.CategoryID,
		FormatAmount(item.actual.Amount),
		item.actual.Source,
	)
}

func newActualList(actuals []*budget.Actual) list.Model {
	items := make([]list.Item, len(actuals))
	for i, a := range actuals {
		items[i] = actualItem{actual: a}
	}

	l := list.New(items, actualDelegate{}, 80, 15)
	l.Title = "Imported Actuals"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}
