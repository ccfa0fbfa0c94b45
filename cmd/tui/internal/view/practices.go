package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dentalbudget/internal/page"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
)

type practicesMsg struct {
	practices []*practice.Practice
	err       error
}

type practiceEdit struct {
	location string
	status   practice.Status
}

// PracticesModel lists practices and edits their location and status.
type PracticesModel struct {
	CommonModel
	practiceService *practice.Service

	table     table.Model
	practices []*practice.Practice

	editing bool
	edit    *practiceEdit
	editID  int64
	form    *huh.Form

	status string
	err    error
}

func NewPracticesModel(svc *practice.Service) PracticesModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 30},
		{Title: "Location", Width: 12},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
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

	return PracticesModel{
		practiceService: svc,
		table:           t,
		edit:            &practiceEdit{},
	}
}

func (m PracticesModel) Title() string { return "Practices" }

func (m PracticesModel) ShortHelp() string {
	if m.editing {
		return "Enter: save | Esc: cancel"
	}

	return "↑/↓: navigate | e: edit | Esc: back"
}

func (m PracticesModel) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m PracticesModel) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		practices, err := m.practiceService.List(ctx, 0, page.MaxLimit)

		return practicesMsg{practices: practices, err: err}
	}
}

type practiceSavedMsg struct {
	practice *practice.Practice
	err      error
}

func (m PracticesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case practicesMsg:
		m.err = msg.err
		m.practices = msg.practices

		rows := make([]table.Row, len(msg.practices))
		for i, p := range msg.practices {
			rows[i] = table.Row{strconv.FormatInt(p.ID, 10), p.Name, p.Location, string(p.Status)}
		}

		m.table.SetRows(rows)

		return m, nil

	case practiceSavedMsg:
		m.editing = false
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.status = successStyle.Render(fmt.Sprintf("Saved %s.", msg.practice.Name))

		return m, m.fetchCmd()
	}

	if m.editing {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "e":
			return m.enterEditMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PracticesModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.practices) {
		return m, nil
	}

	p := m.practices[idx]
	m.editID = p.ID
	m.edit.location = p.Location
	m.edit.status = p.Status
	m.editing = true
	m.status = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Location").
				CharLimit(50).
				Value(&m.edit.location),
			huh.NewSelect[practice.Status]().
				Title("Status").
				Options(
					huh.NewOption("Active", practice.StatusActive),
					huh.NewOption("Inactive", practice.StatusInactive),
				).
				Value(&m.edit.status),
		),
	).WithWidth(50).WithShowHelp(false)

	return m, m.form.Init()
}

func (m PracticesModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.editing = false
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	id := m.editID
	params := practice.UpdateParams{
		Location: new(m.edit.location),
		Status:   new(m.edit.status),
	}

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.practiceService.Update(ctx, id, params)

		return practiceSavedMsg{practice: p, err: err}
	}
}

func (m PracticesModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	if m.editing {
		return style.Render(headerStyle.Render("Edit Practice") + "\n\n" + m.form.View())
	}

	view := m.table.View() + "\n\n" + m.ShortHelp()
	if m.status != "" {
		view = m.status + "\n\n" + view
	}

	return style.Render(view)
}
