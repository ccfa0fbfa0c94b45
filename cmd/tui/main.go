package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/dentalbudget/cmd/tui/internal/view"
	auditStore "github.com/MrJamesThe3rd/dentalbudget/internal/audit/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/dentalbudget/internal/budget/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	categoryStore "github.com/MrJamesThe3rd/dentalbudget/internal/category/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/config"
	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
	"github.com/MrJamesThe3rd/dentalbudget/internal/export"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	fiscalStore "github.com/MrJamesThe3rd/dentalbudget/internal/fiscal/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/importer"
	"github.com/MrJamesThe3rd/dentalbudget/internal/mapping"
	mappingStore "github.com/MrJamesThe3rd/dentalbudget/internal/mapping/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
	practiceStore "github.com/MrJamesThe3rd/dentalbudget/internal/practice/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/report"
	reportStore "github.com/MrJamesThe3rd/dentalbudget/internal/report/store"
)

type services struct {
	practices *practice.Service
	reports   *report.Service
	imports   *importer.Service
	exports   *export.Service
	catalog   view.Catalog
}

type model struct {
	svc services

	currentView View

	practicesView view.PracticesModel
	varianceView  view.VarianceModel
	plView        view.ProfitAndLossModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewPractices View = 1
	ViewVariance  View = 2
	ViewPL        View = 3
	ViewImport    View = 4
	ViewExport    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString(), database.PoolOptions{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	auditLog := auditStore.New(db)
	practiceSvc := practice.NewService(practiceStore.New(db, auditLog))
	fiscalSvc := fiscal.NewService(fiscalStore.New(db, auditLog))
	categorySvc := category.NewService(categoryStore.New(db, auditLog))
	mappingSvc := mapping.NewService(mappingStore.New(db, auditLog))
	budgetSvc := budget.NewService(budgetStore.New(db, auditLog), fiscalSvc, categorySvc, mappingSvc)
	reportSvc := report.NewService(reportStore.New(db))

	return model{
		svc: services{
			practices: practiceSvc,
			reports:   reportSvc,
			imports:   importer.NewService(budgetSvc),
			exports:   export.NewService(reportSvc),
			catalog:   view.Catalog{Practices: practiceSvc, Fiscal: fiscalSvc},
		},
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPractices
				m.practicesView = view.NewPracticesModel(m.svc.practices)

				return m, m.practicesView.Init()
			case "2":
				m.currentView = ViewVariance
				m.varianceView = view.NewVarianceModel(m.svc.reports, m.svc.catalog)

				return m, m.varianceView.Init()
			case "3":
				m.currentView = ViewPL
				m.plView = view.NewProfitAndLossModel(m.svc.reports, m.svc.catalog)

				return m, m.plView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.svc.imports, m.svc.catalog)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.svc.exports, m.svc.catalog)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPractices:
		var newModel tea.Model
		newModel, cmd = m.practicesView.Update(msg)
		m.practicesView = newModel.(view.PracticesModel)
	case ViewVariance:
		var newModel tea.Model
		newModel, cmd = m.varianceView.Update(msg)
		m.varianceView = newModel.(view.VarianceModel)
	case ViewPL:
		var newModel tea.Model
		newModel, cmd = m.plView.Update(msg)
		m.plView = newModel.(view.ProfitAndLossModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Dental Budget\n\n" +
				"1. Practices\n" +
				"2. Variance Report\n" +
				"3. Profit & Loss\n" +
				"4. Import Actuals\n" +
				"5. Export Variance Workbooks\n\n" +
				"q. Quit",
		)
	case ViewPractices:
		return m.practicesView.View()
	case ViewVariance:
		return m.varianceView.View()
	case ViewPL:
		return m.plView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
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
