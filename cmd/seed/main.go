// Command seed loads the practices, the chart of accounts, fiscal year 2026
// and a few sample budget lines. Running it again only adds what is missing.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	auditStore "github.com/MrJamesThe3rd/dentalbudget/internal/audit/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/dentalbudget/internal/budget/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	categoryStore "github.com/MrJamesThe3rd/dentalbudget/internal/category/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/config"
	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	fiscalStore "github.com/MrJamesThe3rd/dentalbudget/internal/fiscal/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/logging"
	"github.com/MrJamesThe3rd/dentalbudget/internal/mapping"
	mappingStore "github.com/MrJamesThe3rd/dentalbudget/internal/mapping/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
	practiceStore "github.com/MrJamesThe3rd/dentalbudget/internal/practice/store"
)

const seedYear = 2026

var practices = []practice.CreateParams{
	{Name: "Beaumont PC", Location: "TX003"},
	{Name: "Austin PC", Location: "TX001"},
	{Name: "Red Oak PC", Location: "TX005"},
	{Name: "Oak Ridge PC", Location: "TX009"},
	{Name: "Rosenberg PC", Location: "TX011"},
}

type categorySeed struct {
	category.CreateParams
	parentCode string
}

func cat(code, name string, t category.Type, sortOrder int) categorySeed {
	return categorySeed{CreateParams: category.CreateParams{Code: code, Name: name, Type: t, SortOrder: sortOrder}}
}

func child(code, name string, t category.Type, sortOrder int, parent string) categorySeed {
	c := cat(code, name, t, sortOrder)
	c.parentCode = parent

	return c
}

var categories = []categorySeed{
	cat("980015", "Doctor Days", category.TypeMetric, 1),
	cat("980016", "Doctor Days - Ortho", category.TypeMetric, 2),
	cat("980050", "Patients Visits- New", category.TypeMetric, 3),
	cat("980051", "Ortho Patients Visits- New", category.TypeMetric, 4),
	cat("980055", "Patients Visits- Existing", category.TypeMetric, 5),
	cat("980056", "Ortho Patients Visits- Existing", category.TypeMetric, 6),

	cat("400000", "Revenue - Diagnostic", category.TypeRevenue, 10),
	cat("400080", "Revenue - Orthodontics", category.TypeRevenue, 11),
	child("400081", "Revenue - Orthodontics - New Treatment", category.TypeRevenue, 12, "400080"),
	child("400083", "Revenue - Orthodontics - Mid Treatment", category.TypeRevenue, 13, "400080"),

	cat("640010", "IT - Old Account", category.TypeExpense, 50),
	cat("640080", "Processing Fees", category.TypeExpense, 51),
	cat("640045", "Patient Sundries", category.TypeExpense, 52),

	cat("630000", "Professional Fees - Accounting", category.TypeExpense, 60),
	cat("630010", "Professional Fees - Tax", category.TypeExpense, 61),
	cat("630020", "Professional Fees - Legal", category.TypeExpense, 62),

	cat("530000", "Travel - Lodging", category.TypeExpense, 70),
	cat("530010", "Travel - Airfare", category.TypeExpense, 71),
	cat("530020", "Travel - Transportation", category.TypeExpense, 72),

	cat("520000", "Training and Educational", category.TypeExpense, 80),
	cat("520010", "Conventions", category.TypeExpense, 81),
}

type seeder struct {
	practices  *practice.Service
	categories *category.Service
	fiscal     *fiscal.Service
	budget     *budget.Service
}

func main() {
	if err := run(); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format))

	ctx := context.Background()

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(ctx, cfg.ConnectionString(), database.PoolOptions{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	auditLog := auditStore.New(db)
	fiscalService := fiscal.NewService(fiscalStore.New(db, auditLog))
	categoryService := category.NewService(categoryStore.New(db, auditLog))

	s := &seeder{
		practices:  practice.NewService(practiceStore.New(db, auditLog)),
		categories: categoryService,
		fiscal:     fiscalService,
		budget: budget.NewService(budgetStore.New(db, auditLog), fiscalService, categoryService,
			mapping.NewService(mappingStore.New(db, auditLog))),
	}

	return s.seed(ctx)
}

func (s *seeder) seed(ctx context.Context) error {
	if err := s.seedPractices(ctx); err != nil {
		return err
	}

	if err := s.seedCategories(ctx); err != nil {
		return err
	}

	period, err := s.seedFiscalYear(ctx)
	if err != nil {
		return err
	}

	if err := s.seedBudgetLines(ctx, period); err != nil {
		return err
	}

	slog.Info("database seeding completed")

	return nil
}

func (s *seeder) seedPractices(ctx context.Context) error {
	created := 0

	for _, p := range practices {
		_, err := s.practices.Create(ctx, p)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperr.ErrConflict):
		default:
			return fmt.Errorf("seeding practice %s: %w", p.Name, err)
		}
	}

	slog.Info("seeded practices", "created", created, "total", len(practices))

	return nil
}

func (s *seeder) seedCategories(ctx context.Context) error {
	created := 0

	for _, c := range categories {
		params := c.CreateParams

		if c.parentCode != "" {
			parent, err := s.categories.GetByCode(ctx, c.parentCode)
			if err != nil {
				return fmt.Errorf("looking up parent %s: %w", c.parentCode, err)
			}

			params.ParentID = &parent.ID
		}

		_, err := s.categories.Create(ctx, params)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperr.ErrConflict):
		default:
			return fmt.Errorf("seeding category %s: %w", c.Code, err)
		}
	}

	slog.Info("seeded account categories", "created", created, "total", len(categories))

	return nil
}

// seedFiscalYear creates the year for the first practice and returns its
// first period.
func (s *seeder) seedFiscalYear(ctx context.Context) (*fiscal.BudgetPeriod, error) {
	first, err := s.practices.List(ctx, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("listing practices: %w", err)
	}

	if len(first) == 0 {
		return nil, errors.New("no practices found")
	}

	fy, err := s.fiscal.FindFiscalYear(ctx, first[0].ID, seedYear)
	if errors.Is(err, apperr.ErrNotFound) {
		fy, err = s.fiscal.CreateFiscalYear(ctx, fiscal.CreateFiscalYearParams{
			PracticeID: first[0].ID,
			Year:       seedYear,
			StartDate:  time.Date(seedYear, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(seedYear, time.December, 31, 0, 0, 0, 0, time.UTC),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("seeding fiscal year: %w", err)
	}

	periods, err := s.fiscal.GeneratePeriods(ctx, fy.ID, fiscal.PeriodActive)
	if err != nil {
		return nil, fmt.Errorf("seeding periods: %w", err)
	}

	slog.Info("seeded fiscal year", "practice", first[0].Name, "year", seedYear, "periods", len(periods))

	return periods[0], nil
}

func (s *seeder) seedBudgetLines(ctx context.Context, period *fiscal.BudgetPeriod) error {
	first, err := s.practices.List(ctx, 0, 1)
	if err != nil {
		return fmt.Errorf("listing practices: %w", err)
	}

	cats, err := s.categories.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}

	created := 0

	for _, c := range cats[:min(5, len(cats))] {
		existing, err := s.budget.ListLines(ctx, budget.LineFilter{
			PracticeID:     &first[0].ID,
			BudgetPeriodID: &period.ID,
			CategoryID:     &c.ID,
			Limit:          1,
		})
		if err != nil {
			return fmt.Errorf("checking budget line: %w", err)
		}

		if len(existing) > 0 {
			continue
		}

		if _, err := s.budget.CreateLine(ctx, budget.CreateLineParams{
			PracticeID:     first[0].ID,
			BudgetPeriodID: period.ID,
			CategoryID:     c.ID,
			Month:          period.PeriodMonth,
			BudgetAmount:   decimal.RequireFromString("10000.00"),
			ActualAmount:   decimal.RequireFromString("9500.00"),
		}); err != nil {
			return fmt.Errorf("seeding budget line for %s: %w", c.Code, err)
		}

		created++
	}

	slog.Info("seeded sample budget lines", "created", created)

	return nil
}
