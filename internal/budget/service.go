package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	"github.com/MrJamesThe3rd/dentalbudget/internal/money"
	"github.com/MrJamesThe3rd/dentalbudget/internal/page"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateLine(ctx context.Context, l *Line) error
	GetLine(ctx context.Context, id int64) (*Line, error)
	ListLines(ctx context.Context, filter LineFilter) ([]*Line, error)
	UpdateLines(ctx context.Context, lines []*Line, before []*Line) error
	DeleteLine(ctx context.Context, id int64) error
	// UpsertLines writes each line onto the existing line of the same
	// practice, period and category, or inserts it. All or nothing.
	UpsertLines(ctx context.Context, lines []*Line) error

	CreateActuals(ctx context.Context, actuals []*Actual, batchID string) error
	GetActual(ctx context.Context, id int64) (*Actual, error)
	ListActuals(ctx context.Context, filter ActualFilter) ([]*Actual, error)
	DeleteActual(ctx context.Context, id int64) error
}

// Periods resolves the fiscal calendar a budget line belongs to.
type Periods interface {
	GetPeriod(ctx context.Context, id int64) (*fiscal.BudgetPeriod, error)
	FindFiscalYear(ctx context.Context, practiceID int64, year int) (*fiscal.FiscalYear, error)
	ListPeriods(ctx context.Context, fiscalYearID *int64) ([]*fiscal.BudgetPeriod, error)
}

type Categories interface {
	GetByCode(ctx context.Context, code string) (*category.AccountCategory, error)
}

// Mapper resolves a raw accounting label to a category code.
type Mapper interface {
	Suggest(ctx context.Context, raw string) (string, error)
}

type Service struct {
	repo       Repository
	periods    Periods
	categories Categories
	mapper     Mapper
	now        func() time.Time
}

func NewService(repo Repository, periods Periods, categories Categories, mapper Mapper) *Service {
	return &Service{
		repo:       repo,
		periods:    periods,
		categories: categories,
		mapper:     mapper,
		now:        time.Now,
	}
}

type CreateLineParams struct {
	PracticeID     int64
	BudgetPeriodID int64
	CategoryID     int64
	Month          int
	BudgetAmount   decimal.Decimal
	ActualAmount   decimal.Decimal
	Notes          *string
}

func (s *Service) CreateLine(ctx context.Context, params CreateLineParams) (*Line, error) {
	if err := checkAmounts(params.BudgetAmount, params.ActualAmount); err != nil {
		return nil, err
	}

	period, err := s.writablePeriod(ctx, params.BudgetPeriodID)
	if err != nil {
		return nil, err
	}

	if params.Month == 0 {
		params.Month = period.PeriodMonth
	}

	if params.Month != period.PeriodMonth {
		return nil, apperr.Validation("month %d does not match budget period month %d", params.Month, period.PeriodMonth)
	}

	l := &Line{
		PracticeID:     params.PracticeID,
		BudgetPeriodID: params.BudgetPeriodID,
		CategoryID:     params.CategoryID,
		Month:          params.Month,
		BudgetAmount:   params.BudgetAmount,
		ActualAmount:   params.ActualAmount,
		Notes:          params.Notes,
	}
	l.Recompute()

	if err := s.repo.CreateLine(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Service) GetLine(ctx context.Context, id int64) (*Line, error) {
	return s.repo.GetLine(ctx, id)
}

func (s *Service) ListLines(ctx context.Context, filter LineFilter) ([]*Line, error) {
	offset, limit, err := page.Normalize(filter.Offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	filter.Offset, filter.Limit = offset, limit

	return s.repo.ListLines(ctx, filter)
}

// UpdateLineParams carries a partial update; nil fields are left untouched.
type UpdateLineParams struct {
	BudgetAmount *decimal.Decimal
	ActualAmount *decimal.Decimal
	Notes        *string
}

func (s *Service) UpdateLine(ctx context.Context, id int64, params UpdateLineParams) (*Line, error) {
	current, err := s.repo.GetLine(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.writablePeriod(ctx, current.BudgetPeriodID); err != nil {
		return nil, err
	}

	before := *current

	if params.BudgetAmount != nil {
		if err := money.Check("budget_amount", *params.BudgetAmount); err != nil {
			return nil, err
		}

		current.BudgetAmount = *params.BudgetAmount
	}

	if params.ActualAmount != nil {
		if err := money.Check("actual_amount", *params.ActualAmount); err != nil {
			return nil, err
		}

		current.ActualAmount = *params.ActualAmount
	}

	if params.Notes != nil {
		current.Notes = params.Notes
	}

	current.Recompute()

	if err := s.repo.UpdateLines(ctx, []*Line{current}, []*Line{&before}); err != nil {
		return nil, err
	}

	return current, nil
}

type BulkUpdate struct {
	ID           int64
	BudgetAmount decimal.Decimal
}

// BulkUpdate sets the budget amount of several lines in one transaction.
// Any unknown line or locked period aborts the whole batch.
func (s *Service) BulkUpdate(ctx context.Context, updates []BulkUpdate) ([]*Line, error) {
	if len(updates) == 0 {
		return nil, apperr.Validation("updates must not be empty")
	}

	byID := make(map[int64]*Line, len(updates))
	lines := make([]*Line, 0, len(updates))
	before := make([]*Line, 0, len(updates))
	checked := make(map[int64]bool)

	for _, u := range updates {
		if err := money.Check("budget_amount", u.BudgetAmount); err != nil {
			return nil, err
		}

		l, ok := byID[u.ID]
		if !ok {
			var err error

			l, err = s.repo.GetLine(ctx, u.ID)
			if err != nil {
				return nil, err
			}

			if !checked[l.BudgetPeriodID] {
				if _, err := s.writablePeriod(ctx, l.BudgetPeriodID); err != nil {
					return nil, err
				}

				checked[l.BudgetPeriodID] = true
			}

			prev := *l
			before = append(before, &prev)
			lines = append(lines, l)
			byID[u.ID] = l
		}

		l.BudgetAmount = u.BudgetAmount
		l.Recompute()
	}

	if err := s.repo.UpdateLines(ctx, lines, before); err != nil {
		return nil, err
	}

	return lines, nil
}

func (s *Service) DeleteLine(ctx context.Context, id int64) error {
	l, err := s.repo.GetLine(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.writablePeriod(ctx, l.BudgetPeriodID); err != nil {
		return err
	}

	return s.repo.DeleteLine(ctx, id)
}

// ImportLines writes a budget workbook onto the fiscal year's periods. Each
// row sets the budget amount of its category for every month it fills.
func (s *Service) ImportLines(ctx context.Context, practiceID int64, year int, rows []ImportRow) ([]*Line, error) {
	if len(rows) == 0 {
		return nil, apperr.Validation("workbook contains no budget rows")
	}

	fy, err := s.periods.FindFiscalYear(ctx, practiceID, year)
	if err != nil {
		return nil, err
	}

	periods, err := s.periods.ListPeriods(ctx, &fy.ID)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}

	byMonth := make(map[int]*fiscal.BudgetPeriod, len(periods))
	for _, p := range periods {
		byMonth[p.PeriodMonth] = p
	}

	var lines []*Line

	for _, row := range rows {
		cat, err := s.categories.GetByCode(ctx, row.Code)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.Validation("row %d: unknown category code '%s'", row.Row, row.Code)
			}

			return nil, err
		}

		for month := 1; month <= 12; month++ {
			amount, ok := row.Months[month]
			if !ok {
				continue
			}

			if err := money.Check(fmt.Sprintf("row %d month %d", row.Row, month), amount); err != nil {
				return nil, err
			}

			period, ok := byMonth[month]
			if !ok {
				return nil, apperr.Validation("fiscal year %d has no budget period for month %d", year, month)
			}

			if period.Status == fiscal.PeriodLocked {
				return nil, apperr.Conflict("Budget period with id %d is locked", period.ID)
			}

			lines = append(lines, &Line{
				PracticeID:     practiceID,
				BudgetPeriodID: period.ID,
				CategoryID:     cat.ID,
				Month:          month,
				BudgetAmount:   amount,
			})
		}
	}

	if len(lines) == 0 {
		return nil, apperr.Validation("workbook contains no budget amounts")
	}

	if err := s.repo.UpsertLines(ctx, lines); err != nil {
		return nil, err
	}

	return lines, nil
}

type CreateActualParams struct {
	PracticeID int64
	CategoryID int64
	PeriodDate time.Time
	Amount     decimal.Decimal
	Source     Source
}

func (s *Service) CreateActual(ctx context.Context, params CreateActualParams) (*Actual, error) {
	if err := money.Check("amount", params.Amount); err != nil {
		return nil, err
	}

	if params.Source == "" {
		params.Source = SourceManual
	}

	a := &Actual{
		PracticeID: params.PracticeID,
		CategoryID: params.CategoryID,
		PeriodDate: params.PeriodDate,
		Amount:     params.Amount,
		Source:     params.Source,
		ImportedAt: s.today(),
	}
	if err := s.repo.CreateActuals(ctx, []*Actual{a}, ""); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) GetActual(ctx context.Context, id int64) (*Actual, error) {
	return s.repo.GetActual(ctx, id)
}

func (s *Service) ListActuals(ctx context.Context, filter ActualFilter) ([]*Actual, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, apperr.Validation("end_date must not be before start_date")
	}

	offset, limit, err := page.Normalize(filter.Offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	filter.Offset, filter.Limit = offset, limit

	return s.repo.ListActuals(ctx, filter)
}

func (s *Service) DeleteActual(ctx context.Context, id int64) error {
	return s.repo.DeleteActual(ctx, id)
}

// ActualEntry is one parsed row of an accounting export. Account is either a
// category code or a label resolved through the account mappings.
type ActualEntry struct {
	Row     int
	Account string
	Date    time.Time
	Amount  decimal.Decimal
}

type ImportActualsParams struct {
	PracticeID int64
	Source     Source
	BatchID    string
	Entries    []ActualEntry
}

// ImportActuals stores a batch of parsed export rows in one transaction.
// Unresolvable accounts reject the whole batch, naming the row.
func (s *Service) ImportActuals(ctx context.Context, params ImportActualsParams) ([]*Actual, error) {
	if len(params.Entries) == 0 {
		return nil, apperr.Validation("import contains no rows")
	}

	resolved := make(map[string]int64)
	today := s.today()
	actuals := make([]*Actual, 0, len(params.Entries))

	for _, e := range params.Entries {
		if err := money.Check(fmt.Sprintf("row %d amount", e.Row), e.Amount); err != nil {
			return nil, err
		}

		categoryID, ok := resolved[e.Account]
		if !ok {
			id, err := s.resolveAccount(ctx, e.Account)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					return nil, apperr.Validation("row %d: no category matches account '%s'", e.Row, e.Account)
				}

				return nil, err
			}

			resolved[e.Account] = id
			categoryID = id
		}

		actuals = append(actuals, &Actual{
			PracticeID: params.PracticeID,
			CategoryID: categoryID,
			PeriodDate: e.Date,
			Amount:     e.Amount,
			Source:     params.Source,
			ImportedAt: today,
		})
	}

	if err := s.repo.CreateActuals(ctx, actuals, params.BatchID); err != nil {
		return nil, err
	}

	return actuals, nil
}

func (s *Service) resolveAccount(ctx context.Context, account string) (int64, error) {
	account = strings.TrimSpace(account)

	cat, err := s.categories.GetByCode(ctx, account)
	if err == nil {
		return cat.ID, nil
	}

	if !errors.Is(err, apperr.ErrNotFound) {
		return 0, err
	}

	code, err := s.mapper.Suggest(ctx, account)
	if err != nil {
		return 0, err
	}

	cat, err = s.categories.GetByCode(ctx, code)
	if err != nil {
		return 0, err
	}

	return cat.ID, nil
}

func (s *Service) writablePeriod(ctx context.Context, id int64) (*fiscal.BudgetPeriod, error) {
	p, err := s.periods.GetPeriod(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validation("Budget period with id %d does not exist", id)
		}

		return nil, err
	}

	if p.Status == fiscal.PeriodLocked {
		return nil, apperr.Conflict("Budget period with id %d is locked", id)
	}

	return p, nil
}

func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func checkAmounts(budget, actual decimal.Decimal) error {
	if err := money.Check("budget_amount", budget); err != nil {
		return err
	}

	return money.Check("actual_amount", actual)
}
