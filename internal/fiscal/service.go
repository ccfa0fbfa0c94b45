package fiscal

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=fiscal
type Repository interface {
	CreateFiscalYear(ctx context.Context, fy *FiscalYear) error
	GetFiscalYear(ctx context.Context, id int64) (*FiscalYear, error)
	FindFiscalYear(ctx context.Context, practiceID int64, year int) (*FiscalYear, error)
	ListFiscalYears(ctx context.Context, practiceID *int64) ([]*FiscalYear, error)
	DeleteFiscalYear(ctx context.Context, id int64) error

	CreatePeriods(ctx context.Context, periods []*BudgetPeriod) error
	GetPeriod(ctx context.Context, id int64) (*BudgetPeriod, error)
	ListPeriods(ctx context.Context, fiscalYearID *int64) ([]*BudgetPeriod, error)
	UpdatePeriodStatus(ctx context.Context, p *BudgetPeriod, before PeriodStatus) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateFiscalYearParams struct {
	PracticeID int64
	Year       int
	StartDate  time.Time
	EndDate    time.Time
}

func (s *Service) CreateFiscalYear(ctx context.Context, params CreateFiscalYearParams) (*FiscalYear, error) {
	if params.EndDate.Before(params.StartDate) {
		return nil, apperr.Validation("end_date must not be before start_date")
	}

	fy := &FiscalYear{
		PracticeID: params.PracticeID,
		Year:       params.Year,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
	}
	if err := s.repo.CreateFiscalYear(ctx, fy); err != nil {
		return nil, err
	}

	return fy, nil
}

func (s *Service) GetFiscalYear(ctx context.Context, id int64) (*FiscalYear, error) {
	return s.repo.GetFiscalYear(ctx, id)
}

func (s *Service) FindFiscalYear(ctx context.Context, practiceID int64, year int) (*FiscalYear, error) {
	return s.repo.FindFiscalYear(ctx, practiceID, year)
}

func (s *Service) ListFiscalYears(ctx context.Context, practiceID *int64) ([]*FiscalYear, error) {
	return s.repo.ListFiscalYears(ctx, practiceID)
}

func (s *Service) DeleteFiscalYear(ctx context.Context, id int64) error {
	return s.repo.DeleteFiscalYear(ctx, id)
}

type CreatePeriodParams struct {
	FiscalYearID int64
	PeriodMonth  int
	PeriodDate   time.Time
	Status       PeriodStatus
}

// CreatePeriod adds a single period. Its date must be the first day of
// period_month.
func (s *Service) CreatePeriod(ctx context.Context, params CreatePeriodParams) (*BudgetPeriod, error) {
	if params.PeriodDate.Day() != 1 {
		return nil, apperr.Validation("period_date must be the first day of a month")
	}

	if int(params.PeriodDate.Month()) != params.PeriodMonth {
		return nil, apperr.Validation("period_date month %d does not match period_month %d",
			int(params.PeriodDate.Month()), params.PeriodMonth)
	}

	if params.Status == "" {
		params.Status = PeriodDraft
	}

	p := &BudgetPeriod{
		FiscalYearID: params.FiscalYearID,
		PeriodMonth:  params.PeriodMonth,
		PeriodDate:   params.PeriodDate,
		Status:       params.Status,
	}
	if err := s.repo.CreatePeriods(ctx, []*BudgetPeriod{p}); err != nil {
		return nil, err
	}

	return p, nil
}

// GeneratePeriods creates the twelve monthly periods of a fiscal year,
// starting at the month of its start date. Months that already have a period
// are skipped, so calling it twice is harmless. It returns every period of the
// fiscal year ordered by month.
func (s *Service) GeneratePeriods(ctx context.Context, fiscalYearID int64, status PeriodStatus) ([]*BudgetPeriod, error) {
	fy, err := s.repo.GetFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListPeriods(ctx, &fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}

	have := make(map[int]*BudgetPeriod, len(existing))
	for _, p := range existing {
		have[p.PeriodMonth] = p
	}

	if status == "" {
		status = PeriodActive
	}

	first := time.Date(fy.StartDate.Year(), fy.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)

	var missing []*BudgetPeriod

	for i := range 12 {
		date := first.AddDate(0, i, 0)

		month := int(date.Month())
		if _, ok := have[month]; ok {
			continue
		}

		p := &BudgetPeriod{
			FiscalYearID: fy.ID,
			PeriodMonth:  month,
			PeriodDate:   date,
			Status:       status,
		}
		missing = append(missing, p)
		have[month] = p
	}

	if len(missing) > 0 {
		if err := s.repo.CreatePeriods(ctx, missing); err != nil {
			return nil, err
		}
	}

	out := make([]*BudgetPeriod, 0, 12)

	for i := range 12 {
		month := int(first.AddDate(0, i, 0).Month())
		out = append(out, have[month])
	}

	return out, nil
}

func (s *Service) GetPeriod(ctx context.Context, id int64) (*BudgetPeriod, error) {
	return s.repo.GetPeriod(ctx, id)
}

func (s *Service) ListPeriods(ctx context.Context, fiscalYearID *int64) ([]*BudgetPeriod, error) {
	return s.repo.ListPeriods(ctx, fiscalYearID)
}

// SetPeriodStatus moves a period to status. Locked periods stay locked.
func (s *Service) SetPeriodStatus(ctx context.Context, id int64, status PeriodStatus) (*BudgetPeriod, error) {
	p, err := s.repo.GetPeriod(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status == status {
		return p, nil
	}

	if p.Status == PeriodLocked {
		return nil, apperr.Conflict("Budget period with id %d is locked", id)
	}

	before := p.Status
	p.Status = status

	if err := s.repo.UpdatePeriodStatus(ctx, p, before); err != nil {
		return nil, err
	}

	return p, nil
}
