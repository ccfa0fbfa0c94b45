package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
)

type mocks struct {
	repo       *budget.MockRepository
	periods    *budget.MockPeriods
	categories *budget.MockCategories
	mapper     *budget.MockMapper
}

func newService(t *testing.T) (*budget.Service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		repo:       budget.NewMockRepository(ctrl),
		periods:    budget.NewMockPeriods(ctrl),
		categories: budget.NewMockCategories(ctrl),
		mapper:     budget.NewMockMapper(ctrl),
	}

	return budget.NewService(m.repo, m.periods, m.categories, m.mapper), m
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activePeriod(id int64, month int) *fiscal.BudgetPeriod {
	return &fiscal.BudgetPeriod{
		ID:          id,
		PeriodMonth: month,
		PeriodDate:  time.Date(2026, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Status:      fiscal.PeriodActive,
	}
}

func TestService_CreateLine(t *testing.T) {
	type testCase struct {
		name      string
		params    budget.CreateLineParams
		setupMock func(m mocks)
		wantVar   string
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "VarianceIsActualMinusBudget",
			params: budget.CreateLineParams{
				PracticeID: 2, BudgetPeriodID: 1, CategoryID: 1,
				BudgetAmount: dec("50000.00"), ActualAmount: dec("48500.00"),
			},
			setupMock: func(m mocks) {
				m.periods.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(activePeriod(1, 1), nil)
				m.repo.EXPECT().CreateLine(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantVar: "-1500.00",
		},
		{
			name: "TooManyDecimals",
			params: budget.CreateLineParams{
				BudgetPeriodID: 1, BudgetAmount: dec("10.005"),
			},
			setupMock: func(m mocks) {},
			wantErr:   true,
			wantKind:  apperr.KindValidation,
		},
		{
			name: "LockedPeriod",
			params: budget.CreateLineParams{
				BudgetPeriodID: 1, BudgetAmount: dec("10.00"),
			},
			setupMock: func(m mocks) {
				p := activePeriod(1, 1)
				p.Status = fiscal.PeriodLocked
				m.periods.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(p, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindConflict,
		},
		{
			name: "MonthMismatch",
			params: budget.CreateLineParams{
				BudgetPeriodID: 1, Month: 4, BudgetAmount: dec("10.00"),
			},
			setupMock: func(m mocks) {
				m.periods.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(activePeriod(1, 3), nil)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "UnknownPeriod",
			params: budget.CreateLineParams{BudgetPeriodID: 9},
			setupMock: func(m mocks) {
				m.periods.EXPECT().GetPeriod(gomock.Any(), int64(9)).
					Return(nil, apperr.NotFound("Budget period with id 9 not found"))
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			got, err := svc.CreateLine(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantVar, got.Variance.StringFixed(2))
			assert.Equal(t, 1, got.Month)
		})
	}
}

func TestService_UpdateLine_RecomputesVariance(t *testing.T) {
	svc, m := newService(t)

	stored := &budget.Line{
		ID: 5, BudgetPeriodID: 1,
		BudgetAmount: dec("10000.00"), ActualAmount: dec("9500.00"), Variance: dec("-500.00"),
	}

	m.repo.EXPECT().GetLine(gomock.Any(), int64(5)).Return(stored, nil)
	m.periods.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(activePeriod(1, 1), nil)
	m.repo.EXPECT().UpdateLines(gomock.Any(), gomock.Len(1), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, lines, before []*budget.Line) error {
			assert.Equal(t, "-500.00", before[0].Variance.StringFixed(2))
			assert.Equal(t, "1500.00", lines[0].Variance.StringFixed(2))

			return nil
		})

	actual := dec("11500.00")
	notes := "strong month"

	got, err := svc.UpdateLine(context.Background(), 5, budget.UpdateLineParams{ActualAmount: &actual, Notes: &notes})

	require.NoError(t, err)
	assert.Equal(t, "10000.00", got.BudgetAmount.StringFixed(2))
	assert.Equal(t, "1500.00", got.Variance.StringFixed(2))
	assert.Equal(t, "strong month", *got.Notes)
}

func TestService_BulkUpdate(t *testing.T) {
	t.Run("AllLinesInOneCall", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetLine(gomock.Any(), int64(1)).
			Return(&budget.Line{ID: 1, BudgetPeriodID: 7, ActualAmount: dec("100.00")}, nil)
		m.repo.EXPECT().GetLine(gomock.Any(), int64(2)).
			Return(&budget.Line{ID: 2, BudgetPeriodID: 7, ActualAmount: dec("50.00")}, nil)
		m.periods.EXPECT().GetPeriod(gomock.Any(), int64(7)).Return(activePeriod(7, 1), nil).Times(1)
		m.repo.EXPECT().UpdateLines(gomock.Any(), gomock.Len(2), gomock.Len(2)).Return(nil)

		got, err := svc.BulkUpdate(context.Background(), []budget.BulkUpdate{
			{ID: 1, BudgetAmount: dec("120.00")},
			{ID: 2, BudgetAmount: dec("40.00")},
		})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "-20.00", got[0].Variance.StringFixed(2))
		assert.Equal(t, "10.00", got[1].Variance.StringFixed(2))
	})

	t.Run("UnknownLineAbortsBatch", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetLine(gomock.Any(), int64(1)).
			Return(&budget.Line{ID: 1, BudgetPeriodID: 7}, nil)
		m.periods.EXPECT().GetPeriod(gomock.Any(), int64(7)).Return(activePeriod(7, 1), nil)
		m.repo.EXPECT().GetLine(gomock.Any(), int64(99)).
			Return(nil, apperr.NotFound("Budget line with id 99 not found"))

		_, err := svc.BulkUpdate(context.Background(), []budget.BulkUpdate{
			{ID: 1, BudgetAmount: dec("1.00")},
			{ID: 99, BudgetAmount: dec("2.00")},
		})

		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("Empty", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.BulkUpdate(context.Background(), nil)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestService_ImportLines(t *testing.T) {
	fy := &fiscal.FiscalYear{ID: 3, PracticeID: 1, Year: 2026}

	t.Run("Success", func(t *testing.T) {
		svc, m := newService(t)

		m.periods.EXPECT().FindFiscalYear(gomock.Any(), int64(1), 2026).Return(fy, nil)
		m.periods.EXPECT().ListPeriods(gomock.Any(), gomock.Any()).
			Return([]*fiscal.BudgetPeriod{activePeriod(11, 1), activePeriod(12, 2)}, nil)
		m.categories.EXPECT().GetByCode(gomock.Any(), "4000").
			Return(&category.AccountCategory{ID: 4, Code: "4000"}, nil)
		m.repo.EXPECT().UpsertLines(gomock.Any(), gomock.Len(2)).Return(nil)

		got, err := svc.ImportLines(context.Background(), 1, 2026, []budget.ImportRow{
			{Row: 2, Code: "4000", Months: map[int]decimal.Decimal{1: dec("100.00"), 2: dec("200.00")}},
		})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(11), got[0].BudgetPeriodID)
		assert.Equal(t, int64(12), got[1].BudgetPeriodID)
	})

	t.Run("UnknownCodeNamesRow", func(t *testing.T) {
		svc, m := newService(t)

		m.periods.EXPECT().FindFiscalYear(gomock.Any(), int64(1), 2026).Return(fy, nil)
		m.periods.EXPECT().ListPeriods(gomock.Any(), gomock.Any()).Return(nil, nil)
		m.categories.EXPECT().GetByCode(gomock.Any(), "BOGUS").Return(nil, apperr.NotFound("missing"))

		_, err := svc.ImportLines(context.Background(), 1, 2026, []budget.ImportRow{
			{Row: 5, Code: "BOGUS", Months: map[int]decimal.Decimal{1: dec("1.00")}},
		})

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Contains(t, apperr.DetailOf(err), "row 5")
	})

	t.Run("MissingPeriod", func(t *testing.T) {
		svc, m := newService(t)

		m.periods.EXPECT().FindFiscalYear(gomock.Any(), int64(1), 2026).Return(fy, nil)
		m.periods.EXPECT().ListPeriods(gomock.Any(), gomock.Any()).
			Return([]*fiscal.BudgetPeriod{activePeriod(11, 1)}, nil)
		m.categories.EXPECT().GetByCode(gomock.Any(), "4000").
			Return(&category.AccountCategory{ID: 4, Code: "4000"}, nil)

		_, err := svc.ImportLines(context.Background(), 1, 2026, []budget.ImportRow{
			{Row: 2, Code: "4000", Months: map[int]decimal.Decimal{6: dec("1.00")}},
		})

		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestService_ImportActuals(t *testing.T) {
	day := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	t.Run("CodesAndMappedLabels", func(t *testing.T) {
		svc, m := newService(t)

		m.categories.EXPECT().GetByCode(gomock.Any(), "4000").
			Return(&category.AccountCategory{ID: 4, Code: "4000"}, nil)
		m.categories.EXPECT().GetByCode(gomock.Any(), "Hygiene Revenue").Return(nil, apperr.NotFound("missing"))
		m.mapper.EXPECT().Suggest(gomock.Any(), "Hygiene Revenue").Return("4100", nil)
		m.categories.EXPECT().GetByCode(gomock.Any(), "4100").
			Return(&category.AccountCategory{ID: 5, Code: "4100"}, nil)
		m.repo.EXPECT().CreateActuals(gomock.Any(), gomock.Len(3), "batch-1").Return(nil)

		got, err := svc.ImportActuals(context.Background(), budget.ImportActualsParams{
			PracticeID: 2,
			Source:     budget.SourceQuickBooks,
			BatchID:    "batch-1",
			Entries: []budget.ActualEntry{
				{Row: 2, Account: "4000", Date: day, Amount: dec("100.00")},
				{Row: 3, Account: "Hygiene Revenue", Date: day, Amount: dec("50.00")},
				{Row: 4, Account: "Hygiene Revenue", Date: day, Amount: dec("25.00")},
			},
		})

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, int64(4), got[0].CategoryID)
		assert.Equal(t, int64(5), got[2].CategoryID)
		assert.Equal(t, budget.SourceQuickBooks, got[1].Source)
	})

	t.Run("UnmatchedAccount", func(t *testing.T) {
		svc, m := newService(t)

		m.categories.EXPECT().GetByCode(gomock.Any(), "Mystery").Return(nil, apperr.NotFound("missing"))
		m.mapper.EXPECT().Suggest(gomock.Any(), "Mystery").Return("", apperr.NotFound("no mapping"))

		_, err := svc.ImportActuals(context.Background(), budget.ImportActualsParams{
			PracticeID: 2,
			Source:     budget.SourceXero,
			Entries:    []budget.ActualEntry{{Row: 7, Account: "Mystery", Date: day, Amount: dec("1.00")}},
		})

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Contains(t, apperr.DetailOf(err), "row 7")
	})
}

func TestService_CreateActual_DefaultsToManual(t *testing.T) {
	svc, m := newService(t)

	m.repo.EXPECT().CreateActuals(gomock.Any(), gomock.Len(1), "").Return(nil)

	got, err := svc.CreateActual(context.Background(), budget.CreateActualParams{
		PracticeID: 1,
		CategoryID: 1,
		PeriodDate: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
		Amount:     dec("48500.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, budget.SourceManual, got.Source)
	assert.False(t, got.ImportedAt.IsZero())
}

func TestService_ListActuals_RejectsInvertedRange(t *testing.T) {
	svc, _ := newService(t)

	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.ListActuals(context.Background(), budget.ActualFilter{StartDate: &start, EndDate: &end})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
