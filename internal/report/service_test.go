package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
	"github.com/MrJamesThe3rd/dentalbudget/internal/report"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	austin = &practice.Practice{ID: 1, Name: "Austin PC", Location: "TX001", Status: practice.StatusActive}
	jan    = &fiscal.BudgetPeriod{
		ID:          1,
		PeriodMonth: 1,
		PeriodDate:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:      fiscal.PeriodActive,
	}
)

func TestService_Variance(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *report.MockRepository)
		check     func(t *testing.T, r *report.Variance)
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "AustinScenario",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().GetPractice(gomock.Any(), int64(1)).Return(austin, nil)
				m.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(jan, nil)
				m.EXPECT().ListBudgetRows(gomock.Any(), int64(1), int64(1)).Return([]report.BudgetRow{
					{LineID: 1, CategoryID: 10, CategoryCode: "4000", CategoryName: "Revenue", CategoryType: category.TypeRevenue, Budget: dec("50000.00")},
				}, nil)
				m.EXPECT().ListActuals(gomock.Any(), int64(1), jan.PeriodDate, jan.PeriodDate.AddDate(0, 1, 0)).
					Return([]report.ActualRow{{ID: 1, CategoryID: 10, Amount: dec("48500.00")}}, nil)
			},
			check: func(t *testing.T, r *report.Variance) {
				require.Len(t, r.LineItems, 1)
				assert.Equal(t, "-1500.00", r.LineItems[0].Variance.StringFixed(2))
				assert.Equal(t, "50000.00", r.TotalBudget.StringFixed(2))
				assert.Equal(t, "48500.00", r.TotalActual.StringFixed(2))
				assert.Equal(t, "-1500.00", r.TotalVariance.StringFixed(2))
				assert.InDelta(t, -3.0, r.VariancePercentage, 1e-9)
				assert.Empty(t, r.Warnings)
				assert.Equal(t, "Austin PC", r.Practice.Name)
			},
		},
		{
			name: "MissingActualCountsAsZero",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().GetPractice(gomock.Any(), int64(1)).Return(austin, nil)
				m.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(jan, nil)
				m.EXPECT().ListBudgetRows(gomock.Any(), int64(1), int64(1)).Return([]report.BudgetRow{
					{LineID: 1, CategoryID: 10, CategoryCode: "4000", Budget: dec("100.00")},
					{LineID: 2, CategoryID: 11, CategoryCode: "5000", Budget: dec("40.00")},
				}, nil)
				m.EXPECT().ListActuals(gomock.Any(), int64(1), gomock.Any(), gomock.Any()).
					Return([]report.ActualRow{{ID: 3, CategoryID: 11, Amount: dec("55.50")}}, nil)
			},
			check: func(t *testing.T, r *report.Variance) {
				require.Len(t, r.LineItems, 2)
				assert.True(t, r.LineItems[0].Actual.IsZero())
				assert.Equal(t, "-100.00", r.LineItems[0].Variance.StringFixed(2))
				assert.Equal(t, "15.50", r.LineItems[1].Variance.StringFixed(2))

				sum := decimal.Zero
				for _, li := range r.LineItems {
					sum = sum.Add(li.Variance)
				}

				assert.True(t, sum.Equal(r.TotalActual.Sub(r.TotalBudget)))
				assert.True(t, sum.Equal(r.TotalVariance))
			},
		},
		{
			name: "ZeroBudgetHasZeroPercentage",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().GetPractice(gomock.Any(), int64(1)).Return(austin, nil)
				m.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(jan, nil)
				m.EXPECT().ListBudgetRows(gomock.Any(), int64(1), int64(1)).Return([]report.BudgetRow{
					{LineID: 1, CategoryID: 10, Budget: decimal.Zero},
				}, nil)
				m.EXPECT().ListActuals(gomock.Any(), int64(1), gomock.Any(), gomock.Any()).
					Return([]report.ActualRow{{ID: 1, CategoryID: 10, Amount: dec("25.00")}}, nil)
			},
			check: func(t *testing.T, r *report.Variance) {
				assert.Equal(t, "25.00", r.TotalVariance.StringFixed(2))
				assert.Zero(t, r.VariancePercentage)
			},
		},
		{
			name: "NoLines",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().GetPractice(gomock.Any(), int64(1)).Return(austin, nil)
				m.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(jan, nil)
				m.EXPECT().ListBudgetRows(gomock.Any(), int64(1), int64(1)).Return(nil, nil)
				m.EXPECT().ListActuals(gomock.Any(), int64(1), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			check: func(t *testing.T, r *report.Variance) {
				assert.NotNil(t, r.LineItems)
				assert.Empty(t, r.LineItems)
				assert.True(t, r.TotalBudget.IsZero())
				assert.Zero(t, r.VariancePercentage)
			},
		},
		{
			name: "DuplicateActualsLastWinsWithWarning",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().GetPractice(gomock.Any(), int64(1)).Return(austin, nil)
				m.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(jan, nil)
				m.EXPECT().ListBudgetRows(gomock.Any(), int64(1), int64(1)).Return([]report.BudgetRow{
					{LineID: 1, CategoryID: 10, CategoryCode: "4000", Budget: dec("100.00")},
				}, nil)
				m.EXPECT().ListActuals(gomock.Any(), int64(1), gomock.Any(), gomock.Any()).Return([]report.ActualRow{
					{ID: 4, CategoryID: 10, Amount: dec("80.00")},
					{ID: 9, CategoryID: 10, Amount: dec("90.00")},
				}, nil)
			},
			check: func(t *testing.T, r *report.Variance) {
				assert.Equal(t, "90.00", r.LineItems[0].Actual.StringFixed(2))
				require.Len(t, r.Warnings, 1)
				assert.Contains(t, r.Warnings[0], "4000")
			},
		},
		{
			name: "UnknownPractice",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().GetPractice(gomock.Any(), int64(1)).
					Return(nil, apperr.NotFound("Practice with id 1 not found"))
			},
			wantErr:  true,
			wantKind: apperr.KindNotFound,
		},
		{
			name: "UnknownPeriod",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().GetPractice(gomock.Any(), int64(1)).Return(austin, nil)
				m.EXPECT().GetPeriod(gomock.Any(), int64(1)).
					Return(nil, apperr.NotFound("Budget period with id 1 not found"))
			},
			wantErr:  true,
			wantKind: apperr.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := report.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := report.NewService(repo).Variance(context.Background(), 1, 1)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_ProfitAndLoss(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)

	t.Run("GroupsByType", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := report.NewMockRepository(ctrl)

		repo.EXPECT().GetPractice(gomock.Any(), int64(1)).Return(austin, nil)
		repo.EXPECT().ListPeriodsWithin(gomock.Any(), start, end).
			Return([]*fiscal.BudgetPeriod{{ID: 1}, {ID: 2}, {ID: 3}}, nil)
		repo.EXPECT().SumActualsByCategory(gomock.Any(), int64(1), []int64{1, 2, 3}).Return([]report.CategoryTotal{
			{CategoryID: 1, Code: "4000", Type: category.TypeRevenue, Amount: dec("120000.00")},
			{CategoryID: 2, Code: "4100", Type: category.TypeRevenue, Amount: dec("30000.00")},
			{CategoryID: 3, Code: "5000", Type: category.TypeExpense, Amount: dec("95000.50")},
			{CategoryID: 4, Code: "9000", Type: category.TypeMetric, Amount: dec("420.00")},
			{CategoryID: 5, Code: "5100", Type: category.TypeExpense, Amount: decimal.Zero},
		}, nil)

		got, err := report.NewService(repo).ProfitAndLoss(context.Background(), 1, start, end)
		require.NoError(t, err)

		assert.Equal(t, "150000.00", got.TotalRevenue.StringFixed(2))
		assert.Equal(t, "95000.50", got.TotalExpenses.StringFixed(2))
		assert.Equal(t, "54999.50", got.NetIncome.StringFixed(2))
		assert.True(t, got.NetIncome.Equal(got.TotalRevenue.Sub(got.TotalExpenses)))
		assert.Len(t, got.Revenue, 2)
		assert.Len(t, got.Expenses, 2)
		assert.Equal(t, []int64{1, 2, 3}, got.PeriodIDs)

		require.Len(t, got.Categories, 5)
		metric := got.Categories[3]
		assert.Equal(t, "9000", metric.Code)
		assert.Equal(t, category.TypeMetric, metric.Type)
		assert.Equal(t, "420.00", metric.Amount.StringFixed(2))

		for _, c := range append(got.Revenue, got.Expenses...) {
			assert.NotEqual(t, "9000", c.Code)
		}
	})

	t.Run("NoPeriodsNamesRange", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := report.NewMockRepository(ctrl)

		repo.EXPECT().GetPractice(gomock.Any(), int64(1)).Return(austin, nil)
		repo.EXPECT().ListPeriodsWithin(gomock.Any(), start, end).Return(nil, nil)

		_, err := report.NewService(repo).ProfitAndLoss(context.Background(), 1, start, end)

		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "No budget periods found between 2026-01-01 and 2026-03-31", apperr.DetailOf(err))
	})

	t.Run("InvertedRange", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := report.NewMockRepository(ctrl)

		_, err := report.NewService(repo).ProfitAndLoss(context.Background(), 1, end, start)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("UnknownPractice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := report.NewMockRepository(ctrl)

		repo.EXPECT().GetPractice(gomock.Any(), int64(7)).Return(nil, apperr.NotFound("Practice with id 7 not found"))

		_, err := report.NewService(repo).ProfitAndLoss(context.Background(), 7, start, end)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
