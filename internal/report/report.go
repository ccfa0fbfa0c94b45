package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
)

// BudgetRow is a budget line joined with its category.
type BudgetRow struct {
	LineID       int64
	CategoryID   int64
	CategoryCode string
	CategoryName string
	CategoryType category.Type
	Budget       decimal.Decimal
}

// ActualRow is one booked actual amount.
type ActualRow struct {
	ID         int64
	CategoryID int64
	Amount     decimal.Decimal
}

// CategoryTotal is the sum of a category's actuals over a set of periods.
type CategoryTotal struct {
	CategoryID int64
	Code       string
	Name       string
	Type       category.Type
	Amount     decimal.Decimal
}

type LineItem struct {
	LineID       int64
	CategoryID   int64
	CategoryCode string
	CategoryName string
	CategoryType category.Type
	Budget       decimal.Decimal
	Actual       decimal.Decimal
	Variance     decimal.Decimal
}

// Variance compares a practice's budget with its actuals for one period.
type Variance struct {
	Practice           *practice.Practice
	Period             *fiscal.BudgetPeriod
	LineItems          []LineItem
	TotalBudget        decimal.Decimal
	TotalActual        decimal.Decimal
	TotalVariance      decimal.Decimal
	VariancePercentage float64
	// Warnings names categories whose actual was picked from several rows.
	Warnings []string
}

// ProfitAndLoss sums a practice's actuals over the periods of a date range.
type ProfitAndLoss struct {
	Practice  *practice.Practice
	StartDate time.Time
	EndDate   time.Time
	PeriodIDs []int64
	// Categories lists every category, metrics included, in sort order.
	Categories    []CategoryTotal
	Revenue       []CategoryTotal
	Expenses      []CategoryTotal
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
}
