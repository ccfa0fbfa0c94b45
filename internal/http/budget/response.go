package budget

import (
	"time"

	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/money"
)

type lineResponse struct {
	ID             int64     `json:"id"`
	PracticeID     int64     `json:"practice_id"`
	BudgetPeriodID int64     `json:"budget_period_id"`
	CategoryID     int64     `json:"category_id"`
	Month          int       `json:"month"`
	BudgetAmount   string    `json:"budget_amount"`
	ActualAmount   string    `json:"actual_amount"`
	Variance       string    `json:"variance"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toLineResponse(l *budget.Line) lineResponse {
	return lineResponse{
		ID:             l.ID,
		PracticeID:     l.PracticeID,
		BudgetPeriodID: l.BudgetPeriodID,
		CategoryID:     l.CategoryID,
		Month:          l.Month,
		BudgetAmount:   money.Format(l.BudgetAmount),
		ActualAmount:   money.Format(l.ActualAmount),
		Variance:       money.Format(l.Variance),
		Notes:          l.Notes,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func toLineList(lines []*budget.Line) []lineResponse {
	resp := make([]lineResponse, len(lines))
	for i, l := range lines {
		resp[i] = toLineResponse(l)
	}

	return resp
}

type actualResponse struct {
	ID         int64         `json:"id"`
	PracticeID int64         `json:"practice_id"`
	CategoryID int64         `json:"category_id"`
	PeriodDate respond.Date  `json:"period_date"`
	Amount     string        `json:"amount"`
	Source     budget.Source `json:"source"`
	ImportedAt respond.Date  `json:"imported_at"`
}

func toActualResponse(a *budget.Actual) actualResponse {
	return actualResponse{
		ID:         a.ID,
		PracticeID: a.PracticeID,
		CategoryID: a.CategoryID,
		PeriodDate: respond.Date{Time: a.PeriodDate},
		Amount:     money.Format(a.Amount),
		Source:     a.Source,
		ImportedAt: respond.Date{Time: a.ImportedAt},
	}
}

func toActualList(actuals []*budget.Actual) []actualResponse {
	resp := make([]actualResponse, len(actuals))
	for i, a := range actuals {
		resp[i] = toActualResponse(a)
	}

	return resp
}
