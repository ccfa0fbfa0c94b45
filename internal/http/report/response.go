package report

import (
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/money"
	"github.com/MrJamesThe3rd/dentalbudget/internal/report"
)

type practiceInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type periodInfo struct {
	ID          int64        `json:"id"`
	PeriodMonth int          `json:"period_month"`
	PeriodDate  respond.Date `json:"period_date"`
	Status      string       `json:"status"`
}

type lineItemResponse struct {
	LineID       int64         `json:"line_id"`
	CategoryID   int64         `json:"category_id"`
	CategoryCode string        `json:"category_code"`
	CategoryName string        `json:"category_name"`
	CategoryType category.Type `json:"category_type"`
	Budget       string        `json:"budget"`
	Actual       string        `json:"actual"`
	Variance     string        `json:"variance"`
}

type varianceResponse struct {
	Practice           practiceInfo       `json:"practice"`
	Period             periodInfo         `json:"period"`
	LineItems          []lineItemResponse `json:"line_items"`
	TotalBudget        string             `json:"total_budget"`
	TotalActual        string             `json:"total_actual"`
	TotalVariance      string             `json:"total_variance"`
	VariancePercentage float64            `json:"variance_percentage"`
	Warnings           []string           `json:"warnings"`
}

func toVarianceResponse(v *report.Variance) varianceResponse {
	items := make([]lineItemResponse, len(v.LineItems))
	for i, li := range v.LineItems {
		items[i] = lineItemResponse{
			LineID:       li.LineID,
			CategoryID:   li.CategoryID,
			CategoryCode: li.CategoryCode,
			CategoryName: li.CategoryName,
			CategoryType: li.CategoryType,
			Budget:       money.Format(li.Budget),
			Actual:       money.Format(li.Actual),
			Variance:     money.Format(li.Variance),
		}
	}

	warnings := v.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return varianceResponse{
		Practice: practiceInfo{ID: v.Practice.ID, Name: v.Practice.Name, Location: v.Practice.Location},
		Period: periodInfo{
			ID:          v.Period.ID,
			PeriodMonth: v.Period.PeriodMonth,
			PeriodDate:  respond.Date{Time: v.Period.PeriodDate},
			Status:      string(v.Period.Status),
		},
		LineItems:          items,
		TotalBudget:        money.Format(v.TotalBudget),
		TotalActual:        money.Format(v.TotalActual),
		TotalVariance:      money.Format(v.TotalVariance),
		VariancePercentage: v.VariancePercentage,
		Warnings:           warnings,
	}
}

type categoryTotalResponse struct {
	CategoryID int64  `json:"category_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Type       string `json:"category_type"`
	Amount     string `json:"amount"`
}

type profitAndLossResponse struct {
	Practice      practiceInfo            `json:"practice"`
	StartDate     respond.Date            `json:"start_date"`
	EndDate       respond.Date            `json:"end_date"`
	PeriodIDs     []int64                 `json:"period_ids"`
	Categories    []categoryTotalResponse `json:"categories"`
	Revenue       []categoryTotalResponse `json:"revenue"`
	Expenses      []categoryTotalResponse `json:"expenses"`
	TotalRevenue  string                  `json:"total_revenue"`
	TotalExpenses string                  `json:"total_expenses"`
	NetIncome     string                  `json:"net_income"`
}

func toTotals(totals []report.CategoryTotal) []categoryTotalResponse {
	resp := make([]categoryTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = categoryTotalResponse{
			CategoryID: t.CategoryID,
			Code:       t.Code,
			Name:       t.Name,
			Type:       string(t.Type),
			Amount:     money.Format(t.Amount),
		}
	}

	return resp
}

func toProfitAndLossResponse(p *report.ProfitAndLoss) profitAndLossResponse {
	return profitAndLossResponse{
		Practice:      practiceInfo{ID: p.Practice.ID, Name: p.Practice.Name, Location: p.Practice.Location},
		StartDate:     respond.Date{Time: p.StartDate},
		EndDate:       respond.Date{Time: p.EndDate},
		PeriodIDs:     p.PeriodIDs,
		Categories:    toTotals(p.Categories),
		Revenue:       toTotals(p.Revenue),
		Expenses:      toTotals(p.Expenses),
		TotalRevenue:  money.Format(p.TotalRevenue),
		TotalExpenses: money.Format(p.TotalExpenses),
		NetIncome:     money.Format(p.NetIncome),
	}
}
