package budget

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/importer"
	"github.com/MrJamesThe3rd/dentalbudget/internal/validate"
)

// maxUpload bounds multipart bodies for actuals imports.
const maxUpload = 10 << 20

// Handler serves budget lines and actuals, including their file imports.
type Handler struct {
	svc     *budget.Service
	imports *importer.Service
}

func NewHandler(svc *budget.Service, imports *importer.Service) *Handler {
	return &Handler{svc: svc, imports: imports}
}

func (h *Handler) BudgetRoutes(r chi.Router) {
	r.Route("/lines", func(r chi.Router) {
		r.Get("/", h.listLines)
		r.Post("/", h.createLine)
		r.Post("/bulk", h.bulkUpdate)
		r.Get("/{id}", h.getLine)
		r.Patch("/{id}", h.updateLine)
		r.Delete("/{id}", h.deleteLine)
	})

	r.Post("/import", h.importBudget)
}

func (h *Handler) ActualRoutes(r chi.Router) {
	r.Get("/", h.listActuals)
	r.Post("/", h.createActual)
	r.Post("/import", h.importActuals)
	r.Get("/{id}", h.getActual)
	r.Delete("/{id}", h.deleteActual)
}

type createLineRequest struct {
	PracticeID     int64            `json:"practice_id" validate:"required,gt=0"`
	BudgetPeriodID int64            `json:"budget_period_id" validate:"required,gt=0"`
	CategoryID     int64            `json:"category_id" validate:"required,gt=0"`
	Month          int              `json:"month" validate:"gte=0,lte=12"`
	BudgetAmount   *decimal.Decimal `json:"budget_amount" validate:"required"`
	ActualAmount   *decimal.Decimal `json:"actual_amount"`
	Notes          *string          `json:"notes" validate:"omitnil,max=1000"`
}

type updateLineRequest struct {
	BudgetAmount *decimal.Decimal `json:"budget_amount"`
	ActualAmount *decimal.Decimal `json:"actual_amount"`
	Notes        *string          `json:"notes" validate:"omitnil,max=1000"`
}

type bulkUpdateRequest struct {
	Updates []struct {
		ID           int64            `json:"id" validate:"required,gt=0"`
		BudgetAmount *decimal.Decimal `json:"budget_amount" validate:"required"`
	} `json:"updates" validate:"required,min=1,dive"`
}

type importBudgetRequest struct {
	PracticeID int64  `json:"practice_id" validate:"required,gt=0"`
	FiscalYear int    `json:"fiscal_year" validate:"required,gte=2020,lte=2050"`
	FileData   string `json:"file_data" validate:"required"`
}

type importBudgetResponse struct {
	Imported int            `json:"imported"`
	Lines    []lineResponse `json:"lines"`
}

func (h *Handler) listLines(w http.ResponseWriter, r *http.Request) {
	var filter budget.LineFilter

	for _, q := range []struct {
		name string
		dst  **int64
	}{
		{"practice_id", &filter.PracticeID},
		{"fiscal_year_id", &filter.FiscalYearID},
		{"budget_period_id", &filter.BudgetPeriodID},
		{"category_id", &filter.CategoryID},
	} {
		id, ok := respond.QueryID(w, r, q.name)
		if !ok {
			return
		}

		*q.dst = id
	}

	offset, limit, ok := respond.Page(w, r)
	if !ok {
		return
	}

	filter.Offset, filter.Limit = offset, limit

	lines, err := h.svc.ListLines(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toLineList(lines))
}

func (h *Handler) getLine(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	l, err := h.svc.GetLine(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toLineResponse(l))
}

func (h *Handler) createLine(w http.ResponseWriter, r *http.Request) {
	var req createLineRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params := budget.CreateLineParams{
		PracticeID:     req.PracticeID,
		BudgetPeriodID: req.BudgetPeriodID,
		CategoryID:     req.CategoryID,
		Month:          req.Month,
		BudgetAmount:   *req.BudgetAmount,
		Notes:          req.Notes,
	}

	if req.ActualAmount != nil {
		params.ActualAmount = *req.ActualAmount
	}

	l, err := h.svc.CreateLine(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toLineResponse(l))
}

func (h *Handler) updateLine(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req updateLineRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	l, err := h.svc.UpdateLine(r.Context(), id, budget.UpdateLineParams{
		BudgetAmount: req.BudgetAmount,
		ActualAmount: req.ActualAmount,
		Notes:        req.Notes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toLineResponse(l))
}

func (h *Handler) bulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req bulkUpdateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	updates := make([]budget.BulkUpdate, len(req.Updates))
	for i, u := range req.Updates {
		updates[i] = budget.BulkUpdate{ID: u.ID, BudgetAmount: *u.BudgetAmount}
	}

	lines, err := h.svc.BulkUpdate(r.Context(), updates)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toLineList(lines))
}

func (h *Handler) deleteLine(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteLine(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.NoContent(w)
}

func (h *Handler) importBudget(w http.ResponseWriter, r *http.Request) {
	var req importBudgetRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		respond.Detail(w, http.StatusUnprocessableEntity, "file_data must be base64 encoded")
		return
	}

	lines, err := h.imports.ImportBudget(r.Context(), req.PracticeID, req.FiscalYear, data)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, importBudgetResponse{
		Imported: len(lines),
		Lines:    toLineList(lines),
	})
}
