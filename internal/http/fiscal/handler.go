package fiscal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/validate"
)

// Handler serves fiscal years and their budget periods.
type Handler struct {
	svc *fiscal.Service
}

func NewHandler(svc *fiscal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) YearRoutes(r chi.Router) {
	r.Get("/", h.listYears)
	r.Post("/", h.createYear)
	r.Get("/{id}", h.getYear)
	r.Delete("/{id}", h.deleteYear)
	r.Post("/{id}/periods", h.generatePeriods)
}

func (h *Handler) PeriodRoutes(r chi.Router) {
	r.Get("/", h.listPeriods)
	r.Post("/", h.createPeriod)
	r.Get("/{id}", h.getPeriod)
	r.Patch("/{id}/status", h.setStatus)
}

type fiscalYearResponse struct {
	ID         int64        `json:"id"`
	PracticeID int64        `json:"practice_id"`
	Year       int          `json:"year"`
	StartDate  respond.Date `json:"start_date"`
	EndDate    respond.Date `json:"end_date"`
}

func toYearResponse(fy *fiscal.FiscalYear) fiscalYearResponse {
	return fiscalYearResponse{
		ID:         fy.ID,
		PracticeID: fy.PracticeID,
		Year:       fy.Year,
		StartDate:  respond.Date{Time: fy.StartDate},
		EndDate:    respond.Date{Time: fy.EndDate},
	}
}

type periodResponse struct {
	ID           int64               `json:"id"`
	FiscalYearID int64               `json:"fiscal_year_id"`
	PeriodMonth  int                 `json:"period_month"`
	PeriodDate   respond.Date        `json:"period_date"`
	Status       fiscal.PeriodStatus `json:"status"`
}

func toPeriodResponse(p *fiscal.BudgetPeriod) periodResponse {
	return periodResponse{
		ID:           p.ID,
		FiscalYearID: p.FiscalYearID,
		PeriodMonth:  p.PeriodMonth,
		PeriodDate:   respond.Date{Time: p.PeriodDate},
		Status:       p.Status,
	}
}

func toPeriodList(periods []*fiscal.BudgetPeriod) []periodResponse {
	resp := make([]periodResponse, len(periods))
	for i, p := range periods {
		resp[i] = toPeriodResponse(p)
	}

	return resp
}

type createYearRequest struct {
	PracticeID int64        `json:"practice_id" validate:"required,gt=0"`
	Year       int          `json:"year" validate:"required,gte=2020,lte=2050"`
	StartDate  respond.Date `json:"start_date"`
	EndDate    respond.Date `json:"end_date"`
}

type generateRequest struct {
	Status fiscal.PeriodStatus `json:"status"`
}

type createPeriodRequest struct {
	FiscalYearID int64               `json:"fiscal_year_id" validate:"required,gt=0"`
	PeriodMonth  int                 `json:"period_month" validate:"required,gte=1,lte=12"`
	PeriodDate   respond.Date        `json:"period_date"`
	Status       fiscal.PeriodStatus `json:"status"`
}

type statusRequest struct {
	Status fiscal.PeriodStatus `json:"status" validate:"required"`
}

func (h *Handler) listYears(w http.ResponseWriter, r *http.Request) {
	practiceID, ok := respond.QueryID(w, r, "practice_id")
	if !ok {
		return
	}

	years, err := h.svc.ListFiscalYears(r.Context(), practiceID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]fiscalYearResponse, len(years))
	for i, fy := range years {
		resp[i] = toYearResponse(fy)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getYear(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	fy, err := h.svc.GetFiscalYear(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toYearResponse(fy))
}

func (h *Handler) createYear(w http.ResponseWriter, r *http.Request) {
	var req createYearRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		respond.Detail(w, http.StatusUnprocessableEntity, "start_date and end_date are required")
		return
	}

	fy, err := h.svc.CreateFiscalYear(r.Context(), fiscal.CreateFiscalYearParams{
		PracticeID: req.PracticeID,
		Year:       req.Year,
		StartDate:  req.StartDate.Time,
		EndDate:    req.EndDate.Time,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toYearResponse(fy))
}

func (h *Handler) deleteYear(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteFiscalYear(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.NoContent(w)
}

// generatePeriods accepts an empty body; periods default to active.
func (h *Handler) generatePeriods(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req generateRequest
	if r.ContentLength > 0 && !respond.Decode(w, r, &req) {
		return
	}

	periods, err := h.svc.GeneratePeriods(r.Context(), id, req.Status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPeriodList(periods))
}

func (h *Handler) listPeriods(w http.ResponseWriter, r *http.Request) {
	fiscalYearID, ok := respond.QueryID(w, r, "fiscal_year_id")
	if !ok {
		return
	}

	periods, err := h.svc.ListPeriods(r.Context(), fiscalYearID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPeriodList(periods))
}

func (h *Handler) getPeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetPeriod(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPeriodResponse(p))
}

func (h *Handler) createPeriod(w http.ResponseWriter, r *http.Request) {
	var req createPeriodRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.PeriodDate.IsZero() {
		respond.Detail(w, http.StatusUnprocessableEntity, "period_date is required")
		return
	}

	p, err := h.svc.CreatePeriod(r.Context(), fiscal.CreatePeriodParams{
		FiscalYearID: req.FiscalYearID,
		PeriodMonth:  req.PeriodMonth,
		PeriodDate:   req.PeriodDate.Time,
		Status:       req.Status,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toPeriodResponse(p))
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req statusRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.SetPeriodStatus(r.Context(), id, req.Status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPeriodResponse(p))
}
