package budget

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/importer"
	"github.com/MrJamesThe3rd/dentalbudget/internal/validate"
)

type createActualRequest struct {
	PracticeID int64            `json:"practice_id" validate:"required,gt=0"`
	CategoryID int64            `json:"category_id" validate:"required,gt=0"`
	PeriodDate respond.Date     `json:"period_date"`
	Amount     *decimal.Decimal `json:"amount" validate:"required"`
	Source     budget.Source    `json:"source"`
}

type importActualsResponse struct {
	BatchID  string           `json:"batch_id"`
	Profile  string           `json:"profile"`
	Imported int              `json:"imported"`
	Actuals  []actualResponse `json:"actuals"`
}

func (h *Handler) listActuals(w http.ResponseWriter, r *http.Request) {
	var filter budget.ActualFilter

	var ok bool

	if filter.PracticeID, ok = respond.QueryID(w, r, "practice_id"); !ok {
		return
	}

	if filter.CategoryID, ok = respond.QueryID(w, r, "category_id"); !ok {
		return
	}

	if filter.StartDate, ok = respond.QueryDate(w, r, "start_date"); !ok {
		return
	}

	if filter.EndDate, ok = respond.QueryDate(w, r, "end_date"); !ok {
		return
	}

	if filter.Offset, filter.Limit, ok = respond.Page(w, r); !ok {
		return
	}

	actuals, err := h.svc.ListActuals(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toActualList(actuals))
}

func (h *Handler) getActual(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	a, err := h.svc.GetActual(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toActualResponse(a))
}

func (h *Handler) createActual(w http.ResponseWriter, r *http.Request) {
	var req createActualRequest
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

	a, err := h.svc.CreateActual(r.Context(), budget.CreateActualParams{
		PracticeID: req.PracticeID,
		CategoryID: req.CategoryID,
		PeriodDate: req.PeriodDate.Time,
		Amount:     *req.Amount,
		Source:     req.Source,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toActualResponse(a))
}

func (h *Handler) deleteActual(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteActual(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.NoContent(w)
}

// importActuals takes a multipart upload with fields practice_id, file and
// an optional format naming the exporting tool.
func (h *Handler) importActuals(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respond.Detail(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	practiceID, ok := respond.FormID(w, r, "practice_id")
	if !ok {
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	result, err := h.imports.ImportActuals(r.Context(), practiceID, importer.Format(r.FormValue("format")), file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importActualsResponse{
		BatchID:  result.BatchID,
		Profile:  result.Profile,
		Imported: len(result.Actuals),
		Actuals:  toActualList(result.Actuals),
	})
}
