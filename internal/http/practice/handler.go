package practice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
	"github.com/MrJamesThe3rd/dentalbudget/internal/validate"
)

type Handler struct {
	svc *practice.Service
}

func NewHandler(svc *practice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type practiceResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Location string          `json:"location"`
	Status   practice.Status `json:"status"`
}

func toResponse(p *practice.Practice) practiceResponse {
	return practiceResponse{
		ID:       p.ID,
		Name:     p.Name,
		Location: p.Location,
		Status:   p.Status,
	}
}

type createRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Location string          `json:"location" validate:"required,max=50"`
	Status   practice.Status `json:"status"`
}

type updateRequest struct {
	Name     *string          `json:"name" validate:"omitnil,min=1,max=100"`
	Location *string          `json:"location" validate:"omitnil,min=1,max=50"`
	Status   *practice.Status `json:"status"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := respond.Page(w, r)
	if !ok {
		return
	}

	practices, err := h.svc.List(r.Context(), offset, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]practiceResponse, len(practices))
	for i, p := range practices {
		resp[i] = toResponse(p)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), practice.CreateParams{
		Name:     req.Name,
		Location: req.Location,
		Status:   req.Status,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req updateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), id, practice.UpdateParams{
		Name:     req.Name,
		Location: req.Location,
		Status:   req.Status,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.NoContent(w)
}
