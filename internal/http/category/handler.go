package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/validate"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/tree", h.tree)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type categoryResponse struct {
	ID           int64         `json:"id"`
	Code         string        `json:"code"`
	Name         string        `json:"name"`
	CategoryType category.Type `json:"category_type"`
	ParentID     *int64        `json:"parent_id"`
	Level        int           `json:"level"`
	SortOrder    int           `json:"sort_order"`
}

type nodeResponse struct {
	categoryResponse
	Children []nodeResponse `json:"children"`
}

func toResponse(c *category.AccountCategory) categoryResponse {
	return categoryResponse{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		CategoryType: c.Type,
		ParentID:     c.ParentID,
		Level:        c.Level,
		SortOrder:    c.SortOrder,
	}
}

func toNodes(nodes []*category.Node) []nodeResponse {
	resp := make([]nodeResponse, len(nodes))
	for i, n := range nodes {
		resp[i] = nodeResponse{
			categoryResponse: toResponse(n.AccountCategory),
			Children:         toNodes(n.Children),
		}
	}

	return resp
}

type createRequest struct {
	Code         string        `json:"code" validate:"required,max=20"`
	Name         string        `json:"name" validate:"required,max=100"`
	CategoryType category.Type `json:"category_type" validate:"required"`
	ParentID     *int64        `json:"parent_id" validate:"omitnil,gt=0"`
	Level        int           `json:"level" validate:"gte=0,lte=5"`
	SortOrder    int           `json:"sort_order"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter *category.Type

	if s := r.URL.Query().Get("category_type"); s != "" {
		t, err := category.ParseType(s)
		if err != nil {
			respond.Detail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		filter = &t
	}

	cats, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]categoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = toResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) tree(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.svc.Tree(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toNodes(nodes))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
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

	c, err := h.svc.Create(r.Context(), category.CreateParams{
		Code:      req.Code,
		Name:      req.Name,
		Type:      req.CategoryType,
		ParentID:  req.ParentID,
		Level:     req.Level,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
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
