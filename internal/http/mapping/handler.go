package mapping

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/mapping"
)

type Handler struct {
	svc *mapping.Service
}

func NewHandler(svc *mapping.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	RawAccount   string `json:"raw_account"`
	CategoryCode string `json:"category_code"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("raw_account")
	if raw == "" {
		respond.Detail(w, http.StatusBadRequest, "raw_account query parameter is required")
		return
	}

	code, err := h.svc.Suggest(r.Context(), raw)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, suggestResponse{
		RawAccount:   raw,
		CategoryCode: code,
	})
}

type learnRequest struct {
	RawPattern   string `json:"raw_pattern"`
	CategoryCode string `json:"category_code"`
}

type mappingResponse struct {
	ID           int64     `json:"id"`
	RawPattern   string    `json:"raw_pattern"`
	CategoryCode string    `json:"category_code"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	m, err := h.svc.Learn(r.Context(), req.RawPattern, req.CategoryCode)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mappingResponse{
		ID:           m.ID,
		RawPattern:   m.RawPattern,
		CategoryCode: m.CategoryCode,
		CreatedAt:    m.CreatedAt,
	})
}
