package audit

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
)

// Handler exposes the audit log read-only.
type Handler struct {
	svc *audit.Service
}

func NewHandler(svc *audit.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type entryResponse struct {
	ID        int64          `json:"id"`
	UserID    *int64         `json:"user_id"`
	Action    audit.Action   `json:"action"`
	TableName string         `json:"table_name"`
	RecordID  *int64         `json:"record_id"`
	Changes   map[string]any `json:"changes"`
	Timestamp time.Time      `json:"timestamp"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter audit.ListFilter

	if s := r.URL.Query().Get("table_name"); s != "" {
		filter.TableName = &s
	}

	var ok bool

	if filter.RecordID, ok = respond.QueryID(w, r, "record_id"); !ok {
		return
	}

	if filter.Offset, filter.Limit, ok = respond.Page(w, r); !ok {
		return
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = entryResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    e.Action,
			TableName: e.TableName,
			RecordID:  e.RecordID,
			Changes:   e.Changes,
			Timestamp: e.Timestamp,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}
