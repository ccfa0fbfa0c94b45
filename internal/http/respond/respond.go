// Package respond writes JSON bodies and maps classified errors to status
// codes for every handler.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/page"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, errorResponse{Detail: detail})
}

// Error maps err to its status code. Unclassified errors are logged and
// reported without their cause.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		Detail(w, http.StatusNotFound, apperr.DetailOf(err))
	case apperr.KindConflict:
		Detail(w, http.StatusConflict, apperr.DetailOf(err))
	case apperr.KindValidation:
		Detail(w, http.StatusUnprocessableEntity, apperr.DetailOf(err))
	case apperr.KindUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
		Detail(w, http.StatusUnauthorized, apperr.DetailOf(err))
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		Detail(w, http.StatusInternalServerError, "internal server error")
	}
}

// Decode reads a JSON body. Malformed JSON is a 400; a well-formed body
// carrying an unknown enum value is a 422.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		Detail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
	default:
		Detail(w, http.StatusUnprocessableEntity, err.Error())
	}

	return false
}

// PathID parses a numeric URL parameter.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		Detail(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}

	return id, true
}

// QueryID parses an optional numeric query parameter.
func QueryID(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, true
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		Detail(w, http.StatusBadRequest, "invalid "+name)
		return nil, false
	}

	return &id, true
}

// Page reads offset and limit, applying the defaults and the upper bound.
// Only an absent limit gets the default; an explicit limit must be in range.
func Page(w http.ResponseWriter, r *http.Request) (offset, limit int, ok bool) {
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  *int
	}{{"offset", &offset}, {"limit", &limit}} {
		s := q.Get(p.name)
		if s == "" {
			continue
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			Detail(w, http.StatusBadRequest, "invalid "+p.name)
			return 0, 0, false
		}

		*p.dst = n
	}

	if q.Get("limit") != "" {
		if err := page.CheckLimit(limit); err != nil {
			Error(w, r, err)
			return 0, 0, false
		}
	}

	offset, limit, err := page.Normalize(offset, limit)
	if err != nil {
		Error(w, r, err)
		return 0, 0, false
	}

	return offset, limit, true
}

// FormID parses a required numeric form field.
func FormID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.FormValue(name), 10, 64)
	if err != nil || id < 1 {
		Detail(w, http.StatusBadRequest, name+" field is required")
		return 0, false
	}

	return id, true
}
