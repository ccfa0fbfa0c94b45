package user

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dentalbudget/internal/auth"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/user"
	"github.com/MrJamesThe3rd/dentalbudget/internal/validate"
)

// Handler serves user management and login.
type Handler struct {
	svc    *user.Service
	tokens *auth.Tokens
}

func NewHandler(svc *user.Service, tokens *auth.Tokens) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) AuthRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

type userResponse struct {
	ID         int64         `json:"id"`
	Email      string        `json:"email"`
	FullName   string        `json:"full_name"`
	Role       user.Role     `json:"role"`
	PracticeID *int64        `json:"practice_id"`
	LastLogin  *respond.Date `json:"last_login"`
}

func toResponse(u *user.User) userResponse {
	resp := userResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		PracticeID: u.PracticeID,
	}

	if u.LastLogin != nil {
		resp.LastLogin = &respond.Date{Time: *u.LastLogin}
	}

	return resp
}

type createRequest struct {
	Email      string    `json:"email" validate:"required,email,max=255"`
	Password   string    `json:"password" validate:"required"`
	FullName   string    `json:"full_name" validate:"required,max=100"`
	Role       user.Role `json:"role"`
	PracticeID *int64    `json:"practice_id" validate:"omitnil,gt=0"`
}

type updateRequest struct {
	Email      *string    `json:"email" validate:"omitnil,email,max=255"`
	Password   *string    `json:"password"`
	FullName   *string    `json:"full_name" validate:"omitnil,min=1,max=100"`
	Role       *user.Role `json:"role"`
	PracticeID *int64     `json:"practice_id" validate:"omitnil,gt=0"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := respond.Page(w, r)
	if !ok {
		return
	}

	users, err := h.svc.List(r.Context(), offset, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toResponse(u)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
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

	u, err := h.svc.Create(r.Context(), user.CreateParams{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Role:       req.Role,
		PracticeID: req.PracticeID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(u))
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

	u, err := h.svc.Update(r.Context(), id, user.UpdateParams{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Role:       req.Role,
		PracticeID: req.PracticeID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
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

// login accepts JSON {email, password} or an OAuth2 password form with
// username and password fields.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			respond.Detail(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
			return
		}

		req.Email = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if !respond.Decode(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		respond.Detail(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	token, expires, err := h.tokens.Issue(u)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expires,
	})
}
