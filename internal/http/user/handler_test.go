package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/auth"
	userHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/user"
	"github.com/MrJamesThe3rd/dentalbudget/internal/user"
)

func newRouter(t *testing.T, tokens *auth.Tokens, setup func(m *user.MockRepository)) http.Handler {
	ctrl := gomock.NewController(t)
	repo := user.NewMockRepository(ctrl)

	if setup != nil {
		setup(repo)
	}

	h := userHandler.NewHandler(user.NewService(repo).WithCost(bcrypt.MinCost), tokens)

	r := chi.NewRouter()
	r.Route("/users", h.Routes)
	r.Route("/auth", h.AuthRoutes)

	return r
}

func TestHandler_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	owner := &user.User{ID: 3, Email: "owner@example.com", HashedPassword: string(hash), Role: user.RoleAdmin}
	tokens := auth.NewTokens("secret", time.Hour)

	t.Run("JSON", func(t *testing.T) {
		router := newRouter(t, tokens, func(m *user.MockRepository) {
			m.EXPECT().GetUserByEmail(gomock.Any(), "owner@example.com").Return(owner, nil)
			m.EXPECT().SetLastLogin(gomock.Any(), int64(3), gomock.Any()).Return(nil)
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"Owner@Example.com","password":"s3cret-pass"}`)))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "bearer", resp.TokenType)

		claims, err := tokens.Parse(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(3), claims.UserID)
	})

	t.Run("Form", func(t *testing.T) {
		router := newRouter(t, tokens, func(m *user.MockRepository) {
			m.EXPECT().GetUserByEmail(gomock.Any(), "owner@example.com").Return(owner, nil)
			m.EXPECT().SetLastLogin(gomock.Any(), int64(3), gomock.Any()).Return(nil)
		})

		form := url.Values{"username": {"owner@example.com"}, "password": {"s3cret-pass"}}

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		router := newRouter(t, tokens, func(m *user.MockRepository) {
			m.EXPECT().GetUserByEmail(gomock.Any(), "owner@example.com").Return(owner, nil)
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"owner@example.com","password":"wrong-pass"}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"detail":"Incorrect email or password"}`, rec.Body.String())
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})
}

func TestHandler_Users(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		target     string
		body       string
		setupMock  func(m *user.MockRepository)
		wantStatus int
		wantSubstr string
	}

	tests := []testCase{
		{
			name:       "CreateInvalidEmail",
			method:     http.MethodPost,
			target:     "/users",
			body:       `{"email":"not-an-email","password":"longenough","full_name":"Pat"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantSubstr: "email must be a valid email address",
		},
		{
			name:   "CreateShortPassword",
			method: http.MethodPost,
			target: "/users",
			body:   `{"email":"pat@example.com","password":"short","full_name":"Pat"}`,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "pat@example.com").Return(nil, apperr.NotFound("User not found"))
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantSubstr: "password must be at least 8 characters",
		},
		{
			name:   "CreateHidesHash",
			method: http.MethodPost,
			target: "/users",
			body:   `{"email":"pat@example.com","password":"longenough","full_name":"Pat","role":"manager","practice_id":2}`,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "pat@example.com").Return(nil, apperr.NotFound("User not found"))
				m.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, u *user.User) error {
						u.ID = 5
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantSubstr: `"role":"manager"`,
		},
		{
			name:       "CreateUnknownRole",
			method:     http.MethodPost,
			target:     "/users",
			body:       `{"email":"pat@example.com","password":"longenough","full_name":"Pat","role":"owner"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "DeleteReferenced",
			method: http.MethodDelete,
			target: "/users/5",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().DeleteUser(gomock.Any(), int64(5)).Return(apperr.Conflict("User 5 is still referenced"))
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter(t, auth.NewTokens("secret", time.Hour), tc.setupMock)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body)))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantSubstr)
			assert.NotContains(t, rec.Body.String(), "hashed")
		})
	}
}
