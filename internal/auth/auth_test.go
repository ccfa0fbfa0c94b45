package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/user"
)

var testUser = &user.User{ID: 7, Email: "owner@example.com", Role: user.RoleAdmin}

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("secret", 30*time.Minute)

	raw, expires, err := tokens.Issue(testUser)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expires, 5*time.Second)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, user.RoleAdmin, claims.Role)
	assert.Equal(t, "owner@example.com", claims.Subject)
}

func TestTokens_Parse(t *testing.T) {
	issued := NewTokens("secret", time.Minute)
	raw, _, err := issued.Issue(testUser)
	require.NoError(t, err)

	type testCase struct {
		name   string
		tokens func() *Tokens
		raw    string
		detail string
	}

	tests := []testCase{
		{
			name:   "wrong secret",
			tokens: func() *Tokens { return NewTokens("other", time.Minute) },
			raw:    raw,
			detail: credentialsDetail,
		},
		{
			name: "expired",
			tokens: func() *Tokens {
				tk := NewTokens("secret", time.Minute)
				tk.now = func() time.Time { return time.Now().Add(time.Hour) }

				return tk
			},
			raw:    raw,
			detail: "Token has expired",
		},
		{
			name:   "garbage",
			tokens: func() *Tokens { return NewTokens("secret", time.Minute) },
			raw:    "not-a-token",
			detail: credentialsDetail,
		},
		{
			name:   "disabled",
			tokens: func() *Tokens { return NewTokens("", time.Minute) },
			raw:    raw,
			detail: credentialsDetail,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.tokens().Parse(tc.raw)
			require.Error(t, err)
			assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
			assert.Equal(t, tc.detail, apperr.DetailOf(err))
		})
	}
}

func TestTokens_IssueDisabled(t *testing.T) {
	_, _, err := NewTokens("", time.Minute).Issue(testUser)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	raw, _, err := tokens.Issue(testUser)
	require.NoError(t, err)

	type testCase struct {
		name       string
		required   bool
		header     string
		wantStatus int
		wantActor  bool
		wantDetail string
	}

	tests := []testCase{
		{name: "valid token", header: "Bearer " + raw, wantStatus: http.StatusOK, wantActor: true},
		{name: "no token optional", wantStatus: http.StatusOK},
		{name: "no token required", required: true, wantStatus: http.StatusUnauthorized, wantDetail: "Not authenticated"},
		{name: "bad token optional", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantDetail: credentialsDetail},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantDetail: credentialsDetail},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotActor bool

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := audit.ActorFrom(r.Context())
				gotActor = ok && id == testUser.ID

				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/practices", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			rec := httptest.NewRecorder()
			Middleware(tokens, tc.required)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantActor, gotActor)

			if tc.wantDetail != "" {
				assert.JSONEq(t, `{"detail":"`+tc.wantDetail+`"}`, rec.Body.String())
			}
		})
	}
}
