package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/dentalbudget/internal/auth"
	budgetHttp "github.com/MrJamesThe3rd/dentalbudget/internal/http"
)

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func TestRouter(t *testing.T) {
	type testCase struct {
		name       string
		db         pinger
		required   bool
		method     string
		target     string
		header     map[string]string
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:       "Root",
			method:     http.MethodGet,
			target:     "/",
			wantStatus: http.StatusOK,
			wantBody:   `{"name":"Dental Budget API","version":"1.0.0","status":"running"}`,
		},
		{
			name:       "Healthy",
			method:     http.MethodGet,
			target:     "/health",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"healthy","database":"connected"}`,
		},
		{
			name:       "Unhealthy",
			db:         pinger{err: errors.New("refused")},
			method:     http.MethodGet,
			target:     "/health",
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unhealthy","database":"unreachable"}`,
		},
		{
			name:       "AuthRequired",
			required:   true,
			method:     http.MethodGet,
			target:     "/api/v1/practices",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail":"Not authenticated"}`,
		},
		{
			name:       "InvalidToken",
			method:     http.MethodGet,
			target:     "/api/v1/reports/variance/1/1",
			header:     map[string]string{"Authorization": "Bearer garbage"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail":"Could not validate credentials"}`,
		},
		{
			name:       "CORSPreflight",
			method:     http.MethodOptions,
			target:     "/api/v1/practices",
			header:     map[string]string{"Origin": "http://localhost:3000", "Access-Control-Request-Method": "POST"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := budgetHttp.New(budgetHttp.Handlers{}, budgetHttp.Options{
				Name:           "Dental Budget API",
				Version:        "1.0.0",
				AllowedOrigins: []string{"*"},
				Tokens:         auth.NewTokens("secret", time.Minute),
				AuthRequired:   tc.required,
				DB:             tc.db,
			})

			req := httptest.NewRequest(tc.method, tc.target, nil)
			for k, v := range tc.header {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}
