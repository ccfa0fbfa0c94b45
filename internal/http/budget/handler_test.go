package budget_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	budgetHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/importer"
)

type mocks struct {
	repo       *budget.MockRepository
	periods    *budget.MockPeriods
	categories *budget.MockCategories
	mapper     *budget.MockMapper
}

func newRouter(t *testing.T, setup func(m mocks)) http.Handler {
	ctrl := gomock.NewController(t)

	m := mocks{
		repo:       budget.NewMockRepository(ctrl),
		periods:    budget.NewMockPeriods(ctrl),
		categories: budget.NewMockCategories(ctrl),
		mapper:     budget.NewMockMapper(ctrl),
	}

	if setup != nil {
		setup(m)
	}

	svc := budget.NewService(m.repo, m.periods, m.categories, m.mapper)
	h := budgetHandler.NewHandler(svc, importer.NewService(svc))

	r := chi.NewRouter()
	r.Route("/budget", h.BudgetRoutes)
	r.Route("/actuals", h.ActualRoutes)

	return r
}

func period(id int64, month int, status fiscal.PeriodStatus) *fiscal.BudgetPeriod {
	return &fiscal.BudgetPeriod{
		ID:           id,
		FiscalYearID: 1,
		PeriodMonth:  month,
		PeriodDate:   time.Date(2026, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
}

func TestHandler_Lines(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		target     string
		body       string
		setup      func(m mocks)
		wantStatus int
		wantSubstr string
	}

	tests := []testCase{
		{
			name:   "CreateComputesVariance",
			method: http.MethodPost,
			target: "/budget/lines",
			body:   `{"practice_id":2,"budget_period_id":1,"category_id":3,"budget_amount":"50000","actual_amount":"48500.00"}`,
			setup: func(m mocks) {
				m.periods.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(period(1, 1, fiscal.PeriodActive), nil)
				m.repo.EXPECT().CreateLine(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, l *budget.Line) error {
						l.ID = 9
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantSubstr: `"variance":"-1500.00"`,
		},
		{
			name:   "CreateInLockedPeriod",
			method: http.MethodPost,
			target: "/budget/lines",
			body:   `{"practice_id":2,"budget_period_id":1,"category_id":3,"budget_amount":100}`,
			setup: func(m mocks) {
				m.periods.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(period(1, 1, fiscal.PeriodLocked), nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "CreateMissingBudget",
			method:     http.MethodPost,
			target:     "/budget/lines",
			body:       `{"practice_id":2,"budget_period_id":1,"category_id":3}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantSubstr: `budget_amount is required`,
		},
		{
			name:       "CreateTooManyDecimals",
			method:     http.MethodPost,
			target:     "/budget/lines",
			body:       `{"practice_id":2,"budget_period_id":1,"category_id":3,"budget_amount":"10.555"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "BulkEmpty",
			method:     http.MethodPost,
			target:     "/budget/lines/bulk",
			body:       `{"updates":[]}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "BulkUnknownLine",
			method: http.MethodPost,
			target: "/budget/lines/bulk",
			body:   `{"updates":[{"id":5,"budget_amount":"10.00"}]}`,
			setup: func(m mocks) {
				m.repo.EXPECT().GetLine(gomock.Any(), int64(5)).Return(nil, apperr.NotFound("Budget line not found"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "ListFiltersByPractice",
			method: http.MethodGet,
			target: "/budget/lines?practice_id=2&limit=10",
			setup: func(m mocks) {
				m.repo.EXPECT().ListLines(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, f budget.LineFilter) ([]*budget.Line, error) {
						assert.Equal(t, int64(2), *f.PracticeID)
						assert.Nil(t, f.CategoryID)
						assert.Equal(t, 10, f.Limit)

						return nil, nil
					})
			},
			wantStatus: http.StatusOK,
			wantSubstr: `[]`,
		},
		{
			name:       "ImportBadBase64",
			method:     http.MethodPost,
			target:     "/budget/import",
			body:       `{"practice_id":2,"fiscal_year":2026,"file_data":"***"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantSubstr: `base64`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter(t, tc.setup)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body)))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantSubstr)
		})
	}
}

func multipartBody(t *testing.T, fields map[string]string, csv string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if csv != "" {
		fw, err := mw.CreateFormFile("file", "actuals.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte(csv))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandler_ImportActuals(t *testing.T) {
	csv := "code,period_date,amount\n4100,2026-01-15,\"1,250.00\"\n4100,2026-01-20,250.00\n"

	t.Run("Success", func(t *testing.T) {
		router := newRouter(t, func(m mocks) {
			m.categories.EXPECT().GetByCode(gomock.Any(), "4100").
				Return(&category.AccountCategory{ID: 3, Code: "4100"}, nil)
			m.repo.EXPECT().CreateActuals(gomock.Any(), gomock.Len(2), gomock.Not("")).Return(nil)
		})

		body, contentType := multipartBody(t, map[string]string{"practice_id": "2"}, csv)

		req := httptest.NewRequest(http.MethodPost, "/actuals/import", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"imported":2`)
		assert.Contains(t, rec.Body.String(), `"profile":"import"`)
		assert.Contains(t, rec.Body.String(), `"amount":"1250.00"`)
	})

	t.Run("MissingFile", func(t *testing.T) {
		router := newRouter(t, nil)

		body, contentType := multipartBody(t, map[string]string{"practice_id": "2"}, "")

		req := httptest.NewRequest(http.MethodPost, "/actuals/import", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		router := newRouter(t, func(m mocks) {
			m.categories.EXPECT().GetByCode(gomock.Any(), "4100").Return(nil, apperr.NotFound("Category not found"))
			m.mapper.EXPECT().Suggest(gomock.Any(), "4100").Return("", apperr.NotFound("No mapping"))
		})

		body, contentType := multipartBody(t, map[string]string{"practice_id": "2"}, csv)

		req := httptest.NewRequest(http.MethodPost, "/actuals/import", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "row 2")
	})
}
