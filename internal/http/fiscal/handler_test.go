package fiscal_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	fiscalHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/fiscal"
)

func date(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func TestHandler(t *testing.T) {
	fy := &fiscal.FiscalYear{ID: 4, PracticeID: 2, Year: 2026, StartDate: date("2026-01-01"), EndDate: date("2026-12-31")}

	type testCase struct {
		name       string
		method     string
		target     string
		body       string
		setupMock  func(m *fiscal.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:   "CreateYear",
			method: http.MethodPost,
			target: "/fiscal-years",
			body:   `{"practice_id":2,"year":2026,"start_date":"2026-01-01","end_date":"2026-12-31"}`,
			setupMock: func(m *fiscal.MockRepository) {
				m.EXPECT().CreateFiscalYear(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, in *fiscal.FiscalYear) error {
						in.ID = 4
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":4,"practice_id":2,"year":2026,"start_date":"2026-01-01","end_date":"2026-12-31"}`,
		},
		{
			name:       "CreateYearOutOfRange",
			method:     http.MethodPost,
			target:     "/fiscal-years",
			body:       `{"practice_id":2,"year":1999,"start_date":"1999-01-01","end_date":"1999-12-31"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":"year must be greater than or equal to 2020"}`,
		},
		{
			name:       "CreateYearEndBeforeStart",
			method:     http.MethodPost,
			target:     "/fiscal-years",
			body:       `{"practice_id":2,"year":2026,"start_date":"2026-12-31","end_date":"2026-01-01"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":"end_date must not be before start_date"}`,
		},
		{
			name:       "CreateYearBadDate",
			method:     http.MethodPost,
			target:     "/fiscal-years",
			body:       `{"practice_id":2,"year":2026,"start_date":"01/01/2026","end_date":"2026-12-31"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "GeneratePeriodsSkipsExisting",
			method: http.MethodPost,
			target: "/fiscal-years/4/periods",
			setupMock: func(m *fiscal.MockRepository) {
				m.EXPECT().GetFiscalYear(gomock.Any(), int64(4)).Return(fy, nil)
				m.EXPECT().ListPeriods(gomock.Any(), gomock.Any()).Return([]*fiscal.BudgetPeriod{
					{ID: 1, FiscalYearID: 4, PeriodMonth: 1, PeriodDate: date("2026-01-01"), Status: fiscal.PeriodLocked},
				}, nil)
				m.EXPECT().CreatePeriods(gomock.Any(), gomock.Len(11)).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "LockedPeriodStaysLocked",
			method: http.MethodPatch,
			target: "/periods/1/status",
			body:   `{"status":"active"}`,
			setupMock: func(m *fiscal.MockRepository) {
				m.EXPECT().GetPeriod(gomock.Any(), int64(1)).Return(&fiscal.BudgetPeriod{
					ID: 1, FiscalYearID: 4, PeriodMonth: 1, PeriodDate: date("2026-01-01"), Status: fiscal.PeriodLocked,
				}, nil)
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"detail":"Budget period with id 1 is locked"}`,
		},
		{
			name:   "LockPeriod",
			method: http.MethodPatch,
			target: "/periods/2/status",
			body:   `{"status":"locked"}`,
			setupMock: func(m *fiscal.MockRepository) {
				m.EXPECT().GetPeriod(gomock.Any(), int64(2)).Return(&fiscal.BudgetPeriod{
					ID: 2, FiscalYearID: 4, PeriodMonth: 2, PeriodDate: date("2026-02-01"), Status: fiscal.PeriodActive,
				}, nil)
				m.EXPECT().UpdatePeriodStatus(gomock.Any(), gomock.Any(), fiscal.PeriodActive).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"id":2,"fiscal_year_id":4,"period_month":2,"period_date":"2026-02-01","status":"locked"}`,
		},
		{
			name:       "CreatePeriodMidMonth",
			method:     http.MethodPost,
			target:     "/periods",
			body:       `{"fiscal_year_id":4,"period_month":3,"period_date":"2026-01-15"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":"period_date must be the first day of a month"}`,
		},
		{
			name:       "CreatePeriodMonthMismatch",
			method:     http.MethodPost,
			target:     "/periods",
			body:       `{"fiscal_year_id":4,"period_month":3,"period_date":"2026-01-01"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":"period_date month 1 does not match period_month 3"}`,
		},
		{
			name:   "CreatePeriod",
			method: http.MethodPost,
			target: "/periods",
			body:   `{"fiscal_year_id":4,"period_month":3,"period_date":"2026-03-01"}`,
			setupMock: func(m *fiscal.MockRepository) {
				m.EXPECT().CreatePeriods(gomock.Any(), gomock.Len(1)).
					DoAndReturn(func(_ any, in []*fiscal.BudgetPeriod) error {
						in[0].ID = 9
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":9,"fiscal_year_id":4,"period_month":3,"period_date":"2026-03-01","status":"draft"}`,
		},
		{
			name:       "UnknownStatus",
			method:     http.MethodPatch,
			target:     "/periods/2/status",
			body:       `{"status":"closed"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "ListPeriodsByYear",
			method: http.MethodGet,
			target: "/periods?fiscal_year_id=4",
			setupMock: func(m *fiscal.MockRepository) {
				m.EXPECT().ListPeriods(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, id *int64) ([]*fiscal.BudgetPeriod, error) {
						assert.Equal(t, int64(4), *id)
						return nil, nil
					})
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := fiscal.NewMockRepository(ctrl)

			if tc.setupMock != nil {
				tc.setupMock(repo)
			}

			h := fiscalHandler.NewHandler(fiscal.NewService(repo))

			router := chi.NewRouter()
			router.Route("/fiscal-years", h.YearRoutes)
			router.Route("/periods", h.PeriodRoutes)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body)))

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}
