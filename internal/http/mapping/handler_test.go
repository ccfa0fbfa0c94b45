package mapping_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	mappingHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/mapping"
	"github.com/MrJamesThe3rd/dentalbudget/internal/mapping"
)

func TestHandler(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		target     string
		body       string
		setupMock  func(m *mapping.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:   "Suggest",
			method: http.MethodGet,
			target: "/mappings/suggest?raw_account=Dental+Supplies+-+Henry+Schein",
			setupMock: func(m *mapping.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "Dental Supplies - Henry Schein").Return("5100", nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"raw_account":"Dental Supplies - Henry Schein","category_code":"5100"}`,
		},
		{
			name:   "SuggestNoMatch",
			method: http.MethodGet,
			target: "/mappings/suggest?raw_account=Parking",
			setupMock: func(m *mapping.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "Parking").Return("", nil)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"No mapping matches account 'Parking'"}`,
		},
		{
			name:       "SuggestMissingParam",
			method:     http.MethodGet,
			target:     "/mappings/suggest",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "LearnBlank",
			method:     http.MethodPost,
			target:     "/mappings",
			body:       `{"raw_pattern":" ","category_code":"5100"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "LearnUnknownCode",
			method: http.MethodPost,
			target: "/mappings",
			body:   `{"raw_pattern":"Henry Schein","category_code":"9999"}`,
			setupMock: func(m *mapping.MockRepository) {
				m.EXPECT().CreateMapping(gomock.Any(), gomock.Any()).
					Return(apperr.Validation("Category with code '9999' does not exist"))
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "Learn",
			method: http.MethodPost,
			target: "/mappings",
			body:   `{"raw_pattern":"Henry Schein","category_code":"5100"}`,
			setupMock: func(m *mapping.MockRepository) {
				m.EXPECT().CreateMapping(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, in *mapping.Mapping) error {
						in.ID = 1
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mapping.NewMockRepository(ctrl)

			if tc.setupMock != nil {
				tc.setupMock(repo)
			}

			router := chi.NewRouter()
			router.Route("/mappings", mappingHandler.NewHandler(mapping.NewService(repo)).Routes)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body)))

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}
