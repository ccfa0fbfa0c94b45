package mapping_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/mapping"
)

func TestService_Suggest(t *testing.T) {
	type testCase struct {
		name      string
		raw       string
		setupMock func(m *mapping.MockRepository)
		want      string
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Match",
			raw:  "  Hygiene Revenue - Cleanings ",
			setupMock: func(m *mapping.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "Hygiene Revenue - Cleanings").Return("4100", nil)
			},
			want: "4100",
		},
		{
			name: "NoMatch",
			raw:  "Parking",
			setupMock: func(m *mapping.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "Parking").Return("", nil)
			},
			wantErr:  true,
			wantKind: apperr.KindNotFound,
		},
		{
			name:      "Blank",
			raw:       "   ",
			setupMock: func(m *mapping.MockRepository) {},
			wantErr:   true,
			wantKind:  apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mapping.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := mapping.NewService(repo).Suggest(context.Background(), tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mapping.NewMockRepository(ctrl)

	repo.EXPECT().CreateMapping(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *mapping.Mapping) error {
			assert.Equal(t, "Hygiene", m.RawPattern)
			assert.Equal(t, "4100", m.CategoryCode)
			m.ID = 1

			return nil
		})

	got, err := mapping.NewService(repo).Learn(context.Background(), " Hygiene ", "4100")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = mapping.NewService(repo).Learn(context.Background(), "", "4100")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
