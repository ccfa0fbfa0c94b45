package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/user"
)

func newService(t *testing.T) (*user.Service, *user.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := user.NewMockRepository(ctrl)

	return user.NewService(repo).WithCost(bcrypt.MinCost), repo
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    user.CreateParams
		setupMock func(m *user.MockRepository)
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: user.CreateParams{Email: " Office@AustinPC.com ", Password: "s3cret-pass", FullName: "Office"},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "office@austinpc.com").Return(nil, apperr.NotFound("missing"))
				m.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "DuplicateEmail",
			params: user.CreateParams{Email: "office@austinpc.com", Password: "s3cret-pass"},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "office@austinpc.com").Return(&user.User{ID: 3}, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindConflict,
		},
		{
			name:   "ShortPassword",
			params: user.CreateParams{Email: "office@austinpc.com", Password: "short"},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, apperr.NotFound("missing"))
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "office@austinpc.com", got.Email)
			assert.Equal(t, user.RoleViewer, got.Role)
			assert.NotEqual(t, tt.params.Password, got.HashedPassword)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.HashedPassword), []byte(tt.params.Password)))
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &user.User{ID: 4, Email: "admin@example.com", HashedPassword: string(hash), Role: user.RoleAdmin}

	t.Run("Success", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(stored, nil)
		repo.EXPECT().SetLastLogin(gomock.Any(), int64(4), gomock.Any()).Return(nil)

		got, err := svc.Authenticate(context.Background(), "Admin@Example.com", "correct-horse")
		require.NoError(t, err)
		require.NotNil(t, got.LastLogin)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(stored, nil)

		_, err := svc.Authenticate(context.Background(), "admin@example.com", "nope-nope")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.com").Return(nil, apperr.NotFound("missing"))

		_, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever1")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})
}

func TestService_Update_Password(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetUser(gomock.Any(), int64(2)).
		Return(&user.User{ID: 2, Email: "a@b.co", HashedPassword: "old"}, nil)
	repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u, before *user.User) error {
			assert.Equal(t, "old", before.HashedPassword)
			assert.NotEqual(t, "old", u.HashedPassword)

			return nil
		})

	pw := "brand-new-pass"

	_, err := svc.Update(context.Background(), 2, user.UpdateParams{Password: &pw})
	require.NoError(t, err)
}

func TestParseRole(t *testing.T) {
	r, err := user.ParseRole("manager")
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, r)

	_, err = user.ParseRole("owner")
	assert.Error(t, err)
}
