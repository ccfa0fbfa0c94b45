package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/page"
)

const MinPasswordLength = 8

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*User, error)
	UpdateUser(ctx context.Context, u *User, before *User) error
	DeleteUser(ctx context.Context, id int64) error
	SetLastLogin(ctx context.Context, id int64, day time.Time) error
}

type Service struct {
	repo Repository
	cost int
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost, now: time.Now}
}

// WithCost sets the bcrypt cost used for new hashes.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

type CreateParams struct {
	Email      string
	Password   string
	FullName   string
	Role       Role
	PracticeID *int64
}

type UpdateParams struct {
	Email      *string
	Password   *string
	FullName   *string
	Role       *Role
	PracticeID *int64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	email := normalizeEmail(params.Email)

	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hash(params.Password)
	if err != nil {
		return nil, err
	}

	if params.Role == "" {
		params.Role = RoleViewer
	}

	u := &User{
		Email:          email,
		HashedPassword: hash,
		FullName:       params.FullName,
		Role:           params.Role,
		PracticeID:     params.PracticeID,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]*User, error) {
	offset, limit, err := page.Normalize(offset, limit)
	if err != nil {
		return nil, err
	}

	return s.repo.ListUsers(ctx, offset, limit)
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*User, error) {
	current, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *current

	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		if email != current.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}

			current.Email = email
		}
	}

	if params.Password != nil {
		hash, err := s.hash(*params.Password)
		if err != nil {
			return nil, err
		}

		current.HashedPassword = hash
	}

	if params.FullName != nil {
		current.FullName = *params.FullName
	}

	if params.Role != nil {
		current.Role = *params.Role
	}

	if params.PracticeID != nil {
		current.PracticeID = params.PracticeID
	}

	if err := s.repo.UpdateUser(ctx, current, &before); err != nil {
		return nil, err
	}

	return current, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

// Authenticate checks the credentials and records the login date. Unknown
// emails and wrong passwords fail the same way.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("Incorrect email or password")
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}

	now := s.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if err := s.repo.SetLastLogin(ctx, u.ID, day); err != nil {
		return nil, fmt.Errorf("recording login: %w", err)
	}

	u.LastLogin = &day

	return u, nil
}

func (s *Service) hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", apperr.Validation("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Validation("password must be at most 72 bytes")
		}

		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("checking user email: %w", err)
	}

	if existing.ID == selfID {
		return nil
	}

	return apperr.Conflict("User with email '%s' already exists", email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
