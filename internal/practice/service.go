package practice

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/page"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=practice
type Repository interface {
	CreatePractice(ctx context.Context, p *Practice) error
	GetPractice(ctx context.Context, id int64) (*Practice, error)
	GetPracticeByName(ctx context.Context, name string) (*Practice, error)
	ListPractices(ctx context.Context, offset, limit int) ([]*Practice, error)
	UpdatePractice(ctx context.Context, p *Practice, before *Practice) error
	DeletePractice(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name     string
	Location string
	Status   Status
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Name     *string
	Location *string
	Status   *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Practice, error) {
	if params.Status == "" {
		params.Status = StatusActive
	}

	if err := s.ensureNameFree(ctx, params.Name, 0); err != nil {
		return nil, err
	}

	p := &Practice{
		Name:     params.Name,
		Location: params.Location,
		Status:   params.Status,
	}
	if err := s.repo.CreatePractice(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Practice, error) {
	return s.repo.GetPractice(ctx, id)
}

// List returns one page of practices. A zero limit means DefaultLimit.
func (s *Service) List(ctx context.Context, offset, limit int) ([]*Practice, error) {
	offset, limit, err := page.Normalize(offset, limit)
	if err != nil {
		return nil, err
	}

	return s.repo.ListPractices(ctx, offset, limit)
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Practice, error) {
	current, err := s.repo.GetPractice(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *current

	if params.Name != nil && *params.Name != current.Name {
		if err := s.ensureNameFree(ctx, *params.Name, id); err != nil {
			return nil, err
		}

		current.Name = *params.Name
	}

	if params.Location != nil {
		current.Location = *params.Location
	}

	if params.Status != nil {
		current.Status = *params.Status
	}

	if err := s.repo.UpdatePractice(ctx, current, &before); err != nil {
		return nil, err
	}

	return current, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeletePractice(ctx, id)
}

func (s *Service) ensureNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetPracticeByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("checking practice name: %w", err)
	}

	if existing.ID == selfID {
		return nil
	}

	return apperr.Conflict("Practice with name '%s' already exists", name)
}
