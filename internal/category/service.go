package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *AccountCategory) error
	GetCategory(ctx context.Context, id int64) (*AccountCategory, error)
	GetCategoryByCode(ctx context.Context, code string) (*AccountCategory, error)
	ListCategories(ctx context.Context, categoryType *Type) ([]*AccountCategory, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// MaxLevel is the deepest nesting the chart of accounts allows.
const MaxLevel = 5

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Code      string
	Name      string
	Type      Type
	ParentID  *int64
	Level     int
	SortOrder int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*AccountCategory, error) {
	existing, err := s.repo.GetCategoryByCode(ctx, params.Code)
	switch {
	case err == nil && existing != nil:
		return nil, apperr.Conflict("Category with code '%s' already exists", params.Code)
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return nil, fmt.Errorf("checking category code: %w", err)
	}

	if params.ParentID != nil {
		parent, err := s.repo.GetCategory(ctx, *params.ParentID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.Validation("Parent category with id %d does not exist", *params.ParentID)
			}

			return nil, err
		}

		if params.Level <= parent.Level {
			params.Level = parent.Level + 1
		}
	}

	if params.Level > MaxLevel {
		return nil, apperr.Validation("level must be at most %d", MaxLevel)
	}

	c := &AccountCategory{
		Code:      params.Code,
		Name:      params.Name,
		Type:      params.Type,
		ParentID:  params.ParentID,
		Level:     params.Level,
		SortOrder: params.SortOrder,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*AccountCategory, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*AccountCategory, error) {
	return s.repo.GetCategoryByCode(ctx, code)
}

// List returns categories ordered by sort order, optionally of one type.
func (s *Service) List(ctx context.Context, categoryType *Type) ([]*AccountCategory, error) {
	return s.repo.ListCategories(ctx, categoryType)
}

func (s *Service) Tree(ctx context.Context) ([]*Node, error) {
	cats, err := s.repo.ListCategories(ctx, nil)
	if err != nil {
		return nil, err
	}

	return BuildTree(cats), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}
