package mapping

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=mapping
type Repository interface {
	FindMatch(ctx context.Context, rawAccount string) (string, error)
	CreateMapping(ctx context.Context, m *Mapping) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category code whose longest pattern occurs in
// rawAccount. It fails with NotFound when nothing matches.
func (s *Service) Suggest(ctx context.Context, rawAccount string) (string, error) {
	raw := strings.TrimSpace(rawAccount)
	if raw == "" {
		return "", apperr.Validation("raw_account is required")
	}

	code, err := s.repo.FindMatch(ctx, raw)
	if err != nil {
		return "", err
	}

	if code == "" {
		return "", apperr.NotFound("No mapping matches account '%s'", raw)
	}

	return code, nil
}

// Learn remembers that labels containing rawPattern belong to categoryCode.
func (s *Service) Learn(ctx context.Context, rawPattern, categoryCode string) (*Mapping, error) {
	m := &Mapping{
		RawPattern:   strings.TrimSpace(rawPattern),
		CategoryCode: strings.TrimSpace(categoryCode),
	}

	if m.RawPattern == "" || m.CategoryCode == "" {
		return nil, apperr.Validation("raw_pattern and category_code are required")
	}

	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}
