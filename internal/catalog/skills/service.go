package skills

import (
	"context"
	"fmt"
	"strings"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Skill, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Skill, error) {
	if id <= 0 {
		return Skill{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, sk Skill) (Skill, error) {
	if err := s.validate(sk); err != nil {
		return Skill{}, err
	}
	return s.repo.Create(ctx, sk)
}

func (s *Service) Update(ctx context.Context, id int64, sk Skill) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.validate(sk); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, sk)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(sk Skill) error {
	if strings.TrimSpace(sk.Code) == "" {
		return fmt.Errorf("%w: skill code", shared.ErrRequiredField)
	}
	if strings.TrimSpace(sk.Name) == "" {
		return fmt.Errorf("%w: skill name", shared.ErrRequiredField)
	}
	if sk.CategoryID != nil && *sk.CategoryID <= 0 {
		return fmt.Errorf("%w: skill category reference is invalid", shared.ErrValidation)
	}
	return nil
}
