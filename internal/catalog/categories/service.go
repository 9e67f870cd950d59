package categories

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Category, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	if id <= 0 {
		return Category{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c Category) (Category, error) {
	if err := s.validate(c); err != nil {
		return Category{}, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, id int64, c Category) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.validate(c); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(c Category) error {
	if c.TypeID <= 0 {
		return fmt.Errorf("%w: category type", shared.ErrRequiredField)
	}
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("%w: category code", shared.ErrRequiredField)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name", shared.ErrRequiredField)
	}
	return nil
}
