package categorytypes

import (
	"context"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]CategoryType, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (CategoryType, error) {
	if id <= 0 {
		return CategoryType{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, ct CategoryType) (CategoryType, error) {
	if err := s.validate(ct); err != nil {
		return CategoryType{}, err
	}
	return s.repo.Create(ctx, ct)
}

func (s *Service) Update(ctx context.Context, id int64, ct CategoryType) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.validate(ct); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, ct)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}
