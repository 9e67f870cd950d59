package portfolios

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Portfolio, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Portfolio, error) {
	if id <= 0 {
		return Portfolio{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, p Portfolio) (Portfolio, error) {
	normalized, err := s.validate(p)
	if err != nil {
		return Portfolio{}, err
	}
	return s.repo.Create(ctx, normalized)
}

func (s *Service) Update(ctx context.Context, id int64, p Portfolio) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	normalized, err := s.validate(p)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, normalized)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(p Portfolio) (Portfolio, error) {
	if strings.TrimSpace(p.Code) == "" {
		return Portfolio{}, fmt.Errorf("%w: portfolio code", shared.ErrRequiredField)
	}
	if err := shared.ValidateTranslations(p.Translations); err != nil {
		return Portfolio{}, err
	}
	blocks := make([]shared.Translation, len(p.Translations))
	copy(blocks, p.Translations)
	for i := range blocks {
		canonical, err := shared.CanonicalLanguage(blocks[i].Language)
		if err != nil {
			return Portfolio{}, err
		}
		blocks[i].Language = canonical
	}
	p.Translations = blocks

	seen := make(map[int64]struct{}, len(p.ProjectIDs))
	ordered := make([]int64, 0, len(p.ProjectIDs))
	for _, id := range p.ProjectIDs {
		if id <= 0 {
			return Portfolio{}, fmt.Errorf("%w: project ids must be positive", shared.ErrValidation)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	p.ProjectIDs = ordered
	return p, nil
}
