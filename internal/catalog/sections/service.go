package sections

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Section, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Section, error) {
	if id <= 0 {
		return Section{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, sec Section) (Section, error) {
	normalized, err := s.validate(sec)
	if err != nil {
		return Section{}, err
	}
	return s.repo.Create(ctx, normalized)
}

func (s *Service) Update(ctx context.Context, id int64, sec Section) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	normalized, err := s.validate(sec)
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

// validate checks the section and returns a copy with canonicalized
// language tags. Validation runs before any repository call.
func (s *Service) validate(sec Section) (Section, error) {
	if strings.TrimSpace(sec.Code) == "" {
		return Section{}, fmt.Errorf("%w: section code", shared.ErrRequiredField)
	}
	if sec.SortOrder < 0 {
		return Section{}, fmt.Errorf("%w: sort order must not be negative", shared.ErrValidation)
	}
	if err := shared.ValidateTranslations(sec.Translations); err != nil {
		return Section{}, err
	}
	blocks := make([]shared.Translation, len(sec.Translations))
	copy(blocks, sec.Translations)
	for i := range blocks {
		canonical, err := shared.CanonicalLanguage(blocks[i].Language)
		if err != nil {
			return Section{}, err
		}
		blocks[i].Language = canonical
	}
	sec.Translations = blocks
	return sec, nil
}
