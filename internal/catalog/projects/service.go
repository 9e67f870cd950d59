package projects

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/foliohq/folio/internal/catalog/shared"
)

// bulkDeleteConcurrency bounds the fan-out of bulk deletes so a large
// selection cannot exhaust the connection pool.
const bulkDeleteConcurrency = 4

// maxBulkDeleteIDs caps one bulk request.
const maxBulkDeleteIDs = 100

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Project, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Project, error) {
	if id <= 0 {
		return Project{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, p Project) (Project, error) {
	normalized, err := s.validate(p)
	if err != nil {
		return Project{}, err
	}
	return s.repo.Create(ctx, normalized)
}

func (s *Service) Update(ctx context.Context, id int64, p Project) error {
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

// BulkDelete removes the given projects with bounded concurrency. Individual
// failures do not abort the batch; the result lists what was deleted and how
// many ids were not.
func (s *Service) BulkDelete(ctx context.Context, ids []int64) (BulkDeleteResult, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return BulkDeleteResult{}, fmt.Errorf("%w: no project ids given", shared.ErrValidation)
	}
	if len(ids) > maxBulkDeleteIDs {
		return BulkDeleteResult{}, fmt.Errorf("%w: at most %d projects per bulk delete", shared.ErrValidation, maxBulkDeleteIDs)
	}

	var mu sync.Mutex
	deleted := make([]int64, 0, len(ids))
	failed := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkDeleteConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			err := s.repo.Delete(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				return nil
			}
			deleted = append(deleted, id)
			return nil
		})
	}
	// Workers never return errors; Wait only observes context cancellation.
	if err := g.Wait(); err != nil {
		return BulkDeleteResult{}, err
	}

	sort.Slice(deleted, func(i, j int) bool { return deleted[i] < deleted[j] })
	return BulkDeleteResult{DeletedIDs: deleted, Failed: failed}, nil
}

func (s *Service) validate(p Project) (Project, error) {
	if strings.TrimSpace(p.Code) == "" {
		return Project{}, fmt.Errorf("%w: project code", shared.ErrRequiredField)
	}
	if err := shared.ValidateTranslations(p.Translations); err != nil {
		return Project{}, err
	}
	blocks := make([]shared.Translation, len(p.Translations))
	copy(blocks, p.Translations)
	for i := range blocks {
		canonical, err := shared.CanonicalLanguage(blocks[i].Language)
		if err != nil {
			return Project{}, err
		}
		blocks[i].Language = canonical
	}
	p.Translations = blocks

	for _, group := range [][]int64{p.CategoryIDs, p.SkillIDs, p.ImageIDs, p.AttachmentIDs} {
		for _, id := range group {
			if id <= 0 {
				return Project{}, fmt.Errorf("%w: related ids must be positive", shared.ErrValidation)
			}
		}
	}
	p.CategoryIDs = dedupeIDs(p.CategoryIDs)
	p.SkillIDs = dedupeIDs(p.SkillIDs)
	p.ImageIDs = dedupeIDs(p.ImageIDs)
	p.AttachmentIDs = dedupeIDs(p.AttachmentIDs)
	return p, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
