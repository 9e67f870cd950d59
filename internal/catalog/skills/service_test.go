package skills

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type memoryRepo struct {
	items  map[int64]Skill
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]Skill), nextID: 1}
}

func (m *memoryRepo) List(_ context.Context, filters shared.ListFilters) ([]Skill, int, error) {
	var out []Skill
	for _, s := range m.items {
		if len(filters.CategoryIDs) > 0 {
			if s.CategoryID == nil || !slices.Contains(filters.CategoryIDs, *s.CategoryID) {
				continue
			}
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Skill, error) {
	s, ok := m.items[id]
	if !ok {
		return Skill{}, shared.ErrNotFound
	}
	return s, nil
}

func (m *memoryRepo) Create(_ context.Context, s Skill) (Skill, error) {
	s.ID = m.nextID
	m.nextID++
	m.items[s.ID] = s
	return s, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, s Skill) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	s.ID = id
	m.items[id] = s
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Skill{Name: "Go"})
	require.ErrorIs(t, err, shared.ErrRequiredField)
	require.ErrorIs(t, err, shared.ErrValidation, "required-field errors stay in the validation family")

	_, err = svc.Create(context.Background(), Skill{Code: "go"})
	require.ErrorIs(t, err, shared.ErrRequiredField)

	bad := int64(-1)
	_, err = svc.Create(context.Background(), Skill{Code: "go", Name: "Go", CategoryID: &bad})
	require.ErrorIs(t, err, shared.ErrValidation)

	created, err := svc.Create(context.Background(), Skill{Code: "go", Name: "Go"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Nil(t, created.CategoryID)
}

func TestServiceListFiltersByCategory(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	web := int64(1)
	design := int64(2)
	_, err := svc.Create(context.Background(), Skill{Code: "go", Name: "Go", CategoryID: &web})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), Skill{Code: "figma", Name: "Figma", CategoryID: &design})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), Skill{Code: "writing", Name: "Writing"})
	require.NoError(t, err)

	items, total, err := svc.List(context.Background(), shared.ListFilters{CategoryIDs: []int64{design}})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "figma", items[0].Code)
}

func TestServiceInvalidID(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Get(context.Background(), 0)
	require.ErrorIs(t, err, shared.ErrInvalidID)
	require.ErrorIs(t, svc.Update(context.Background(), -5, Skill{Code: "go", Name: "Go"}), shared.ErrInvalidID)
	require.ErrorIs(t, svc.Delete(context.Background(), 0), shared.ErrInvalidID)
}
