package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type memoryRepo struct {
	items  map[int64]Category
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]Category), nextID: 1}
}

func (m *memoryRepo) List(_ context.Context, filters shared.ListFilters) ([]Category, int, error) {
	var out []Category
	for _, c := range m.items {
		if filters.TypeID != nil && c.TypeID != *filters.TypeID {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Category, error) {
	c, ok := m.items[id]
	if !ok {
		return Category{}, shared.ErrNotFound
	}
	return c, nil
}

func (m *memoryRepo) Create(_ context.Context, c Category) (Category, error) {
	c.ID = m.nextID
	m.nextID++
	m.items[c.ID] = c
	return c, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, c Category) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	c.ID = id
	m.items[id] = c
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestServiceCreateRequiresType(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Category{Code: "go", Name: "Go"})
	require.ErrorIs(t, err, shared.ErrValidation)

	created, err := svc.Create(context.Background(), Category{TypeID: 1, Code: "go", Name: "Go"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestServiceListFiltersByType(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), Category{TypeID: 1, Code: "go", Name: "Go"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), Category{TypeID: 2, Code: "fintech", Name: "Fintech"})
	require.NoError(t, err)

	typeID := int64(2)
	items, total, err := svc.List(context.Background(), shared.ListFilters{TypeID: &typeID})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "fintech", items[0].Code)
}

func TestServiceUpdateMissing(t *testing.T) {
	svc := NewService(newMemoryRepo())

	err := svc.Update(context.Background(), 99, Category{TypeID: 1, Code: "go", Name: "Go"})
	require.ErrorIs(t, err, shared.ErrNotFound)

	require.ErrorIs(t, svc.Update(context.Background(), 0, Category{TypeID: 1, Code: "go", Name: "Go"}), shared.ErrInvalidID)
}
