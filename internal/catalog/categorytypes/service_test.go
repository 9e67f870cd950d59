package categorytypes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type memoryRepo struct {
	items  map[int64]CategoryType
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]CategoryType), nextID: 1}
}

func (m *memoryRepo) List(_ context.Context, filters shared.ListFilters) ([]CategoryType, int, error) {
	out := make([]CategoryType, 0, len(m.items))
	for _, ct := range m.items {
		out = append(out, ct)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (CategoryType, error) {
	ct, ok := m.items[id]
	if !ok {
		return CategoryType{}, shared.ErrNotFound
	}
	return ct, nil
}

func (m *memoryRepo) Create(_ context.Context, ct CategoryType) (CategoryType, error) {
	for _, existing := range m.items {
		if existing.Code == ct.Code {
			return CategoryType{}, shared.ErrDuplicate
		}
	}
	ct.ID = m.nextID
	m.nextID++
	m.items[ct.ID] = ct
	return ct, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, ct CategoryType) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	ct.ID = id
	m.items[id] = ct
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestServiceCreateValidates(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CategoryType{Code: "", Name: "Web"})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), CategoryType{Code: "web", Name: "  "})
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Empty(t, repo.items, "invalid input must not reach the repository")

	created, err := svc.Create(context.Background(), CategoryType{Code: "web", Name: "Web"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestServiceCreateDuplicateCode(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CategoryType{Code: "web", Name: "Web"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CategoryType{Code: "web", Name: "Web again"})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestServiceGetRejectsBadID(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Get(context.Background(), 0)
	require.ErrorIs(t, err, shared.ErrInvalidID)
	require.True(t, errors.Is(err, shared.ErrValidation), "invalid IDs are validation failures")

	_, err = svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServiceUpdateAndDelete(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CategoryType{Code: "web", Name: "Web"})
	require.NoError(t, err)

	require.NoError(t, svc.Update(context.Background(), created.ID, CategoryType{Code: "web", Name: "Web Development"}))
	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Web Development", got.Name)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), shared.ErrNotFound)
}
