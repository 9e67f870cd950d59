package sections

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type memoryRepo struct {
	items   map[int64]Section
	nextID  int64
	created int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]Section), nextID: 1}
}

func (m *memoryRepo) List(_ context.Context, _ shared.ListFilters) ([]Section, int, error) {
	var out []Section
	for _, s := range m.items {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Section, error) {
	s, ok := m.items[id]
	if !ok {
		return Section{}, shared.ErrNotFound
	}
	return s, nil
}

func (m *memoryRepo) Create(_ context.Context, s Section) (Section, error) {
	m.created++
	s.ID = m.nextID
	m.nextID++
	m.items[s.ID] = s
	return s, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, s Section) error {
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

func TestServiceCreateRequiresNamedTranslation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), Section{Code: "hero"})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), Section{
		Code:         "hero",
		Translations: []shared.Translation{{Language: "en", Name: "  "}},
	})
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Zero(t, repo.created, "invalid sections must not reach the repository")

	created, err := svc.Create(context.Background(), Section{
		Code: "hero",
		Translations: []shared.Translation{
			{Language: "en", Name: "Hero"},
			{Language: "de", Name: ""},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestServiceCanonicalizesLanguages(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), Section{
		Code:         "about",
		Translations: []shared.Translation{{Language: "EN-us", Name: "About"}},
	})
	require.NoError(t, err)
	require.Equal(t, "en-US", created.Translations[0].Language)
}

func TestServiceRejectsDuplicateLanguage(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Section{
		Code: "about",
		Translations: []shared.Translation{
			{Language: "en", Name: "About"},
			{Language: "en", Name: "About again"},
		},
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestServiceRejectsBadLanguageTag(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Section{
		Code:         "about",
		Translations: []shared.Translation{{Language: "not a tag", Name: "About"}},
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestServiceRejectsNegativeSortOrder(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Section{
		Code:         "footer",
		SortOrder:    -1,
		Translations: []shared.Translation{{Language: "en", Name: "Footer"}},
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}
