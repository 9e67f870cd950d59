package projects

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type memoryRepo struct {
	mu     sync.Mutex
	items  map[int64]Project
	nextID int64

	failDeletes map[int64]bool
	maxInFlight int
	inFlight    int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]Project), nextID: 1, failDeletes: make(map[int64]bool)}
}

func (m *memoryRepo) List(_ context.Context, _ shared.ListFilters) ([]Project, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Project
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return Project{}, shared.ErrNotFound
	}
	return p, nil
}

func (m *memoryRepo) Create(_ context.Context, p Project) (Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID
	m.nextID++
	m.items[p.ID] = p
	return p, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, p Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	p.ID = id
	m.items[id] = p
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDeletes[id] {
		return shared.ErrNotFound
	}
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func seedProjects(t *testing.T, svc *Service, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		created, err := svc.Create(context.Background(), Project{
			Code:         "proj-" + string(rune('a'+i)),
			Translations: []shared.Translation{{Language: "en", Name: "Project"}},
		})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	return ids
}

func TestServiceCreateRequiresNamedTranslation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), Project{Code: "site"})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), Project{
		Code:         "site",
		Translations: []shared.Translation{{Language: "en", Name: ""}},
	})
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Empty(t, repo.items)
}

func TestServiceCreateDedupesRelations(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), Project{
		Code:         "site",
		Translations: []shared.Translation{{Language: "en", Name: "Site"}},
		CategoryIDs:  []int64{3, 1, 3},
		SkillIDs:     []int64{2, 2},
	})
	require.NoError(t, err)
	require.Equal(t, []int64{3, 1}, created.CategoryIDs)
	require.Equal(t, []int64{2}, created.SkillIDs)
}

func TestBulkDeleteAll(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ids := seedProjects(t, svc, 5)

	result, err := svc.BulkDelete(context.Background(), ids)
	require.NoError(t, err)
	require.ElementsMatch(t, ids, result.DeletedIDs)
	require.Zero(t, result.Failed)
	require.Empty(t, repo.items)
}

func TestBulkDeletePartialFailure(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ids := seedProjects(t, svc, 6)

	repo.failDeletes[ids[1]] = true
	repo.failDeletes[ids[4]] = true

	result, err := svc.BulkDelete(context.Background(), ids)
	require.NoError(t, err, "individual failures must not abort the batch")
	require.Equal(t, 2, result.Failed)
	require.Len(t, result.DeletedIDs, 4)
	require.NotContains(t, result.DeletedIDs, ids[1])
	require.NotContains(t, result.DeletedIDs, ids[4])
	require.Len(t, repo.items, 2, "failed ids stay in place")
}

func TestBulkDeleteBoundsConcurrency(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ids := seedProjects(t, svc, 20)

	_, err := svc.BulkDelete(context.Background(), ids)
	require.NoError(t, err)
	require.LessOrEqual(t, repo.maxInFlight, bulkDeleteConcurrency)
}

func TestBulkDeleteRejectsEmptyAndOversized(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.BulkDelete(context.Background(), nil)
	require.ErrorIs(t, err, shared.ErrValidation)

	tooMany := make([]int64, maxBulkDeleteIDs+1)
	for i := range tooMany {
		tooMany[i] = int64(i + 1)
	}
	_, err = svc.BulkDelete(context.Background(), tooMany)
	require.ErrorIs(t, err, shared.ErrValidation)
}
