package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/foliohq/folio/internal/catalog/shared"
	internalShared "github.com/foliohq/folio/internal/shared"
)

type memoryRepo struct {
	items  map[int64]User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]User), nextID: 1}
}

func (m *memoryRepo) List(_ context.Context, _ shared.ListFilters) ([]User, int, error) {
	var out []User
	for _, u := range m.items {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (User, error) {
	u, ok := m.items[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (User, error) {
	for _, u := range m.items {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, shared.ErrNotFound
}

func (m *memoryRepo) Create(_ context.Context, u User) (User, error) {
	u.ID = m.nextID
	m.nextID++
	m.items[u.ID] = u
	return u, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, u User) error {
	existing, ok := m.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	existing.Email = u.Email
	existing.Name = u.Name
	existing.IsSystemAdmin = u.IsSystemAdmin
	m.items[id] = existing
	return nil
}

func (m *memoryRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := m.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.PasswordHash = hash
	m.items[id] = u
	return nil
}

func (m *memoryRepo) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := m.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.Active = active
	m.items[id] = u
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memoryRepo) SetRoles(_ context.Context, id int64, roleIDs []int64) error {
	u, ok := m.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.RoleIDs = roleIDs
	m.items[id] = u
	return nil
}

type fakeInvalidator struct {
	calls []int64
}

func (f *fakeInvalidator) Invalidate(_ context.Context, userID int64) {
	f.calls = append(f.calls, userID)
}

func TestCreateHashesPassword(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, &fakeInvalidator{})

	created, err := svc.Create(context.Background(), User{Email: "Admin@Example.com", Name: "Admin"}, "correct horse")
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", created.Email)
	require.True(t, created.Active)
	require.NotEqual(t, "correct horse", created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct horse")))
}

func TestCreateRejectsShortPassword(t *testing.T) {
	svc := NewService(newMemoryRepo(), &fakeInvalidator{})

	_, err := svc.Create(context.Background(), User{Email: "a@b.c", Name: "A"}, "short")
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestAuthenticate(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, &fakeInvalidator{})

	created, err := svc.Create(context.Background(), User{Email: "admin@example.com", Name: "Admin"}, "correct horse")
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "admin@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(context.Background(), "admin@example.com", "wrong")
	require.ErrorIs(t, err, internalShared.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "ghost@example.com", "correct horse")
	require.ErrorIs(t, err, internalShared.ErrInvalidCredentials, "missing user and wrong password look alike")
}

func TestAuthenticateRejectsInactive(t *testing.T) {
	repo := newMemoryRepo()
	inv := &fakeInvalidator{}
	svc := NewService(repo, inv)

	created, err := svc.Create(context.Background(), User{Email: "admin@example.com", Name: "Admin"}, "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(context.Background(), created.ID, false))
	require.Contains(t, inv.calls, created.ID, "deactivation drops the cached snapshot")

	_, err = svc.Authenticate(context.Background(), "admin@example.com", "correct horse")
	require.ErrorIs(t, err, internalShared.ErrInvalidCredentials)
}

func TestSetRolesInvalidatesSnapshot(t *testing.T) {
	repo := newMemoryRepo()
	inv := &fakeInvalidator{}
	svc := NewService(repo, inv)

	created, err := svc.Create(context.Background(), User{Email: "admin@example.com", Name: "Admin"}, "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.SetRoles(context.Background(), created.ID, []int64{2, 2, 5}))
	require.Equal(t, []int64{2, 5}, repo.items[created.ID].RoleIDs)
	require.Contains(t, inv.calls, created.ID)
}
