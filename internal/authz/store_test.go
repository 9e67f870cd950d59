package authz_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/authz"
)

type stubGrantSource struct {
	grants authz.Grants
	err    error
	calls  int
}

func (s *stubGrantSource) Grants(ctx context.Context, userID int64) (authz.Grants, error) {
	s.calls++
	if s.err != nil {
		return authz.Grants{}, s.err
	}
	return s.grants, nil
}

func TestSnapshotStoreCachesGrants(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	source := &stubGrantSource{grants: authz.Grants{
		Permissions: []string{"VIEW_PROJECTS"},
		Roles:       []authz.Role{{Name: "editor"}},
	}}
	store := authz.NewSnapshotStore(source, client, time.Minute, nil)

	first, err := store.Snapshot(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, first.Authenticated())
	require.Equal(t, []string{"VIEW_PROJECTS"}, first.Permissions())
	require.Equal(t, []authz.Role{{Name: "editor"}}, first.Roles())

	second, err := store.Snapshot(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, first.Permissions(), second.Permissions())
	require.Equal(t, 1, source.calls, "second lookup must come from cache")
}

func TestSnapshotStoreInvalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	source := &stubGrantSource{grants: authz.Grants{Permissions: []string{"VIEW_PROJECTS"}}}
	store := authz.NewSnapshotStore(source, client, time.Minute, nil)

	_, err := store.Snapshot(context.Background(), 7)
	require.NoError(t, err)
	store.Invalidate(context.Background(), 7)

	source.grants = authz.Grants{Permissions: []string{"VIEW_PROJECTS", "EDIT_PROJECTS"}}
	snap, err := store.Snapshot(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, []string{"EDIT_PROJECTS", "VIEW_PROJECTS"}, snap.Permissions())
	require.Equal(t, 2, source.calls)
}

func TestSnapshotStoreFailClosed(t *testing.T) {
	source := &stubGrantSource{err: errors.New("backend down")}
	store := authz.NewSnapshotStore(source, nil, time.Minute, nil)

	snap, err := store.Snapshot(context.Background(), 7)
	require.Error(t, err)
	require.False(t, snap.Authenticated())
	require.Empty(t, snap.Permissions())
	require.False(t, snap.SystemAdmin())
}
