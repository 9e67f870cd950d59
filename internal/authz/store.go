package authz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Grants is the raw grant set resolved for a user.
type Grants struct {
	Permissions []string `json:"permissions"`
	Roles       []Role   `json:"roles"`
	SystemAdmin bool     `json:"system_admin"`
}

// GrantSource resolves a user's grants from the system of record.
type GrantSource interface {
	Grants(ctx context.Context, userID int64) (Grants, error)
}

// SnapshotStore resolves per-user snapshots with a short-TTL cache. The TTL
// bounds how long a revocation can stay invisible; login and logout call
// Invalidate so the common transitions take effect immediately and the TTL is
// only the safety net. Resolution failures yield an anonymous snapshot: a
// user whose grants cannot be read has no grants.
type SnapshotStore struct {
	source GrantSource
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewSnapshotStore constructs a SnapshotStore. cache may be nil, in which
// case every call hits the source.
func NewSnapshotStore(source GrantSource, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *SnapshotStore {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SnapshotStore{source: source, cache: cache, ttl: ttl, logger: logger}
}

// Snapshot returns the snapshot for userID.
func (st *SnapshotStore) Snapshot(ctx context.Context, userID int64) (Snapshot, error) {
	key := grantsKey(userID)

	if st.cache != nil {
		payload, err := st.cache.Get(ctx, key).Bytes()
		if err == nil {
			var g Grants
			if err := json.Unmarshal(payload, &g); err == nil {
				return NewSnapshot(g.Permissions, g.Roles, g.SystemAdmin), nil
			}
		}
	}

	v, err, _ := st.group.Do(key, func() (any, error) {
		g, err := st.source.Grants(ctx, userID)
		if err != nil {
			return Grants{}, err
		}
		if st.cache != nil {
			if payload, err := json.Marshal(g); err == nil {
				if err := st.cache.Set(ctx, key, payload, st.ttl).Err(); err != nil && st.logger != nil {
					st.logger.Warn("cache grants", slog.Any("error", err))
				}
			}
		}
		return g, nil
	})
	if err != nil {
		return Anonymous(), fmt.Errorf("authz: resolve grants: %w", err)
	}
	g := v.(Grants)
	return NewSnapshot(g.Permissions, g.Roles, g.SystemAdmin), nil
}

// Invalidate drops the cached grants for userID.
func (st *SnapshotStore) Invalidate(ctx context.Context, userID int64) {
	if st.cache == nil {
		return
	}
	if err := st.cache.Del(ctx, grantsKey(userID)).Err(); err != nil && st.logger != nil {
		st.logger.Warn("invalidate grants", slog.Any("error", err))
	}
}

func grantsKey(userID int64) string {
	return fmt.Sprintf("authz:grants:%d", userID)
}
