package audit

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	events []Event
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1}
}

func (m *memoryRepo) Insert(_ context.Context, e Event) error {
	e.ID = m.nextID
	m.nextID++
	m.events = append(m.events, e)
	return nil
}

func (m *memoryRepo) matching(filter TimelineFilter) []Event {
	var out []Event
	for _, e := range m.events {
		if filter.Actor != "" && e.Actor != filter.Actor {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.Entity != "" && e.Entity != filter.Entity {
			continue
		}
		if !filter.From.IsZero() && e.At.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !e.At.Before(filter.To) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *memoryRepo) Timeline(_ context.Context, filter TimelineFilter) ([]Event, error) {
	out := m.matching(filter)
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > filter.Limit+1 {
		out = out[:filter.Limit+1]
	}
	return out, nil
}

func (m *memoryRepo) CountSince(_ context.Context, action string, since time.Time) (int, error) {
	return len(m.matching(TimelineFilter{Action: action, From: since})), nil
}

func (m *memoryRepo) TopActors(_ context.Context, action string, since time.Time, limit int) ([]ActorCount, error) {
	counts := map[string]int{}
	for _, e := range m.matching(TimelineFilter{Action: action, From: since}) {
		counts[e.Actor]++
	}
	var out []ActorCount
	for actor, n := range counts {
		out = append(out, ActorCount{Actor: actor, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Actor < out[j].Actor
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryRepo) Recent(_ context.Context, limit int) ([]Event, error) {
	out := m.matching(TimelineFilter{})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestService() (*Service, *memoryRepo) {
	repo := newMemoryRepo()
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo), repo
}

func TestTimelineHasNextPaging(t *testing.T) {
	svc, repo := newTestService()
	for i := 0; i < 5; i++ {
		repo.events = append(repo.events, Event{ID: repo.nextID, At: time.Now(), Actor: "1", Action: ActionDenied})
		repo.nextID++
	}

	events, hasNext, err := svc.Timeline(context.Background(), TimelineFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.True(t, hasNext)

	events, hasNext, err = svc.Timeline(context.Background(), TimelineFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.False(t, hasNext, "last short page reports no next")
}

func TestRecordStampsTime(t *testing.T) {
	svc, repo := newTestService()

	svc.Record(context.Background(), Event{Actor: "7", Action: ActionLogout})
	require.Len(t, repo.events, 1)
	require.False(t, repo.events[0].At.IsZero())
}

func TestDashboardAggregates(t *testing.T) {
	svc, _ := newTestService()
	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		svc.Record(context.Background(), Event{At: now, Actor: "2", Action: ActionDenied})
	}
	svc.Record(context.Background(), Event{At: now, Actor: "3", Action: ActionDenied})
	svc.Record(context.Background(), Event{At: now, Actor: "2", Action: ActionLoginSuccess})

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, dashboard.Total)
	require.Equal(t, 4, dashboard.Denials)
	require.Equal(t, "2", dashboard.TopDenied[0].Actor)
	require.Equal(t, 3, dashboard.TopDenied[0].Count)
	require.Len(t, dashboard.Recent, 5)
}

func TestScanDenialsAlertsOnBurst(t *testing.T) {
	svc, repo := newTestService()
	now := time.Now().UTC()
	for i := 0; i < 6; i++ {
		svc.Record(context.Background(), Event{At: now, Actor: "9", Action: ActionDenied})
	}
	svc.Record(context.Background(), Event{At: now, Actor: "4", Action: ActionDenied})

	offenders, err := svc.ScanDenials(context.Background(), time.Hour, 5)
	require.NoError(t, err)
	require.Len(t, offenders, 1)
	require.Equal(t, "9", offenders[0].Actor)

	alerts := repo.matching(TimelineFilter{Action: ActionAlert})
	require.Len(t, alerts, 1)
	require.Equal(t, "9", alerts[0].Actor)
}
