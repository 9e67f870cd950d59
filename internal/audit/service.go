package audit

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

const (
	defaultTimelineLimit = 20
	maxTimelineLimit     = 100
	dashboardWindow      = 24 * time.Hour
	dashboardTopActors   = 5
	dashboardRecent      = 10
)

// Service records and reads security events. Recording failures are logged
// and swallowed; an audit outage must not fail the request that triggered
// the event.
type Service struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(logger *slog.Logger, repo Repository) *Service {
	return &Service{logger: logger, repo: repo}
}

// Record writes one event, stamping At when unset.
func (s *Service) Record(ctx context.Context, e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		s.logger.Error("record audit event",
			slog.String("action", e.Action),
			slog.Any("error", err))
	}
}

// RecordDenial implements the gate middleware's recorder.
func (s *Service) RecordDenial(ctx context.Context, actor, detail string) {
	s.Record(ctx, Event{Actor: actor, Action: ActionDenied, Detail: detail})
}

// Timeline returns one page of events plus a hasNext flag, derived by
// fetching one row beyond the page.
func (s *Service) Timeline(ctx context.Context, filter TimelineFilter) ([]Event, bool, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultTimelineLimit
	}
	if filter.Limit > maxTimelineLimit {
		filter.Limit = maxTimelineLimit
	}

	events, err := s.repo.Timeline(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	hasNext := len(events) > filter.Limit
	if hasNext {
		events = events[:filter.Limit]
	}
	return events, hasNext, nil
}

// Dashboard aggregates the last 24 hours.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	since := time.Now().UTC().Add(-dashboardWindow)

	total, err := s.repo.CountSince(ctx, "", since)
	if err != nil {
		return Dashboard{}, err
	}
	denials, err := s.repo.CountSince(ctx, ActionDenied, since)
	if err != nil {
		return Dashboard{}, err
	}
	topDenied, err := s.repo.TopActors(ctx, ActionDenied, since, dashboardTopActors)
	if err != nil {
		return Dashboard{}, err
	}
	recent, err := s.repo.Recent(ctx, dashboardRecent)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		WindowHours: int(dashboardWindow.Hours()),
		Total:       total,
		Denials:     denials,
		TopDenied:   topDenied,
		Recent:      recent,
	}, nil
}

// ScanDenials looks for actors whose denial count within the window meets
// the threshold and records one security.alert per offender. It returns the
// offending actors.
func (s *Service) ScanDenials(ctx context.Context, window time.Duration, threshold int) ([]ActorCount, error) {
	since := time.Now().UTC().Add(-window)
	actors, err := s.repo.TopActors(ctx, ActionDenied, since, maxTimelineLimit)
	if err != nil {
		return nil, err
	}

	var offenders []ActorCount
	for _, ac := range actors {
		if ac.Count < threshold {
			break
		}
		offenders = append(offenders, ac)
		s.Record(ctx, Event{
			Actor:  ac.Actor,
			Action: ActionAlert,
			Detail: "denial burst: " + strconv.Itoa(ac.Count) + " denials within " + window.String(),
		})
		s.logger.Warn("denial burst detected",
			slog.String("actor", ac.Actor),
			slog.Int("denials", ac.Count))
	}
	return offenders, nil
}
