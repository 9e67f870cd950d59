package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/foliohq/folio/internal/auth"
)

// SessionCleanupJob prunes expired rows from the postgres session table. The
// redis copies expire on their own; this keeps the durable side from growing
// without bound.
type SessionCleanupJob struct {
	Sessions auth.Repository
	Logger   *slog.Logger
}

func NewSessionCleanupJob(sessions auth.Repository, logger *slog.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{Sessions: sessions, Logger: logger}
}

func (j *SessionCleanupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Sessions == nil {
		return errors.New("session cleanup: handler not configured")
	}
	removed, err := j.Sessions.DeleteExpired(ctx)
	if err != nil {
		j.Logger.Error("session cleanup failed", slog.Any("error", err))
		return err
	}
	j.Logger.Info("session cleanup finished", slog.Int64("removed", removed))
	return nil
}
