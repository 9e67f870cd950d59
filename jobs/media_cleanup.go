package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/foliohq/folio/internal/media"
)

// MediaCleanupJob removes files in the media directory that lost their
// metadata row, e.g. after a crashed upload.
type MediaCleanupJob struct {
	Media  *media.Service
	Logger *slog.Logger
}

func NewMediaCleanupJob(mediaService *media.Service, logger *slog.Logger) *MediaCleanupJob {
	return &MediaCleanupJob{Media: mediaService, Logger: logger}
}

// Handle executes the cleanup.
func (j *MediaCleanupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Media == nil {
		return errors.New("media cleanup: handler not configured")
	}
	removed, err := j.Media.RemoveOrphans(ctx)
	if err != nil {
		j.Logger.Error("media cleanup failed", slog.Any("error", err))
		return err
	}
	j.Logger.Info("media cleanup finished", slog.Int("removed", removed))
	return nil
}
