package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/foliohq/folio/internal/audit"
)

const (
	defaultScanWindowMinutes = 15
	defaultScanThreshold     = 10
)

// SecurityScanJob sweeps the recent audit timeline for denial bursts and
// records an alert event per offending actor.
type SecurityScanJob struct {
	Audit  *audit.Service
	Logger *slog.Logger
}

func NewSecurityScanJob(auditService *audit.Service, logger *slog.Logger) *SecurityScanJob {
	return &SecurityScanJob{Audit: auditService, Logger: logger}
}

// Handle executes the scan.
func (j *SecurityScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Audit == nil {
		return errors.New("security scan: handler not configured")
	}
	var payload SecurityScanPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	if payload.WindowMinutes <= 0 {
		payload.WindowMinutes = defaultScanWindowMinutes
	}
	if payload.Threshold <= 0 {
		payload.Threshold = defaultScanThreshold
	}

	window := time.Duration(payload.WindowMinutes) * time.Minute
	offenders, err := j.Audit.ScanDenials(ctx, window, payload.Threshold)
	if err != nil {
		j.Logger.Error("security scan failed", slog.Any("error", err))
		return err
	}
	j.Logger.Info("security scan finished",
		slog.Int("window_minutes", payload.WindowMinutes),
		slog.Int("threshold", payload.Threshold),
		slog.Int("offenders", len(offenders)))
	return nil
}
