package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskSecurityScan sweeps recent permission denials for bursts.
	TaskSecurityScan = "security:scan"
	// TaskMediaCleanup removes media files without a metadata row.
	TaskMediaCleanup = "media:cleanup"
	// TaskSessionCleanup prunes expired session rows.
	TaskSessionCleanup = "sessions:cleanup"
)

// SecurityScanPayload tunes the denial-burst scan.
type SecurityScanPayload struct {
	WindowMinutes int `json:"window_minutes"`
	Threshold     int `json:"threshold"`
}

// NewSecurityScanTask constructs the denial scan task.
func NewSecurityScanTask(payload SecurityScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSecurityScan, data), nil
}

// NewMediaCleanupTask constructs the orphaned-file cleanup task.
func NewMediaCleanupTask() *asynq.Task {
	return asynq.NewTask(TaskMediaCleanup, nil)
}

// NewSessionCleanupTask constructs the expired-session cleanup task.
func NewSessionCleanupTask() *asynq.Task {
	return asynq.NewTask(TaskSessionCleanup, nil)
}
