package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// PresenceConfig configures the courier presence sweep. A zero Window
// disables it.
type PresenceConfig struct {
	Window   time.Duration
	Schedule string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	courierPresenceJob *CourierPresenceJob
	logger             *slog.Logger
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	releaseStaleCouriers StaleCourierReleaser,
	presence PresenceConfig,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{logger: logger.With("component", "job_manager")}
	if presence.Window > 0 {
		jm.courierPresenceJob = NewCourierPresenceJob(releaseStaleCouriers, presence.Window, presence.Schedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.courierPresenceJob == nil {
		jm.logger.Info("Courier presence job disabled")
		return nil
	}

	if err := jm.courierPresenceJob.Start(); err != nil {
		return fmt.Errorf("failed to start courier presence job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.courierPresenceJob != nil {
		jm.courierPresenceJob.Stop()
	}
}
