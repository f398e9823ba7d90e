package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"mediflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	consultationWatchdogJob *ConsultationWatchdogJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	cancelStaleHandler commands.CancelStaleConsultationsCommandHandler,
	consultationTimeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		consultationWatchdogJob: NewConsultationWatchdogJob(cancelStaleHandler, consultationTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.consultationWatchdogJob.Start(); err != nil {
		return fmt.Errorf("failed to start consultation watchdog: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.consultationWatchdogJob.Stop()
}
