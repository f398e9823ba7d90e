package jobs

import (
	"context"
	"log/slog"
	"time"

	"mediflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ConsultationWatchdogJob periodically cancels orders stuck in Claimed or
// InConsultation. Runs every minute; the timeout comes from configuration.
type ConsultationWatchdogJob struct {
	handler commands.CancelStaleConsultationsCommandHandler
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewConsultationWatchdogJob creates a watchdog that cancels consultations
// older than timeout.
func NewConsultationWatchdogJob(
	handler commands.CancelStaleConsultationsCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *ConsultationWatchdogJob {
	return &ConsultationWatchdogJob{
		handler: handler,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "consultation_watchdog_job"),
	}
}

// Start begins the watchdog sweep, running at the top of every minute.
func (j *ConsultationWatchdogJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelStaleConsultationsCommand(j.timeout)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Consultation watchdog misconfigured", "error", cmdErr)
			return
		}

		cancelled, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Consultation watchdog sweep failed", "error", handleErr)
			return
		}
		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Cancelled stale consultations", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Consultation watchdog started (running every minute)",
		"timeout", j.timeout)
	return nil
}

// Stop stops the watchdog.
func (j *ConsultationWatchdogJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Consultation watchdog stopped")
}
