// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// The only job today is the ConsultationWatchdogJob, which sweeps orders
// stuck in Claimed or InConsultation past the configured timeout and cancels
// them through the same conditional transition used by every other state
// change. A pharmacist finishing at the last moment therefore always beats
// the sweep.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(cancelStaleHandler, timeout, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
