package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	transitJob *TransitSimulationJob
}

// NewJobManager creates the job manager and its jobs. The transit job is exposed
// through Transit so that command handlers can wake it.
func NewJobManager(advanceTransitHandler transitAdvancer, tickInterval time.Duration, logger *slog.Logger) *JobManager {
	return &JobManager{
		transitJob: NewTransitSimulationJob(advanceTransitHandler, tickInterval, logger),
	}
}

// Transit returns the transit simulation job.
func (jm *JobManager) Transit() *TransitSimulationJob {
	return jm.transitJob
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.transitJob.Start(); err != nil {
		return fmt.Errorf("failed to start transit simulation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.transitJob.Stop()
}
