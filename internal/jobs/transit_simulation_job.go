package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"station/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultTickInterval is how often in-transit orders are advanced.
	DefaultTickInterval = 5 * time.Second
	defaultTickTimeout  = 30 * time.Second
)

// transitAdvancer runs one simulation tick.
type transitAdvancer interface {
	Handle(ctx context.Context, cmd commands.AdvanceTransitCommand) (commands.AdvanceTransitResult, error)
}

// TransitSimulationJob advances in-transit orders on a fixed interval.
//
// The job owns exactly one cron entry. It removes the entry when a tick finds no
// order in transit and re-adds it on Wake, so an idle station does no work. Ticks
// never overlap: a tick still running when the next one is due makes the next one
// skip.
type TransitSimulationJob struct {
	handler     transitAdvancer
	cron        *cron.Cron
	interval    time.Duration
	tickTimeout time.Duration
	logger      *slog.Logger

	mu        sync.Mutex
	entryID   cron.EntryID
	scheduled bool
	stopped   bool
	wakes     uint64
}

// NewTransitSimulationJob creates the job. A non-positive interval falls back to
// DefaultTickInterval; intervals below one second are rounded up by the scheduler.
func NewTransitSimulationJob(handler transitAdvancer, interval time.Duration, logger *slog.Logger) *TransitSimulationJob {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	logger = logger.With("component", "transit_simulation_job")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))

	return &TransitSimulationJob{
		handler:     handler,
		cron:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cronLogger))),
		interval:    interval,
		tickTimeout: max(interval, defaultTickTimeout),
		logger:      logger,
	}
}

// Start schedules the job and starts the scheduler. The first tick picks up orders
// left in transit by a previous run and pauses the job if there are none. Calling
// Start on a job that Wake already scheduled keeps the existing entry.
func (j *TransitSimulationJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.scheduleLocked(); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Transit simulation job started", "interval", j.interval.String())
	return nil
}

// Wake resumes a paused job. It is called after a delivery started and is a no-op
// while the job is running or after Stop.
func (j *TransitSimulationJob) Wake() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.wakes++
	if j.stopped || j.scheduled {
		return
	}

	if err := j.scheduleLocked(); err != nil {
		j.logger.ErrorContext(context.Background(), "Failed to resume transit simulation", "error", err)
		return
	}
	j.logger.InfoContext(context.Background(), "Transit simulation resumed")
}

// Stop removes the job and waits for a running tick to finish.
func (j *TransitSimulationJob) Stop() {
	j.mu.Lock()
	j.stopped = true
	j.unscheduleLocked()
	j.mu.Unlock()

	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Transit simulation job stopped")
}

// Scheduled reports whether the job currently owns a cron entry.
func (j *TransitSimulationJob) Scheduled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.scheduled
}

func (j *TransitSimulationJob) tick() {
	j.mu.Lock()
	wakesAtStart := j.wakes
	j.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), j.tickTimeout)
	defer cancel()

	result, err := j.handler.Handle(ctx, commands.NewAdvanceTransitCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Transit simulation tick failed", "error", err)
		return
	}

	if result.InTransit == 0 {
		j.pauseIfIdle(wakesAtStart)
		return
	}

	j.logger.DebugContext(ctx, "Transit simulation tick",
		"in_transit", result.InTransit,
		"moved", result.Moved,
		"arrived", result.Arrived,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
}

// pauseIfIdle unschedules the job unless Wake was called since the idle tick began.
func (j *TransitSimulationJob) pauseIfIdle(wakesAtStart uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.wakes != wakesAtStart || !j.scheduled {
		return
	}

	j.unscheduleLocked()
	j.logger.InfoContext(context.Background(), "Transit simulation paused, no orders in transit")
}

func (j *TransitSimulationJob) scheduleLocked() error {
	if j.scheduled {
		return nil
	}

	id, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.tick)
	if err != nil {
		return fmt.Errorf("failed to schedule transit simulation: %w", err)
	}
	j.entryID = id
	j.scheduled = true
	return nil
}

func (j *TransitSimulationJob) unscheduleLocked() {
	if !j.scheduled {
		return
	}
	j.cron.Remove(j.entryID)
	j.scheduled = false
}
