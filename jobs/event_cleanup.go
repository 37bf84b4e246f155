package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/utils"
)

// PastEventDeleter removes events dated strictly before cutoff.
type PastEventDeleter interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventCleanupJob deletes past events once at start and then on every tick.
type EventCleanupJob struct {
	events   PastEventDeleter
	interval time.Duration
	now      func() time.Time
	log      *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	done     chan struct{}
}

func NewEventCleanupJob(events PastEventDeleter, interval time.Duration, log *zap.Logger) *EventCleanupJob {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &EventCleanupJob{
		events:   events,
		interval: interval,
		now:      time.Now,
		log:      logger.OrNop(log).Named("event_cleanup"),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// RunOnce deletes every event dated before the start of today.
func (j *EventCleanupJob) RunOnce(ctx context.Context) (int64, error) {
	cutoff := utils.StartOfDay(j.now())
	n, err := j.events.DeleteBefore(ctx, cutoff)
	if err != nil {
		j.log.Error("past event cleanup failed", zap.Error(err))
		return 0, err
	}
	j.log.Info("past events cleaned up", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	return n, nil
}

// Start runs the job in the background until ctx is done or Stop is called.
func (j *EventCleanupJob) Start(ctx context.Context) {
	if !j.started.CompareAndSwap(false, true) {
		return
	}
	go j.run(ctx)
	j.log.Info("event cleanup job started", zap.Duration("interval", j.interval))
}

// Stop halts the job and waits for an in-flight run to finish.
func (j *EventCleanupJob) Stop() {
	j.stopOnce.Do(func() { close(j.stopChan) })
	if !j.started.Load() {
		return
	}
	<-j.done
	j.log.Info("event cleanup job stopped")
}

func (j *EventCleanupJob) run(ctx context.Context) {
	defer close(j.done)

	_, _ = j.RunOnce(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = j.RunOnce(ctx)
		case <-ctx.Done():
			return
		case <-j.stopChan:
			return
		}
	}
}
