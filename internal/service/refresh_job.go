package service

import (
	"context"
	"sync"
	"time"

	"github.com/feedkit/feedkit/internal/connectivity"
	"github.com/feedkit/feedkit/internal/logger"
)

// RefreshFunc is the hook the job re-runs; typically an entity store's
// Refresh.
type RefreshFunc func(ctx context.Context) error

type refreshJob struct {
	refresh RefreshFunc
	monitor connectivity.Monitor
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a refreshJob that re-runs refresh on a ticker and
// whenever connectivity returns. The job is idle until Start is called.
func NewRefreshJob(refresh RefreshFunc, monitor connectivity.Monitor, log *logger.Logger) RefreshJob {
	return &refreshJob{refresh: refresh, monitor: monitor, logger: log}
}

// Start implements RefreshJob. It stops any previously running job, then
// launches a background goroutine that refreshes every interval and on each
// offline-to-online transition. If interval is zero or negative it defaults
// to 5 minutes. The goroutine exits when ctx is cancelled or Stop is called.
func (j *refreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()

		changes, unsubscribe := j.monitor.Subscribe()
		defer unsubscribe()

		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.run(jobCtx)
			case online, ok := <-changes:
				if !ok {
					return
				}
				if online {
					j.run(jobCtx)
				}
			}
		}
	}()
}

// Stop implements RefreshJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the
// job is not running.
func (j *refreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *refreshJob) run(ctx context.Context) {
	if err := j.refresh(ctx); err != nil {
		j.logger.Warn().Err(err).Msg("background refresh failed")
	}
}
