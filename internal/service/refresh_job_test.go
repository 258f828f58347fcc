package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/feedkit/feedkit/internal/connectivity"
	"github.com/feedkit/feedkit/internal/logger"
	"github.com/stretchr/testify/assert"
)

func countingRefresh() (RefreshFunc, *atomic.Int64) {
	var calls atomic.Int64
	return func(context.Context) error {
		calls.Add(1)
		return nil
	}, &calls
}

func TestRefreshJob_TickerTriggersRefresh(t *testing.T) {
	refresh, calls := countingRefresh()
	job := NewRefreshJob(refresh, connectivity.NewStatic(true), logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, calls.Load(), int64(3))
}

func TestRefreshJob_OnlineTransitionTriggersRefresh(t *testing.T) {
	refresh, calls := countingRefresh()
	monitor := connectivity.NewStatic(false)
	job := NewRefreshJob(refresh, monitor, logger.Nop())

	// long ticker: any call within the window comes from the transition
	job.Start(context.Background(), time.Hour)
	defer job.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load())

	monitor.Set(true)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
}

func TestRefreshJob_OfflineTransitionDoesNotTrigger(t *testing.T) {
	refresh, calls := countingRefresh()
	monitor := connectivity.NewStatic(true)
	job := NewRefreshJob(refresh, monitor, logger.Nop())

	job.Start(context.Background(), time.Hour)
	defer job.Stop()

	monitor.Set(false)
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestRefreshJob_StopHaltsRefreshing(t *testing.T) {
	refresh, calls := countingRefresh()
	job := NewRefreshJob(refresh, connectivity.NewStatic(true), logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestRefreshJob_StopBeforeStartDoesNotPanic(t *testing.T) {
	refresh, _ := countingRefresh()
	job := NewRefreshJob(refresh, connectivity.NewStatic(true), logger.Nop())

	assert.NotPanics(t, func() { job.Stop() })
}

func TestRefreshJob_DoubleStopDoesNotPanic(t *testing.T) {
	refresh, _ := countingRefresh()
	job := NewRefreshJob(refresh, connectivity.NewStatic(true), logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()
	assert.NotPanics(t, func() { job.Stop() })
}

func TestRefreshJob_ContextCancelStopsGoroutine(t *testing.T) {
	refresh, calls := countingRefresh()
	job := NewRefreshJob(refresh, connectivity.NewStatic(true), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}
