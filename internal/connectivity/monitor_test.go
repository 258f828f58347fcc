package connectivity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/feedkit/feedkit/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_OnlineReflectsSet(t *testing.T) {
	m := NewStatic(false)
	assert.False(t, m.Online())

	m.Set(true)
	assert.True(t, m.Online())

	m.Set(false)
	assert.False(t, m.Online())
}

func TestStatic_SubscribeReceivesTransitions(t *testing.T) {
	m := NewStatic(false)

	ch, cancel := m.Subscribe()
	defer cancel()

	m.Set(true)

	select {
	case online := <-ch:
		assert.True(t, online)
	case <-time.After(time.Second):
		t.Fatal("expected a transition notification")
	}
}

func TestStatic_NoNotificationWithoutTransition(t *testing.T) {
	m := NewStatic(true)

	ch, cancel := m.Subscribe()
	defer cancel()

	m.Set(true) // same state, no transition

	select {
	case <-ch:
		t.Fatal("unexpected notification for unchanged state")
	case <-time.After(30 * time.Millisecond):
	}
}

func TestStatic_SlowSubscriberSeesLatestState(t *testing.T) {
	m := NewStatic(false)

	ch, cancel := m.Subscribe()
	defer cancel()

	// rapid flips while the subscriber is not draining
	m.Set(true)
	m.Set(false)
	m.Set(true)

	select {
	case online := <-ch:
		assert.True(t, online, "subscriber must observe the latest state")
	case <-time.After(time.Second):
		t.Fatal("expected a notification")
	}
}

func TestStatic_CancelReleasesSubscription(t *testing.T) {
	m := NewStatic(false)

	ch, cancel := m.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open, "cancelled subscription channel must be closed")

	// flipping after cancel must not panic
	assert.NotPanics(t, func() { m.Set(true) })
}

func TestProbe_DetectsReachableService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProbe(srv.URL, 10*time.Millisecond, logger.Nop())
	require.False(t, p.Online(), "probe reports offline until the first ping")

	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, p.Online, time.Second, 10*time.Millisecond)
}

func TestProbe_ServerErrorCountsAsOffline(t *testing.T) {
	var status atomic.Int64
	status.Store(http.StatusOK)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	p := NewProbe(srv.URL, 10*time.Millisecond, logger.Nop())
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, p.Online, time.Second, 10*time.Millisecond)

	status.Store(http.StatusBadGateway)
	assert.Eventually(t, func() bool { return !p.Online() }, time.Second, 10*time.Millisecond)
}

func TestProbe_UnreachableHostIsOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := NewProbe(srv.URL, 10*time.Millisecond, logger.Nop())
	p.Start(context.Background())
	defer p.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, p.Online())
}

func TestProbe_StopBeforeStartDoesNotPanic(t *testing.T) {
	p := NewProbe("http://localhost:1", time.Minute, logger.Nop())
	assert.NotPanics(t, p.Stop)
}
