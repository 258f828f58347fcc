// Package connectivity reports whether the remote service is reachable.
//
// The data layer treats the signal source as a collaborator behind the
// [Monitor] interface: host platforms with a native reachability API wrap it
// in a [Static] they flip themselves, while headless hosts can run a
// [Probe] that pings the service endpoint on a ticker.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/feedkit/feedkit/internal/logger"
	"github.com/go-resty/resty/v2"
)

// Monitor exposes the current online/offline state and change
// notifications.
type Monitor interface {
	// Online answers "am I online right now", synchronously.
	Online() bool

	// Subscribe returns a channel receiving the new state on every
	// transition, plus a cancel function that releases the subscription.
	Subscribe() (<-chan bool, func())
}

// broadcaster carries the shared state/subscriber bookkeeping of both
// implementations.
type broadcaster struct {
	mu     sync.RWMutex
	online bool
	subs   map[int]chan bool
	nextID int
}

func (b *broadcaster) Online() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.online
}

func (b *broadcaster) Subscribe() (<-chan bool, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]chan bool)
	}
	id := b.nextID
	b.nextID++

	ch := make(chan bool, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// set records the new state and notifies subscribers on a transition.
// Notification is non-blocking: a subscriber that has not drained its
// buffered slot misses intermediate flips but always sees the latest state
// on its next receive.
func (b *broadcaster) set(online bool) {
	b.mu.Lock()
	changed := b.online != online
	b.online = online
	var targets []chan bool
	if changed {
		targets = make([]chan bool, 0, len(b.subs))
		for _, ch := range b.subs {
			targets = append(targets, ch)
		}
	}
	b.mu.Unlock()

	for _, ch := range targets {
		select {
		case ch <- online:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- online:
			default:
			}
		}
	}
}

// Static is a Monitor whose state is flipped by the host platform (or a
// test) via Set.
type Static struct {
	broadcaster
}

// NewStatic returns a Static monitor starting in the given state.
func NewStatic(online bool) *Static {
	s := &Static{}
	s.online = online
	return s
}

// Set records the state reported by the host.
func (s *Static) Set(online bool) {
	s.set(online)
}

// Probe is a Monitor that derives the state from periodic requests against
// the service base URL.
type Probe struct {
	broadcaster

	client   *resty.Client
	interval time.Duration
	logger   *logger.Logger

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProbe builds a probe against baseURL. interval defaults to 15 seconds
// when not positive. The probe is idle until Start is called and reports
// offline until the first ping succeeds.
func NewProbe(baseURL string, interval time.Duration, log *logger.Logger) *Probe {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second)

	return &Probe{client: client, interval: interval, logger: log}
}

// Start launches the probing goroutine. A previous run, if any, is stopped
// first. The goroutine exits when ctx is cancelled or Stop is called.
func (p *Probe) Start(ctx context.Context) {
	p.Stop()

	p.runMu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.runMu.Unlock()

	go func() {
		defer p.wg.Done()

		p.ping(runCtx)
		t := time.NewTicker(p.interval)
		defer t.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-t.C:
				p.ping(runCtx)
			}
		}
	}()
}

// Stop terminates the probing goroutine and blocks until it has exited.
// Safe to call when the probe is not running.
func (p *Probe) Stop() {
	p.runMu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.runMu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *Probe) ping(ctx context.Context) {
	resp, err := p.client.R().SetContext(ctx).Head("/")
	online := err == nil && resp != nil && resp.StatusCode() < 500

	if online != p.Online() {
		p.logger.Info().Bool("online", online).Msg("connectivity changed")
	}
	p.set(online)
}
