package stream

import (
	"context"
	"sync"
	"time"
)

// RefreshFunc fetches one frame from url. It must not call back into the
// Poller that invoked it.
type RefreshFunc func(ctx context.Context, url string)

// Poller re-fetches a snapshot URL at a fixed rate. At most one refresh loop
// runs at a time; changing the rate replaces the loop.
type Poller struct {
	url     string
	refresh RefreshFunc

	mu     sync.Mutex
	fps    int
	parent context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped poller.
func NewPoller(url string, fps int, refresh RefreshFunc) *Poller {
	return &Poller{
		url:     url,
		refresh: refresh,
		fps:     ClampFPS(fps),
	}
}

// URL returns the snapshot URL being polled.
func (p *Poller) URL() string {
	return p.url
}

// FPS returns the current rate.
func (p *Poller) FPS() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fps
}

// Period returns the current refresh period.
func (p *Poller) Period() time.Duration {
	return PollPeriod(p.FPS())
}

// Running reports whether a refresh loop is live.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Start refreshes once right away and then on every tick until ctx ends or
// Stop is called. Starting a running poller restarts it.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.parent = ctx
	p.startLocked(true)
}

// SetFPS changes the rate. A running loop is stopped and restarted at the
// new period; the URL is kept.
func (p *Poller) SetFPS(fps int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fps = ClampFPS(fps)
	if p.cancel == nil {
		return
	}
	p.stopLocked()
	p.startLocked(false)
}

// Stop ends the loop and waits for an in-flight refresh to return.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Poller) startLocked(immediate bool) {
	ctx, cancel := context.WithCancel(p.parent)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go p.loop(ctx, PollPeriod(p.fps), immediate, done)
}

func (p *Poller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
}

func (p *Poller) loop(ctx context.Context, period time.Duration, immediate bool, done chan struct{}) {
	defer close(done)

	if immediate {
		p.refresh(ctx, CacheBust(p.url, time.Now()))
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			p.refresh(ctx, CacheBust(p.url, now))
		}
	}
}
