package stream

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gwillem/rover/pkg/log"
	"github.com/gwillem/rover/pkg/network"
)

// DefaultFrameTimeout bounds one snapshot download.
const DefaultFrameTimeout = 5 * time.Second

// PlayerConfig holds configuration for a Player.
type PlayerConfig struct {
	Resolver     *Resolver
	Display      Display
	HTTPClient   *http.Client
	FPS          int
	FrameTimeout time.Duration
	// OnError receives feed failures after a source was chosen.
	OnError func(error)
}

// Player owns the display and the single active source. Starting a new
// source tears the previous one down first: the in-flight resolution is
// cancelled, the refresh loop stopped and the display cleared.
type Player struct {
	resolver     *Resolver
	display      Display
	client       *http.Client
	frameTimeout time.Duration
	onError      func(error)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	poller *Poller
	source Source
	fps    int

	// show serializes display calls; frames carry the showGen of their
	// session and are dropped once it moved on.
	show    sync.Mutex
	showGen uint64
}

// NewPlayer creates a stopped player.
func NewPlayer(cfg PlayerConfig) *Player {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = network.Client
	}
	if cfg.Resolver == nil {
		cfg.Resolver = NewResolver(ResolverConfig{HTTPClient: cfg.HTTPClient, FPS: cfg.FPS})
	}
	if cfg.Display == nil {
		cfg.Display = &Monitor{}
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.FrameTimeout <= 0 {
		cfg.FrameTimeout = DefaultFrameTimeout
	}
	return &Player{
		resolver:     cfg.Resolver,
		display:      cfg.Display,
		client:       cfg.HTTPClient,
		frameTimeout: cfg.FrameTimeout,
		onError:      cfg.OnError,
		fps:          ClampFPS(cfg.FPS),
	}
}

// Start resolves raw and shows the result. It blocks while probing. The
// returned flag is false when the input was empty or a later Start or Stop
// superseded this one; the source is then not shown.
func (p *Player) Start(ctx context.Context, raw string) (Source, bool) {
	if Normalize(raw) == "" {
		return Source{}, false
	}

	p.mu.Lock()
	p.teardownLocked()
	p.gen++
	gen := p.gen
	session, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	src := p.resolver.Resolve(session, raw)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen || session.Err() != nil {
		return src, false
	}
	p.attachLocked(session, src)
	return p.source, true
}

// Stop ends the active source and restores the placeholder.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.teardownLocked()
}

// SetFPS changes the snapshot rate, restarting a live refresh loop at the
// new period. The rate is kept for later snapshot sources too.
func (p *Player) SetFPS(fps int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fps = ClampFPS(fps)
	if p.poller != nil {
		p.poller.SetFPS(p.fps)
		p.source.PollInterval = p.poller.Period()
	}
}

// FPS returns the snapshot rate.
func (p *Player) FPS() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fps
}

// Source returns the active source, zero when stopped.
func (p *Player) Source() Source {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// Active reports whether a source is shown or being resolved.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Player) attachLocked(ctx context.Context, src Source) {
	p.source = src
	p.show.Lock()
	p.showGen++
	gate := gated{p: p, gen: p.showGen}
	p.display.Activate(src)
	p.show.Unlock()

	switch src.Kind {
	case KindMJPEG:
		url := CacheBust(src.URL, time.Now())
		go func() {
			if err := ReadMJPEG(ctx, p.client, url, gate); err != nil && ctx.Err() == nil {
				p.fail(err)
			}
		}()
	case KindSnapshot:
		p.poller = NewPoller(src.URL, p.fps, func(ctx context.Context, url string) {
			p.refresh(ctx, url, gate)
		})
		p.source.PollInterval = p.poller.Period()
		p.poller.Start(ctx)
	}
	log.WithField("source", p.source.String()).Info("stream started")
}

func (p *Player) refresh(ctx context.Context, url string, display FrameSink) {
	frame, err := FetchFrame(ctx, p.client, url, p.frameTimeout)
	if err != nil {
		if ctx.Err() == nil {
			log.WithField("url", url).Debugf("snapshot: %v", err)
		}
		return
	}
	display.ShowFrame(frame)
}

func (p *Player) teardownLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	if p.poller != nil {
		p.poller.Stop()
		p.poller = nil
	}
	p.source = Source{}
	p.show.Lock()
	p.showGen++
	p.display.Clear()
	p.show.Unlock()
	log.Info("stream stopped")
}

func (p *Player) fail(err error) {
	log.Warnf("stream: %v", err)
	if p.onError != nil {
		p.onError(err)
	}
}

// gated is the display as seen by one session. Frames that arrive after
// the session was cleared or replaced are dropped.
type gated struct {
	p   *Player
	gen uint64
}

func (g gated) ShowFrame(frame []byte) {
	g.p.show.Lock()
	defer g.p.show.Unlock()
	if g.p.showGen == g.gen {
		g.p.display.ShowFrame(frame)
	}
}
