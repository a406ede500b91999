package stream

import (
	"context"
	"net/http"
	"time"
)

// ResolverConfig holds configuration for a Resolver.
type ResolverConfig struct {
	HTTPClient   *http.Client
	ProbeTimeout time.Duration
	// FPS is the polling rate given to snapshot sources.
	FPS int
}

// Resolver picks the best source a camera URL offers.
type Resolver struct {
	prober Prober
	fps    int
}

// NewResolver creates a resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	return &Resolver{
		prober: Prober{Client: cfg.HTTPClient, Timeout: cfg.ProbeTimeout},
		fps:    ClampFPS(cfg.FPS),
	}
}

// Resolve never fails: when no stream or snapshot answers, the camera URL
// is returned as an embedded page. Empty input yields the zero Source.
func (r *Resolver) Resolve(ctx context.Context, raw string) Source {
	return r.Observe(ctx, raw, nil)
}

// Trace is Resolve that also returns every probe made, in order.
func (r *Resolver) Trace(ctx context.Context, raw string) (Source, []Probe) {
	var probes []Probe
	src := r.Observe(ctx, raw, func(p Probe) { probes = append(probes, p) })
	return src, probes
}

// Observe is Resolve that reports each probe to observe as it completes.
func (r *Resolver) Observe(ctx context.Context, raw string, observe func(Probe)) Source {
	camera := Normalize(raw)
	if camera == "" {
		return Source{}
	}

	if u, ok := r.prober.First(ctx, TierMJPEG, Candidates(camera), observe).Get(); ok {
		return MJPEG(u)
	}
	if u, ok := r.prober.First(ctx, TierSnapshot, SnapshotCandidates(camera), observe).Get(); ok {
		return Snapshot(u, PollPeriod(r.fps))
	}
	return EmbeddedPage(camera)
}
