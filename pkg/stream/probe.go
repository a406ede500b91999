package stream

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/samber/mo"

	"github.com/gwillem/rover/pkg/log"
	"github.com/gwillem/rover/pkg/network"
)

// DefaultProbeTimeout bounds a single probe.
const DefaultProbeTimeout = 1500 * time.Millisecond

// Tier names a group of candidates probed together.
type Tier string

const (
	TierMJPEG    Tier = "mjpeg"
	TierSnapshot Tier = "snapshot"
)

var streamContentType = regexp.MustCompile(`(?i)image/(jpeg|jpg|png)|multipart/`)

// matchStream accepts image and multipart responses. A missing content type
// also counts, since many cheap cameras send none on their stream endpoint.
func matchStream(contentType string) bool {
	return contentType == "" || streamContentType.MatchString(contentType)
}

func matchSnapshot(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "image")
}

func (t Tier) matches(contentType string) bool {
	if t == TierSnapshot {
		return matchSnapshot(contentType)
	}
	return matchStream(contentType)
}

// Probe is the outcome of one candidate request.
type Probe struct {
	URL         string
	Tier        Tier
	Status      int
	ContentType string
	Matched     bool
	Err         error
	Elapsed     time.Duration
}

// Prober issues timed GET requests against candidates.
type Prober struct {
	Client  *http.Client
	Timeout time.Duration
}

func (p Prober) client() *http.Client {
	if p.Client == nil {
		return network.Client
	}
	return p.Client
}

func (p Prober) timeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultProbeTimeout
	}
	return p.Timeout
}

// Probe requests url and checks it against the tier's rules. Only the
// response headers are read; the body is dropped unread.
func (p Prober) Probe(ctx context.Context, tier Tier, url string) Probe {
	started := time.Now()
	result := Probe{URL: url, Tier: tier}

	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Err = err
		return result
	}
	res, err := p.client().Do(req)
	result.Elapsed = time.Since(started)
	if err != nil {
		result.Err = err
		return result
	}
	res.Body.Close()

	result.Status = res.StatusCode
	result.ContentType = res.Header.Get("Content-Type")
	ok := res.StatusCode >= 200 && res.StatusCode <= 299
	result.Matched = ok && tier.matches(result.ContentType)
	return result
}

// First probes urls one at a time and returns the first match. Nothing after
// the match is requested. Every probe made is passed to observe, if set.
func (p Prober) First(ctx context.Context, tier Tier, urls []string, observe func(Probe)) mo.Option[string] {
	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		result := p.Probe(ctx, tier, u)
		log.WithFields(map[string]any{
			"tier":    tier,
			"url":     u,
			"status":  result.Status,
			"type":    result.ContentType,
			"matched": result.Matched,
		}).Debug("probe")
		if observe != nil {
			observe(result)
		}
		if result.Matched {
			return mo.Some(u)
		}
	}
	return mo.None[string]()
}
