// Package stream discovers how a camera exposes its picture and keeps it
// flowing to a display.
//
// A camera URL resolves to one of three sources, tried in priority order:
// a raw MJPEG stream, a still-image snapshot endpoint refreshed on a timer,
// or, when neither answers, the device's own web page.
package stream

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Kind tells which variant a Source is.
type Kind int

const (
	KindNone Kind = iota
	KindMJPEG
	KindSnapshot
	KindEmbeddedPage
)

func (k Kind) String() string {
	switch k {
	case KindMJPEG:
		return "mjpeg"
	case KindSnapshot:
		return "snapshot"
	case KindEmbeddedPage:
		return "page"
	}
	return "none"
}

// Polling limits.
const (
	DefaultFPS = 2
	MinFPS     = 1
	MaxFPS     = 30
	MinPeriod  = 100 * time.Millisecond
)

// Source is the resolved camera feed.
type Source struct {
	Kind Kind
	URL  string
	// PollInterval is only set for snapshot sources.
	PollInterval time.Duration
}

// MJPEG is a live multipart stream.
func MJPEG(url string) Source {
	return Source{Kind: KindMJPEG, URL: url}
}

// Snapshot is a still-image endpoint fetched every interval.
func Snapshot(url string, interval time.Duration) Source {
	return Source{Kind: KindSnapshot, URL: url, PollInterval: interval}
}

// EmbeddedPage is the device's own page, shown as-is.
func EmbeddedPage(url string) Source {
	return Source{Kind: KindEmbeddedPage, URL: url}
}

// IsZero reports whether no source is set.
func (s Source) IsZero() bool {
	return s.Kind == KindNone
}

// Notice is the warning shown next to a degraded source.
func (s Source) Notice() string {
	switch s.Kind {
	case KindSnapshot:
		return "Using snapshot polling (no MJPEG stream detected)."
	case KindEmbeddedPage:
		return "Raw MJPEG not detected; embedded device page."
	}
	return ""
}

func (s Source) String() string {
	if s.Kind == KindSnapshot {
		return s.Kind.String() + " " + s.URL + " every " + s.PollInterval.String()
	}
	return s.Kind.String() + " " + s.URL
}

// ClampFPS limits a polling rate to [MinFPS, MaxFPS].
func ClampFPS(fps int) int {
	return lo.Clamp(fps, MinFPS, MaxFPS)
}

// PollPeriod is the refresh period for fps: max(1000/fps ms, 100 ms).
func PollPeriod(fps int) time.Duration {
	return max(time.Second/time.Duration(ClampFPS(fps)), MinPeriod)
}

// CacheBust appends a t=<unix millis> parameter so every fetch misses caches.
func CacheBust(url string, now time.Time) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "t=" + strconv.FormatInt(now.UnixMilli(), 10)
}
