package stream

import (
	"testing"
	"time"
)

func TestPollPeriod(t *testing.T) {
	tests := []struct {
		fps      int
		expected time.Duration
	}{
		{1, time.Second},
		{2, 500 * time.Millisecond},
		{4, 250 * time.Millisecond},
		{10, 100 * time.Millisecond},
		{20, 100 * time.Millisecond}, // floor
		{0, time.Second},             // clamped to 1
	}

	for _, tt := range tests {
		if got := PollPeriod(tt.fps); got != tt.expected {
			t.Errorf("PollPeriod(%d) = %s, want %s", tt.fps, got, tt.expected)
		}
	}
}

func TestCacheBust(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	tests := []struct {
		url      string
		expected string
	}{
		{"http://cam/capture", "http://cam/capture?t=1700000000123"},
		{"http://cam/?action=stream", "http://cam/?action=stream&t=1700000000123"},
	}

	for _, tt := range tests {
		if got := CacheBust(tt.url, now); got != tt.expected {
			t.Errorf("CacheBust(%q) = %q, want %q", tt.url, got, tt.expected)
		}
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindNone:         "none",
		KindMJPEG:        "mjpeg",
		KindSnapshot:     "snapshot",
		KindEmbeddedPage: "page",
	}
	for k, expected := range tests {
		if got := k.String(); got != expected {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, expected)
		}
	}
}
