package stream

import (
	"context"
	"testing"
	"time"
)

func TestMatchStream(t *testing.T) {
	tests := []struct {
		contentType string
		expected    bool
	}{
		{"multipart/x-mixed-replace; boundary=frame", true},
		{"image/jpeg", true},
		{"IMAGE/PNG", true},
		{"", true},
		{"text/html", false},
		{"image/gif", false},
		{"application/json", false},
	}

	for _, tt := range tests {
		if got := matchStream(tt.contentType); got != tt.expected {
			t.Errorf("matchStream(%q) = %v, want %v", tt.contentType, got, tt.expected)
		}
	}
}

func TestMatchSnapshot(t *testing.T) {
	tests := []struct {
		contentType string
		expected    bool
	}{
		{"image/jpeg", true},
		{"Image/BMP", true},
		{"", false},
		{"text/html", false},
	}

	for _, tt := range tests {
		if got := matchSnapshot(tt.contentType); got != tt.expected {
			t.Errorf("matchSnapshot(%q) = %v, want %v", tt.contentType, got, tt.expected)
		}
	}
}

func TestProber_FirstStopsAtMatch(t *testing.T) {
	cam := newFakeCamera(map[string]fakeResponse{
		"http://cam/a": {status: 404},
		"http://cam/b": {status: 200, contentType: "multipart/x-mixed-replace"},
		"http://cam/c": {status: 200, contentType: "multipart/x-mixed-replace"},
	})
	p := Prober{Client: cam.client(), Timeout: time.Second}

	var observed []Probe
	got := p.First(context.Background(), TierMJPEG,
		[]string{"http://cam/a", "http://cam/b", "http://cam/c"},
		func(pr Probe) { observed = append(observed, pr) })

	u, ok := got.Get()
	if !ok || u != "http://cam/b" {
		t.Fatalf("First() = %q, %v, want http://cam/b", u, ok)
	}

	calls := cam.calls()
	if len(calls) != 2 {
		t.Fatalf("made %d requests, want 2: %v", len(calls), calls)
	}
	if len(observed) != 2 || observed[0].Matched || !observed[1].Matched {
		t.Errorf("observed probes = %+v", observed)
	}
}

func TestProber_TimeoutIsNonMatch(t *testing.T) {
	cam := newFakeCamera(map[string]fakeResponse{
		"http://cam/slow": {hang: true},
		"http://cam/ok":   {status: 200, contentType: "image/jpeg"},
	})
	p := Prober{Client: cam.client(), Timeout: 50 * time.Millisecond}

	u, ok := p.First(context.Background(), TierMJPEG, []string{"http://cam/slow", "http://cam/ok"}, nil).Get()
	if !ok || u != "http://cam/ok" {
		t.Errorf("First() = %q, %v, want http://cam/ok", u, ok)
	}
}

func TestResolve_MJPEGOnCameraPort(t *testing.T) {
	cam := newFakeCamera(map[string]fakeResponse{
		"http://192.168.4.1:81/stream": {status: 200, contentType: "multipart/x-mixed-replace; boundary=frame"},
		"http://192.168.4.1/stream":    {status: 200, contentType: "multipart/x-mixed-replace; boundary=frame"},
	})
	r := NewResolver(ResolverConfig{HTTPClient: cam.client()})

	got := r.Resolve(context.Background(), "192.168.4.1")
	if got != MJPEG("http://192.168.4.1:81/stream") {
		t.Errorf("Resolve() = %v, want mjpeg on :81", got)
	}
	if calls := cam.calls(); len(calls) != 1 {
		t.Errorf("made %d requests, want 1: %v", len(calls), calls)
	}
}

func TestResolve_SnapshotFallback(t *testing.T) {
	cam := newFakeCamera(map[string]fakeResponse{
		"http://192.168.4.1/stream":   {status: 404},
		"http://192.168.4.1/video":    {status: 200, contentType: "text/html"},
		"http://192.168.4.1/capture":  {status: 200, contentType: "image/jpeg"},
		"http://192.168.4.1/snapshot": {status: 200, contentType: "image/jpeg"},
	})
	r := NewResolver(ResolverConfig{HTTPClient: cam.client()})

	src, probes := r.Trace(context.Background(), "192.168.4.1")
	want := Snapshot("http://192.168.4.1/capture", 500*time.Millisecond)
	if src != want {
		t.Errorf("Resolve() = %v, want %v", src, want)
	}
	if len(probes) != 6 {
		t.Fatalf("made %d probes, want 5 stream + 1 snapshot", len(probes))
	}
	if probes[5].Tier != TierSnapshot {
		t.Errorf("last probe tier = %s, want snapshot", probes[5].Tier)
	}
}

func TestResolve_EmbeddedPage(t *testing.T) {
	cam := newFakeCamera(map[string]fakeResponse{
		"http://192.168.4.1/stream": {status: 500},
	})
	r := NewResolver(ResolverConfig{HTTPClient: cam.client()})

	got := r.Resolve(context.Background(), "192.168.4.1/")
	if got != EmbeddedPage("http://192.168.4.1/") {
		t.Errorf("Resolve() = %v, want embedded page of the input", got)
	}
	if got.Notice() == "" {
		t.Error("embedded page should carry a notice")
	}
	if calls := cam.calls(); len(calls) != 5+8 {
		t.Errorf("made %d requests, want 13", len(calls))
	}
}

func TestResolve_ExplicitPath(t *testing.T) {
	cam := newFakeCamera(map[string]fakeResponse{
		"http://cam.local/live": {status: 200},
	})
	r := NewResolver(ResolverConfig{HTTPClient: cam.client()})

	// an empty content type still counts as a stream
	got := r.Resolve(context.Background(), "cam.local/live")
	if got != MJPEG("http://cam.local/live") {
		t.Errorf("Resolve() = %v", got)
	}
}

func TestResolve_FPS(t *testing.T) {
	cam := newFakeCamera(map[string]fakeResponse{
		"http://cam/x/capture": {status: 200, contentType: "image/jpeg"},
	})
	r := NewResolver(ResolverConfig{HTTPClient: cam.client(), FPS: 20})

	got := r.Resolve(context.Background(), "http://cam/x")
	if got.Kind != KindSnapshot || got.PollInterval != MinPeriod {
		t.Errorf("Resolve() = %v, want snapshot every %s", got, MinPeriod)
	}
}

func TestResolve_Empty(t *testing.T) {
	r := NewResolver(ResolverConfig{})
	if got := r.Resolve(context.Background(), "  "); !got.IsZero() {
		t.Errorf("Resolve(blank) = %v, want zero source", got)
	}
}

func TestResolve_Cancelled(t *testing.T) {
	cam := newFakeCamera(map[string]fakeResponse{})
	r := NewResolver(ResolverConfig{HTTPClient: cam.client()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := r.Resolve(ctx, "192.168.4.1")
	if got.Kind != KindEmbeddedPage {
		t.Errorf("Resolve(cancelled) = %v, want embedded page", got)
	}
	if calls := cam.calls(); len(calls) != 0 {
		t.Errorf("cancelled resolve made %d requests", len(calls))
	}
}

func TestResolve_ObserveReportsInOrder(t *testing.T) {
	cam := newFakeCamera(map[string]fakeResponse{
		"http://192.168.4.1/mjpeg": {status: 200, contentType: "multipart/x-mixed-replace; boundary=frame"},
	})
	r := NewResolver(ResolverConfig{HTTPClient: cam.client()})

	var seen []string
	src := r.Observe(context.Background(), "192.168.4.1", func(p Probe) {
		seen = append(seen, p.URL)
	})
	if src != MJPEG("http://192.168.4.1/mjpeg") {
		t.Errorf("Observe() = %v", src)
	}
	want := []string{
		"http://192.168.4.1:81/stream",
		"http://192.168.4.1/stream",
		"http://192.168.4.1/mjpeg",
	}
	if len(seen) != len(want) {
		t.Fatalf("observed %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("probe %d = %s, want %s", i, seen[i], want[i])
		}
	}
}

func TestResolve_KeepsTypedPath(t *testing.T) {
	tests := []struct {
		raw        string
		wantProbe  string
		wantSource Source
	}{
		{"http://cam/mjpg/", "http://cam/mjpg/", EmbeddedPage("http://cam/mjpg/")},
		{"cam/snap.cgi?dir=/", "http://cam/snap.cgi?dir=/", EmbeddedPage("http://cam/snap.cgi?dir=/")},
	}

	for _, tt := range tests {
		cam := newFakeCamera(map[string]fakeResponse{})
		r := NewResolver(ResolverConfig{HTTPClient: cam.client()})

		src, probes := r.Trace(context.Background(), tt.raw)
		if len(probes) == 0 || probes[0].URL != tt.wantProbe {
			t.Errorf("Trace(%q) first request = %v, want %q", tt.raw, probes, tt.wantProbe)
		}
		if src != tt.wantSource {
			t.Errorf("Trace(%q) = %v, want %v", tt.raw, src, tt.wantSource)
		}
	}

	cam := newFakeCamera(map[string]fakeResponse{
		"http://cam/mjpg/": {status: 200, contentType: "multipart/x-mixed-replace"},
	})
	r := NewResolver(ResolverConfig{HTTPClient: cam.client()})
	if got := r.Resolve(context.Background(), "http://cam/mjpg/"); got != MJPEG("http://cam/mjpg/") {
		t.Errorf("Resolve(http://cam/mjpg/) = %v", got)
	}
}
