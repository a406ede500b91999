package stream

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var relayClient = &http.Client{Timeout: 2 * time.Second}

func get200(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	res, err := relayClient.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(body)
}

func TestRelay_Viewer(t *testing.T) {
	relay := NewRelay()
	srv := httptest.NewServer(relay.Handler())
	defer srv.Close()

	_, body := get200(t, srv, "/")
	if !strings.Contains(body, "No stream") {
		t.Errorf("placeholder missing from viewer: %s", body)
	}

	relay.Activate(EmbeddedPage("http://192.168.4.1"))
	_, body = get200(t, srv, "/")
	if !strings.Contains(body, `<iframe src="http://192.168.4.1">`) {
		t.Errorf("iframe missing from viewer: %s", body)
	}
	if !strings.Contains(body, "Raw MJPEG not detected") {
		t.Errorf("notice missing from viewer: %s", body)
	}

	relay.Activate(MJPEG("http://192.168.4.1:81/stream"))
	_, body = get200(t, srv, "/")
	if !strings.Contains(body, `<img src="/stream"`) || strings.Contains(body, "<iframe src=") {
		t.Errorf("viewer should show the image surface only: %s", body)
	}
}

func TestRelay_Frame(t *testing.T) {
	relay := NewRelay()
	srv := httptest.NewServer(relay.Handler())
	defer srv.Close()

	if status, _ := get200(t, srv, "/frame.jpg"); status != http.StatusNotFound {
		t.Errorf("GET /frame.jpg before any frame = %d, want 404", status)
	}

	relay.Activate(Snapshot("http://cam/capture", PollPeriod(2)))
	relay.ShowFrame(fakeJPEG)
	status, body := get200(t, srv, "/frame.jpg")
	if status != http.StatusOK || body != string(fakeJPEG) {
		t.Errorf("GET /frame.jpg = %d (%d bytes)", status, len(body))
	}

	// the feed froze: the last frame is still served
	status, body = get200(t, srv, "/frame.jpg")
	if status != http.StatusOK || body != string(fakeJPEG) {
		t.Errorf("GET /frame.jpg again = %d (%d bytes)", status, len(body))
	}

	relay.Activate(EmbeddedPage("http://cam"))
	if status, _ := get200(t, srv, "/frame.jpg"); status != http.StatusNotFound {
		t.Errorf("GET /frame.jpg after switching to a page = %d, want 404", status)
	}

	relay.ShowFrame(fakeJPEG)
	relay.Clear()
	if status, _ := get200(t, srv, "/frame.jpg"); status != http.StatusNotFound {
		t.Errorf("GET /frame.jpg after Clear = %d, want 404", status)
	}
	if !relay.Source().IsZero() {
		t.Error("Clear kept the source")
	}
}

func TestDisplays_FanOut(t *testing.T) {
	a, b := &Monitor{}, &Monitor{}
	d := Displays{a, b}

	d.Activate(MJPEG("http://cam/stream"))
	d.ShowFrame(fakeJPEG)
	for i, m := range []*Monitor{a, b} {
		if s := m.State(); s.Frames != 1 || s.Source.Kind != KindMJPEG {
			t.Errorf("display %d state = %+v", i, s)
		}
	}
	d.Clear()
	if a.State().Frames != 0 || b.State().Frames != 0 {
		t.Error("Clear not fanned out")
	}
}
