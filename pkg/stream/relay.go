package stream

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/mattn/go-mjpeg"

	"github.com/gwillem/rover/pkg/log"
)

var viewerTemplate = template.Must(template.New("viewer").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>rover camera</title>
<style>
body{margin:0;background:#111;color:#ddd;font-family:sans-serif;display:grid;place-items:center;min-height:100vh}
img,iframe{max-width:100vw;max-height:90vh;border:0}
iframe{width:100vw;height:90vh}
.notice{color:#e5a50a;padding:.5em}
</style>
</head>
<body>
{{- if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}
{{- if eq .Kind "page"}}<iframe src="{{.URL}}"></iframe>
{{- else if .Image}}<img src="/stream" alt="camera">
{{- else}}<div>No stream</div>{{end}}
</body>
</html>
`))

// Relay is a Display served over HTTP: /stream re-serves frames as MJPEG,
// /frame.jpg the latest frame and / a viewer page.
type Relay struct {
	stream *mjpeg.Stream
	router *mux.Router

	mu     sync.RWMutex
	source Source
	frame  []byte // latest frame for /frame.jpg
}

// NewRelay creates a relay with no source.
func NewRelay() *Relay {
	r := &Relay{
		stream: mjpeg.NewStream(),
		router: mux.NewRouter(),
	}
	r.router.Handle("/stream", r.stream).Methods(http.MethodGet)
	r.router.HandleFunc("/frame.jpg", r.handleFrame).Methods(http.MethodGet)
	r.router.HandleFunc("/", r.handleViewer).Methods(http.MethodGet)
	return r
}

func (r *Relay) Activate(src Source) {
	r.mu.Lock()
	r.source = src
	r.frame = nil
	r.mu.Unlock()
}

func (r *Relay) ShowFrame(frame []byte) {
	r.mu.Lock()
	r.frame = bytes.Clone(frame)
	r.mu.Unlock()

	if err := r.stream.Update(frame); err != nil {
		log.Debugf("relay update: %v", err)
	}
}

func (r *Relay) Clear() {
	r.mu.Lock()
	r.source = Source{}
	r.frame = nil
	r.mu.Unlock()
}

// Source returns the source currently shown.
func (r *Relay) Source() Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.source
}

// Handler returns the relay's routes.
func (r *Relay) Handler() http.Handler {
	return r.router
}

// ListenAndServe serves the relay on addr until ctx ends.
func (r *Relay) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		r.stream.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", addr).Info("relay listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Relay) handleFrame(w http.ResponseWriter, _ *http.Request) {
	r.mu.RLock()
	frame := r.frame
	r.mu.RUnlock()

	if len(frame) == 0 {
		http.Error(w, "no frame", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(frame)
}

func (r *Relay) handleViewer(w http.ResponseWriter, _ *http.Request) {
	src := r.Source()
	data := struct {
		Kind   string
		URL    string
		Notice string
		Image  bool
	}{
		Kind:   src.Kind.String(),
		URL:    src.URL,
		Notice: src.Notice(),
		Image:  src.Kind == KindMJPEG || src.Kind == KindSnapshot,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := viewerTemplate.Execute(w, data); err != nil {
		log.Warnf("relay viewer: %v", err)
	}
}
