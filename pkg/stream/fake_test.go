package stream

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
)

type fakeResponse struct {
	status      int
	contentType string
	body        string
	hang        bool
}

// fakeCamera is a RoundTripper that answers from a fixed route table and
// records every URL requested. Unknown URLs fail like a refused connection.
type fakeCamera struct {
	mu       sync.Mutex
	routes   map[string]fakeResponse
	requests []string
}

func newFakeCamera(routes map[string]fakeResponse) *fakeCamera {
	return &fakeCamera{routes: routes}
}

func (f *fakeCamera) client() *http.Client {
	return &http.Client{Transport: f}
}

func (f *fakeCamera) RoundTrip(req *http.Request) (*http.Response, error) {
	u := req.URL.String()
	f.mu.Lock()
	f.requests = append(f.requests, u)
	route, ok := f.routes[u]
	f.mu.Unlock()

	if !ok {
		return nil, errors.New("connection refused")
	}
	if route.hang {
		<-req.Context().Done()
		return nil, req.Context().Err()
	}

	header := http.Header{}
	if route.contentType != "" {
		header.Set("Content-Type", route.contentType)
	}
	return &http.Response{
		StatusCode: route.status,
		Status:     http.StatusText(route.status),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(route.body)),
		Request:    req,
	}, nil
}

func (f *fakeCamera) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}
