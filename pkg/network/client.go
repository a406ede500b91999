// Package network provides the HTTP client shared by the device client and
// the stream resolver.
package network

import (
	"net/http"
	"time"
)

// Client has no overall timeout because MJPEG responses never end.
// Callers bound each request with a context deadline instead.
var Client = &http.Client{
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 10 * time.Second
	t.DisableCompression = true
	return t
}
