package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/mattn/go-mjpeg"
)

// maxFrameSize caps a single JPEG read from a snapshot endpoint.
const maxFrameSize = 8 << 20

// ReadMJPEG pushes frames from a multipart stream to display until ctx ends
// or the stream closes. A single-image response is shown once.
func ReadMJPEG(ctx context.Context, client *http.Client, url string, display FrameSink) error {
	res, err := get(ctx, client, url)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		frame, err := io.ReadAll(io.LimitReader(res.Body, maxFrameSize))
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		display.ShowFrame(frame)
		return nil
	}

	dec, err := mjpeg.NewDecoderFromResponse(res)
	if err != nil {
		return fmt.Errorf("open mjpeg decoder: %w", err)
	}
	for {
		frame, err := dec.DecodeRaw()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode frame: %w", err)
		}
		display.ShowFrame(frame)
	}
}

// FetchFrame downloads one snapshot image.
func FetchFrame(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := get(ctx, client, url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return io.ReadAll(io.LimitReader(res.Body, maxFrameSize))
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, fmt.Errorf("%s: unexpected status %s", url, res.Status)
	}
	return res, nil
}
