package rover

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gwillem/rover/pkg/network"
)

// ErrNoBaseURL is returned when no device address has been configured.
var ErrNoBaseURL = errors.New("no device base URL configured")

// DefaultPingTimeout bounds the liveness probe.
const DefaultPingTimeout = 1500 * time.Millisecond

// ClientConfig holds configuration for a device client.
type ClientConfig struct {
	BaseURL     string
	HTTPClient  *http.Client
	PingTimeout time.Duration
}

// Client sends commands to the robot's HTTP API.
type Client struct {
	http        *http.Client
	pingTimeout time.Duration

	mu      sync.RWMutex
	baseURL string
}

// NewClient creates a device client. The base URL is normalized.
func NewClient(cfg ClientConfig) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = network.Client
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = DefaultPingTimeout
	}
	return &Client{
		http:        cfg.HTTPClient,
		pingTimeout: cfg.PingTimeout,
		baseURL:     NormalizeURL(cfg.BaseURL),
	}
}

// BaseURL returns the normalized device address.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL points the client at another device.
func (c *Client) SetBaseURL(raw string) {
	c.mu.Lock()
	c.baseURL = NormalizeURL(raw)
	c.mu.Unlock()
}

// Ping reports whether GET / answers with a 2xx status within the ping timeout.
func (c *Client) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()
	return c.get(ctx, "/", nil) == nil
}

// Drive sends a drive command.
func (c *Client) Drive(ctx context.Context, cmd DriveCommand) error {
	if err := c.get(ctx, "/drive", cmd.Query()); err != nil {
		return fmt.Errorf("drive %s: %w", cmd, err)
	}
	return nil
}

// SetServo moves a joint to angle (clamped to [0,180]).
func (c *Client) SetServo(ctx context.Context, joint Joint, angle int) error {
	q := url.Values{
		"joint": {string(joint)},
		"angle": {strconv.Itoa(ClampAngle(angle))},
	}
	if err := c.get(ctx, "/setServo", q); err != nil {
		return fmt.Errorf("set %s: %w", joint, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) error {
	base := c.BaseURL()
	if base == "" {
		return ErrNoBaseURL
	}

	target := base + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", res.Status)
	}
	return nil
}
