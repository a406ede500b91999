package teleop

import (
	"github.com/gwillem/rover/pkg/log"
	"github.com/gwillem/rover/pkg/stream"
)

// StartStream resolves a camera URL in the background and shows the result.
// An empty URL falls back to the last saved one.
func (c *Controller) StartStream(raw string) {
	c.mu.Lock()
	if stream.Normalize(raw) == "" {
		raw = c.streamURL
	}
	if stream.Normalize(raw) == "" {
		c.mu.Unlock()
		c.log("No camera URL, press 'c' to set one")
		return
	}
	c.resolving = true
	ctx := c.ctx
	c.mu.Unlock()

	c.publish()
	c.log("Probing %s", stream.Normalize(raw))

	go func() {
		src, ok := c.player.Start(ctx, raw)
		if !ok {
			return
		}
		if c.store != nil {
			if err := c.store.SaveStreamURL(src.URL); err != nil {
				log.Warnf("save stream url: %v", err)
			}
		}

		c.mu.Lock()
		c.resolving = false
		c.streamURL = src.URL
		c.mu.Unlock()

		c.log("Stream: %s", src)
		if notice := src.Notice(); notice != "" {
			c.log("%s", notice)
		}
		c.publish()
	}()
}

// StopStream ends the stream and clears the display.
func (c *Controller) StopStream() {
	c.player.Stop()

	c.mu.Lock()
	c.resolving = false
	c.mu.Unlock()

	c.log("Stream stopped")
	c.publish()
}

// ToggleStream stops a running stream or starts raw.
func (c *Controller) ToggleStream(raw string) {
	if c.player.Active() {
		c.StopStream()
		return
	}
	c.StartStream(raw)
}

// SetPollFPS changes the snapshot polling rate.
func (c *Controller) SetPollFPS(fps int) {
	c.player.SetFPS(fps)
	c.log("Snapshot rate: %d fps", c.player.FPS())
	c.publish()
}

// NudgePollFPS moves the snapshot polling rate by delta.
func (c *Controller) NudgePollFPS(delta int) {
	c.SetPollFPS(c.player.FPS() + delta)
}

// StreamError reports a feed failure. Wire it to the player's OnError.
func (c *Controller) StreamError(err error) {
	c.log("Stream error: %v", err)
	c.publish()
}
