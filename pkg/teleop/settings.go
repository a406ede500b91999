package teleop

import (
	"fmt"

	"github.com/gwillem/rover/pkg/rover"
)

// SaveBaseURL points the controller at a new device, persists the address
// and pings it.
func (c *Controller) SaveBaseURL(raw string) error {
	base := rover.NormalizeURL(raw)
	if c.store != nil {
		if _, err := c.store.SaveBaseURL(base); err != nil {
			return fmt.Errorf("save base url: %w", err)
		}
	}
	c.client.SetBaseURL(base)
	c.log("Device: %s", base)

	go c.ping(c.baseContext())
	return nil
}
