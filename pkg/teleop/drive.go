package teleop

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/gwillem/rover/pkg/log"
	"github.com/gwillem/rover/pkg/rover"
)

// ThrottleStep is how far one key press moves the throttle.
const ThrottleStep = 10

// SetThrottle records a throttle in [-100,100] and sends it once the
// control has been quiet for the drive debounce.
func (c *Controller) SetThrottle(v int) {
	c.mu.Lock()
	c.throttle = lo.Clamp(v, rover.MinThrottle, rover.MaxThrottle)
	c.mu.Unlock()

	c.publish()
	c.debounceDrive()
}

// NudgeThrottle moves the throttle by delta.
func (c *Controller) NudgeThrottle(delta int) {
	c.mu.RLock()
	v := c.throttle
	c.mu.RUnlock()
	c.SetThrottle(v + delta)
}

// Turn sends a left or right turn and stops after the tap duration.
func (c *Controller) Turn(cmd rover.DriveCommand) {
	go c.drive(cmd)
	time.AfterFunc(c.turnTap, func() {
		c.drive(rover.Stop())
	})
}

// StopDrive drops any pending throttle change, zeroes the throttle and
// stops right away.
func (c *Controller) StopDrive() {
	c.cancelDrive()

	c.mu.Lock()
	c.throttle = 0
	c.mu.Unlock()

	c.publish()
	go c.drive(rover.Stop())
}

func (c *Controller) sendThrottle() {
	c.mu.RLock()
	v := c.throttle
	c.mu.RUnlock()
	c.drive(rover.FromThrottle(v))
}

// drive is fire-and-forget: failures are logged and dropped.
func (c *Controller) drive(cmd rover.DriveCommand) {
	ctx, cancel := context.WithTimeout(c.baseContext(), commandTimeout)
	defer cancel()

	if err := c.client.Drive(ctx, cmd); err != nil {
		log.Debug(err)
	}
}
